package outcome

import (
	"digit_slot/internal/model"
	"digit_slot/internal/repository"
	"sync"
)

// Engine Движок исходов: проверка, розыгрыш, выплата, счетчики RTP
type Engine struct {
	rules Rules
	rng   RandomSource
	stats repository.RTPStateRepository

	// чтение счетчиков и их обновление - одна операция
	mu sync.Mutex
}

func NewEngine(rules Rules, rng RandomSource, stats repository.RTPStateRepository) *Engine {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Engine{
		rules: rules,
		rng:   rng,
		stats: stats,
	}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// Settle Рассчитывает раунд и обновляет счетчики RTP.
// При ошибке проверки счетчики не меняются
func (e *Engine) Settle(pick model.Pick, amount, balance int) (*model.Settlement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := Settle(e.rules, e.rng, pick, amount, balance, e.stats.Totals())
	if err != nil {
		return nil, err
	}

	e.stats.UpdateState(res.Amount, res.WinAmount)
	return res, nil
}

// Stats Текущее состояние счетчиков
func (e *Engine) Stats() model.RTPState {
	return e.stats.State()
}

// Totals Текущие суммы ставок и выплат
func (e *Engine) Totals() model.RTPTotals {
	return e.stats.Totals()
}
