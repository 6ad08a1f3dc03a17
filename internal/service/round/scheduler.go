package round

import (
	"digit_slot/internal/config"
	"digit_slot/internal/model"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hooks Обработчики событий раунда.
// Вызываются вне блокировки планировщика, из горутины тиков.
// Внутри обработчика нельзя вызывать Start и Stop
type Hooks struct {
	// OnPhase при входе в каждую фазу, включая PRE_GAME после Start
	OnPhase func(model.Round)
	// OnSettle ровно один раз за раунд, при входе в SETTLING
	OnSettle func(model.Round)
}

// Scheduler Циклический таймер раунда PRE_GAME -> BETTING -> SETTLING -> PRE_GAME
type Scheduler struct {
	preGame   int
	betting   int
	holdTicks int
	tick      time.Duration
	hooks     Hooks

	// runMtx сериализует Start и Stop, чтобы не было двух циклов одновременно
	runMtx sync.Mutex
	stop   chan struct{}
	done   chan struct{}

	mtx   sync.Mutex
	round model.Round
}

type event struct {
	settle bool
	round  model.Round
}

func New(cfg config.RoundConfig, hooks Hooks) *Scheduler {
	tick := cfg.TickInterval()
	if tick <= 0 {
		tick = time.Second
	}

	// Задержка показа результата в тиках, с округлением вверх
	hold := cfg.DisplayHold()
	holdTicks := int(hold / tick)
	if hold%tick != 0 {
		holdTicks++
	}

	return &Scheduler{
		preGame:   cfg.PreGameSeconds(),
		betting:   cfg.BettingSeconds(),
		holdTicks: holdTicks,
		tick:      tick,
		hooks:     hooks,
		round:     model.Round{Phase: model.PhasePreGame, Remaining: cfg.PreGameSeconds()},
	}
}

// Start Запускает новый раунд с PRE_GAME.
// Если цикл уже идет - сначала останавливает его и ждет завершения
func (s *Scheduler) Start() {
	s.runMtx.Lock()
	defer s.runMtx.Unlock()

	s.stopLocked()

	s.mtx.Lock()
	s.nextRoundLocked()
	rnd := s.round
	s.mtx.Unlock()

	s.emit([]event{{round: rnd}})

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

// Stop Останавливает цикл тиков. Можно вызывать повторно и до Start
func (s *Scheduler) Stop() {
	s.runMtx.Lock()
	defer s.runMtx.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
}

// Running идет ли цикл тиков
func (s *Scheduler) Running() bool {
	s.runMtx.Lock()
	defer s.runMtx.Unlock()
	return s.stop != nil
}

// Round Снимок текущего раунда
func (s *Scheduler) Round() model.Round {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.round
}

func (s *Scheduler) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick Одна секунда раунда. Переход фазы ровно когда Remaining доходит до 0
func (s *Scheduler) Tick() {
	s.mtx.Lock()

	var events []event
	if s.round.Remaining > 0 {
		s.round.Remaining--
	}

	if s.round.Remaining == 0 {
		switch s.round.Phase {
		case model.PhasePreGame:
			s.round.Phase = model.PhaseBetting
			s.round.Remaining = s.betting
			events = append(events, event{round: s.round})

		case model.PhaseBetting:
			s.round.Phase = model.PhaseSettling
			s.round.Remaining = s.holdTicks
			events = append(events, event{round: s.round}, event{settle: true, round: s.round})

			// Без задержки показа сразу новый раунд
			if s.holdTicks == 0 {
				s.nextRoundLocked()
				events = append(events, event{round: s.round})
			}

		case model.PhaseSettling:
			s.nextRoundLocked()
			events = append(events, event{round: s.round})
		}
	}

	s.mtx.Unlock()

	s.emit(events)
}

func (s *Scheduler) nextRoundLocked() {
	s.round = model.Round{
		ID:        uuid.NewString(),
		Number:    s.round.Number + 1,
		Phase:     model.PhasePreGame,
		Remaining: s.preGame,
	}
}

func (s *Scheduler) emit(events []event) {
	for _, ev := range events {
		if ev.settle {
			if s.hooks.OnSettle != nil {
				s.hooks.OnSettle(ev.round)
			}
			continue
		}
		if s.hooks.OnPhase != nil {
			s.hooks.OnPhase(ev.round)
		}
	}
}
