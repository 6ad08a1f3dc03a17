package slot

import (
	"digit_slot/internal/config"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Jackpot Сумма джекпота и расписание розыгрышей
type Jackpot struct {
	amount   int
	spec     string
	schedule cron.Schedule
}

func NewJackpot(cfg config.JackpotConfig) (*Jackpot, error) {
	schedule, err := cron.ParseStandard(cfg.Schedule())
	if err != nil {
		return nil, fmt.Errorf("invalid jackpot schedule %q: %w", cfg.Schedule(), err)
	}
	return &Jackpot{
		amount:   cfg.Amount(),
		spec:     cfg.Schedule(),
		schedule: schedule,
	}, nil
}

func (j *Jackpot) Amount() int {
	return j.amount
}

// NextIn Сколько осталось до ближайшего розыгрыша
func (j *Jackpot) NextIn(now time.Time) time.Duration {
	next := j.schedule.Next(now)
	if next.IsZero() {
		return 0
	}
	return next.Sub(now)
}
