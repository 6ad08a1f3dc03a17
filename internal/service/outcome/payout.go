package outcome

import (
	"digit_slot/internal/config"
	"digit_slot/internal/model"
)

// Rules Множители выплат и параметры регулировки RTP
type Rules struct {
	PayoutExactDigit int
	PayoutDigit5     int
	PayoutSmallBig   int
	PayoutOddEven    int

	RTPTarget        float64
	RTPWindow        float64
	SteerProbability float64
}

// DefaultRules Значения по умолчанию: 10x / 15x / 2x / 2x, RTP 96.5 +- 3, регулировка в 10% раундов
func DefaultRules() Rules {
	return Rules{
		PayoutExactDigit: 10,
		PayoutDigit5:     15,
		PayoutSmallBig:   2,
		PayoutOddEven:    2,
		RTPTarget:        96.5,
		RTPWindow:        3.0,
		SteerProbability: 0.10,
	}
}

func RulesFromConfig(cfg config.SlotConfig) Rules {
	return Rules{
		PayoutExactDigit: cfg.PayoutExactDigit(),
		PayoutDigit5:     cfg.PayoutDigit5(),
		PayoutSmallBig:   cfg.PayoutSmallBig(),
		PayoutOddEven:    cfg.PayoutOddEven(),
		RTPTarget:        cfg.RTPTarget(),
		RTPWindow:        cfg.RTPWindow(),
		SteerProbability: cfg.SteerProbability(),
	}
}

// Multiplier Множитель выплаты для выбора. 0 - выбора нет
func (r Rules) Multiplier(pick model.Pick) int {
	if d, ok := pick.Digit(); ok {
		if d == 5 {
			return r.PayoutDigit5
		}
		return r.PayoutExactDigit
	}
	c, ok := pick.Category()
	if !ok {
		return 0
	}
	switch c {
	case model.CategoryMiddle:
		return r.PayoutDigit5
	case model.CategorySmall, model.CategoryBig:
		return r.PayoutSmallBig
	case model.CategoryEven, model.CategoryOdd:
		return r.PayoutOddEven
	}
	return 0
}

// Wins выигрывает ли выбор при выпавшей цифре
func Wins(rolled int, pick model.Pick) bool {
	if d, ok := pick.Digit(); ok {
		return rolled == d
	}
	if c, ok := pick.Category(); ok {
		return c.Contains(rolled)
	}
	return false
}

// Payout Выплата за ставку. Чистая функция, никогда не отрицательна
func (r Rules) Payout(rolled int, pick model.Pick, amount int) int {
	if amount <= 0 || !Wins(rolled, pick) {
		return 0
	}
	return amount * r.Multiplier(pick)
}
