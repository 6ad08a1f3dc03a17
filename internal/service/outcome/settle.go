package outcome

import (
	"digit_slot/internal/model"
	"time"

	"github.com/google/uuid"
)

// FailureCode Код ошибки проверки ставки
type FailureCode string

const (
	CodeNoPick              FailureCode = "NO_PICK"
	CodeInvalidBet          FailureCode = "INVALID_BET"
	CodeInsufficientBalance FailureCode = "INSUFFICIENT_BALANCE"
)

// ValidationError Ставка не прошла проверку, розыгрыш не проводился
type ValidationError struct {
	Code    FailureCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNoPick              = &ValidationError{Code: CodeNoPick, Message: "please pick a digit or a category"}
	ErrInvalidBet          = &ValidationError{Code: CodeInvalidBet, Message: "bet amount must be greater than zero"}
	ErrInsufficientBalance = &ValidationError{Code: CodeInsufficientBalance, Message: "not enough balance"}
)

// Validate Проверка ставки. Порядок важен: первая ошибка побеждает
func Validate(pick model.Pick, amount, balance int) error {
	if pick.IsNone() {
		return ErrNoPick
	}
	if amount <= 0 {
		return ErrInvalidBet
	}
	if amount > balance {
		return ErrInsufficientBalance
	}
	return nil
}

// Settle Расчет одного раунда по накопленным суммам.
// Счетчики не меняет - это делает Engine
func Settle(rules Rules, rng RandomSource, pick model.Pick, amount, balance int, totals model.RTPTotals) (*model.Settlement, error) {
	if err := Validate(pick, amount, balance); err != nil {
		return nil, err
	}

	rolled, steering := rules.Draw(rng, pick, amount, totals.CurrentRTP())
	return newSettlement(rules, pick, amount, balance, rolled, steering), nil
}

// SettleWith Расчет раунда с заранее известной цифрой
func SettleWith(rules Rules, pick model.Pick, amount, balance, rolled int) (*model.Settlement, error) {
	if err := Validate(pick, amount, balance); err != nil {
		return nil, err
	}
	return newSettlement(rules, pick, amount, balance, rolled, model.SteeringNone), nil
}

func newSettlement(rules Rules, pick model.Pick, amount, balance, rolled int, steering model.Steering) *model.Settlement {
	win := rules.Payout(rolled, pick, amount)

	res := &model.Settlement{
		ID:            uuid.NewString(),
		Pick:          pick,
		Amount:        amount,
		RolledDigit:   rolled,
		Outcome:       model.OutcomeLose,
		WinAmount:     win,
		Multiplier:    rules.Multiplier(pick),
		BeforeBalance: balance,
		AfterBalance:  balance - amount + win,
		Steering:      steering,
		SettledAt:     time.Now(),
	}
	if win > 0 {
		res.Outcome = model.OutcomeWin
		res.Multiplier = win / amount
	}
	return res
}
