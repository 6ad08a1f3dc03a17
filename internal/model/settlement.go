package model

import "time"

// Outcome Исход раунда
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
)

// Steering Каким образом был выбран результат
type Steering string

const (
	SteeringNone   Steering = "none"   // обычный равновероятный розыгрыш
	SteeringHouse  Steering = "house"  // RTP выше окна - только проигрышные цифры
	SteeringPlayer Steering = "player" // RTP ниже окна - только выигрышные цифры
)

// Settlement Итог одного раунда со ставкой. После создания не меняется
type Settlement struct {
	ID            string
	RoundID       string
	Pick          Pick
	Amount        int
	RolledDigit   int
	Outcome       Outcome
	WinAmount     int
	Multiplier    int
	BeforeBalance int
	AfterBalance  int // BeforeBalance - Amount + WinAmount
	Steering      Steering
	SettledAt     time.Time
}

// Profit чистый результат игрока за раунд
func (s Settlement) Profit() int {
	return s.WinAmount - s.Amount
}

// BetRecord Запись о ставке для кошелька и журнала ставок
type BetRecord struct {
	ID            string
	RoundID       string
	BetType       string
	Digit         *int
	BetAmount     int
	Multiplier    int
	RolledNumber  int
	WinAmount     int
	Profit        int
	Status        string
	Outcome       Outcome
	BeforeBalance int
	AfterBalance  int
	BetTime       time.Time
}

// SubmitResult Ответ кошелька. Balance == nil, если кошелек баланс не вернул
type SubmitResult struct {
	Balance *int
}
