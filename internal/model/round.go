package model

// Phase Фаза раунда
type Phase string

const (
	PhasePreGame  Phase = "PRE_GAME"
	PhaseBetting  Phase = "BETTING"
	PhaseSettling Phase = "SETTLING"
)

// Round Текущий раунд. Живет с начала PRE_GAME до конца SETTLING
type Round struct {
	ID        string
	Number    int
	Phase     Phase
	Remaining int // Секунд до конца текущей фазы, не бывает отрицательным
}

// Bet Намерение игрока на текущий раунд
type Bet struct {
	Pick   Pick
	Amount int
}
