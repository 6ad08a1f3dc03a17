package model

import "time"

// NoticeKind Тип уведомления для интерфейса (тосты)
type NoticeKind string

const (
	NoticeValidation       NoticeKind = "validation"
	NoticeWin              NoticeKind = "win"
	NoticeLose             NoticeKind = "lose"
	NoticeStreak           NoticeKind = "streak"
	NoticeReportingFailure NoticeKind = "reporting_failure"
	NoticeBalanceUpdated   NoticeKind = "balance_reconciled"
	NoticeJackpot          NoticeKind = "jackpot"
)

// Notice Разовое событие стола
type Notice struct {
	Seq       int64
	Kind      NoticeKind
	Message   string
	Code      string
	CreatedAt time.Time
}

// TableState Снимок стола для отображения
type TableState struct {
	Round         Round
	BetOpen       bool
	Bet           Bet
	Balance       int
	LastResult    *int
	Message       string
	History       []int
	RTP           *float64
	Streak        int
	Multiplier    int
	Jackpot       int
	NextJackpotIn int // Секунд до следующего джекпота
	LastNoticeSeq int64
}
