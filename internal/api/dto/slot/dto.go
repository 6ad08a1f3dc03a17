package slot

import (
	"encoding/json"
	"time"
)

type PickRequest struct {
	Pick json.RawMessage `json:"pick"` // Цифра 0-9, категория (small, middle, big, even, odd) или null
}

type BetRequest struct {
	Amount int `json:"amount"` // Сумма ставки
}

type AcceptedResponse struct {
	Accepted bool `json:"accepted"` // false - ввод вне фазы BETTING
}

type StateResponse struct {
	RoundID       string   `json:"round_id"`
	RoundNumber   int      `json:"round_number"`
	Phase         string   `json:"phase"`           // PRE_GAME, BETTING, SETTLING
	Remaining     int      `json:"remaining"`       // Секунд до конца фазы
	BetOpen       bool     `json:"bet_open"`        // Идет прием ставок
	Pick          any      `json:"pick"`            // Текущий выбор или null
	Amount        int      `json:"amount"`          // Текущая сумма ставки
	Multiplier    int      `json:"multiplier"`      // Множитель для текущего выбора
	Balance       int      `json:"balance"`         // Баланс из кошелька
	LastResult    *int     `json:"last_result"`     // Выпавшая цифра или null
	Message       string   `json:"message"`         // Сообщение под результатом
	History       []int    `json:"history"`         // Последние выпавшие цифры, новые первыми
	RTP           *float64 `json:"rtp"`             // null пока не было ставок
	Streak        int      `json:"streak"`          // Выигрышей подряд
	Jackpot       int      `json:"jackpot"`         // Сумма джекпота
	NextJackpotIn string   `json:"next_jackpot_in"` // HH:MM:SS
	LastNoticeSeq int64    `json:"last_notice_seq"`
}

type NoticeResponse struct {
	Seq       int64     `json:"seq"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type EventsResponse struct {
	Notices []NoticeResponse `json:"notices"`
}

type BetRecord struct {
	ID            string    `json:"id"`
	RoundID       string    `json:"round_id"`
	BetType       string    `json:"bet_type"`
	Digit         *int      `json:"digit"`
	BetAmount     int       `json:"bet_amount"`
	Multiplier    int       `json:"multiplier"`
	RolledNumber  int       `json:"rolled_number"`
	WinAmount     int       `json:"win_amount"`
	Profit        int       `json:"profit"`
	Status        string    `json:"status"`
	Outcome       string    `json:"outcome"`
	BeforeBalance int       `json:"before_balance"`
	AfterBalance  int       `json:"after_balance"`
	BetTime       time.Time `json:"bet_time"`
}

type BetsResponse struct {
	Bets []BetRecord `json:"bets"`
}

type StatsResponse struct {
	TotalRounds  int     `json:"total_rounds"`
	TotalWagered int     `json:"total_wagered"`
	TotalPaid    int     `json:"total_paid"`
	RTP          float64 `json:"rtp"`
	WindowRTP    float64 `json:"window_rtp"`
	TargetRTP    float64 `json:"target_rtp"`
	Band         string  `json:"band"`
}
