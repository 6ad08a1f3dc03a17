package repository

import (
	"context"
	"digit_slot/internal/model"
)

// WalletRepository Балансы игроков (локальный кошелек)
type WalletRepository interface {
	CreatePlayer(ctx context.Context, id int, balance int) error
	GetBalance(ctx context.Context, id int) (int, error)
	UpdateBalance(ctx context.Context, id int, amount int) error
}

// BetRepository Журнал ставок
type BetRepository interface {
	CreateBet(ctx context.Context, userID int, rec model.BetRecord) error
	ListBets(ctx context.Context, userID int, limit int) ([]model.BetRecord, error)
}

// RTPStateRepository Счетчики RTP процесса. Живут до перезапуска
type RTPStateRepository interface {
	Totals() model.RTPTotals
	State() model.RTPState
	UpdateState(bet, payout int)
}
