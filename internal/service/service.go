package service

import (
	"context"
	"digit_slot/internal/model"
)

// SlotService Столы игроков: раунды, ставки, отображение
type SlotService interface {
	Join(ctx context.Context, player model.Player) (*model.TableState, error)
	Leave(ctx context.Context, playerID int) error
	State(ctx context.Context, playerID int) (*model.TableState, error)
	// SetPick и SetBetAmount принимаются только в фазе BETTING,
	// в остальных фазах ввод молча игнорируется (false, nil)
	SetPick(ctx context.Context, playerID int, pick model.Pick) (bool, error)
	SetBetAmount(ctx context.Context, playerID int, amount int) (bool, error)
	Events(ctx context.Context, playerID int, after int64) ([]model.Notice, error)
	Stats() model.RTPState
	Close()
}

// WalletService Внешний кошелек: баланс и прием итогов ставок
type WalletService interface {
	Balance(ctx context.Context, player model.Player) (int, error)
	Submit(ctx context.Context, player model.Player, rec model.BetRecord) (*model.SubmitResult, error)
}

// BetHistoryService Журнал ставок, есть только у локального кошелька
type BetHistoryService interface {
	Bets(ctx context.Context, playerID int, limit int) ([]model.BetRecord, error)
}

// LocalWalletService Кошелек в своей базе: баланс, прием ставок и журнал
type LocalWalletService interface {
	WalletService
	BetHistoryService
}
