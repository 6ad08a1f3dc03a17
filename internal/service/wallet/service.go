package wallet

import (
	"context"
	"digit_slot/internal/model"
	"digit_slot/internal/repository"
	"digit_slot/internal/service"
	"errors"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrInvalidRecord     = errors.New("bet amount must be positive")
	ErrInsufficientFunds = errors.New("not enough balance")
)

type serv struct {
	walletRepo repository.WalletRepository
	betRepo    repository.BetRepository
	txManager  trm.Manager
	// initialBalance начисляется игроку при первом обращении
	initialBalance int
}

// NewWalletService Локальный кошелек на Postgres
func NewWalletService(
	walletRepo repository.WalletRepository,
	betRepo repository.BetRepository,
	txManager trm.Manager,
	initialBalance int,
) service.LocalWalletService {
	return &serv{
		walletRepo:     walletRepo,
		betRepo:        betRepo,
		txManager:      txManager,
		initialBalance: initialBalance,
	}
}

func (s *serv) Balance(ctx context.Context, player model.Player) (int, error) {
	if err := s.walletRepo.CreatePlayer(ctx, player.ID, s.initialBalance); err != nil {
		return 0, fmt.Errorf("create player: %w", err)
	}
	balance, err := s.walletRepo.GetBalance(ctx, player.ID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// Submit Списывает ставку, начисляет выигрыш и пишет ставку в журнал одной транзакцией.
// Возвращает баланс из базы, он главнее рассчитанного столом
func (s *serv) Submit(ctx context.Context, player model.Player, rec model.BetRecord) (*model.SubmitResult, error) {
	if rec.BetAmount <= 0 || rec.WinAmount < 0 {
		return nil, ErrInvalidRecord
	}

	var balance int
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.walletRepo.CreatePlayer(txCtx, player.ID, s.initialBalance); err != nil {
			return fmt.Errorf("create player: %w", err)
		}
		current, err := s.walletRepo.GetBalance(txCtx, player.ID)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}
		if current < rec.BetAmount {
			return ErrInsufficientFunds
		}

		balance = current - rec.BetAmount + rec.WinAmount
		if err := s.walletRepo.UpdateBalance(txCtx, player.ID, balance); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		// В журнал пишем фактические балансы из базы
		rec.BeforeBalance = current
		rec.AfterBalance = balance
		if err := s.betRepo.CreateBet(txCtx, player.ID, rec); err != nil {
			return fmt.Errorf("create bet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &model.SubmitResult{Balance: &balance}, nil
}

func (s *serv) Bets(ctx context.Context, playerID int, limit int) ([]model.BetRecord, error) {
	return s.betRepo.ListBets(ctx, playerID, limit)
}
