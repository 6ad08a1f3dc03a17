package bet_repo

import (
	"context"
	"digit_slot/internal/model"
	"digit_slot/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "digit_slot_bets"
	colID            = "id"
	colUserID        = "user_id"
	colRoundID       = "round_id"
	colBetType       = "bet_type"
	colDigit         = "digit"
	colBetAmount     = "bet_amount"
	colMultiplier    = "multiplier"
	colRolledNumber  = "rolled_number"
	colWinAmount     = "win_amount"
	colProfit        = "profit"
	colStatus        = "status"
	colOutcome       = "outcome"
	colBeforeBalance = "before_balance"
	colAfterBalance  = "after_balance"
	colBetTime       = "bet_time"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewBetRepository(dbc *pgxpool.Pool) repository.BetRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateBet - записывает ставку в журнал.
// Если у записи нет ID, генерируется новый
func (r *repo) CreateBet(ctx context.Context, userID int, rec model.BetRecord) error {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colUserID, colRoundID, colBetType, colDigit, colBetAmount, colMultiplier,
			colRolledNumber, colWinAmount, colProfit, colStatus, colOutcome,
			colBeforeBalance, colAfterBalance, colBetTime).
		Values(id, userID, rec.RoundID, rec.BetType, rec.Digit, rec.BetAmount, rec.Multiplier,
			rec.RolledNumber, rec.WinAmount, rec.Profit, rec.Status, string(rec.Outcome),
			rec.BeforeBalance, rec.AfterBalance, rec.BetTime).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// ListBets - последние ставки игрока, новые первыми
func (r *repo) ListBets(ctx context.Context, userID int, limit int) ([]model.BetRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	// Формируем запрос
	query := sq.Select(colID, colRoundID, colBetType, colDigit, colBetAmount, colMultiplier,
		colRolledNumber, colWinAmount, colProfit, colStatus, colOutcome,
		colBeforeBalance, colAfterBalance, colBetTime).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colBetTime + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bets := make([]model.BetRecord, 0, limit)
	for rows.Next() {
		var (
			rec     model.BetRecord
			outcome string
		)
		err = rows.Scan(&rec.ID, &rec.RoundID, &rec.BetType, &rec.Digit, &rec.BetAmount, &rec.Multiplier,
			&rec.RolledNumber, &rec.WinAmount, &rec.Profit, &rec.Status, &outcome,
			&rec.BeforeBalance, &rec.AfterBalance, &rec.BetTime)
		if err != nil {
			return nil, err
		}
		rec.Outcome = model.Outcome(outcome)
		bets = append(bets, rec)
	}

	return bets, rows.Err()
}
