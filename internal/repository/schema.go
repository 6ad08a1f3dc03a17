package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate создает таблицы локального кошелька, если их нет
func Migrate(ctx context.Context, dbc *pgxpool.Pool) error {
	_, err := dbc.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS players (
			id BIGINT PRIMARY KEY,
			balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0)
		);
		CREATE TABLE IF NOT EXISTS digit_slot_bets (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL,
			round_id TEXT NOT NULL,
			bet_type TEXT NOT NULL,
			digit SMALLINT,
			bet_amount BIGINT NOT NULL,
			multiplier INT NOT NULL,
			rolled_number SMALLINT NOT NULL,
			win_amount BIGINT NOT NULL,
			profit BIGINT NOT NULL,
			status TEXT NOT NULL,
			outcome TEXT NOT NULL,
			before_balance BIGINT NOT NULL,
			after_balance BIGINT NOT NULL,
			bet_time TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_digit_slot_bets_user_time ON digit_slot_bets(user_id, bet_time DESC);
	`)
	return err
}
