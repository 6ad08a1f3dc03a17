package wallet

import (
	"bytes"
	"context"
	"digit_slot/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	betPath  = "/digit-slot/bet"
	userPath = "/user"

	// Чтение баланса повторяем один раз при таймауте
	maxBalanceAttempts = 2
	retryDelay         = 300 * time.Millisecond
)

var (
	ErrUnauthorized = errors.New("wallet rejected player token")
	ErrNoBalance    = errors.New("wallet response has no balance")
)

// Client Удаленный кошелек по REST
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
	}
}

type betRequest struct {
	Bets []betRecord `json:"bets"`
}

type betRecord struct {
	RoundID       string    `json:"round_id"`
	BetType       string    `json:"bet_type"`
	Digit         *int      `json:"digit"`
	BetAmount     int       `json:"bet_amount"`
	Multiplier    int       `json:"multiplier"`
	RolledNumber  int       `json:"rolled_number"`
	WinAmount     int       `json:"win_amount"`
	Profit        int       `json:"profit"`
	Status        string    `json:"status"`
	BetTime       time.Time `json:"bet_time"`
	Outcome       string    `json:"outcome"`
	BeforeBalance int       `json:"before_balance"`
	AfterBalance  int       `json:"after_balance"`
}

// balanceResponse {"data": {"balance": 1234 | "1234.00"}}
type balanceResponse struct {
	Data *struct {
		Balance json.RawMessage `json:"balance"`
	} `json:"data"`
}

// Balance Текущий баланс игрока
func (c *Client) Balance(ctx context.Context, player model.Player) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= maxBalanceAttempts; attempt++ {
		balance, err := c.getBalance(ctx, player)
		if err == nil {
			if balance == nil {
				return 0, ErrNoBalance
			}
			return *balance, nil
		}
		lastErr = err
		if !isTimeout(err) || ctx.Err() != nil {
			return 0, err
		}
		log.Printf("wallet: balance request for player %d timed out, attempt %d", player.ID, attempt)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return 0, lastErr
}

func (c *Client) getBalance(ctx context.Context, player model.Player) (*int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+userPath, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req, player)
}

// Submit Отправка итога ставки. Не повторяется: повтор мог бы списать ставку дважды
func (c *Client) Submit(ctx context.Context, player model.Player, rec model.BetRecord) (*model.SubmitResult, error) {
	body, err := json.Marshal(betRequest{Bets: []betRecord{toBetRecord(rec)}})
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+betPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	balance, err := c.do(req, player)
	if err != nil {
		return nil, err
	}
	return &model.SubmitResult{Balance: balance}, nil
}

func (c *Client) do(req *http.Request, player model.Player) (*int, error) {
	req.Header.Set("Accept", "application/json")
	if player.Token != "" {
		req.Header.Set("Authorization", "Bearer "+player.Token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("wallet %s %s: status %d", req.Method, req.URL.Path, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var payload balanceResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode wallet response: %w", err)
	}
	if payload.Data == nil {
		return nil, nil
	}
	return parseBalance(payload.Data.Balance)
}

// parseBalance Баланс приходит числом или строкой с дробной частью
func parseBalance(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid balance %q: %w", s, err)
	}
	balance := int(math.Round(f))
	return &balance, nil
}

func toBetRecord(rec model.BetRecord) betRecord {
	return betRecord{
		RoundID:       rec.RoundID,
		BetType:       rec.BetType,
		Digit:         rec.Digit,
		BetAmount:     rec.BetAmount,
		Multiplier:    rec.Multiplier,
		RolledNumber:  rec.RolledNumber,
		WinAmount:     rec.WinAmount,
		Profit:        rec.Profit,
		Status:        rec.Status,
		BetTime:       rec.BetTime.UTC(),
		Outcome:       string(rec.Outcome),
		BeforeBalance: rec.BeforeBalance,
		AfterBalance:  rec.AfterBalance,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
