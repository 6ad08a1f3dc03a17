package outcome

import (
	"digit_slot/internal/model"
	"digit_slot/internal/repository/rtp_state_repo"
	"errors"
	"testing"
)

// scriptedRNG отдает заданные значения по кругу
type scriptedRNG struct {
	values []float64
	i      int
}

func (s *scriptedRNG) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		pick    model.Pick
		amount  int
		balance int
		want    *ValidationError
	}{
		{"no pick wins over negative amount", model.NoPick(), -5, 100, ErrNoPick},
		{"no pick wins over insufficient balance", model.NoPick(), 500, 100, ErrNoPick},
		{"zero amount", mustDigit(t, 1), 0, 100, ErrInvalidBet},
		{"invalid amount wins over balance", mustDigit(t, 1), -1, -10, ErrInvalidBet},
		{"insufficient balance", mustCategory(t, model.CategoryBig), 101, 100, ErrInsufficientBalance},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := &scriptedRNG{values: []float64{0.5}}
			res, err := Settle(DefaultRules(), rng, tc.pick, tc.amount, tc.balance, model.RTPTotals{})
			if res != nil {
				t.Fatalf("expected no settlement, got %+v", res)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Code != tc.want.Code {
				t.Fatalf("expected %s, got %v", tc.want.Code, err)
			}
			if rng.i != 0 {
				t.Fatalf("validation failure must not draw, rng used %d times", rng.i)
			}
		})
	}
}

func TestValidationIsIdempotent(t *testing.T) {
	stats := rtp_state_repo.NewRTPStateRepository(96.5, 3, 10)
	e := NewEngine(DefaultRules(), &scriptedRNG{values: []float64{0.1}}, stats)

	for i := 0; i < 2; i++ {
		_, err := e.Settle(mustDigit(t, 4), 0, 1000)
		if !errors.Is(err, ErrInvalidBet) {
			t.Fatalf("attempt %d: expected INVALID_BET, got %v", i, err)
		}
	}
	if tot := stats.Totals(); tot.TotalWagered != 0 || tot.TotalPaid != 0 {
		t.Fatalf("validation failure must not touch totals: %+v", tot)
	}
}

func TestExampleDigitFive(t *testing.T) {
	res, err := SettleWith(DefaultRules(), mustDigit(t, 5), 100, 1000, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.WinAmount != 1500 || res.Outcome != model.OutcomeWin {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.AfterBalance != 1000-100+1500 {
		t.Fatalf("after balance = %d", res.AfterBalance)
	}
	if res.Multiplier != 15 || res.Profit() != 1400 {
		t.Fatalf("multiplier/profit = %d/%d", res.Multiplier, res.Profit())
	}
}

func TestExampleSmallLoses(t *testing.T) {
	res, err := SettleWith(DefaultRules(), mustCategory(t, model.CategorySmall), 50, 1000, 7)
	if err != nil {
		t.Fatal(err)
	}
	if res.WinAmount != 0 || res.Outcome != model.OutcomeLose {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.AfterBalance != 950 {
		t.Fatalf("after balance = %d", res.AfterBalance)
	}
	if res.Multiplier != 2 {
		t.Fatalf("losing record keeps pick multiplier, got %d", res.Multiplier)
	}
}

func TestExampleOddWins(t *testing.T) {
	res, err := SettleWith(DefaultRules(), mustCategory(t, model.CategoryOdd), 20, 1000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if res.WinAmount != 40 || res.Outcome != model.OutcomeWin {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSteeringHouseNeverPays(t *testing.T) {
	r := DefaultRules()
	highRTP := r.RTPTarget + r.RTPWindow + 0.01

	for _, p := range allPicks(t) {
		for i := 0; i < 100; i++ {
			// первое значение форсирует ветку регулировки, второе выбирает цифру
			rng := &scriptedRNG{values: []float64{0.95, float64(i) / 100}}
			d, steering := r.Draw(rng, p, 10, highRTP)
			if steering != model.SteeringHouse {
				t.Fatalf("expected house steering, got %s", steering)
			}
			if r.Payout(d, p, 10) != 0 {
				t.Fatalf("house steering selected paying digit %d for %s", d, p)
			}
		}
	}
}

func TestSteeringPlayerAlwaysPays(t *testing.T) {
	r := DefaultRules()
	lowRTP := r.RTPTarget - r.RTPWindow - 0.01

	for _, p := range allPicks(t) {
		for i := 0; i < 100; i++ {
			rng := &scriptedRNG{values: []float64{0.99, float64(i) / 100}}
			d, steering := r.Draw(rng, p, 10, lowRTP)
			if steering != model.SteeringPlayer {
				t.Fatalf("expected player steering, got %s", steering)
			}
			if r.Payout(d, p, 10) == 0 {
				t.Fatalf("player steering selected losing digit %d for %s", d, p)
			}
		}
	}
}

func TestSteeringInsideWindowIsPlain(t *testing.T) {
	r := DefaultRules()
	rng := &scriptedRNG{values: []float64{0.95, 0.35}}
	d, steering := r.Draw(rng, mustDigit(t, 7), 10, r.RTPTarget)
	if steering != model.SteeringNone || d != 3 {
		t.Fatalf("expected plain draw of 3, got %d (%s)", d, steering)
	}
}

func TestPlainBranchIgnoresRTP(t *testing.T) {
	r := DefaultRules()
	rng := &scriptedRNG{values: []float64{0.5, 0.72}}
	d, steering := r.Draw(rng, mustDigit(t, 7), 10, 1000)
	if steering != model.SteeringNone || d != 7 {
		t.Fatalf("expected plain draw of 7, got %d (%s)", d, steering)
	}
}

func TestPlainDrawIsUniform(t *testing.T) {
	r := DefaultRules()
	r.SteerProbability = 0
	rng := NewSeededRNG(42)

	const n = 100000
	var counts [10]int
	for i := 0; i < n; i++ {
		d, _ := r.Draw(rng, mustDigit(t, 1), 10, 0)
		counts[d]++
	}
	for d, c := range counts {
		freq := float64(c) / n
		if diff := freq - 0.1; diff > 0.01 || diff < -0.01 {
			t.Fatalf("digit %d frequency %f not close to 0.1", d, freq)
		}
	}
}

func TestBalanceIdentityAndTotals(t *testing.T) {
	stats := rtp_state_repo.NewRTPStateRepository(96.5, 3, 50)
	e := NewEngine(DefaultRules(), NewSeededRNG(7), stats)

	picks := allPicks(t)
	balance := 10000
	prev := stats.Totals()
	for i := 0; i < 500; i++ {
		amount := 1 + i%25
		res, err := e.Settle(picks[i%len(picks)], amount, balance)
		if err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
		if res.AfterBalance != res.BeforeBalance-res.Amount+res.WinAmount {
			t.Fatalf("round %d: balance identity broken %+v", i, res)
		}
		if (res.WinAmount > 0) != (res.Outcome == model.OutcomeWin) {
			t.Fatalf("round %d: outcome %s with win %d", i, res.Outcome, res.WinAmount)
		}
		balance = res.AfterBalance
		if balance < 100 {
			balance = 10000
		}

		cur := stats.Totals()
		if cur.TotalWagered != prev.TotalWagered+res.Amount || cur.TotalPaid != prev.TotalPaid+res.WinAmount {
			t.Fatalf("round %d: totals %+v -> %+v for %+v", i, prev, cur, res)
		}
		prev = cur
	}
}
