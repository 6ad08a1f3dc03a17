package rtp_state_repo

import (
	"digit_slot/internal/model"
	"math"
	"testing"
)

func TestEmptyState(t *testing.T) {
	r := NewRTPStateRepository(96.5, 3, 10)
	tot := r.Totals()
	if tot.TotalWagered != 0 || tot.TotalPaid != 0 {
		t.Fatalf("expected zero totals, got %+v", tot)
	}
	if tot.CurrentRTP() != 0 {
		t.Fatalf("rtp without wagers must be 0, got %v", tot.CurrentRTP())
	}
}

func TestTotalsAreMonotonic(t *testing.T) {
	r := NewRTPStateRepository(96.5, 3, 10)
	rounds := [][2]int{{10, 0}, {20, 40}, {5, 0}, {100, 1500}, {-3, -7}, {0, 0}}

	prev := r.Totals()
	for _, rd := range rounds {
		r.UpdateState(rd[0], rd[1])
		cur := r.Totals()
		if cur.TotalWagered < prev.TotalWagered || cur.TotalPaid < prev.TotalPaid {
			t.Fatalf("totals decreased: %+v -> %+v", prev, cur)
		}
		prev = cur
	}

	if prev.TotalWagered != 135 || prev.TotalPaid != 1540 {
		t.Fatalf("unexpected totals %+v", prev)
	}
	if r.State().TotalRounds != len(rounds) {
		t.Fatalf("rounds = %d", r.State().TotalRounds)
	}
}

func TestCurrentRTP(t *testing.T) {
	r := NewRTPStateRepository(96.5, 3, 10)
	r.UpdateState(100, 0)
	r.UpdateState(100, 150)
	if got := r.Totals().CurrentRTP(); math.Abs(got-75) > 1e-9 {
		t.Fatalf("rtp = %v, want 75", got)
	}
}

func TestWindowRTP(t *testing.T) {
	r := NewRTPStateRepository(96.5, 3, 2)
	r.UpdateState(10, 100)
	r.UpdateState(10, 0)
	r.UpdateState(10, 10)

	st := r.State()
	// в окне только два последних раунда: 10/20
	if math.Abs(st.WindowRTP-50) > 1e-9 {
		t.Fatalf("window rtp = %v, want 50", st.WindowRTP)
	}
}

func TestBandChanges(t *testing.T) {
	r := NewRTPStateRepository(96.5, 3, 10)
	if r.State().Band != model.RTPBandLow {
		t.Fatalf("initial band = %s", r.State().Band)
	}

	r.UpdateState(10, 20) // 200%
	st := r.State()
	if st.Band != model.RTPBandHigh {
		t.Fatalf("band = %s, want high", st.Band)
	}

	r.UpdateState(190, 170) // 190/200 = 95%
	st = r.State()
	if st.Band != model.RTPBandNormal {
		t.Fatalf("band = %s, want normal", st.Band)
	}
	if len(st.Adjustments) != 2 {
		t.Fatalf("adjustments = %d, want 2", len(st.Adjustments))
	}
	if st.Adjustments[1].From != model.RTPBandHigh || st.Adjustments[1].To != model.RTPBandNormal {
		t.Fatalf("unexpected change %+v", st.Adjustments[1])
	}
}
