package round

import (
	"digit_slot/internal/model"
	"sync"
	"testing"
	"time"
)

type roundCfg struct {
	preGame int
	betting int
	hold    time.Duration
	tick    time.Duration
}

func (c roundCfg) PreGameSeconds() int         { return c.preGame }
func (c roundCfg) BettingSeconds() int         { return c.betting }
func (c roundCfg) DisplayHold() time.Duration  { return c.hold }
func (c roundCfg) TickInterval() time.Duration { return c.tick }

func defaultCfg() roundCfg {
	return roundCfg{preGame: 5, betting: 10, hold: 2 * time.Second, tick: time.Second}
}

type recorder struct {
	mu      sync.Mutex
	phases  []model.Round
	settles []model.Round
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnPhase: func(rnd model.Round) {
			r.mu.Lock()
			r.phases = append(r.phases, rnd)
			r.mu.Unlock()
		},
		OnSettle: func(rnd model.Round) {
			r.mu.Lock()
			r.settles = append(r.settles, rnd)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) settleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.settles)
}

func TestFifteenSecondsGiveOneSettlement(t *testing.T) {
	rec := &recorder{}
	s := New(defaultCfg(), rec.hooks())

	for i := 1; i <= 15; i++ {
		s.Tick()
		rnd := s.Round()
		if rnd.Remaining < 0 {
			t.Fatalf("tick %d: negative remaining %d", i, rnd.Remaining)
		}
		switch {
		case i < 5 && rnd.Phase != model.PhasePreGame:
			t.Fatalf("tick %d: phase %s, want PRE_GAME", i, rnd.Phase)
		case i >= 5 && i < 15 && rnd.Phase != model.PhaseBetting:
			t.Fatalf("tick %d: phase %s, want BETTING", i, rnd.Phase)
		}
	}

	if got := rec.settleCount(); got != 1 {
		t.Fatalf("settlements = %d, want 1", got)
	}
	if s.Round().Phase != model.PhaseSettling {
		t.Fatalf("phase after 15 ticks = %s", s.Round().Phase)
	}

	wantPhases := []model.Phase{model.PhaseBetting, model.PhaseSettling}
	if len(rec.phases) != len(wantPhases) {
		t.Fatalf("phase events = %d, want %d", len(rec.phases), len(wantPhases))
	}
	for i, p := range wantPhases {
		if rec.phases[i].Phase != p {
			t.Fatalf("phase event %d = %s, want %s", i, rec.phases[i].Phase, p)
		}
	}
}

func TestHoldStartsNewRound(t *testing.T) {
	rec := &recorder{}
	s := New(defaultCfg(), rec.hooks())

	for i := 0; i < 15; i++ {
		s.Tick()
	}
	settled := s.Round()

	s.Tick()
	if s.Round().Phase != model.PhaseSettling {
		t.Fatalf("hold must last two ticks, phase = %s", s.Round().Phase)
	}
	s.Tick()

	next := s.Round()
	if next.Phase != model.PhasePreGame || next.Remaining != 5 {
		t.Fatalf("unexpected round after hold %+v", next)
	}
	if next.ID == settled.ID || next.Number != settled.Number+1 {
		t.Fatalf("new round must get a new id and number: %+v -> %+v", settled, next)
	}

	// второй полный цикл
	for i := 0; i < 15; i++ {
		s.Tick()
	}
	if got := rec.settleCount(); got != 2 {
		t.Fatalf("settlements = %d, want 2", got)
	}
	if rec.settles[1].ID != next.ID {
		t.Fatalf("settled round %s, want %s", rec.settles[1].ID, next.ID)
	}
}

func TestHoldRoundsUp(t *testing.T) {
	cfg := defaultCfg()
	cfg.hold = 1500 * time.Millisecond
	if s := New(cfg, Hooks{}); s.holdTicks != 2 {
		t.Fatalf("hold ticks = %d, want 2", s.holdTicks)
	}
}

func TestZeroHoldRestartsImmediately(t *testing.T) {
	cfg := defaultCfg()
	cfg.hold = 0
	rec := &recorder{}
	s := New(cfg, rec.hooks())

	for i := 0; i < 15; i++ {
		s.Tick()
	}
	if rec.settleCount() != 1 {
		t.Fatalf("settlements = %d", rec.settleCount())
	}
	if rnd := s.Round(); rnd.Phase != model.PhasePreGame || rnd.Remaining != 5 {
		t.Fatalf("unexpected round %+v", rnd)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := New(defaultCfg(), Hooks{})
	s.Stop()
	s.Stop()
	if s.Running() {
		t.Fatal("scheduler must not run before Start")
	}
}

func TestStartRunsAndRestarts(t *testing.T) {
	cfg := roundCfg{preGame: 1, betting: 1, hold: 0, tick: 5 * time.Millisecond}
	rec := &recorder{}
	s := New(cfg, rec.hooks())

	s.Start()
	first := s.Round()
	if first.Phase != model.PhasePreGame || first.Number != 1 {
		t.Fatalf("unexpected first round %+v", first)
	}

	s.Start()
	if s.Round().Number < 2 {
		t.Fatalf("restart must begin a new round, got %+v", s.Round())
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.settleCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no settlement while running")
		}
		time.Sleep(5 * time.Millisecond)
	}

	s.Stop()
	if s.Running() {
		t.Fatal("scheduler still running after Stop")
	}

	// после Stop не должно остаться ни одного цикла
	stopped := s.Round()
	time.Sleep(50 * time.Millisecond)
	if s.Round() != stopped {
		t.Fatalf("round changed after Stop: %+v -> %+v", stopped, s.Round())
	}
	s.Stop()
}
