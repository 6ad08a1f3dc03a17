package outcome

import (
	"digit_slot/internal/model"
	"testing"
)

func mustDigit(t *testing.T, d int) model.Pick {
	t.Helper()
	p, err := model.DigitPick(d)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustCategory(t *testing.T, c model.Category) model.Pick {
	t.Helper()
	p, err := model.CategoryPick(c)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// allPicks все возможные выборы кроме пустого
func allPicks(t *testing.T) []model.Pick {
	t.Helper()
	picks := make([]model.Pick, 0, 15)
	for d := 0; d <= 9; d++ {
		picks = append(picks, mustDigit(t, d))
	}
	for _, c := range model.Categories {
		picks = append(picks, mustCategory(t, c))
	}
	return picks
}

func TestPayoutTable(t *testing.T) {
	r := DefaultRules()
	cases := []struct {
		name   string
		pick   model.Pick
		rolled int
		amount int
		want   int
	}{
		{"exact digit hit", mustDigit(t, 3), 3, 10, 100},
		{"exact digit miss", mustDigit(t, 3), 4, 10, 0},
		{"digit five hit", mustDigit(t, 5), 5, 100, 1500},
		{"middle hit", mustCategory(t, model.CategoryMiddle), 5, 10, 150},
		{"middle miss", mustCategory(t, model.CategoryMiddle), 4, 10, 0},
		{"small hit", mustCategory(t, model.CategorySmall), 0, 10, 20},
		{"small excludes five", mustCategory(t, model.CategorySmall), 5, 10, 0},
		{"big hit", mustCategory(t, model.CategoryBig), 9, 10, 20},
		{"big excludes five", mustCategory(t, model.CategoryBig), 5, 10, 0},
		{"even hit", mustCategory(t, model.CategoryEven), 0, 10, 20},
		{"odd hit on five", mustCategory(t, model.CategoryOdd), 5, 10, 20},
		{"odd miss", mustCategory(t, model.CategoryOdd), 8, 10, 0},
		{"no pick", model.NoPick(), 5, 10, 0},
		{"zero amount", mustDigit(t, 5), 5, 0, 0},
		{"negative amount", mustCategory(t, model.CategoryOdd), 3, -5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Payout(tc.rolled, tc.pick, tc.amount); got != tc.want {
				t.Fatalf("Payout(%d, %s, %d) = %d, want %d", tc.rolled, tc.pick, tc.amount, got, tc.want)
			}
		})
	}
}

func TestPayoutIsPureAndNonNegative(t *testing.T) {
	r := DefaultRules()
	for _, p := range allPicks(t) {
		for d := 0; d <= 9; d++ {
			for _, amount := range []int{-10, 0, 1, 37, 1000} {
				first := r.Payout(d, p, amount)
				second := r.Payout(d, p, amount)
				if first != second {
					t.Fatalf("Payout(%d, %s, %d) not deterministic: %d vs %d", d, p, amount, first, second)
				}
				if first < 0 {
					t.Fatalf("Payout(%d, %s, %d) = %d is negative", d, p, amount, first)
				}
			}
		}
	}
}

func TestEveryPickHasLosingDigit(t *testing.T) {
	r := DefaultRules()
	for _, p := range allPicks(t) {
		if len(r.Candidates(p, 10, false)) == 0 {
			t.Fatalf("pick %s has no losing digit", p)
		}
		if len(r.Candidates(p, 10, true)) == 0 {
			t.Fatalf("pick %s has no winning digit", p)
		}
	}
}

func TestMultiplier(t *testing.T) {
	r := DefaultRules()
	cases := []struct {
		pick model.Pick
		want int
	}{
		{mustDigit(t, 5), 15},
		{mustCategory(t, model.CategoryMiddle), 15},
		{mustDigit(t, 0), 10},
		{mustCategory(t, model.CategorySmall), 2},
		{mustCategory(t, model.CategoryBig), 2},
		{mustCategory(t, model.CategoryEven), 2},
		{mustCategory(t, model.CategoryOdd), 2},
		{model.NoPick(), 0},
	}
	for _, tc := range cases {
		if got := r.Multiplier(tc.pick); got != tc.want {
			t.Fatalf("Multiplier(%s) = %d, want %d", tc.pick, got, tc.want)
		}
	}
}
