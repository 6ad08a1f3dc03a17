package model

import (
	"encoding/json"
	"testing"
)

func TestCategoryPartition(t *testing.T) {
	for d := MinDigit; d <= MaxDigit; d++ {
		size := 0
		for _, c := range []Category{CategorySmall, CategoryMiddle, CategoryBig} {
			if c.Contains(d) {
				size++
			}
		}
		if size != 1 {
			t.Fatalf("digit %d belongs to %d of small/middle/big, want exactly 1", d, size)
		}

		parity := 0
		for _, c := range []Category{CategoryEven, CategoryOdd} {
			if c.Contains(d) {
				parity++
			}
		}
		if parity != 1 {
			t.Fatalf("digit %d belongs to %d of even/odd, want exactly 1", d, parity)
		}
	}
}

func TestCategoryContainsOutOfRange(t *testing.T) {
	for _, c := range Categories {
		if c.Contains(-1) || c.Contains(10) {
			t.Fatalf("category %s must not contain out-of-range digits", c)
		}
	}
}

func TestParsePick(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "none"},
		{in: "null", want: "none"},
		{in: "0", want: "0"},
		{in: "9", want: "9"},
		{in: " Small ", want: "small"},
		{in: "middle", want: "middle"},
		{in: "10", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "huge", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParsePick(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParsePick(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePick(%q) unexpected error: %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParsePick(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestPickJSON(t *testing.T) {
	var req struct {
		Pick Pick `json:"pick"`
	}

	if err := json.Unmarshal([]byte(`{"pick": 5}`), &req); err != nil {
		t.Fatal(err)
	}
	if d, ok := req.Pick.Digit(); !ok || d != 5 {
		t.Fatalf("expected digit 5, got %s", req.Pick)
	}

	if err := json.Unmarshal([]byte(`{"pick": "odd"}`), &req); err != nil {
		t.Fatal(err)
	}
	if c, ok := req.Pick.Category(); !ok || c != CategoryOdd {
		t.Fatalf("expected odd, got %s", req.Pick)
	}

	if err := json.Unmarshal([]byte(`{"pick": null}`), &req); err != nil {
		t.Fatal(err)
	}
	if !req.Pick.IsNone() {
		t.Fatalf("expected no pick, got %s", req.Pick)
	}

	if err := json.Unmarshal([]byte(`{"pick": 12}`), &req); err == nil {
		t.Fatal("digit 12 must be rejected")
	}
	if err := json.Unmarshal([]byte(`{"pick": true}`), &req); err == nil {
		t.Fatal("boolean pick must be rejected")
	}

	p, _ := CategoryPick(CategoryBig)
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"big"` {
		t.Fatalf("unexpected marshal result %s", b)
	}
	b, _ = json.Marshal(NoPick())
	if string(b) != "null" {
		t.Fatalf("unexpected marshal result %s", b)
	}
}

func TestBetType(t *testing.T) {
	d, _ := DigitPick(3)
	if d.BetType() != "digit" {
		t.Fatalf("unexpected bet type %q", d.BetType())
	}
	c, _ := CategoryPick(CategoryEven)
	if c.BetType() != "even" {
		t.Fatalf("unexpected bet type %q", c.BetType())
	}
	if NoPick().BetType() != "" {
		t.Fatal("no pick must have empty bet type")
	}
}
