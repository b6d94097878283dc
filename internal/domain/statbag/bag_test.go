package statbag

import "testing"

func TestCoerce_ParsesNumericStringsAndKeepsTheRest(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"expected_goals":      "3.14159",
		"selected_by_percent": "12.0",
		"news":                "Knee injury - 75% chance of playing",
		"empty":               "",
		"minutes":             float64(900),
		"in_dreamteam":        true,
		"chance":              nil,
		"padded":              " 4.5 ",
	}

	got := Coerce(in)

	if v, ok := got["expected_goals"].(float64); !ok || v != 3.142 {
		t.Fatalf("expected_goals: got=%v want=3.142", got["expected_goals"])
	}
	if v, ok := got["selected_by_percent"].(float64); !ok || v != 12 {
		t.Fatalf("selected_by_percent: got=%v want=12", got["selected_by_percent"])
	}
	if v, ok := got["news"].(string); !ok || v != "Knee injury - 75% chance of playing" {
		t.Fatalf("news must be left unchanged, got=%v", got["news"])
	}
	if v, ok := got["empty"].(string); !ok || v != "" {
		t.Fatalf("empty string must be left unchanged, got=%v", got["empty"])
	}
	if v, ok := got["minutes"].(float64); !ok || v != 900 {
		t.Fatalf("minutes: got=%v want=900", got["minutes"])
	}
	if v, ok := got["in_dreamteam"].(bool); !ok || !v {
		t.Fatalf("bool must pass through, got=%v", got["in_dreamteam"])
	}
	if got["chance"] != nil {
		t.Fatalf("nil must pass through, got=%v", got["chance"])
	}
	if v, ok := got["padded"].(float64); !ok || v != 4.5 {
		t.Fatalf("padded: got=%v want=4.5", got["padded"])
	}
}

func TestCoerce_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := map[string]any{"form": "5.5"}
	_ = Coerce(in)
	if _, ok := in["form"].(string); !ok {
		t.Fatalf("input bag was mutated: %v", in["form"])
	}
}

func TestCoerceValue_RejectsNonFiniteStrings(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"NaN", "Inf", "-Inf"} {
		if got := CoerceValue(raw); got != raw {
			t.Fatalf("CoerceValue(%q)=%v want unchanged", raw, got)
		}
	}
}

func TestBag_FloatTreatsMalformedAsZero(t *testing.T) {
	t.Parallel()

	b := Bag{"news": "doubtful", "minutes": float64(90), "missing": nil}
	if got := b.Float("news"); got != 0 {
		t.Fatalf("Float(news)=%v want=0", got)
	}
	if got := b.Float("minutes"); got != 90 {
		t.Fatalf("Float(minutes)=%v want=90", got)
	}
	if got := b.Float("missing"); got != 0 {
		t.Fatalf("Float(missing)=%v want=0", got)
	}
	if got := b.Float("absent"); got != 0 {
		t.Fatalf("Float(absent)=%v want=0", got)
	}
	if b.Has("news") || !b.Has("minutes") {
		t.Fatalf("Has reported wrong numeric presence")
	}
}

func TestRatio_ZeroDenominator(t *testing.T) {
	t.Parallel()

	if got := Ratio(10, 0); got != 0 {
		t.Fatalf("Ratio(10,0)=%v want=0", got)
	}
	if got := Ratio(10, 4); got != 2.5 {
		t.Fatalf("Ratio(10,4)=%v want=2.5", got)
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{in: 1.23456, places: 3, want: 1.235},
		{in: 2.3456, places: 2, want: 2.35},
		{in: -1.5, places: 0, want: -2},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.places); got != tt.want {
			t.Fatalf("Round(%v,%d)=%v want=%v", tt.in, tt.places, got, tt.want)
		}
	}
}
