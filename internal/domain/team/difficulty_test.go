package team

import "testing"

func TestDifficultyPolicyResolve(t *testing.T) {
	t.Parallel()

	overrides, err := ParseDifficultyOverrides("ars:4, LUT:2")
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	tests := []struct {
		name     string
		policy   DifficultyPolicy
		code     string
		strength int
		want     int
	}{
		{name: "table hit", policy: DefaultDifficultyPolicy(), code: "MCI", want: 5},
		{name: "table miss falls back", policy: DefaultDifficultyPolicy(), code: "IPS", want: DefaultDifficulty},
		{name: "lowercase code", policy: DefaultDifficultyPolicy(), code: "lut", want: 1},
		{name: "table ignores strength", policy: DefaultDifficultyPolicy(), code: "LUT", strength: 4, want: 1},
		{name: "strength source", policy: DifficultyPolicy{Source: DifficultyFromStrength}, code: "LUT", strength: 4, want: 4},
		{name: "strength clamped", policy: DifficultyPolicy{Source: DifficultyFromStrength}, code: "LUT", strength: 9, want: 5},
		{name: "strength missing uses table", policy: DifficultyPolicy{Source: DifficultyFromStrength}, code: "ARS", want: 5},
		{name: "override wins", policy: DifficultyPolicy{Source: DifficultyFromStrength, Overrides: overrides}, code: "ARS", strength: 5, want: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.policy.Resolve(tc.code, tc.strength); got != tc.want {
				t.Fatalf("unexpected tier got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestParseDifficultyOverridesRejectsBadInput(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"ARS", "ARS:x", ":3", "ARS:0", "ARS:6"} {
		if _, err := ParseDifficultyOverrides(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}

	got, err := ParseDifficultyOverrides(" , ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty table, got=%v", got)
	}
}
