package strength

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     int
	}{
		{"empty", "", 0},
		{"single lowercase", "a", 4 + 15},
		{"twenty lowercase", "aaaaaaaaaaaaaaaaaaaa", 40 + 15},
		{"all four classes short", "Aa1!aaaa", 32 + 60},
		{"all four classes long", "Aa1!Aa1!Aa1!Aa1!", 100},
		{"digits only", "123456", 24 + 15},
		{"upper and lower", "Abcdef", 24 + 30},
		{"symbols only", "!!!!", 16 + 15},
		{"length capped at forty", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 40 + 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.password); got != tc.want {
				t.Errorf("Score(%q) = %d, want %d", tc.password, got, tc.want)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	// Every class present plus max length must still clamp to 100.
	if got := Score("Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!"); got != 100 {
		t.Errorf("expected clamp to 100, got %d", got)
	}
}

func TestForScore(t *testing.T) {
	cases := []struct {
		score int
		want  Band
	}{
		{100, BandStrong},
		{80, BandStrong},
		{79, BandGood},
		{60, BandGood},
		{59, BandFair},
		{40, BandFair},
		{39, BandWeak},
		{20, BandWeak},
		{19, BandVeryWeak},
		{0, BandVeryWeak},
	}

	for _, tc := range cases {
		if got := ForScore(tc.score); got != tc.want {
			t.Errorf("ForScore(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}
}
