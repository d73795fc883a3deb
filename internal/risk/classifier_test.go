package risk

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Tier
	}{
		{0, TierLow},
		{30, TierLow},
		{30.0001, TierMedium},
		{70, TierMedium},
		{70.0001, TierHigh},
		{100, TierHigh},
		{-5, TierLow},
		{250, TierHigh},
	}
	for _, tc := range cases {
		if got := ClassifyScore(tc.score).Tier; got != tc.want {
			t.Errorf("ClassifyScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestClassifyNilScore(t *testing.T) {
	if got := Classify(nil).Tier; got != TierLow {
		t.Errorf("Classify(nil) = %s, want %s", got, TierLow)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	score := 42.0
	first := Classify(&score)
	for i := 0; i < 100; i++ {
		if got := Classify(&score); got != first {
			t.Fatalf("repeated Classify diverged: %+v vs %+v", got, first)
		}
	}
}

func TestClassifyMetadata(t *testing.T) {
	high := ClassifyScore(85)
	if high.Label != "HIGH RISK" || high.ColorClass != "red" {
		t.Errorf("unexpected high metadata: %+v", high)
	}
	low := ClassifyScore(10)
	if low.Label != "LOW RISK" || low.ColorClass != "green" {
		t.Errorf("unexpected low metadata: %+v", low)
	}
}
