package utils

import (
	"testing"
	"time"
)

func TestStageProgressQuiet(t *testing.T) {
	// A quiet StageProgress must not panic and Mark must be safe to call
	// repeatedly even though it prints nothing.
	sp := NewStageProgress(true)
	sp.Mark("p_i and x0")
	sp.Mark("crtCoeff_i")
}

func TestEstimateTime(t *testing.T) {
	got := EstimateTime(1000, 100.0)
	want := 10 * time.Second
	if got != want {
		t.Fatalf("EstimateTime(1000, 100) = %v, want %v", got, want)
	}

	if got := EstimateTime(1000, 0); got != 0 {
		t.Fatalf("EstimateTime with opsPerSecond=0 = %v, want 0", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "0.5s"},
		{90 * time.Second, "1.5m"},
		{2 * time.Hour, "2.0h"},
		{48 * time.Hour, "2.0d"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.d); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
