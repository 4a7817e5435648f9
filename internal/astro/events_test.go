package astro

import (
	"testing"
	"time"
)

func TestNextFullMoon(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			name: "early Feb 2023",
			from: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2023, 2, 5, 18, 29, 0, 0, time.UTC),
		},
		{
			name: "just after Feb 2023 full moon",
			from: time.Date(2023, 2, 6, 0, 0, 0, 0, time.UTC),
			want: time.Date(2023, 3, 7, 12, 40, 0, 0, time.UTC),
		},
		{
			name: "mid Jan 2024",
			from: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 25, 17, 54, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextFullMoon(tt.from)
			if diff := got.Sub(tt.want); diff < -10*time.Minute || diff > 10*time.Minute {
				t.Errorf("NextFullMoon(%v) = %v, want %v (±10m)", tt.from, got, tt.want)
			}
			if !got.After(tt.from) {
				t.Errorf("NextFullMoon(%v) = %v, want a time after it", tt.from, got)
			}
		})
	}
}

func TestNextNewMoon(t *testing.T) {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 4, 8, 18, 21, 0, 0, time.UTC)

	got := NextNewMoon(from)
	if diff := got.Sub(want); diff < -10*time.Minute || diff > 10*time.Minute {
		t.Errorf("NextNewMoon(%v) = %v, want %v (±10m)", from, got, want)
	}
}

func TestNextFullMoon_LinearModelAgrees(t *testing.T) {
	// The linear engine should call the precise full moon "Full Moon" for
	// every lunation in a couple of years around the epoch of the tests.
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24; i++ {
		full := NextFullMoon(from)
		if stage := Calculate(full).Stage; stage != StageFull && stage != StageWaxingGibbous && stage != StageWaningGibbous {
			t.Errorf("full moon %v classified as %v", full, stage)
		}
		from = full.Add(time.Hour)
	}
}
