package review

import (
	"testing"
	"time"
)

func TestReviewIntervalsConstants(t *testing.T) {
	want := []int{1, 2, 4, 7, 15, 30}
	if TotalReviews != len(want) {
		t.Fatalf("TotalReviews = %d, want %d", TotalReviews, len(want))
	}
	for i, w := range want {
		if ReviewIntervals[i] != w {
			t.Errorf("ReviewIntervals[%d] = %d, want %d", i, ReviewIntervals[i], w)
		}
	}
}

func TestReviewDatesCompound(t *testing.T) {
	learned := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	dates := ReviewDates(learned)

	if len(dates) != TotalReviews {
		t.Fatalf("got %d dates, want %d", len(dates), TotalReviews)
	}

	// Each date is the cumulative sum of intervals, not a flat offset:
	// 1, 3, 7, 14, 29, 59 days after learning.
	cumulative := 0
	for i, interval := range ReviewIntervals {
		cumulative += interval
		want := learned.AddDate(0, 0, cumulative)
		if !dates[i].Equal(want) {
			t.Errorf("dates[%d] = %v, want %v (cumulative %d days)", i, dates[i], want, cumulative)
		}
	}

	// Guard against the flat-offset mistake explicitly: the second review
	// is learning+3d, not learning+2d.
	if dates[1].Equal(learned.AddDate(0, 0, 2)) {
		t.Error("review 2 uses a flat offset; intervals must compound")
	}
}

func TestReviewDatesPure(t *testing.T) {
	learned := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	a := ReviewDates(learned)
	b := ReviewDates(learned)

	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("ReviewDates is not deterministic at index %d", i)
		}
	}
}
