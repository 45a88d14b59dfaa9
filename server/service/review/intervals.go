package review

import (
	"time"
)

// ReviewIntervals is the canonical Ebbinghaus forgetting-curve interval
// sequence, in days. The intervals compound: each one is measured from the
// previous scheduled review, not from the original learning date.
var ReviewIntervals = [...]int{1, 2, 4, 7, 15, 30}

// TotalReviews is the number of reviews scheduled for every content item.
const TotalReviews = len(ReviewIntervals)

// ReviewDates returns the full review date sequence for a learning date:
// review 1 is learningDate+1d, review 2 is review1+2d, and so on through
// the interval table.
func ReviewDates(learningDate time.Time) []time.Time {
	dates := make([]time.Time, 0, TotalReviews)
	current := learningDate
	for _, interval := range ReviewIntervals {
		current = current.AddDate(0, 0, interval)
		dates = append(dates, current)
	}
	return dates
}
