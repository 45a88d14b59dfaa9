// Package review implements the spaced-repetition review scheduling
// engine: it decides when learned content must next be revisited, tracks
// completion history, and ingests both structured learning events and raw
// documents classified as schedule-bearing.
package review

import (
	"time"

	"github.com/hrygo/recallsense/store"
)

// IngestRequest describes one learning item to put on the review schedule.
type IngestRequest struct {
	ContentID   string
	Title       string
	Summary     string
	CourseName  string
	ContentType store.ContentType
	// LearningDate is when the content was learned. Zero means now.
	LearningDate time.Time
}

// DueReview is one review whose scheduled date is on or before the
// reference date.
type DueReview struct {
	ContentID    string            `json:"content_id"`
	Title        string            `json:"title"`
	Summary      string            `json:"summary"`
	CourseName   string            `json:"course_name"`
	ContentType  store.ContentType `json:"content_type"`
	DueDate      time.Time         `json:"due_date"`
	ReviewNumber int               `json:"review_number"`
	TotalReviews int               `json:"total_reviews"`
	DaysOverdue  int               `json:"days_overdue"`
}

// UpcomingReview is one review scheduled within the query horizon.
type UpcomingReview struct {
	ContentID    string            `json:"content_id"`
	Title        string            `json:"title"`
	Summary      string            `json:"summary"`
	CourseName   string            `json:"course_name"`
	ContentType  store.ContentType `json:"content_type"`
	ReviewDate   time.Time         `json:"review_date"`
	ReviewNumber int               `json:"review_number"`
	TotalReviews int               `json:"total_reviews"`
	DaysUntil    int               `json:"days_until"`
}

// Statistics summarizes the state of the whole review schedule.
type Statistics struct {
	TotalContents         int     `json:"total_contents"`
	ActiveSchedules       int     `json:"active_schedules"`
	CompletedSchedules    int     `json:"completed_schedules"`
	DueToday              int     `json:"due_today"`
	UpcomingThisWeek      int     `json:"upcoming_this_week"`
	TotalReviewsCompleted int     `json:"total_reviews_completed"`
	TotalReviewsScheduled int     `json:"total_reviews_scheduled"`
	CompletionRate        float64 `json:"completion_rate"`
}
