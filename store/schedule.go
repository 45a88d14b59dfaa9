package store

import (
	"time"
)

// ContentType classifies the kind of learning content behind a schedule.
type ContentType string

const (
	ContentTypeLesson     ContentType = "lesson"
	ContentTypeAssignment ContentType = "assignment"
	ContentTypeReading    ContentType = "reading"
	ContentTypeGeneral    ContentType = "general"
)

// ParseContentType maps a raw string to a ContentType, defaulting to general.
func ParseContentType(s string) ContentType {
	switch ContentType(s) {
	case ContentTypeLesson, ContentTypeAssignment, ContentTypeReading, ContentTypeGeneral:
		return ContentType(s)
	default:
		return ContentTypeGeneral
	}
}

// Status is the lifecycle state of a schedule record.
type Status string

const (
	// StatusActive means the record still has pending reviews.
	StatusActive Status = "active"
	// StatusCompleted means every scheduled review has been done. Terminal.
	StatusCompleted Status = "completed"
)

// DefaultCourseName is assigned when no course classification is available.
const DefaultCourseName = "uncategorized"

// CompletedReview is one entry in a record's append-only completion log.
type CompletedReview struct {
	ReviewNumber int       `json:"review_number"`
	CompletedAt  time.Time `json:"completed_at"`
}

// ScheduleRecord is the persisted review schedule for one content item.
//
// ReviewDates is computed once at creation and never changes afterwards.
// CurrentReviewIndex points at the next undone review; it only moves
// forward, one step per completion, and CompletedReviews holds exactly the
// review numbers 1..CurrentReviewIndex in order. Records are never
// deleted: completed ones are kept for statistics and audit.
type ScheduleRecord struct {
	ContentID          string            `json:"content_id"`
	Title              string            `json:"title"`
	Summary            string            `json:"summary"`
	CourseName         string            `json:"course_name"`
	ContentType        ContentType       `json:"content_type"`
	LearningDate       time.Time         `json:"learning_date"`
	ReviewDates        []time.Time       `json:"review_dates"`
	CurrentReviewIndex int               `json:"current_review_index"`
	CompletedReviews   []CompletedReview `json:"completed_reviews"`
	Status             Status            `json:"status"`
}

// TotalReviews returns the number of scheduled reviews for this record.
func (r *ScheduleRecord) TotalReviews() int {
	return len(r.ReviewDates)
}

// Exhausted reports whether the review index has run past the last
// scheduled review. Status may still read active transiently; queries
// normalize it before emitting any result.
func (r *ScheduleRecord) Exhausted() bool {
	return r.CurrentReviewIndex >= len(r.ReviewDates)
}
