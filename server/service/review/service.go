package review

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/hrygo/recallsense/internal/util"
	"github.com/hrygo/recallsense/plugin/classifier"
	"github.com/hrygo/recallsense/server/timezone"
	"github.com/hrygo/recallsense/store"
)

// UpcomingWeekHorizon is the horizon in days used for the weekly upcoming
// count in statistics.
const UpcomingWeekHorizon = 7

// Service is the review scheduling engine. It exclusively owns the
// in-memory schedule map; the store is a passive persistence mirror.
//
// The engine is single-writer by design. Every mutating operation, and
// the lazy status normalization inside the due query, runs under one
// mutex so a concurrent host cannot lose an update through the full-map
// save.
type Service struct {
	store      *store.Store
	classifier *classifier.Classifier
	loc        *time.Location

	mu        sync.Mutex
	schedules map[string]*store.ScheduleRecord

	// now supplies the current time; injectable for tests.
	now func() time.Time
}

// NewService creates the engine, loading existing schedules from the
// store. A missing or corrupt persisted state starts the engine empty; a
// hard read failure is logged and also starts it empty, since the engine
// degrades to "nothing due" rather than halting its host.
func NewService(ctx context.Context, st *store.Store, c *classifier.Classifier, loc *time.Location) *Service {
	if c == nil {
		c = classifier.New()
	}
	if loc == nil {
		loc = timezone.UTC
	}

	schedules, err := st.LoadSchedules(ctx)
	if err != nil {
		slog.Error("failed to load review schedules, starting empty", "error", err)
		schedules = map[string]*store.ScheduleRecord{}
	} else {
		slog.Info("loaded review schedules", "count", len(schedules))
	}

	return &Service{
		store:      st,
		classifier: c,
		loc:        loc,
		schedules:  schedules,
		now:        time.Now,
	}
}

// Ingest adds new learning content to the review schedule. Ingesting an
// already-present content id is a no-op, never an update: re-scanned
// content must not produce duplicate schedules, and field changes on an
// existing id are deliberately not reconciled.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createLocked(req) {
		s.persistLocked(ctx)
	}
}

// createLocked inserts a record if the id is new. Returns true when a
// record was created. Caller holds s.mu.
func (s *Service) createLocked(req IngestRequest) bool {
	if _, ok := s.schedules[req.ContentID]; ok {
		return false
	}

	learningDate := req.LearningDate
	if learningDate.IsZero() {
		learningDate = s.now()
	}

	courseName := req.CourseName
	if courseName == "" {
		courseName = store.DefaultCourseName
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = store.ContentTypeGeneral
	}

	s.schedules[req.ContentID] = &store.ScheduleRecord{
		ContentID:          req.ContentID,
		Title:              req.Title,
		Summary:            req.Summary,
		CourseName:         courseName,
		ContentType:        contentType,
		LearningDate:       learningDate,
		ReviewDates:        ReviewDates(learningDate),
		CurrentReviewIndex: 0,
		CompletedReviews:   []store.CompletedReview{},
		Status:             store.StatusActive,
	}

	slog.Info("added review schedule", "content_id", req.ContentID, "title", req.Title)
	return true
}

// ScanDocuments classifies raw documents and ingests every course match
// found in schedule-bearing ones. Documents without a usable date are
// skipped; a skipped document never aborts the rest of the scan. Returns
// the number of newly created records (pre-existing ids do not count)
// and the number of skipped documents.
func (s *Service) ScanDocuments(ctx context.Context, docs []classifier.Document) (created, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		if doc.Date.IsZero() {
			slog.Warn("document skipped: missing or unparsable date", "subject", doc.Subject)
			skipped++
			continue
		}

		for _, match := range s.classifier.ClassifyDocument(doc) {
			req := IngestRequest{
				ContentID:    util.ContentID(match.CourseName, doc.Date),
				Title:        match.Title,
				Summary:      summarize(doc.Body),
				CourseName:   match.CourseName,
				ContentType:  match.ContentType,
				LearningDate: doc.Date,
			}
			if s.createLocked(req) {
				created++
			}
		}
	}

	if created > 0 {
		s.persistLocked(ctx)
	}

	slog.Info("document scan finished", "documents", len(docs), "created", created, "skipped", skipped)
	return created, skipped
}

// GetDueReviews returns every review whose scheduled date is on or before
// the reference date, most overdue first. Records whose index ran past the
// last review are normalized to completed here, and any such flip is
// persisted before returning, so no observer ever sees an exhausted
// record reported as active.
func (s *Service) GetDueReviews(ctx context.Context, reference time.Time) []DueReview {
	if reference.IsZero() {
		reference = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var due []DueReview
	normalized := false

	for _, id := range s.sortedIDsLocked() {
		record := s.schedules[id]
		if record.Status != store.StatusActive {
			continue
		}
		if record.Exhausted() {
			record.Status = store.StatusCompleted
			normalized = true
			continue
		}

		next := record.ReviewDates[record.CurrentReviewIndex]
		if !timezone.SameOrBefore(next, reference, s.loc) {
			continue
		}

		due = append(due, DueReview{
			ContentID:    record.ContentID,
			Title:        record.Title,
			Summary:      record.Summary,
			CourseName:   record.CourseName,
			ContentType:  record.ContentType,
			DueDate:      next,
			ReviewNumber: record.CurrentReviewIndex + 1,
			TotalReviews: record.TotalReviews(),
			DaysOverdue:  timezone.DaysBetween(next, reference, s.loc),
		})
	}

	if normalized {
		s.persistLocked(ctx)
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DaysOverdue > due[j].DaysOverdue
	})

	return due
}

// GetUpcomingReviews returns each active record's next review when it
// falls within [reference, reference+horizonDays], inclusive at both
// ends, soonest first. A review due exactly today appears with DaysUntil
// zero; due and upcoming are consistent classifications, not mutually
// exclusive ones.
func (s *Service) GetUpcomingReviews(ctx context.Context, reference time.Time, horizonDays int) []UpcomingReview {
	if reference.IsZero() {
		reference = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var upcoming []UpcomingReview

	for _, id := range s.sortedIDsLocked() {
		record := s.schedules[id]
		if record.Status != store.StatusActive || record.Exhausted() {
			continue
		}

		next := record.ReviewDates[record.CurrentReviewIndex]
		daysUntil := timezone.DaysBetween(reference, next, s.loc)
		if daysUntil < 0 || daysUntil > horizonDays {
			continue
		}

		upcoming = append(upcoming, UpcomingReview{
			ContentID:    record.ContentID,
			Title:        record.Title,
			Summary:      record.Summary,
			CourseName:   record.CourseName,
			ContentType:  record.ContentType,
			ReviewDate:   next,
			ReviewNumber: record.CurrentReviewIndex + 1,
			TotalReviews: record.TotalReviews(),
			DaysUntil:    daysUntil,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})

	return upcoming
}

// MarkCompleted records one review completion and advances the record to
// its next review. Returns false for an unknown id or a record that is no
// longer active; completion past the last review never appends to the
// audit log.
func (s *Service) MarkCompleted(ctx context.Context, contentID string, completedAt time.Time) bool {
	if completedAt.IsZero() {
		completedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.schedules[contentID]
	if !ok {
		slog.Warn("content id not found", "content_id", contentID)
		return false
	}
	if record.Status != store.StatusActive {
		slog.Warn("content is not active", "content_id", contentID)
		return false
	}
	if record.Exhausted() {
		// Transient state left by a crashed save; normalize and refuse.
		record.Status = store.StatusCompleted
		s.persistLocked(ctx)
		return false
	}

	record.CompletedReviews = append(record.CompletedReviews, store.CompletedReview{
		ReviewNumber: record.CurrentReviewIndex + 1,
		CompletedAt:  completedAt,
	})
	record.CurrentReviewIndex++

	if record.Exhausted() {
		record.Status = store.StatusCompleted
		slog.Info("all reviews completed", "content_id", contentID, "title", record.Title)
	} else {
		slog.Info("review completed",
			"content_id", contentID,
			"review_number", record.CurrentReviewIndex,
			"total", record.TotalReviews())
	}

	s.persistLocked(ctx)
	return true
}

// GetStatistics aggregates schedule-wide statistics for the reference
// date. DueToday and UpcomingThisWeek reuse the query operations, so any
// pending status normalization happens before counting.
func (s *Service) GetStatistics(ctx context.Context, reference time.Time) *Statistics {
	if reference.IsZero() {
		reference = s.now()
	}

	dueToday := len(s.GetDueReviews(ctx, reference))
	upcomingWeek := len(s.GetUpcomingReviews(ctx, reference, UpcomingWeekHorizon))

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &Statistics{
		TotalContents:    len(s.schedules),
		DueToday:         dueToday,
		UpcomingThisWeek: upcomingWeek,
	}

	for _, record := range s.schedules {
		switch record.Status {
		case store.StatusActive:
			stats.ActiveSchedules++
		case store.StatusCompleted:
			stats.CompletedSchedules++
		}
		stats.TotalReviewsCompleted += len(record.CompletedReviews)
		stats.TotalReviewsScheduled += record.TotalReviews()
	}

	if stats.TotalReviewsScheduled > 0 {
		rate := float64(stats.TotalReviewsCompleted) / float64(stats.TotalReviewsScheduled) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}

	return stats
}

// Count returns the number of tracked content items.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.schedules)
}

// sortedIDsLocked returns content ids in lexical order so query results
// are deterministic across runs. Caller holds s.mu.
func (s *Service) sortedIDsLocked() []string {
	ids := make([]string, 0, len(s.schedules))
	for id := range s.schedules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// persistLocked mirrors the in-memory map to the store. A failed save is
// logged and otherwise ignored: the in-memory state stays authoritative
// and the next successful mutation rewrites the full document anyway.
// Caller holds s.mu.
func (s *Service) persistLocked(ctx context.Context) {
	if err := s.store.SaveSchedules(ctx, s.schedules); err != nil {
		slog.Error("failed to save review schedules", "error", err)
	}
}

// summarize produces the stored summary from a document body.
func summarize(body string) string {
	const maxLen = 200
	runes := []rune(body)
	if len(runes) <= maxLen {
		return body
	}
	return string(runes[:maxLen])
}
