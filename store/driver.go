package store

import (
	"context"
)

// Driver is an interface for schedule store drivers.
//
// The persisted state is one document keyed by content id; drivers load
// and rewrite the whole collection rather than mutating it incrementally.
type Driver interface {
	// LoadSchedules reads the full persisted mapping. A missing or corrupt
	// backing file is not an error: drivers log it and return an empty map
	// so the engine starts fresh.
	LoadSchedules(ctx context.Context) (map[string]*ScheduleRecord, error)

	// SaveSchedules atomically rewrites the full persisted mapping,
	// creating the containing directory if absent.
	SaveSchedules(ctx context.Context, schedules map[string]*ScheduleRecord) error

	Close() error
}
