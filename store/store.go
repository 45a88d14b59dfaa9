package store

import (
	"context"

	"github.com/hrygo/recallsense/internal/profile"
)

// Store provides access to the persisted review schedules.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// LoadSchedules reads the full schedule mapping from the driver.
func (s *Store) LoadSchedules(ctx context.Context) (map[string]*ScheduleRecord, error) {
	return s.driver.LoadSchedules(ctx)
}

// SaveSchedules rewrites the full schedule mapping through the driver.
func (s *Store) SaveSchedules(ctx context.Context, schedules map[string]*ScheduleRecord) error {
	return s.driver.SaveSchedules(ctx, schedules)
}
