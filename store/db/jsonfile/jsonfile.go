// Package jsonfile implements the schedule store driver on top of a single
// JSON document on local disk.
//
// The file maps content id to its full schedule record, encoded as
// indented UTF-8 JSON so it stays human-inspectable. Saves rewrite the
// whole document through a temp file plus rename, so readers never observe
// a partially written state.
package jsonfile

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hrygo/recallsense/internal/profile"
	"github.com/hrygo/recallsense/store"
)

// DB is the jsonfile store driver.
type DB struct {
	profile *profile.Profile
	path    string
}

// NewDB opens a jsonfile driver backed by the profile's store path.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.StorePath == "" {
		return nil, errors.New("store path is required for the jsonfile driver")
	}
	return &DB{profile: profile, path: profile.StorePath}, nil
}

// LoadSchedules reads the persisted schedule map. A missing file means an
// empty map. A corrupt file is logged and also treated as empty: losing a
// damaged schedule file must never take the host process down.
func (d *DB) LoadSchedules(_ context.Context) (map[string]*store.ScheduleRecord, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*store.ScheduleRecord{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read schedule store %s", d.path)
	}

	schedules := map[string]*store.ScheduleRecord{}
	if err := json.Unmarshal(data, &schedules); err != nil {
		slog.Warn("schedule store is corrupt, starting fresh",
			"path", d.path,
			"error", err)
		return map[string]*store.ScheduleRecord{}, nil
	}

	return schedules, nil
}

// SaveSchedules atomically rewrites the full schedule document.
func (d *DB) SaveSchedules(_ context.Context, schedules map[string]*store.ScheduleRecord) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o750); err != nil {
		return errors.Wrapf(err, "failed to create store directory for %s", d.path)
	}

	data, err := json.MarshalIndent(schedules, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal schedules")
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".schedules-*.json")
	if err != nil {
		return errors.Wrap(err, "failed to create temp store file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to write temp store file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "failed to close temp store file")
	}

	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to replace schedule store %s", d.path)
	}

	return nil
}

func (d *DB) Close() error {
	return nil
}
