package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/recallsense/internal/profile"
	"github.com/hrygo/recallsense/store"
)

func newTestDriver(t *testing.T) (store.Driver, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedules", "review_schedule.json")
	driver, err := NewDB(&profile.Profile{StorePath: path})
	require.NoError(t, err)
	return driver, path
}

func sampleRecord(id string) *store.ScheduleRecord {
	learned := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return &store.ScheduleRecord{
		ContentID:    id,
		Title:        "Binary Trees",
		Summary:      "Traversal orders and balancing",
		CourseName:   "Computer Science",
		ContentType:  store.ContentTypeLesson,
		LearningDate: learned,
		ReviewDates: []time.Time{
			learned.AddDate(0, 0, 1),
			learned.AddDate(0, 0, 3),
		},
		CompletedReviews: []store.CompletedReview{},
		Status:           store.StatusActive,
	}
}

func TestLoadSchedulesMissingFile(t *testing.T) {
	driver, _ := newTestDriver(t)

	schedules, err := driver.LoadSchedules(context.Background())
	require.NoError(t, err)
	require.Empty(t, schedules)
}

func TestLoadSchedulesCorruptFile(t *testing.T) {
	driver, path := newTestDriver(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o640))

	schedules, err := driver.LoadSchedules(context.Background())
	require.NoError(t, err, "a corrupt store is treated as empty, not fatal")
	require.Empty(t, schedules)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	driver, path := newTestDriver(t)
	ctx := context.Background()

	in := map[string]*store.ScheduleRecord{
		"item-1": sampleRecord("item-1"),
	}
	require.NoError(t, driver.SaveSchedules(ctx, in))

	// Save must create the containing directory.
	_, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)

	out, err := driver.LoadSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)

	got := out["item-1"]
	require.NotNil(t, got)
	require.Equal(t, "Binary Trees", got.Title)
	require.Equal(t, store.ContentTypeLesson, got.ContentType)
	require.Equal(t, store.StatusActive, got.Status)
	require.Len(t, got.ReviewDates, 2)
	require.True(t, got.ReviewDates[0].Equal(in["item-1"].ReviewDates[0]))
}

func TestSaveOverwritesFully(t *testing.T) {
	driver, _ := newTestDriver(t)
	ctx := context.Background()

	require.NoError(t, driver.SaveSchedules(ctx, map[string]*store.ScheduleRecord{
		"a": sampleRecord("a"),
		"b": sampleRecord("b"),
	}))
	require.NoError(t, driver.SaveSchedules(ctx, map[string]*store.ScheduleRecord{
		"a": sampleRecord("a"),
	}))

	out, err := driver.LoadSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1, "save is a full rewrite, not a merge")
	require.Contains(t, out, "a")
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	driver, path := newTestDriver(t)
	ctx := context.Background()

	require.NoError(t, driver.SaveSchedules(ctx, map[string]*store.ScheduleRecord{
		"a": sampleRecord("a"),
	}))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestNewDBRequiresStorePath(t *testing.T) {
	_, err := NewDB(&profile.Profile{})
	require.Error(t, err)
}
