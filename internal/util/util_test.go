package util

import (
	"strings"
	"testing"
	"time"
)

func TestContentIDDeterministic(t *testing.T) {
	date := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	a := ContentID("Mathematics", date)
	b := ContentID("Mathematics", date)
	if a != b {
		t.Errorf("same inputs produced different ids: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "doc_") {
		t.Errorf("content id %s missing doc_ prefix", a)
	}
}

func TestContentIDNormalizesCourseName(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	a := ContentID("Mathematics", date)
	b := ContentID("  MATHEMATICS ", date)
	if a != b {
		t.Errorf("case/whitespace variants should share an id: %s vs %s", a, b)
	}
}

func TestContentIDDayPrecision(t *testing.T) {
	morning := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 15, 22, 45, 0, 0, time.UTC)
	nextDay := time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)

	if ContentID("Physics", morning) != ContentID("Physics", evening) {
		t.Error("ids differ within the same calendar day")
	}
	if ContentID("Physics", morning) == ContentID("Physics", nextDay) {
		t.Error("ids should differ across calendar days")
	}
	if ContentID("Physics", morning) == ContentID("Chemistry", morning) {
		t.Error("ids should differ across courses")
	}
}

func TestGenShortUID(t *testing.T) {
	a := GenShortUID()
	b := GenShortUID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}
