package classifier

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"RFC3339", "2024-01-15T09:30:00Z", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), true},
		{"no timezone", "2024-01-15T09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), true},
		{"space separator", "2024-01-15 09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), true},
		{"date only", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "next tuesday-ish", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDocumentUnmarshalJSON(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{
		"subject": "Math Week 3 Schedule",
		"body": "week 3 plan",
		"attachments": ["plan.pdf"],
		"date": "2024-01-15T08:00:00Z"
	}`), &doc)
	if err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if doc.Subject != "Math Week 3 Schedule" || len(doc.Attachments) != 1 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.Date.IsZero() {
		t.Error("Date should be parsed")
	}
}

func TestDocumentUnmarshalBadDate(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"subject": "x", "body": "y", "date": "not a date"}`), &doc)
	if err != nil {
		t.Fatalf("a bad date must not fail decoding, got %v", err)
	}
	if !doc.Date.IsZero() {
		t.Errorf("Date = %v, want zero for unparsable input", doc.Date)
	}
}
