// Package util provides identifier helpers shared across the application.
package util

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// contentNamespace is the fixed UUIDv5 namespace for deterministic content
// identifiers. Changing it would orphan every previously persisted record.
var contentNamespace = uuid.MustParse("7d2f1c9e-4b6a-4f0e-9c3d-2a8b5e7f1d04")

// GenShortUID generates a short, URL-safe unique identifier.
func GenShortUID() string {
	return shortuuid.New()
}

// ContentID derives a deterministic content identifier from a course name
// and the document date (day precision). The same (course, date) pair
// always yields the same id, so re-scanning a document is a natural no-op
// at ingestion.
func ContentID(courseName string, date time.Time) string {
	key := strings.ToLower(strings.TrimSpace(courseName)) + "|" + date.Format("2006-01-02")
	return "doc_" + uuid.NewSHA1(contentNamespace, []byte(key)).String()
}
