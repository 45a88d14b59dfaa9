// Package classifier decides whether a raw text document describes a
// learning schedule and, if so, which courses it covers.
//
// Classification is deterministic, rule-based matching: an ordered list of
// pre-compiled schedule-indicator patterns gates the document, then an
// ordered list of course-name patterns extracts the courses. Both lists
// are bilingual (English and Chinese) and can be replaced through external
// configuration.
package classifier

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/hrygo/recallsense/store"
)

// maxFallbackNameLen bounds course names synthesized from attachment
// filenames or subject lines.
const maxFallbackNameLen = 40

// FallbackCourseName is used when a schedule-bearing document yields no
// course name at all.
const FallbackCourseName = "General Course"

// CourseMatch is one course extracted from a schedule-bearing document.
type CourseMatch struct {
	CourseName  string
	ContentType store.ContentType
	// Ordinal is the week or lesson number found in the body, 0 when none.
	Ordinal int
	// Title is the generated human label for the schedule record.
	Title string
}

type compiledCourse struct {
	re   *regexp.Regexp
	name string
}

// Classifier matches documents against its compiled pattern sets.
type Classifier struct {
	indicators []*regexp.Regexp
	courses    []compiledCourse
}

// New creates a Classifier with the built-in bilingual pattern sets.
func New() *Classifier {
	c, err := build(defaultIndicatorPatterns, defaultCoursePatterns)
	if err != nil {
		// Built-in patterns are compile-checked by tests.
		panic(err)
	}
	return c
}

// NewFromViper creates a Classifier whose keyword lists may be overridden
// by external configuration. Missing keys fall back to the built-ins.
func NewFromViper(v *viper.Viper) (*Classifier, error) {
	indicators, courses, err := configFromViper(v)
	if err != nil {
		return nil, fmt.Errorf("invalid classifier config: %w", err)
	}
	return build(indicators, courses)
}

func build(indicators []string, courses []CoursePattern) (*Classifier, error) {
	c := &Classifier{}

	for _, p := range indicators {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("invalid indicator pattern %q: %w", p, err)
		}
		c.indicators = append(c.indicators, re)
	}

	for _, cp := range courses {
		re, err := regexp.Compile(`(?i)` + cp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid course pattern %q: %w", cp.Pattern, err)
		}
		c.courses = append(c.courses, compiledCourse{re: re, name: cp.Name})
	}

	return c, nil
}

// Classify inspects a document and returns one CourseMatch per distinct
// course it describes. The result is nil when the document is not
// schedule-bearing; the caller discards such documents.
func (c *Classifier) Classify(subject, body string, attachments []string) []CourseMatch {
	haystack := buildHaystack(subject, body, attachments)

	if !c.matchAny(c.indicators, haystack) {
		return nil
	}

	names := c.extractCourseNames(haystack)
	if len(names) == 0 {
		names = []string{fallbackCourseName(subject, attachments)}
	}

	ordinal, ordinalKind := findOrdinal(body)

	matches := make([]CourseMatch, 0, len(names))
	for _, name := range names {
		matches = append(matches, buildMatch(name, ordinal, ordinalKind))
	}
	return matches
}

// ClassifyDocument is a convenience wrapper over Classify.
func (c *Classifier) ClassifyDocument(doc Document) []CourseMatch {
	return c.Classify(doc.Subject, doc.Body, doc.Attachments)
}

func buildHaystack(subject, body string, attachments []string) string {
	parts := make([]string, 0, 2+len(attachments))
	parts = append(parts, subject, body)
	parts = append(parts, attachments...)
	return strings.ToLower(strings.Join(parts, "\n"))
}

func (c *Classifier) matchAny(patterns []*regexp.Regexp, haystack string) bool {
	for _, re := range patterns {
		if re.MatchString(haystack) {
			return true
		}
	}
	return false
}

// extractCourseNames collects distinct canonical course names in pattern
// order, so results are deterministic across runs.
func (c *Classifier) extractCourseNames(haystack string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, course := range c.courses {
		if !course.re.MatchString(haystack) {
			continue
		}
		if seen[course.name] {
			continue
		}
		seen[course.name] = true
		names = append(names, course.name)
	}

	return names
}

// fallbackCourseName synthesizes a course name when no known course
// matched: first attachment filename without extension, then the subject
// line, then a fixed placeholder.
func fallbackCourseName(subject string, attachments []string) string {
	if len(attachments) > 0 {
		base := filepath.Base(attachments[0])
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if name := truncate(strings.TrimSpace(base), maxFallbackNameLen); name != "" {
			return name
		}
	}

	if name := truncate(strings.TrimSpace(subject), maxFallbackNameLen); name != "" {
		return name
	}

	return FallbackCourseName
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}

type ordinalKind int

const (
	ordinalNone ordinalKind = iota
	ordinalWeek
	ordinalLesson
)

// findOrdinal searches the body for a week ordinal, then a lesson ordinal.
func findOrdinal(body string) (int, ordinalKind) {
	if n, ok := firstOrdinal(weekOrdinalPatterns, body); ok {
		return n, ordinalWeek
	}
	if n, ok := firstOrdinal(lessonOrdinalPatterns, body); ok {
		return n, ordinalLesson
	}
	return 0, ordinalNone
}

func firstOrdinal(patterns []*regexp.Regexp, body string) (int, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(body)
		if len(m) < 2 {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return n, true
	}
	return 0, false
}

func buildMatch(name string, ordinal int, kind ordinalKind) CourseMatch {
	switch kind {
	case ordinalWeek:
		return CourseMatch{
			CourseName:  name,
			ContentType: store.ContentTypeLesson,
			Ordinal:     ordinal,
			Title:       fmt.Sprintf("%s - Week %d Lesson Plan", name, ordinal),
		}
	case ordinalLesson:
		return CourseMatch{
			CourseName:  name,
			ContentType: store.ContentTypeLesson,
			Ordinal:     ordinal,
			Title:       fmt.Sprintf("%s - Lesson %d", name, ordinal),
		}
	default:
		return CourseMatch{
			CourseName:  name,
			ContentType: store.ContentTypeReading,
			Title:       fmt.Sprintf("%s - Course Material", name),
		}
	}
}
