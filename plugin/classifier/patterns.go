package classifier

import (
	"regexp"

	"github.com/spf13/viper"
)

// CoursePattern pairs a match regex with the canonical course display name.
type CoursePattern struct {
	Pattern string `mapstructure:"pattern"`
	Name    string `mapstructure:"name"`
}

// Default schedule-indicator patterns. A document must match at least one
// of these to be considered schedule-bearing at all; a subject name alone
// is not enough (general mail mentions "math" without carrying a course
// schedule).
var defaultIndicatorPatterns = []string{
	`course\s*schedule`,
	`class\s*schedule`,
	`timetable`,
	`syllabus`,
	`lesson\s*plan`,
	`teaching\s*plan`,
	`curriculum`,
	`week\s*\d+`,
	`lesson\s*\d+`,
	`课程表`,
	`课表`,
	`课程安排`,
	`课程计划`,
	`教学计划`,
	`教学安排`,
	`教学大纲`,
	`第\s*\d+\s*周`,
	`第\s*\d+\s*课`,
	`schedule`,
	`日程`,
}

// Default course-name patterns, ordered. Matching is case-insensitive
// against the combined haystack; the Name column is the canonical form
// recorded on the schedule.
var defaultCoursePatterns = []CoursePattern{
	{`\bmath(s|ematics)?\b|数学`, "Mathematics"},
	{`\benglish\b|英语`, "English"},
	{`\bchinese\b|语文`, "Chinese"},
	{`\bphysics\b|物理`, "Physics"},
	{`\bchemistry\b|化学`, "Chemistry"},
	{`\bbiology\b|生物`, "Biology"},
	{`\bscience\b|科学`, "Science"},
	{`\bhistory\b|历史`, "History"},
	{`\bgeography\b|地理`, "Geography"},
	{`\bmusic\b|音乐`, "Music"},
	{`\bart\b|美术`, "Art"},
	{`physical\s*education|\bpe\b|体育`, "Physical Education"},
	{`\bcomputer\b|编程|信息技术`, "Computer Science"},
}

// Ordinal patterns. Week is tried before lesson; the first capture group
// must be the number.
var (
	weekOrdinalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)week\s*(\d+)`),
		regexp.MustCompile(`第\s*(\d+)\s*周`),
	}
	lessonOrdinalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)lesson\s*(\d+)`),
		regexp.MustCompile(`第\s*(\d+)\s*课`),
	}
)

// configFromViper reads pattern overrides from external configuration so
// keyword lists can be extended per deployment without touching code.
//
// Recognized keys:
//
//	classifier.indicators: [list of regex]
//	classifier.courses:    [{pattern: regex, name: canonical name}]
func configFromViper(v *viper.Viper) ([]string, []CoursePattern, error) {
	indicators := defaultIndicatorPatterns
	if v.IsSet("classifier.indicators") {
		indicators = v.GetStringSlice("classifier.indicators")
	}

	courses := defaultCoursePatterns
	if v.IsSet("classifier.courses") {
		var override []CoursePattern
		if err := v.UnmarshalKey("classifier.courses", &override); err != nil {
			return nil, nil, err
		}
		courses = override
	}

	return indicators, courses, nil
}
