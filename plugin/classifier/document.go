package classifier

import (
	"encoding/json"
	"time"
)

// Document is one raw text bundle handed to the classifier: an email body,
// its subject, and its attachment names, stamped with the document date.
type Document struct {
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Attachments []string  `json:"attachments"`
	Date        time.Time `json:"date"`
}

// dateLayouts are the accepted document timestamp formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a document timestamp. The boolean is false when no
// accepted layout matches; callers decide to skip the document rather
// than abort the scan.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UnmarshalJSON accepts any of the dateLayouts for the date field. An
// unparsable or absent date leaves Date zero, which marks the document to
// be skipped during a scan instead of failing the whole batch.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Subject     string   `json:"subject"`
		Body        string   `json:"body"`
		Attachments []string `json:"attachments"`
		Date        string   `json:"date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Subject = raw.Subject
	d.Body = raw.Body
	d.Attachments = raw.Attachments
	d.Date = time.Time{}
	if t, ok := ParseDate(raw.Date); ok {
		d.Date = t
	}
	return nil
}
