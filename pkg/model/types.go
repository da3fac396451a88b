package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Event is a single entry on the timeline
type Event struct {
	ID           int          `json:"-"`
	StartYear    int          `json:"start_year"`
	EndYear      int          `json:"end_year"`
	Title        string       `json:"title"`
	ImageURL     string       `json:"image_url,omitempty"`
	VideoURL     string       `json:"video_url,omitempty"`
	Links        []string     `json:"links,omitempty"`
	Descriptions Descriptions `json:"descriptions,omitempty"`
	Categories   []string     `json:"-"`
}

// Duration returns the number of whole years the event covers, inclusive.
func (e Event) Duration() int {
	return e.EndYear - e.StartYear + 1
}

// Overlaps reports whether the closed year ranges of e and o intersect.
func (e Event) Overlaps(o Event) bool {
	return e.StartYear <= o.EndYear && o.StartYear <= e.EndYear
}

// HasCategory returns true if the event is tagged with the given category
func (e Event) HasCategory(category string) bool {
	for _, c := range e.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// YearLabel formats the year span the way the detail view shows it.
func (e Event) YearLabel() string {
	if e.StartYear == e.EndYear {
		return fmt.Sprintf("%d", e.StartYear)
	}
	return fmt.Sprintf("%d-%d", e.StartYear, e.EndYear)
}

// Clone creates a deep copy of the event
func (e Event) Clone() Event {
	clone := e

	if e.Links != nil {
		clone.Links = make([]string, len(e.Links))
		copy(clone.Links, e.Links)
	}
	if e.Categories != nil {
		clone.Categories = make([]string, len(e.Categories))
		copy(clone.Categories, e.Categories)
	}
	if e.Descriptions != nil {
		clone.Descriptions = make(Descriptions, len(e.Descriptions))
		copy(clone.Descriptions, e.Descriptions)
	}

	return clone
}

// Validate checks if the event data is logically valid
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event %d: title cannot be empty", e.ID)
	}
	if e.EndYear < e.StartYear {
		return fmt.Errorf("event %d: end_year (%d) cannot be before start_year (%d)", e.ID, e.EndYear, e.StartYear)
	}
	return nil
}

// Description is the text an event carries for one category.
type Description struct {
	Category string
	Text     string
}

// Descriptions keeps per-category text in document order. The JSON form is an
// object keyed by category; key order is significant because categories are
// derived from it.
type Descriptions []Description

// Get returns the description for a category.
func (d Descriptions) Get(category string) (string, bool) {
	for _, desc := range d {
		if desc.Category == category {
			return desc.Text, true
		}
	}
	return "", false
}

// Keys returns the categories in document order.
func (d Descriptions) Keys() []string {
	keys := make([]string, 0, len(d))
	for _, desc := range d {
		keys = append(keys, desc.Category)
	}
	return keys
}

// UnmarshalJSON decodes a JSON object while preserving key order.
func (d *Descriptions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*d = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("descriptions: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("descriptions: expected object, got %v", tok)
	}

	var out Descriptions
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("descriptions: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("descriptions: unexpected key %v", keyTok)
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("descriptions[%s]: %w", key, err)
		}
		out = append(out, Description{Category: key, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("descriptions: %w", err)
	}

	*d = out
	return nil
}

// MarshalJSON encodes the descriptions as an object in document order.
func (d Descriptions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, desc := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(desc.Category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(desc.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// YearRange is the inclusive span of years covered by the loaded data set.
// The zero value is unset.
type YearRange struct {
	Min   int
	Max   int
	Valid bool
}

// NewYearRange builds a valid range, swapping the bounds if needed.
func NewYearRange(minYear, maxYear int) YearRange {
	if maxYear < minYear {
		minYear, maxYear = maxYear, minYear
	}
	return YearRange{Min: minYear, Max: maxYear, Valid: true}
}

// Span returns the number of years in the range, or 0 when unset.
func (r YearRange) Span() int {
	if !r.Valid {
		return 0
	}
	return r.Max - r.Min + 1
}

// Contains reports whether year lies inside the range.
func (r YearRange) Contains(year int) bool {
	return r.Valid && year >= r.Min && year <= r.Max
}
