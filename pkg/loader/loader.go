package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// ErrNoEvents is returned when a file parses but contains no events.
var ErrNoEvents = errors.New("no events found")

// LoadEvents reads events from path. Files ending in .jsonl are read one event
// per line; anything else must hold a JSON array.
func LoadEvents(path string) ([]model.Event, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no events file at %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open events file: %w", err)
	}
	defer file.Close()

	var events []model.Event
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		events, err = ReadJSONL(file)
	} else {
		events, err = ReadJSON(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoEvents)
	}
	return events, nil
}

// ReadJSON decodes a JSON array of events and prepares them for layout.
func ReadJSON(r io.Reader) ([]model.Event, error) {
	var events []model.Event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	Prepare(events)
	return events, nil
}

// ReadJSONL decodes one event per line. Malformed lines are skipped.
func ReadJSONL(r io.Reader) ([]model.Event, error) {
	var events []model.Event
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large lines (descriptions can be long)
	const maxCapacity = 1024 * 1024 * 10 // 10MB
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var event model.Event
		if err := json.Unmarshal(line, &event); err != nil {
			debug.Log("loader: skipping line %d: %v", lineNum, err)
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading events file: %w", err)
	}

	Prepare(events)
	return events, nil
}

// Prepare assigns stable IDs (file order), fixes reversed year spans and
// derives each event's categories from its description keys.
func Prepare(events []model.Event) {
	for i := range events {
		e := &events[i]
		e.ID = i
		if e.EndYear < e.StartYear {
			debug.Log("loader: event %d %q has end_year %d before start_year %d; swapping", i, e.Title, e.EndYear, e.StartYear)
			e.StartYear, e.EndYear = e.EndYear, e.StartYear
		}
		e.Categories = DeriveCategories(*e)
	}
}

// DeriveCategories returns the non-blank description keys in document order.
func DeriveCategories(e model.Event) []string {
	var cats []string
	for _, key := range e.Descriptions.Keys() {
		if strings.TrimSpace(key) == "" {
			continue
		}
		cats = append(cats, key)
	}
	return cats
}

// YearBounds returns the span from the earliest start to the latest end.
// The result is unset when events is empty.
func YearBounds(events []model.Event) model.YearRange {
	if len(events) == 0 {
		return model.YearRange{}
	}
	minYear, maxYear := events[0].StartYear, events[0].EndYear
	for _, e := range events[1:] {
		if e.StartYear < minYear {
			minYear = e.StartYear
		}
		if e.EndYear > maxYear {
			maxYear = e.EndYear
		}
	}
	return model.NewYearRange(minYear, maxYear)
}
