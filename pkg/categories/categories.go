// Package categories is the category collaborator: palette assignment,
// per-event fills and the category visibility state.
package categories

import (
	"sort"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// Extract returns the unique categories across events, sorted.
func Extract(events []model.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range events {
		for _, c := range e.Categories {
			if c == "" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Counts returns how many events carry each category.
func Counts(events []model.Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		for _, c := range e.Categories {
			counts[c]++
		}
	}
	return counts
}
