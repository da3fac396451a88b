package categories

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
)

// HideParam is the query parameter that persists hidden categories.
const HideParam = "hide"

// Visibility is the category visibility state. Every known category starts
// visible.
type Visibility struct {
	order  []string
	hidden map[string]bool
}

// NewVisibility tracks the given categories, all visible.
func NewVisibility(categories []string) *Visibility {
	v := &Visibility{
		order:  append([]string(nil), categories...),
		hidden: make(map[string]bool, len(categories)),
	}
	for _, c := range categories {
		v.hidden[c] = false
	}
	return v
}

// Categories returns the tracked categories in their original order.
func (v *Visibility) Categories() []string {
	return v.order
}

// Known reports whether category is tracked.
func (v *Visibility) Known(category string) bool {
	_, ok := v.hidden[category]
	return ok
}

// Hidden reports whether category is hidden. Unknown categories are visible.
func (v *Visibility) Hidden(category string) bool {
	return v.hidden[category]
}

// VisibleCount is the number of visible categories.
func (v *Visibility) VisibleCount() int {
	n := 0
	for _, h := range v.hidden {
		if !h {
			n++
		}
	}
	return n
}

// AllVisible reports whether no category is hidden.
func (v *Visibility) AllVisible() bool {
	return v.VisibleCount() == len(v.hidden)
}

// SetHidden hides or shows a known category.
func (v *Visibility) SetHidden(category string, hidden bool) bool {
	if !v.Known(category) {
		return false
	}
	v.hidden[category] = hidden
	return true
}

// ShowAll makes every category visible.
func (v *Visibility) ShowAll() {
	for c := range v.hidden {
		v.hidden[c] = false
	}
}

// Toggle applies a category click:
//   - with everything visible, only the clicked category stays visible;
//   - if the clicked category is the only visible one, everything is shown;
//   - otherwise the clicked category flips.
//
// Unknown categories are ignored.
func (v *Visibility) Toggle(category string) bool {
	if !v.Known(category) {
		return false
	}

	switch {
	case v.AllVisible():
		for c := range v.hidden {
			v.hidden[c] = c != category
		}
	case v.VisibleCount() == 1 && !v.hidden[category]:
		v.ShowAll()
	default:
		v.hidden[category] = !v.hidden[category]
	}
	return true
}

// IsEventVisible is true for events with no categories and for events with
// at least one visible category.
func (v *Visibility) IsEventVisible(e model.Event) bool {
	if len(e.Categories) == 0 {
		return true
	}
	for _, c := range e.Categories {
		if !v.hidden[c] {
			return true
		}
	}
	return false
}

// Filter returns the visible events, preserving order.
func (v *Visibility) Filter(events []model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if v.IsEventVisible(e) {
			out = append(out, e)
		}
	}
	return out
}

// HiddenList returns the hidden categories, sorted.
func (v *Visibility) HiddenList() []string {
	var out []string
	for c, h := range v.hidden {
		if h {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// HideValue is the comma-separated value of the hide parameter, or "" when
// nothing is hidden.
func (v *Visibility) HideValue() string {
	return strings.Join(v.HiddenList(), ",")
}

// Query returns the encoded query string carrying the hidden categories,
// preserving other parameters already in base.
func (v *Visibility) Query(base url.Values) string {
	q := url.Values{}
	for k, vals := range base {
		q[k] = append([]string(nil), vals...)
	}
	if hide := v.HideValue(); hide != "" {
		q.Set(HideParam, hide)
	} else {
		q.Del(HideParam)
	}
	return q.Encode()
}

// ApplyHideValue resets every category to visible, then hides the known
// categories named in a comma-separated list. Unknown names are ignored.
func (v *Visibility) ApplyHideValue(value string) {
	v.ShowAll()
	for _, c := range strings.Split(value, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		v.SetHidden(c, true)
	}
}

// ApplyQuery restores visibility from a raw query string, as on history
// navigation.
func (v *Visibility) ApplyQuery(rawQuery string) error {
	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return fmt.Errorf("parse query %q: %w", rawQuery, err)
	}
	v.ApplyHideValue(q.Get(HideParam))
	return nil
}
