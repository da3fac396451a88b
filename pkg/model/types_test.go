package model

import (
	"encoding/json"
	"testing"
)

func TestDescriptionsPreserveOrder(t *testing.T) {
	raw := `{"title":"Act","start_year":1900,"end_year":1910,"descriptions":{"zeta":"z","alpha":"a","mid":"m"}}`

	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	keys := e.Descriptions.Keys()
	want := []string{"zeta", "alpha", "mid"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
	if text, ok := e.Descriptions.Get("alpha"); !ok || text != "a" {
		t.Errorf("Get(alpha) = %q, %v", text, ok)
	}
}

func TestDescriptionsRejectNonObject(t *testing.T) {
	var d Descriptions
	if err := json.Unmarshal([]byte(`["a","b"]`), &d); err == nil {
		t.Error("expected error for array descriptions")
	}
	if err := json.Unmarshal([]byte(`null`), &d); err != nil || d != nil {
		t.Errorf("null descriptions: got %v, %v", d, err)
	}
}

func TestDescriptionsMarshalKeepsOrder(t *testing.T) {
	d := Descriptions{{Category: "b", Text: "1"}, {Category: "a", Text: "2"}}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"b":"1","a":"2"}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestEventOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Event
		want bool
	}{
		{"disjoint", Event{StartYear: 1900, EndYear: 1904}, Event{StartYear: 1905, EndYear: 1910}, false},
		{"touching end year", Event{StartYear: 1900, EndYear: 1905}, Event{StartYear: 1905, EndYear: 1910}, true},
		{"contained", Event{StartYear: 1900, EndYear: 1950}, Event{StartYear: 1920, EndYear: 1921}, true},
		{"same single year", Event{StartYear: 1900, EndYear: 1900}, Event{StartYear: 1900, EndYear: 1900}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventValidate(t *testing.T) {
	ok := Event{Title: "x", StartYear: 1, EndYear: 2}
	if err := ok.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	reversed := Event{Title: "x", StartYear: 3, EndYear: 2}
	if err := reversed.Validate(); err == nil {
		t.Error("expected error for reversed years")
	}
	untitled := Event{StartYear: 1, EndYear: 1}
	if err := untitled.Validate(); err == nil {
		t.Error("expected error for missing title")
	}
}

func TestEventCloneIsDeep(t *testing.T) {
	e := Event{Title: "x", Links: []string{"a"}, Categories: []string{"c"}, Descriptions: Descriptions{{"c", "t"}}}
	c := e.Clone()
	c.Links[0] = "b"
	c.Categories[0] = "d"
	c.Descriptions[0].Text = "changed"
	if e.Links[0] != "a" || e.Categories[0] != "c" || e.Descriptions[0].Text != "t" {
		t.Error("Clone shares backing arrays with the original")
	}
}

func TestYearRange(t *testing.T) {
	var unset YearRange
	if unset.Span() != 0 {
		t.Errorf("unset Span() = %d, want 0", unset.Span())
	}
	r := NewYearRange(1950, 1900)
	if r.Min != 1900 || r.Max != 1950 || r.Span() != 51 {
		t.Errorf("NewYearRange swapped = %+v span %d", r, r.Span())
	}
	if !r.Contains(1900) || r.Contains(1951) {
		t.Error("Contains mismatch")
	}
}

func TestGradientFill(t *testing.T) {
	f := Gradient(135, "#111111", "#222222", "#333333")
	if f.Kind != FillGradient || len(f.Stops) != 3 {
		t.Fatalf("Gradient = %+v", f)
	}
	if f.Stops[1].Offset != 0.5 || f.Stops[2].Offset != 1 {
		t.Errorf("offsets = %v", f.Stops)
	}
	if got := f.CSS(); got != "linear-gradient(135deg, #111111 0%, #222222 50%, #333333 100%)" {
		t.Errorf("CSS() = %q", got)
	}
	if single := Gradient(135, "#abcdef"); single.Kind != FillSolid || single.Color != "#abcdef" {
		t.Errorf("single-color gradient = %+v", single)
	}
	if !f.Equal(Gradient(135, "#111111", "#222222", "#333333")) {
		t.Error("Equal should match identical gradients")
	}
	if f.Equal(Solid("#111111")) {
		t.Error("Equal should not match a solid fill")
	}
}

func TestVideoLink(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
		ok       bool
	}{
		{"explicit", Event{VideoURL: "https://vimeo.com/1", Links: []string{"https://youtu.be/x"}}, "https://vimeo.com/1", true},
		{"from links", Event{Links: []string{"https://example.org", "https://www.youtube.com/watch?v=abc"}}, "https://www.youtube.com/watch?v=abc", true},
		{"none", Event{Links: []string{"https://example.org"}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.event.VideoLink()
			if got != tt.expected || ok != tt.ok {
				t.Errorf("VideoLink() = %q, %v; want %q, %v", got, ok, tt.expected, tt.ok)
			}
		})
	}
}
