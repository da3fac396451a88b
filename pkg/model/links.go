package model

import "strings"

// IsVideoLink reports whether a link points at a video host the detail view
// can embed.
func IsVideoLink(link string) bool {
	return strings.Contains(link, "youtube.com") || strings.Contains(link, "youtu.be")
}

// VideoLink returns the event's video: the explicit video URL, else the first
// video link.
func (e Event) VideoLink() (string, bool) {
	if e.VideoURL != "" {
		return e.VideoURL, true
	}
	for _, l := range e.Links {
		if IsVideoLink(l) {
			return l, true
		}
	}
	return "", false
}
