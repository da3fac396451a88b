// Package updater reports the running version and checks GitHub for newer
// releases.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Version is the release this binary was built from. Overridden at build
// time with -ldflags "-X .../pkg/updater.Version=v1.2.3".
var Version = "v0.1.0"

// LatestReleaseURL is the GitHub API endpoint for the newest release.
const LatestReleaseURL = "https://api.github.com/repos/Dicklesworthstone/timeline_viewer/releases/latest"

type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries a release endpoint.
type Checker struct {
	URL     string
	Current string
	Client  *http.Client
}

// NewChecker returns a checker against the public release feed for the
// running version.
func NewChecker() *Checker {
	return &Checker{
		URL:     LatestReleaseURL,
		Current: Version,
		// Short timeout so a slow network never stalls the CLI
		Client: &http.Client{Timeout: 2 * time.Second},
	}
}

// CheckForUpdates returns the newer release, or nil when Current is up to
// date.
func (c *Checker) CheckForUpdates(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if compareVersions(rel.TagName, c.Current) > 0 {
		return &rel, nil
	}
	return nil, nil
}

// compareVersions returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal. Segments
// compare numerically; a pre-release suffix sorts before the plain release.
func compareVersions(v1, v2 string) int {
	a, aPre := splitVersion(v1)
	b, bPre := splitVersion(v2)
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x > y:
			return 1
		case x < y:
			return -1
		}
	}
	switch {
	case aPre == bPre:
		return 0
	case aPre == "":
		return 1
	case bPre == "":
		return -1
	case aPre > bPre:
		return 1
	}
	return -1
}

func splitVersion(v string) ([]int, string) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	pre := ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v, pre = v[:i], v[i+1:]
	}
	var nums []int
	for _, seg := range strings.Split(v, ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			n = 0
		}
		nums = append(nums, n)
	}
	return nums, pre
}
