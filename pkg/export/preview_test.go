package export

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/config"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/loader"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/timeline"
)

func fixtureEvents(t *testing.T) []model.Event {
	t.Helper()
	events, err := loader.LoadEvents("../../tests/testdata/events.json")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return events
}

func writeIndexFile(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte("<html><body>Hello</body></html>"), 0644); err != nil {
		t.Fatalf("write index: %v", err)
	}
}

func TestNewPreviewServer(t *testing.T) {
	server := NewPreviewServer("/tmp/test", 8080)
	if server.bundlePath != "/tmp/test" {
		t.Errorf("Expected bundlePath '/tmp/test', got %s", server.bundlePath)
	}
	if server.Port() != 8080 {
		t.Errorf("Expected port 8080, got %d", server.Port())
	}
	if server.URL() != "http://localhost:8080" {
		t.Errorf("unexpected URL %s", server.URL())
	}
}

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort(19000, 19100)
	if err != nil {
		t.Fatalf("FindAvailablePort failed: %v", err)
	}
	if port < 19000 || port > 19100 {
		t.Errorf("Port %d is outside expected range 19000-19100", port)
	}
}

func TestDefaultPreviewConfig(t *testing.T) {
	cfg := DefaultPreviewConfig()
	if cfg.Port != 0 {
		t.Errorf("Expected Port 0 (auto-select), got %d", cfg.Port)
	}
	if !cfg.OpenBrowser {
		t.Error("Expected OpenBrowser to be true")
	}
	if cfg.Live != nil {
		t.Error("Expected no live source by default")
	}
}

func TestPreviewServer_Start_MissingBundle(t *testing.T) {
	server := NewPreviewServer("/nonexistent/path/12345", 19050)
	if err := server.Start(); err == nil {
		t.Error("Expected error for missing bundle path")
	}
}

func TestPreviewServer_Start_MissingIndex(t *testing.T) {
	server := NewPreviewServer(t.TempDir(), 19051)
	if err := server.Start(); err == nil {
		t.Error("Expected error for missing index.html")
	}
}

func TestPreviewServer_StaticAndStatus(t *testing.T) {
	dir := t.TempDir()
	writeIndexFile(t, dir)

	ts := httptest.NewServer(NewPreviewServer(dir, 9000).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET / status = %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store, no-cache, must-revalidate, max-age=0" {
		t.Errorf("Cache-Control = %q", cc)
	}

	resp, err = http.Get(ts.URL + "/__preview__/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	defer resp.Body.Close()
	var st previewStatus
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if st.Status != "running" || !st.HasIndex || st.FileCount != 1 || st.Live {
		t.Errorf("unexpected status %+v", st)
	}
}

func TestPreviewServer_APIDisabledWithoutLive(t *testing.T) {
	dir := t.TempDir()
	writeIndexFile(t, dir)
	ts := httptest.NewServer(NewPreviewServer(dir, 9000).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/layout")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestNoCacheMiddleware_Options(t *testing.T) {
	called := false
	h := noCacheMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS status = %d", rec.Code)
	}
	if called {
		t.Error("preflight should not reach the wrapped handler")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func liveHandler(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	writeIndexFile(t, dir)
	src := NewLiveSource(fixtureEvents(t), config.Default())
	return NewPreviewServer(dir, 9000).WithLive(src).Handler()
}

func TestLayoutAPI(t *testing.T) {
	h := liveHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layout?scale=100&width=600", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var snap timeline.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Viewport.Scale != 100 {
		t.Errorf("scale = %v, want 100", snap.Viewport.Scale)
	}
	if snap.Viewport.ViewportWidth != 600 {
		t.Errorf("viewport width = %v, want 600", snap.Viewport.ViewportWidth)
	}
	if len(snap.Blocks) != 6 {
		t.Errorf("blocks = %d, want 6", len(snap.Blocks))
	}
	if snap.Years.Min != 1865 || snap.Years.Max != 1970 {
		t.Errorf("years = %+v", snap.Years)
	}
}

func TestLayoutAPI_Hide(t *testing.T) {
	h := liveHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layout?hide=Law", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var snap timeline.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Plessy is only Law; Reconstruction and Brown keep other categories.
	if len(snap.Blocks) != 5 {
		t.Errorf("blocks = %d, want 5", len(snap.Blocks))
	}
	if len(snap.Hidden) != 1 || snap.Hidden[0] != "Law" {
		t.Errorf("hidden = %v", snap.Hidden)
	}
}

func TestLayoutAPI_BadParams(t *testing.T) {
	h := liveHandler(t)
	for _, q := range []string{"scale=abc", "scale=-3", "width=0"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/layout?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestMinimapAPI(t *testing.T) {
	h := liveHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/minimap", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	cfg := config.Default()
	if b := img.Bounds(); b.Dx() != int(cfg.Minimap.Width) || b.Dy() != int(cfg.Minimap.Height) {
		t.Errorf("png size = %v", b)
	}
}

func TestLiveSource_SetEvents(t *testing.T) {
	src := NewLiveSource(nil, config.Default())
	if _, err := src.Snapshot(SnapshotParams{}); err == nil {
		t.Error("expected error with no events")
	}
	src.SetEvents(fixtureEvents(t))
	if src.Len() != 6 {
		t.Errorf("Len = %d", src.Len())
	}
	snap, err := src.Snapshot(SnapshotParams{})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Viewport.Scale != config.Default().Zoom.DefaultYearWidth {
		t.Errorf("scale = %v", snap.Viewport.Scale)
	}
}
