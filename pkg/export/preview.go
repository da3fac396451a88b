package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/config"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/debug"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/model"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/timeline"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/viewport"
)

// LiveSource renders snapshots on demand from the current event set. It is
// safe for concurrent use; SetEvents swaps the data set under a watcher.
type LiveSource struct {
	mu     sync.RWMutex
	events []model.Event
	cfg    config.Config
}

// NewLiveSource wraps prepared events.
func NewLiveSource(events []model.Event, cfg config.Config) *LiveSource {
	return &LiveSource{events: events, cfg: cfg}
}

// SetEvents replaces the data set.
func (s *LiveSource) SetEvents(events []model.Event) {
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
}

// Len returns the number of events currently served.
func (s *LiveSource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// SnapshotParams are the knobs accepted by the live API.
type SnapshotParams struct {
	Scale     float64 // 0 keeps the configured default
	Width     float64 // viewport width, 0 means the minimap width
	HideQuery string  // raw query string carrying the hide parameter
}

// Snapshot builds a fresh timeline and captures it. Each call is independent
// so concurrent requests never share mutable state.
func (s *LiveSource) Snapshot(p SnapshotParams) (timeline.Snapshot, error) {
	s.mu.RLock()
	events := s.events
	cfg := s.cfg
	s.mu.RUnlock()

	if len(events) == 0 {
		return timeline.Snapshot{}, fmt.Errorf("no events loaded")
	}
	width := p.Width
	if width <= 0 {
		width = cfg.Minimap.Width
	}

	t := timeline.New(events, cfg)
	if err := t.Visibility().ApplyQuery(p.HideQuery); err != nil {
		return timeline.Snapshot{}, err
	}
	t.Start(width)
	if p.Scale > 0 {
		t.Zoom(p.Scale, viewport.Anchor{})
	}
	return t.Snapshot(), nil
}

// PreviewServer serves an exported bundle locally and, when given a live
// source, the JSON and PNG API over the current data.
type PreviewServer struct {
	bundlePath string
	port       int
	live       *LiveSource
	server     *http.Server
}

// NewPreviewServer creates a new preview server for the given bundle.
func NewPreviewServer(bundlePath string, port int) *PreviewServer {
	return &PreviewServer{
		bundlePath: bundlePath,
		port:       port,
	}
}

// WithLive attaches a live source, enabling the /api routes.
func (p *PreviewServer) WithLive(src *LiveSource) *PreviewServer {
	p.live = src
	return p
}

// Handler builds the router. Exposed so tests can drive it with httptest.
func (p *PreviewServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(noCacheMiddleware)

	r.HandleFunc("/__preview__/status", p.statusHandler).Methods(http.MethodGet)
	if p.live != nil {
		r.HandleFunc("/api/layout", p.layoutHandler).Methods(http.MethodGet)
		r.HandleFunc("/api/minimap", p.minimapHandler).Methods(http.MethodGet)
	}
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(p.bundlePath)))
	return r
}

func (p *PreviewServer) checkBundle() error {
	if _, err := os.Stat(p.bundlePath); os.IsNotExist(err) {
		return fmt.Errorf("bundle path does not exist: %s", p.bundlePath)
	}
	indexPath := filepath.Join(p.bundlePath, IndexFile)
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		return fmt.Errorf("no index.html found in bundle: %s", p.bundlePath)
	}
	return nil
}

// Start starts the preview server and blocks until stopped.
func (p *PreviewServer) Start() error {
	if err := p.checkBundle(); err != nil {
		return err
	}

	p.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", p.port),
		Handler:           p.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("\nPreview server running at %s\n", p.URL())
	fmt.Printf("Serving: %s\n", p.bundlePath)
	fmt.Print("\nPress Ctrl+C to stop\n\n")

	return p.server.ListenAndServe()
}

// StartWithGracefulShutdown starts the server with signal handling for clean shutdown.
func (p *PreviewServer) StartWithGracefulShutdown() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errChan := make(chan error, 1)
	go func() {
		if err := p.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-stop:
		fmt.Println("\nShutting down preview server...")
		return p.Stop()
	case err := <-errChan:
		return err
	}
}

// Stop gracefully stops the preview server.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

// Port returns the port the server is running on.
func (p *PreviewServer) Port() int {
	return p.port
}

// URL returns the full URL of the preview server.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

type previewStatus struct {
	Status     string `json:"status"`
	Port       int    `json:"port"`
	BundlePath string `json:"bundle_path"`
	HasIndex   bool   `json:"has_index"`
	FileCount  int    `json:"file_count"`
	Live       bool   `json:"live"`
	Events     int    `json:"events,omitempty"`
}

// statusHandler returns the preview server status as JSON.
func (p *PreviewServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	st := previewStatus{Status: "running", Port: p.port, BundlePath: p.bundlePath, HasIndex: true}
	if _, err := os.Stat(filepath.Join(p.bundlePath, IndexFile)); os.IsNotExist(err) {
		st.HasIndex = false
	}
	_ = filepath.Walk(p.bundlePath, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			st.FileCount++
		}
		return nil
	})
	if p.live != nil {
		st.Live = true
		st.Events = p.live.Len()
	}
	writeJSON(w, http.StatusOK, st)
}

func (p *PreviewServer) layoutHandler(w http.ResponseWriter, r *http.Request) {
	snap, ok := p.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (p *PreviewServer) minimapHandler(w http.ResponseWriter, r *http.Request) {
	snap, ok := p.snapshot(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, snap, DefaultBundleOptions().Minimap); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (p *PreviewServer) snapshot(w http.ResponseWriter, r *http.Request) (timeline.Snapshot, bool) {
	q := r.URL.Query()
	params := SnapshotParams{HideQuery: r.URL.RawQuery}
	var err error
	if v := q.Get("scale"); v != "" {
		if params.Scale, err = strconv.ParseFloat(v, 64); err != nil || params.Scale <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid scale %q", v))
			return timeline.Snapshot{}, false
		}
	}
	if v := q.Get("width"); v != "" {
		if params.Width, err = strconv.ParseFloat(v, 64); err != nil || params.Width <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid width %q", v))
			return timeline.Snapshot{}, false
		}
	}
	snap, err := p.live.Snapshot(params)
	if err != nil {
		debug.Log("preview: snapshot failed: %v", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return timeline.Snapshot{}, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// noCacheMiddleware adds headers to prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		// CORS for local development
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

// DefaultPreviewPort is the default port for the preview server.
const DefaultPreviewPort = 9000

// Ports tried when the requested one is zero.
const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	// BundlePath is the path to the exported bundle
	BundlePath string

	// Port is the port to serve on (0 for auto-select)
	Port int

	// OpenBrowser determines whether to auto-open a browser
	OpenBrowser bool

	// Live, when set, enables the /api routes
	Live *LiveSource
}

// DefaultPreviewConfig returns sensible defaults for preview configuration.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Port:        0,
		OpenBrowser: true,
	}
}

// StartPreviewWithConfig starts a preview server with the given configuration
// and blocks until interrupted.
func StartPreviewWithConfig(cfg PreviewConfig) error {
	port := cfg.Port
	if port == 0 {
		var err error
		port, err = FindAvailablePort(PreviewPortRangeStart, PreviewPortRangeEnd)
		if err != nil {
			return fmt.Errorf("could not find available port: %w", err)
		}
	}

	server := NewPreviewServer(cfg.BundlePath, port).WithLive(cfg.Live)
	if err := server.checkBundle(); err != nil {
		return err
	}

	if cfg.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := OpenInBrowser(server.URL()); err != nil {
				fmt.Printf("Could not open browser: %v\n", err)
				fmt.Printf("Open %s in your browser\n", server.URL())
			}
		}()
	}

	return server.StartWithGracefulShutdown()
}
