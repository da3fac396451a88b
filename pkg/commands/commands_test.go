package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/export"
	"github.com/Dicklesworthstone/timeline_viewer/pkg/updater"
)

const fixture = "../../tests/testdata/events.json"

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("zoom:\n  default_year_width: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestNew_Subcommands(t *testing.T) {
	cmd := New()
	want := map[string]bool{"view": false, "export": false, "lanes": false, "serve": false, "version": false}
	for _, c := range cmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	for _, f := range []string{"debug", "config"} {
		if cmd.PersistentFlags().Lookup(f) == nil {
			t.Errorf("missing persistent flag --%s", f)
		}
	}
}

func TestDataOptions_HideQuery(t *testing.T) {
	tests := []struct {
		hide []string
		want string
	}{
		{nil, ""},
		{[]string{" ", ""}, ""},
		{[]string{"Law"}, "hide=Law"},
		{[]string{"Law", " Politics "}, "hide=Law%2CPolitics"},
	}
	for _, tt := range tests {
		o := DataOptions{Hide: tt.hide}
		if got := o.HideQuery(); got != tt.want {
			t.Errorf("HideQuery(%v) = %q, want %q", tt.hide, got, tt.want)
		}
	}
}

func TestDataOptions_Params(t *testing.T) {
	o := DataOptions{Hide: []string{"Law"}, Scale: 20}
	p := o.Params(800)
	want := export.SnapshotParams{Scale: 20, Width: 800, HideQuery: "hide=Law"}
	if p != want {
		t.Errorf("Params = %+v, want %+v", p, want)
	}
}

func TestLanes(t *testing.T) {
	out, err := run(t, "lanes", fixture)
	if err != nil {
		t.Fatalf("lanes: %v", err)
	}
	for _, s := range []string{"TITLE", "Reconstruction", "Great Migration", "1865-1877", "6 events, 3 active lanes"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "hidden:") {
		t.Errorf("nothing should be hidden:\n%s", out)
	}
}

func TestLanes_Hide(t *testing.T) {
	out, err := run(t, "lanes", fixture, "--hide", "Law")
	if err != nil {
		t.Fatalf("lanes: %v", err)
	}
	if strings.Contains(out, "Plessy") {
		t.Errorf("hidden event listed:\n%s", out)
	}
	if !strings.Contains(out, "5 events") || !strings.Contains(out, "hidden: [Law]") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestLanes_MissingFile(t *testing.T) {
	if _, err := run(t, "lanes", filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing events file")
	}
}

func TestLanes_RequiresArg(t *testing.T) {
	if _, err := run(t, "lanes"); err == nil {
		t.Fatal("expected error without an events argument")
	}
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	out, err := run(t, "export", fixture, "--out", dir, "--title", "Civil Rights")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, f := range []string{export.SVGFile, export.MinimapFile, export.LayoutFile, export.IndexFile} {
		path := filepath.Join(dir, f)
		if !strings.Contains(out, path) {
			t.Errorf("output does not list %s:\n%s", path, out)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("stat %s: %v", f, err)
		}
	}
	index, err := os.ReadFile(filepath.Join(dir, export.IndexFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "Civil Rights") {
		t.Error("index.html missing the title")
	}
}

func TestConfig_BadPath(t *testing.T) {
	g := &GlobalOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := g.Config(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, updater.Version) {
		t.Errorf("version output %q missing %s", out, updater.Version)
	}
}
