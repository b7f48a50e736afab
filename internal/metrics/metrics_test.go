package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/coregx/acmatch"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveFile(100, time.Millisecond)
	m.ObserveFile(50, 2*time.Millisecond)
	m.FileError()
	m.AddMatches("fox", 2)
	m.AddMatches("fox", 1)
	m.AddMatches("dog", 0)

	if got := testutil.ToFloat64(m.files); got != 2 {
		t.Errorf("files = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.bytes); got != 150 {
		t.Errorf("bytes = %v, want 150", got)
	}
	if got := testutil.ToFloat64(m.fileErrors); got != 1 {
		t.Errorf("file errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.matches.WithLabelValues("fox")); got != 3 {
		t.Errorf("fox matches = %v, want 3", got)
	}
	if got := testutil.CollectAndCount(m.matches); got != 1 {
		t.Errorf("matches series = %d, want 1 (zero adds create none)", got)
	}
}

func TestSetAutomaton(t *testing.T) {
	m := New()
	m.SetAutomaton(acmatch.Stats{Patterns: 3, States: 9, Searches: 4, Rejected: 1, SkippedBytes: 77})

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"patterns", testutil.ToFloat64(m.patterns), 3},
		{"states", testutil.ToFloat64(m.states), 9},
		{"searches", testutil.ToFloat64(m.searches), 4},
		{"rejected", testutil.ToFloat64(m.rejected), 1},
		{"skipped", testutil.ToFloat64(m.skipped), 77},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.ObserveFile(10, time.Microsecond)
	m.AddMatches("needle", 1)

	path := filepath.Join(t.TempDir(), "acmatch.prom")
	if err := m.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"acmatch_files_scanned_total 1",
		"acmatch_bytes_scanned_total 10",
		`acmatch_matches_total{pattern="needle"} 1`,
		"acmatch_scan_seconds_count 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics file missing %q:\n%s", want, text)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveFile(1, time.Second)
	m.FileError()
	m.AddMatches("x", 1)
	m.SetAutomaton(acmatch.Stats{})
	if err := m.WriteFile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Errorf("nil WriteFile = %v, want nil", err)
	}
	if m.Registry() != nil {
		t.Error("nil Registry should be nil")
	}
}
