package config

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatcherReportsConfigEdits(t *testing.T) {
	defer goleak.VerifyNone(t)

	workDir := t.TempDir()
	if err := InitDataDir(workDir); err != nil {
		t.Fatalf("init data dir: %v", err)
	}
	c, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	w, err := c.Watch()
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	writeConfig(t, workDir, "charts:\n  histogram_bins: 4\n")
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatalf("no change notification after editing config.yaml")
	}
	// the first event can fire on truncate, before the new body is written
	deadline := time.Now().Add(5 * time.Second)
	for {
		if err := c.Reload(); err == nil && c.Project.Charts.HistogramBins == 4 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("histogram bins = %d, want 4", c.Project.Charts.HistogramBins)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for range w.Changes() {
		// drain coalesced notifications; the loop ends once Close has closed the channel
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestWatcherKeepsLatestError(t *testing.T) {
	w := &Watcher{errs: make(chan error, 1)}
	first := errors.New("queue overflow")
	second := errors.New("watch descriptor gone")

	w.reportErr(first)
	w.reportErr(second)

	select {
	case got := <-w.Errors():
		if got != second {
			t.Fatalf("Errors() = %v, want %v", got, second)
		}
	default:
		t.Fatalf("expected a pending error")
	}
	select {
	case got := <-w.Errors():
		t.Fatalf("older error %v should have been replaced", got)
	default:
	}
}
