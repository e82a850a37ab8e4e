package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Computing layout...")
	time.Sleep(2 * spinnerInterval)
	s.Set("Writing output...")
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	out := buf.String()
	for _, want := range []string{"Computing layout...", "Writing output..."} {
		if !strings.Contains(out, want) {
			t.Errorf("spinner output missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner did not clear its line: %q", out[max(0, len(out)-20):])
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &bytes.Buffer{}, "x")
	s.Stop()
	s.Stop()
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &bytes.Buffer{}, "x")
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
	s.Stop()
}
