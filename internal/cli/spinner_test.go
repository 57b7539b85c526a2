package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldSpin := stdout, spinnerOut
	stdout, spinnerOut = &buf, io.Discard
	t.Cleanup(func() { stdout, spinnerOut = oldOut, oldSpin })
	return &buf
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureOutput(t)
	s := newSpinner(context.Background(), "Rendering...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	s.Stop()
	s.Stop()
}

func TestSpinnerStopIsNotCancellation(t *testing.T) {
	captureOutput(t)
	s := newSpinner(context.Background(), "Rendering...")
	s.Start()
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop with a live parent context")
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	captureOutput(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Rendering...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopWithMessages(t *testing.T) {
	out := captureOutput(t)

	s := newSpinner(context.Background(), "Converting...")
	s.Start()
	s.StopWithSuccess("Done")

	s = newSpinner(context.Background(), "Converting...")
	s.Start()
	s.StopWithError("Failed")

	got := out.String()
	if !strings.Contains(got, "Done") || !strings.Contains(got, "Failed") {
		t.Errorf("output = %q", got)
	}
}
