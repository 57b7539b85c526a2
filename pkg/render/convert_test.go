package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/evotree/pkg/errors"
)

func TestMissingConverter(t *testing.T) {
	old := converter
	converter = "evotree-no-such-converter"
	t.Cleanup(func() { converter = old })

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	if _, err := ToPDF(context.Background(), []byte("<svg/>")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG(context.Background(), []byte("<svg/>"), 2); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG() = %v, want UNSUPPORTED", err)
	}
}

func TestToPNGScale(t *testing.T) {
	if _, err := ToPNG(context.Background(), []byte("<svg/>"), 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ToPNG(scale 0) = %v, want INVALID_INPUT", err)
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	pdf, err := ToPDF(context.Background(), svg)
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Errorf("output does not look like a PDF")
	}
}

func TestConvertCancelled(t *testing.T) {
	script := filepath.Join(t.TempDir(), "slow-convert")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 30\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	old := converter
	converter = script
	t.Cleanup(func() { converter = old })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := ToPDF(ctx, []byte("<svg/>"))
	if err != context.DeadlineExceeded {
		t.Errorf("ToPDF() = %v, want %v", err, context.DeadlineExceeded)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("ToPDF() returned after %v, converter was not killed", elapsed)
	}
}
