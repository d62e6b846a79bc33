//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/manuscript/service"
)

func TestNew(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	if client == nil {
		t.Error("Expected non-nil client")
	}
}

func TestTranscribe(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(100, 50)); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "page.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	// the test image is a rectangle; only check the call goes through
	if _, err := client.Transcribe(context.Background(), path, service.TranscribeOptions{Languages: "eng"}); err != nil {
		t.Errorf("Transcribe failed: %v", err)
	}
}

func TestTranscribe_Cancelled(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Transcribe(ctx, "unused.png", service.TranscribeOptions{}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
