//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/manuscript/service"
)

// Client wraps Tesseract for OCR operations. A Client is safe for concurrent
// use; calls are serialized on the underlying engine.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recognize(imageData)
}

func (c *Client) recognize(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
func (c *Client) SetLanguage(lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// SetPageSegMode sets the page segmentation mode.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}

// Transcribe reads the image at path and returns the text Tesseract finds in
// it. Options override the client's language and segmentation mode for this
// call only when set.
func (c *Client) Transcribe(ctx context.Context, path string, opts service.TranscribeOptions) (service.Transcription, error) {
	if err := ctx.Err(); err != nil {
		return service.Transcription{}, err
	}

	data, err := ReadImage(path)
	if err != nil {
		return service.Transcription{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if opts.Languages != "" {
		if err := c.client.SetLanguage(strings.Split(opts.Languages, "+")...); err != nil {
			return service.Transcription{}, fmt.Errorf("set language %q: %w", opts.Languages, err)
		}
	}
	if opts.PageSegMode > 0 {
		if err := c.client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
			return service.Transcription{}, fmt.Errorf("set page segmentation mode: %w", err)
		}
	}

	text, err := c.recognize(data)
	if err != nil {
		return service.Transcription{}, err
	}
	return service.Transcription{Text: text}, nil
}

var _ service.OCR = (*Client)(nil)
