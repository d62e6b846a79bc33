// Package translate is a LibreTranslate client providing translation and
// language detection for the assembler.
//
// Usage:
//
//	client, err := translate.New(translate.Config{URL: "http://localhost:5000"})
//	text, err := client.Translate(ctx, "Bonjour", "fr", "en")
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tsawler/manuscript/service"
)

// Client talks to a LibreTranslate server.
type Client struct {
	cfg    Config
	http   *http.Client
	cache  *Cache
	logger *slog.Logger
}

// New creates a client. A cache directory that cannot be created is an error.
func New(cfg Config) (*Client, error) {
	cfg.defaults()
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger,
	}
	if cfg.CacheDir != "" {
		cache, err := NewCache(cfg.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("translation cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

type detectRequest struct {
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type detection struct {
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Translate translates text from one language code to another. An empty or
// "auto" source lets the server detect it.
func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	from, to = NormalizeCode(from), NormalizeCode(to)
	if to == Auto {
		return "", errors.New("target language required")
	}

	key := CacheKey(text, from, to)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
	}

	var resp translateResponse
	err := c.post(ctx, "/translate", translateRequest{
		Q:      text,
		Source: from,
		Target: to,
		Format: "text",
		APIKey: c.cfg.APIKey,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("libretranslate: %s", resp.Error)
	}
	if resp.TranslatedText == "" {
		return "", errors.New("libretranslate: empty translation")
	}

	if c.cache != nil {
		if err := c.cache.Set(key, resp.TranslatedText); err != nil {
			c.logger.Warn("translation cache write failed", "error", err)
		}
	}
	return resp.TranslatedText, nil
}

// Detect returns the most confident language for the joined sample, or an
// empty code when the server has no candidate.
func (c *Client) Detect(ctx context.Context, sample []string) (string, error) {
	q := strings.TrimSpace(strings.Join(sample, " "))
	if q == "" {
		return "", nil
	}

	var candidates []detection
	if err := c.post(ctx, "/detect", detectRequest{Q: q, APIKey: c.cfg.APIKey}, &candidates); err != nil {
		return "", err
	}

	best := detection{Confidence: -1}
	for _, d := range candidates {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	if best.Language == "" {
		return "", nil
	}
	c.logger.Debug("language detected", "language", best.Language, "confidence", best.Confidence)
	return NormalizeCode(best.Language), nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := strings.TrimRight(c.cfg.URL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr translateResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("libretranslate %s: %d: %s", path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("libretranslate %s: status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

var (
	_ service.Translator       = (*Client)(nil)
	_ service.LanguageDetector = (*Client)(nil)
)
