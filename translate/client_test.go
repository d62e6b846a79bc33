package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func newServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/translate":
			var req translateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if req.Format != "text" {
				t.Errorf("Expected text format, got %q", req.Format)
			}
			if req.Q == "fail" {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad input"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"translatedText": req.Source + ">" + req.Target + ":" + strings.ToUpper(req.Q),
			})
		case "/detect":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"confidence": 40.0, "language": "es"},
				{"confidence": 90.0, "language": "pt"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClient_Translate(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	defer srv.Close()

	client, err := New(Config{URL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.Translate(context.Background(), "hello", "en-US", "pt_BR")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "en>pt:HELLO" {
		t.Errorf("Unexpected translation %q", got)
	}

	got, err = client.Translate(context.Background(), "hi", "", "fr")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "auto>fr:HI" {
		t.Errorf("Expected auto source, got %q", got)
	}
}

func TestClient_TranslateErrors(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	defer srv.Close()

	client, _ := New(Config{URL: srv.URL})

	_, err := client.Translate(context.Background(), "fail", "en", "pt")
	if err == nil || !strings.Contains(err.Error(), "bad input") {
		t.Errorf("Expected API error, got %v", err)
	}

	if _, err := client.Translate(context.Background(), "x", "en", ""); err == nil {
		t.Error("Expected error for missing target")
	}

	out, err := client.Translate(context.Background(), "   ", "en", "pt")
	if err != nil || out != "   " {
		t.Errorf("Expected blank text returned as is, got %q, %v", out, err)
	}
}

func TestClient_Cache(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	defer srv.Close()

	client, err := New(Config{URL: srv.URL, CacheDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		got, err := client.Translate(context.Background(), "hello", "en", "pt")
		if err != nil {
			t.Fatalf("Translate failed: %v", err)
		}
		if got != "en>pt:HELLO" {
			t.Errorf("Unexpected translation %q", got)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("Expected 1 server hit, got %d", n)
	}
}

func TestClient_Detect(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	defer srv.Close()

	client, _ := New(Config{URL: srv.URL})

	lang, err := client.Detect(context.Background(), []string{"Olá mundo.", "Tudo bem?"})
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lang != "pt" {
		t.Errorf("Expected pt, got %q", lang)
	}

	lang, err = client.Detect(context.Background(), nil)
	if err != nil || lang != "" {
		t.Errorf("Expected no opinion for empty sample, got %q, %v", lang, err)
	}
}

func TestClient_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, _ := New(Config{URL: url})
	if _, err := client.Translate(context.Background(), "hello", "en", "pt"); err == nil {
		t.Error("Expected error when the server is unreachable")
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "auto"},
		{"AUTO", "auto"},
		{"en", "en"},
		{"pt-BR", "pt"},
		{"en_US", "en"},
		{"zh-Hant", "zh"},
		{"!!", "!!"},
	}
	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
