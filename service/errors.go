package service

import "fmt"

// ExtractionError reports a failure reading the source document.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// OCRError reports a failed transcription of one image.
type OCRError struct {
	Path string
	Page int
	Err  error
}

func (e *OCRError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("ocr %s (page %d): %v", e.Path, e.Page, e.Err)
	}
	return fmt.Sprintf("ocr %s: %v", e.Path, e.Err)
}

func (e *OCRError) Unwrap() error { return e.Err }

// TranslationError reports a failed translation or language detection call.
// The book being translated is left untouched.
type TranslationError struct {
	From string
	To   string
	// Text is the input that failed, truncated for display
	Text string
	Err  error
}

func (e *TranslationError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("translate %s->%s: %v", e.From, e.To, e.Err)
	}
	return fmt.Sprintf("translate %s->%s %q: %v", e.From, e.To, e.Text, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// Excerpt shortens s for error messages.
func Excerpt(s string) string {
	const max = 40
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
