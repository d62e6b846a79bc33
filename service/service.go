// Package service defines the contracts of the external collaborators the
// assembler calls out to, and the typed errors they report.
//
// Implementations live elsewhere: [github.com/tsawler/manuscript/ocr] wraps
// Tesseract and [github.com/tsawler/manuscript/translate] talks to a
// LibreTranslate server. Tests substitute fakes.
package service

import "context"

// TranscribeOptions tunes a single OCR call.
type TranscribeOptions struct {
	// Languages is a Tesseract language list such as "eng" or "eng+fra".
	// Empty means the engine default.
	Languages string

	// PageSegMode is the Tesseract page segmentation mode. Zero means the
	// engine default.
	PageSegMode int
}

// Transcription is the text recognized in an image.
type Transcription struct {
	Text string
}

// OCR transcribes the image at path.
type OCR interface {
	Transcribe(ctx context.Context, path string, opts TranscribeOptions) (Transcription, error)
}

// LanguageDetector guesses the language of a sample of sentences. An empty
// code with a nil error means the detector had no opinion.
type LanguageDetector interface {
	Detect(ctx context.Context, sample []string) (string, error)
}

// Translator translates one piece of text between two language codes.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}
