// Package format provides input format detection for manuscript.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// EPUB indicates an EPUB book.
	EPUB
	// HTML indicates a single HTML or XHTML document.
	HTML
	// Text indicates plain text.
	Text
	// Book indicates a previously saved manuscript in YAML form.
	Book
	// Image indicates a raster image, read through OCR.
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case EPUB:
		return "EPUB"
	case HTML:
		return "HTML"
	case Text:
		return "Text"
	case Book:
		return "Book"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case EPUB:
		return ".epub"
	case HTML:
		return ".html"
	case Text:
		return ".txt"
	case Book:
		return ".yaml"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".epub":
		return EPUB
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".txt", ".text":
		return Text
	case ".yaml", ".yml":
		return Book
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return Image
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format.
// Returns Unknown for ZIP archives; use DetectFromReader to look inside them.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return PDF
	case isImageMagic(data):
		return Image
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return Unknown
	case detectHTMLMagic(data):
		return HTML
	}
	return Unknown
}

func isImageMagic(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")),
		bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}),
		bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")),
		bytes.HasPrefix(data, []byte("BM")) && len(data) >= 14,
		bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return true
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP":
		return true
	}
	return false
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// looksLikeText reports whether data is UTF-8 without NUL bytes.
func looksLikeText(data []byte) bool {
	if len(data) == 0 || bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	// a sample may end inside a multi-byte rune
	for i := 0; i < utf8.UTFMax && len(data) > 0 && !utf8.Valid(data); i++ {
		data = data[:len(data)-1]
	}
	return utf8.Valid(data)
}

// DetectFromReader inspects the content to determine format. It can tell an
// EPUB apart from other ZIP archives but cannot recognize a saved book, which
// is plain YAML.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, []byte("PK\x03\x04")) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// DetectFile determines the format of the file at path. Content wins over
// the extension; files with unrecognized content fall back to the extension,
// then to Text when they look like text.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}

	got, err := DetectFromReader(f, info.Size())
	if err != nil {
		return Unknown, err
	}
	if got != Unknown {
		return got, nil
	}
	if ext := Detect(path); ext != Unknown {
		return ext, nil
	}

	sample := make([]byte, 512)
	n, err := f.ReadAt(sample, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	if looksLikeText(sample[:n]) {
		return Text, nil
	}
	return Unknown, nil
}

// detectZIPFormat recognizes an EPUB by its mimetype entry or its container
// descriptor.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch f.Name {
		case "mimetype":
			rc, err := f.Open()
			if err != nil {
				continue
			}
			data := make([]byte, 64)
			n, _ := io.ReadFull(rc, data)
			rc.Close()
			if strings.TrimSpace(string(data[:n])) == "application/epub+zip" {
				return EPUB, nil
			}
		case "META-INF/container.xml":
			return EPUB, nil
		}
	}

	return Unknown, nil
}
