package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	// decoders for the formats PrepareImage accepts
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PrepareImage returns image data Tesseract can read. PNG and JPEG data is
// returned unchanged; GIF, BMP, TIFF and WebP are decoded and re-encoded as
// PNG. The second result is the detected source format.
func PrepareImage(data []byte) ([]byte, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unrecognized image: %w", err)
	}

	switch format {
	case "png", "jpeg":
		return data, format, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("decode %s: %w", format, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, format, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), format, nil
}

// ReadImage loads the image at path and prepares it for recognition.
func ReadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prepared, _, err := PrepareImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prepared, nil
}
