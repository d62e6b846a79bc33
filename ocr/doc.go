// Package ocr transcribes page scans and embedded images with the Tesseract
// OCR engine via gosseract.
//
// Tesseract is linked only when building with the "ocr" tag:
//
//	go build -tags ocr ./...
//
// Without the tag every call returns [ErrOCRNotEnabled], so the rest of the
// pipeline still builds on machines without Tesseract. Install it with
//
//	brew install tesseract
//
// on macOS, or on Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Images in formats Tesseract reads poorly (BMP, WebP, some TIFF variants)
// are converted to PNG first, see [PrepareImage].
package ocr
