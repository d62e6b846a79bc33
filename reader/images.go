package reader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/manuscript/assemble"
	"github.com/tsawler/manuscript/service"
)

// PDFImages extracts the raster images of the PDF at path into dir and
// returns one record per written file, ordered by page.
func PDFImages(path, dir string) ([]assemble.ImageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &service.ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("image directory: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	pages, err := api.ExtractImagesRaw(f, nil, conf)
	if err != nil {
		return nil, &service.ExtractionError{Path: path, Err: fmt.Errorf("pdfcpu extract images: %w", err)}
	}

	var records []assemble.ImageRecord
	for _, byObj := range pages {
		objNrs := make([]int, 0, len(byObj))
		for nr := range byObj {
			objNrs = append(objNrs, nr)
		}
		sort.Ints(objNrs)

		for _, nr := range objNrs {
			img := byObj[nr]
			out := filepath.Join(dir, imageFileName(img.PageNr, nr, img.Name, img.FileType))
			if err := writeImage(out, img); err != nil {
				return records, &service.ExtractionError{Path: path, Err: err}
			}
			records = append(records, assemble.ImageRecord{Page: img.PageNr, Path: out})
		}
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Page < records[j].Page })
	return records, nil
}

func writeImage(path string, img model.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// imageFileName builds a file name unique per page and object.
func imageFileName(page, objNr int, name, fileType string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, name)
	if fileType == "" {
		fileType = "bin"
	}
	if name == "" {
		return fmt.Sprintf("page%03d_obj%d.%s", page, objNr, fileType)
	}
	return fmt.Sprintf("page%03d_obj%d_%s.%s", page, objNr, name, fileType)
}
