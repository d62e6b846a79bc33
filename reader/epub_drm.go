package reader

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrDRMProtected is returned for EPUBs whose text content is encrypted.
var ErrDRMProtected = errors.New("epub: DRM-protected content cannot be processed")

type encryptionManifest struct {
	Entries []struct {
		Method struct {
			Algorithm string `xml:"Algorithm,attr"`
		} `xml:"EncryptionMethod"`
		Cipher struct {
			Ref struct {
				URI string `xml:"URI,attr"`
			} `xml:"CipherReference"`
		} `xml:"CipherData"`
	} `xml:"EncryptedData"`
}

// checkDRM rejects EPUBs carrying an Adobe rights file or encrypted
// documents. Obfuscated fonts are allowed.
func checkDRM(epubPath string) error {
	zr, err := zip.OpenReader(epubPath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		switch f.Name {
		case "META-INF/rights.xml":
			return ErrDRMProtected
		case "META-INF/encryption.xml":
			encrypted, err := encryptsDocuments(f)
			if err != nil || encrypted {
				// an unreadable manifest is treated as protection
				return ErrDRMProtected
			}
		}
	}
	return nil
}

func encryptsDocuments(f *zip.File) (bool, error) {
	rc, err := f.Open()
	if err != nil {
		return false, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return false, err
	}
	var m encryptionManifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return false, err
	}

	for _, e := range m.Entries {
		if strings.Contains(e.Method.Algorithm, "obfuscation") {
			continue
		}
		switch strings.ToLower(path.Ext(e.Cipher.Ref.URI)) {
		case ".xhtml", ".html", ".htm", ".xml", ".css":
			return true, nil
		}
	}
	return false, nil
}
