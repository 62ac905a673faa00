// Package format provides container sniffing for the slidesmith library.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotPPTX reports that a file or buffer does not hold a PowerPoint
// package. Callers branch on it with errors.Is.
var ErrNotPPTX = errors.New("not a PPTX package")

// IsPPTX reports whether data holds a PPTX package: a ZIP archive with
// presentation parts under ppt/.
func IsPPTX(data []byte) bool {
	return Sniff(data) == nil
}

// Sniff validates that data holds a PPTX package without reading it
// fully. The returned error wraps ErrNotPPTX with the reason the check
// failed.
func Sniff(data []byte) error {
	if !hasZipMagic(data) {
		return fmt.Errorf("%w: no ZIP signature", ErrNotPPTX)
	}
	return sniffArchive(bytes.NewReader(data), int64(len(data)))
}

// SniffReader is Sniff over an io.ReaderAt, for callers that have not
// buffered the file.
func SniffReader(r io.ReaderAt, size int64) error {
	magic := make([]byte, 4)
	if n, err := r.ReadAt(magic, 0); err != nil && err != io.EOF {
		return err
	} else if !hasZipMagic(magic[:n]) {
		return fmt.Errorf("%w: no ZIP signature", ErrNotPPTX)
	}
	return sniffArchive(r, size)
}

// hasZipMagic checks the PK\x03\x04 local-file-header signature.
func hasZipMagic(data []byte) bool {
	return len(data) >= 4 &&
		data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// sniffArchive opens the ZIP directory and looks for the marker that
// distinguishes PowerPoint from the other OOXML containers: parts under
// ppt/. Word and Excel archives carry word/ and xl/ instead.
func sniffArchive(r io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotPPTX, err)
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/") {
			return nil
		}
	}
	return fmt.Errorf("%w: no ppt/ parts in archive", ErrNotPPTX)
}
