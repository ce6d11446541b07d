package proposalpdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Result holds a rendered proposal and provides helpers for common output
// formats such as raw bytes, base64 encoding, and streaming readers.
//
// A Result is only returned for a complete document. It is safe to call
// its methods multiple times; the underlying data is never modified.
type Result struct {
	data     []byte
	id       string
	pages    int
	fileName string
	labels   []string
	path     string
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Base64 returns the PDF encoded as a standard base64 string (RFC 4648),
// for embedding in JSON payloads.
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns an [*bytes.Reader] over the PDF content.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// Save writes the PDF into dir under [Result.FileName] and returns the
// full path.
func (r *Result) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("proposalpdf: creating output dir: %w", err)
	}
	path := filepath.Join(dir, r.fileName)
	if err := r.WriteToFile(path, 0o644); err != nil {
		return "", fmt.Errorf("proposalpdf: saving: %w", err)
	}
	r.path = path
	return path, nil
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// PageCount returns the number of pages in the document.
func (r *Result) PageCount() int {
	return r.pages
}

// FileName returns the suggested file name, see [FileName].
func (r *Result) FileName() string {
	return r.fileName
}

// ID returns the render ID logged as render_id.
func (r *Result) ID() string {
	return r.id
}

// FooterLabels returns the page labels stamped on each page, in order.
func (r *Result) FooterLabels() []string {
	return r.labels
}

// Path returns where the PDF was saved, or "" for an in-memory result.
func (r *Result) Path() string {
	return r.path
}
