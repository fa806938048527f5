// Package pdf wraps the pdfcpu toolkit behind the small document contract the
// path model and the surgery engine consume: page enumeration, per-page
// operator streams, metadata, and the write side that replaces page content
// and saves the edited document.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Metadata holds the document information dictionary fields.
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	Version      string
	CreationDate time.Time
	ModDate      time.Time
}

// Document is an open PDF document backed by a pdfcpu context.
type Document struct {
	ctx      *model.Context
	filepath string
	metadata Metadata
}

// Open opens a PDF file.
func Open(filepath string) (*Document, error) {
	return OpenWithPassword(filepath, "")
}

// OpenWithPassword opens a password-protected PDF file.
func OpenWithPassword(path string, password string) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	doc := &Document{ctx: ctx, filepath: path}
	doc.extractMetadata()
	return doc, nil
}

// extractMetadata resolves the Info dictionary into the Metadata struct.
func (d *Document) extractMetadata() {
	if d.ctx.HeaderVersion != nil {
		d.metadata.Version = d.ctx.HeaderVersion.String()
	}

	if d.ctx.Info == nil {
		return
	}
	info, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil || info == nil {
		return
	}

	d.metadata.Title = getStringFromDict(info, "Title")
	d.metadata.Author = getStringFromDict(info, "Author")
	d.metadata.Subject = getStringFromDict(info, "Subject")
	d.metadata.Keywords = getStringFromDict(info, "Keywords")
	d.metadata.Creator = getStringFromDict(info, "Creator")
	d.metadata.Producer = getStringFromDict(info, "Producer")
	d.metadata.CreationDate = parsePDFDate(getStringFromDict(info, "CreationDate"))
	d.metadata.ModDate = parsePDFDate(getStringFromDict(info, "ModDate"))
}

// Metadata returns the document metadata.
func (d *Document) Metadata() Metadata {
	return d.metadata
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Page loads the page with the given 1-based number.
func (d *Document) Page(number int) (*Page, error) {
	return newPage(d.ctx, number)
}

// SaveAs writes the document, including any replaced page content, to the
// given path. The bytes go to a temporary file in the destination directory
// first and are renamed into place on success, so a failed write never leaves
// a half-written file that could be mistaken for valid output.
func (d *Document) SaveAs(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pdfix-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temporary output: %w", err)
	}
	tmpName := tmp.Name()

	if err := api.WriteContext(d.ctx, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// Close releases resources associated with the document.
func (d *Document) Close() error {
	d.ctx = nil
	return nil
}

func getStringFromDict(dict types.Dict, key string) string {
	if dict == nil {
		return ""
	}
	obj := dict[key]
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case types.StringLiteral:
		return string(v)
	case types.HexLiteral:
		return string(v)
	default:
		return ""
	}
}

// parsePDFDate parses the "D:YYYYMMDDHHmmSS..." date form used by the Info
// dictionary. Timezone suffixes are ignored.
func parsePDFDate(dateStr string) time.Time {
	if len(dateStr) >= 2 && dateStr[:2] == "D:" {
		dateStr = dateStr[2:]
	}
	if len(dateStr) >= 14 {
		if t, err := time.Parse("20060102150405", dateStr[:14]); err == nil {
			return t
		}
	}
	if len(dateStr) >= 8 {
		if t, err := time.Parse("20060102", dateStr[:8]); err == nil {
			return t
		}
	}
	return time.Time{}
}
