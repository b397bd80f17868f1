package ports

import (
	"image"
)

// DocumentOptions configures a new output document.
type DocumentOptions struct {
	PageWidth   int // Page width in pixels
	PageHeight  int // Page height in pixels
	JPEGQuality int // Quality of embedded page images (1-100)
	Title       string
}

// DocumentWriter creates paginated output documents.
type DocumentWriter interface {
	// NewDocument opens an empty document.
	NewDocument(opts DocumentOptions) (Document, error)
}

// Document is an open, uncommitted output document.
// Exactly one of Commit or Discard releases it.
type Document interface {
	// AddPage appends img as a new page. The image must already match the page size.
	AddPage(img image.Image) error

	// PageCount returns the number of pages added so far.
	PageCount() int

	// Commit writes the document to path atomically. On failure nothing is left at path.
	Commit(path string) error

	// Discard releases the document without writing it. It is a no-op after Commit.
	Discard() error
}
