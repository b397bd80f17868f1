// Package pdfdocument writes slide documents as PDF files, one image per page.
package pdfdocument

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/ports"
)

// DefaultJPEGQuality is used when DocumentOptions.JPEGQuality is unset.
const DefaultJPEGQuality = 90

// Creator is recorded in the document metadata.
const Creator = "slidextract"

var errClosed = errors.New("pdfdocument: document already closed")

// Writer implements ports.DocumentWriter using fpdf.
// One page pixel maps to one PDF point.
type Writer struct {
	fs       ports.FileSystem
	renderer ports.Renderer
	now      func() time.Time
}

// New creates a Writer that encodes pages with renderer and commits through fs.
func New(fs ports.FileSystem, renderer ports.Renderer) *Writer {
	return &Writer{fs: fs, renderer: renderer, now: time.Now}
}

// NewDocument opens an empty document with a fixed page size.
func (w *Writer) NewDocument(opts ports.DocumentOptions) (ports.Document, error) {
	if opts.PageWidth <= 0 || opts.PageHeight <= 0 {
		return nil, fmt.Errorf("%w: invalid page size %dx%d", pipeline.ErrDocumentWrite, opts.PageWidth, opts.PageHeight)
	}
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(opts.PageWidth), Ht: float64(opts.PageHeight)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(Creator, true)
	pdf.SetCreationDate(w.now())
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}

	return &Document{
		pdf:      pdf,
		opts:     opts,
		fs:       w.fs,
		renderer: w.renderer,
	}, nil
}

// Ensure Writer implements ports.DocumentWriter
var _ ports.DocumentWriter = (*Writer)(nil)

// Document is an open PDF being assembled in memory.
type Document struct {
	pdf      *fpdf.Fpdf
	opts     ports.DocumentOptions
	fs       ports.FileSystem
	renderer ports.Renderer

	pages  int
	closed bool
}

// AddPage appends img as a full-bleed page.
func (d *Document) AddPage(img image.Image) error {
	if d.closed {
		return errClosed
	}

	b := img.Bounds()
	if b.Dx() != d.opts.PageWidth || b.Dy() != d.opts.PageHeight {
		return fmt.Errorf("%w: page image %dx%d does not match page size %dx%d",
			pipeline.ErrDocumentWrite, b.Dx(), b.Dy(), d.opts.PageWidth, d.opts.PageHeight)
	}

	data, err := d.renderer.EncodeImage(img, ports.FormatJPEG, d.opts.JPEGQuality)
	if err != nil {
		return fmt.Errorf("%w: encode page %d: %v", pipeline.ErrDocumentWrite, d.pages, err)
	}

	name := fmt.Sprintf("page-%d", d.pages)
	imgOpts := fpdf.ImageOptions{ImageType: "JPG"}

	d.pdf.AddPage()
	d.pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(data))
	d.pdf.ImageOptions(name, 0, 0, float64(d.opts.PageWidth), float64(d.opts.PageHeight), false, imgOpts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("%w: add page %d: %v", pipeline.ErrDocumentWrite, d.pages, err)
	}

	d.pages++
	return nil
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int {
	return d.pages
}

// Commit renders the PDF and writes it to path atomically.
func (d *Document) Commit(path string) error {
	if d.closed {
		return errClosed
	}
	if d.pages == 0 {
		return fmt.Errorf("%w: document has no pages", pipeline.ErrDocumentWrite)
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return fmt.Errorf("%w: render pdf: %v", pipeline.ErrDocumentWrite, err)
	}
	if err := d.fs.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: write %s: %v", pipeline.ErrDocumentWrite, path, err)
	}

	d.closed = true
	return nil
}

// Discard drops the in-memory document. It is a no-op once committed.
func (d *Document) Discard() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.pdf = nil
	return nil
}

// Ensure Document implements ports.Document
var _ ports.Document = (*Document)(nil)
