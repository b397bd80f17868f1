package pdfdocument

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/user/slidextract/pkg/adapters/ggrenderer"
	"github.com/user/slidextract/pkg/adapters/osfilesystem"
	"github.com/user/slidextract/pkg/mocks"
	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/ports"
)

func solid(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, 255
	}
	return img
}

func TestWriter_CommitWritesReadablePDF(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := New(fs, ggrenderer.New())

	doc, err := w.NewDocument(ports.DocumentOptions{PageWidth: 320, PageHeight: 180, Title: "Quarterly review"})
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}

	colors := []color.RGBA{{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255}}
	for _, c := range colors {
		if err := doc.AddPage(solid(320, 180, c)); err != nil {
			t.Fatalf("AddPage failed: %v", err)
		}
	}
	if doc.PageCount() != 3 {
		t.Errorf("expected 3 pages, got %d", doc.PageCount())
	}

	out := filepath.Join("out", "slides.pdf")
	if err := doc.Commit(out); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	data, ok := fs.GetFile(out)
	if !ok {
		t.Fatalf("expected %s to be written", out)
	}

	info, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Pages != 3 {
		t.Errorf("expected 3 pages in PDF, got %d", info.Pages)
	}
	if info.Width != 320 || info.Height != 180 {
		t.Errorf("expected 320x180 page, got %vx%v", info.Width, info.Height)
	}
	if info.Title != "Quarterly review" {
		t.Errorf("expected title to round-trip, got %q", info.Title)
	}
}

func TestWriter_InvalidPageSize(t *testing.T) {
	w := New(mocks.NewFileSystem(), &mocks.Renderer{})

	_, err := w.NewDocument(ports.DocumentOptions{PageWidth: 0, PageHeight: 100})
	if !errors.Is(err, pipeline.ErrDocumentWrite) {
		t.Errorf("expected ErrDocumentWrite, got %v", err)
	}
}

func TestDocument_RejectsMismatchedPage(t *testing.T) {
	w := New(mocks.NewFileSystem(), ggrenderer.New())
	doc, err := w.NewDocument(ports.DocumentOptions{PageWidth: 100, PageHeight: 100})
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}

	err = doc.AddPage(solid(50, 100, color.RGBA{A: 255}))
	if !errors.Is(err, pipeline.ErrDocumentWrite) {
		t.Errorf("expected ErrDocumentWrite, got %v", err)
	}
	if doc.PageCount() != 0 {
		t.Errorf("expected no pages, got %d", doc.PageCount())
	}
}

func TestDocument_EncodeFailure(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("encoder exploded")
		},
	}
	doc, err := New(mocks.NewFileSystem(), renderer).NewDocument(ports.DocumentOptions{PageWidth: 10, PageHeight: 10})
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}

	if err := doc.AddPage(solid(10, 10, color.RGBA{A: 255})); !errors.Is(err, pipeline.ErrDocumentWrite) {
		t.Errorf("expected ErrDocumentWrite, got %v", err)
	}
}

func TestDocument_JPEGQualityDefault(t *testing.T) {
	var got int
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			got = quality
			return ggrenderer.New().EncodeImage(img, format, quality)
		},
	}
	doc, err := New(mocks.NewFileSystem(), renderer).NewDocument(ports.DocumentOptions{PageWidth: 10, PageHeight: 10})
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := doc.AddPage(solid(10, 10, color.RGBA{A: 255})); err != nil {
		t.Fatalf("AddPage failed: %v", err)
	}
	if got != DefaultJPEGQuality {
		t.Errorf("expected quality %d, got %d", DefaultJPEGQuality, got)
	}
}

func TestDocument_CommitEmpty(t *testing.T) {
	fs := mocks.NewFileSystem()
	doc, err := New(fs, ggrenderer.New()).NewDocument(ports.DocumentOptions{PageWidth: 10, PageHeight: 10})
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}

	if err := doc.Commit("empty.pdf"); !errors.Is(err, pipeline.ErrDocumentWrite) {
		t.Errorf("expected ErrDocumentWrite, got %v", err)
	}
	if _, ok := fs.GetFile("empty.pdf"); ok {
		t.Error("expected no file for an empty document")
	}
}

func TestDocument_CommitWriteFailureLeavesNothing(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileAtomicFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}

	doc, err := New(fs, ggrenderer.New()).NewDocument(ports.DocumentOptions{PageWidth: 10, PageHeight: 10})
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := doc.AddPage(solid(10, 10, color.RGBA{A: 255})); err != nil {
		t.Fatalf("AddPage failed: %v", err)
	}

	if err := doc.Commit("slides.pdf"); !errors.Is(err, pipeline.ErrDocumentWrite) {
		t.Errorf("expected ErrDocumentWrite, got %v", err)
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected no files after failed commit")
	}
}

func TestDocument_DiscardAfterCommitIsNoop(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "slides.pdf")
	fs := osfilesystem.New()

	doc, err := New(fs, ggrenderer.New()).NewDocument(ports.DocumentOptions{PageWidth: 16, PageHeight: 9})
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := doc.AddPage(solid(16, 9, color.RGBA{R: 10, G: 20, B: 30, A: 255})); err != nil {
		t.Fatalf("AddPage failed: %v", err)
	}
	if err := doc.Commit(out); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if err := doc.Discard(); err != nil {
		t.Errorf("Discard after Commit failed: %v", err)
	}

	data, err := fs.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	info, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Pages != 1 {
		t.Errorf("expected 1 page, got %d", info.Pages)
	}
}

func TestDocument_UseAfterDiscard(t *testing.T) {
	doc, err := New(mocks.NewFileSystem(), ggrenderer.New()).NewDocument(ports.DocumentOptions{PageWidth: 10, PageHeight: 10})
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := doc.Discard(); err != nil {
		t.Fatalf("Discard failed: %v", err)
	}
	if err := doc.AddPage(solid(10, 10, color.RGBA{A: 255})); err == nil {
		t.Error("expected error adding a page after Discard")
	}
}

func TestInspect_Garbage(t *testing.T) {
	if _, err := Inspect([]byte("definitely not a pdf")); err == nil {
		t.Error("expected error for non-PDF data")
	}
}
