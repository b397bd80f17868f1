package summarizer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/slidextract/pkg/mocks"
)

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "report" }), fs)

	path := filepath.Join("reports", "summary.md")
	if err := w.Write(path, NewSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if !fs.HasDir("reports") {
		t.Error("expected parent directory to be created")
	}
	data, ok := fs.GetFile(path)
	if !ok || string(data) != "report" {
		t.Errorf("expected report to be written, got %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileAtomicFunc = func(path string, data []byte) error {
		return errors.New("read-only file system")
	}

	w := NewWriter(NewMarkdownFormatter(), fs)
	if err := w.Write("summary.md", NewSummary()); err == nil {
		t.Error("expected write error")
	}
}

func TestWriter_EmptyPath(t *testing.T) {
	w := NewWriter(NewMarkdownFormatter(), mocks.NewFileSystem())
	if err := w.Write("", NewSummary()); err == nil {
		t.Error("expected error for empty path")
	}
}
