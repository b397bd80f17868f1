package summarizer

import (
	"fmt"
	"path/filepath"

	"github.com/user/slidextract/pkg/ports"
)

// Writer saves formatted summaries.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a Writer.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{formatter: formatter, fs: fs}
}

// Write formats summary and replaces path atomically, creating its parent
// directory first.
func (w *Writer) Write(path string, summary *Summary) error {
	if path == "" {
		return fmt.Errorf("summarizer: empty summary path")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := w.fs.WriteFileAtomic(path, []byte(w.formatter.Format(summary))); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
