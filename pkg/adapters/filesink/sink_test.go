package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/slidextract/pkg/mocks"
	"github.com/user/slidextract/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
	if sink.Dir() != testBaseDir {
		t.Errorf("expected Dir %q, got %q", testBaseDir, sink.Dir())
	}
}

func TestSink_SaveDetectionJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`{"slides": 3}`)
	if err := sink.SaveDetectionJSON(data); err != nil {
		t.Fatalf("SaveDetectionJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "detection.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveMask(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.FormatPNG {
				t.Errorf("expected PNG for mask, got %d", format)
			}
			return []byte{0x89, 0x50, 0x4E, 0x47}, nil
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveMask(image.NewGray(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("SaveMask failed: %v", err)
	}

	if _, ok := fs.GetFile(filepath.Join(testBaseDir, "mask.png")); !ok {
		t.Error("expected mask.png to be saved")
	}
}

func TestSink_SaveSlide(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.FormatJPEG {
				t.Errorf("expected JPEG for slides, got %d", format)
			}
			return []byte{0xFF, 0xD8, 0xFF}, nil
		},
	}
	sink := New(testBaseDir, fs, renderer)

	for i := 0; i < 3; i++ {
		if err := sink.SaveSlide(i, image.NewRGBA(image.Rect(0, 0, 16, 9))); err != nil {
			t.Fatalf("SaveSlide %d failed: %v", i, err)
		}
	}

	expectedPath := filepath.Join(testBaseDir, "slides", "frame_0002.jpg")
	if _, ok := fs.GetFile(expectedPath); !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
	if n := len(fs.GetAllFiles()); n != 3 {
		t.Errorf("expected 3 files, got %d", n)
	}
}

func TestSink_SaveSlideEncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveSlide(0, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected encode error to propagate")
	}
	if n := len(fs.GetAllFiles()); n != 0 {
		t.Errorf("expected no files, got %d", n)
	}
}
