package summarizer

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestBuilder(t *testing.T) {
	before := time.Now()

	s := NewBuilder().
		WithInput("https://example.com/talk", "/tmp/slidextract-1/video.mp4").
		WithVideo(VideoInfo{Width: 1280, Height: 720, FramesScanned: 600, MaskedPixels: 20736}).
		WithSettings(Settings{Position: "top-left", SpeakerWidth: 0.15, SpeakerHeight: 0.15, Threshold: 0.25, MinInterval: 2 * time.Second}).
		AddSlide(Slide{Index: 0}).
		AddSlide(Slide{Index: 1, FrameIndex: 300, Timestamp: 10 * time.Second, Score: 0.42}).
		WithDocument(DocumentInfo{Path: "slides.pdf", PageCount: 2, PageWidth: 1280, PageHeight: 720}).
		WithElapsed(3 * time.Second).
		Build()

	if s.GeneratedAt.Before(before) {
		t.Errorf("expected GeneratedAt to be set, got %v", s.GeneratedAt)
	}

	want := &Summary{
		GeneratedAt: s.GeneratedAt,
		Elapsed:     3 * time.Second,
		Input:       InputInfo{Source: "https://example.com/talk", VideoPath: "/tmp/slidextract-1/video.mp4"},
		Video:       VideoInfo{Width: 1280, Height: 720, FramesScanned: 600, MaskedPixels: 20736},
		Settings:    Settings{Position: "top-left", SpeakerWidth: 0.15, SpeakerHeight: 0.15, Threshold: 0.25, MinInterval: 2 * time.Second},
		Slides: []Slide{
			{Index: 0},
			{Index: 1, FrameIndex: 300, Timestamp: 10 * time.Second, Score: 0.42},
		},
		Document: DocumentInfo{Path: "slides.pdf", PageCount: 2, PageWidth: 1280, PageHeight: 720},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.Document.Path })

	if got := f.Format(&Summary{Document: DocumentInfo{Path: "a.pdf"}}); got != "a.pdf" {
		t.Errorf("expected a.pdf, got %q", got)
	}
}
