package summarizer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestForPath(t *testing.T) {
	md := NewMarkdownFormatter()

	tests := []struct {
		path     string
		wantJSON bool
	}{
		{"summary.md", false},
		{"summary.json", true},
		{"out/SUMMARY.JSON", true},
		{"summary", false},
	}

	for _, tt := range tests {
		_, isJSON := ForPath(tt.path, md).(JSONFormatter)
		if isJSON != tt.wantJSON {
			t.Errorf("ForPath(%q): json=%v, want %v", tt.path, isJSON, tt.wantJSON)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	s := NewBuilder().
		WithInput("talk.mp4", "talk.mp4").
		WithVideo(VideoInfo{Width: 1280, Height: 720, FramesScanned: 90, MaskedPixels: 20736}).
		WithSettings(Settings{Position: "top-left", SpeakerWidth: 0.15, SpeakerHeight: 0.15, Threshold: 0.25, MinInterval: 2 * time.Second, SampleFPS: 1}).
		AddSlide(Slide{Index: 0}).
		AddSlide(Slide{Index: 1, FrameIndex: 65, Timestamp: 65 * time.Second, Score: 0.5}).
		WithDocument(DocumentInfo{Path: "slides.pdf", PageCount: 2, PageWidth: 1280, PageHeight: 720}).
		WithElapsed(1500 * time.Millisecond).
		Build()

	var got jsonSummary
	if err := json.Unmarshal([]byte(JSONFormatter{}.Format(s)), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if got.ElapsedSeconds != 1.5 {
		t.Errorf("expected 1.5 elapsed seconds, got %v", got.ElapsedSeconds)
	}
	if got.Settings.MinIntervalSeconds != 2 {
		t.Errorf("expected 2 second interval, got %v", got.Settings.MinIntervalSeconds)
	}
	if got.Document.PageCount != 2 || got.Video.MaskedPixels != 20736 {
		t.Errorf("unexpected document/video: %+v %+v", got.Document, got.Video)
	}

	want := []jsonSlide{
		{Index: 0, Clock: "00:00:00"},
		{Index: 1, FrameIndex: 65, Seconds: 65, Clock: "00:01:05", Score: 0.5},
	}
	if diff := cmp.Diff(want, got.Slides); diff != "" {
		t.Errorf("slides mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFormatter_NoSlides(t *testing.T) {
	out := JSONFormatter{}.Format(NewSummary())

	var raw map[string]any
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if slides, ok := raw["slides"].([]any); !ok || len(slides) != 0 {
		t.Errorf("expected an empty slides array, got %v", raw["slides"])
	}
}
