package smartprobe

import (
	"context"
	"errors"
	"testing"

	"github.com/user/slidextract/pkg/mocks"
	"github.com/user/slidextract/pkg/ports"
)

func TestProber_PrefersMP4ForMP4Files(t *testing.T) {
	mp4 := &mocks.VideoProber{Info: ports.VideoInfo{Codec: "h264", Width: 1280, Height: 720, FrameRate: 30}}
	ff := &mocks.VideoProber{Info: ports.VideoInfo{Codec: "other"}}

	p := NewWith(mp4, ff)
	info, err := p.Probe(context.Background(), "/videos/talk.MP4")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	if info.Codec != "h264" {
		t.Errorf("expected mp4 result, got %+v", info)
	}
	if p.Backend() != BackendMP4 {
		t.Errorf("expected backend %s, got %s", BackendMP4, p.Backend())
	}
	if len(ff.Calls) != 0 {
		t.Errorf("expected ffprobe not to be called, got %d calls", len(ff.Calls))
	}
}

func TestProber_FallsBackOnMP4Error(t *testing.T) {
	mp4 := &mocks.VideoProber{Err: errors.New("truncated moov")}
	ff := &mocks.VideoProber{Info: ports.VideoInfo{Codec: "h264", Width: 640, Height: 360, FrameRate: 25}}

	p := NewWith(mp4, ff)
	info, err := p.Probe(context.Background(), "talk.mp4")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Width != 640 {
		t.Errorf("expected ffprobe result, got %+v", info)
	}
	if p.Backend() != BackendFFprobe {
		t.Errorf("expected backend %s, got %s", BackendFFprobe, p.Backend())
	}
}

func TestProber_FallsBackOnIncompleteMP4Info(t *testing.T) {
	mp4 := &mocks.VideoProber{Info: ports.VideoInfo{Width: 640, Height: 360}}
	ff := &mocks.VideoProber{Info: ports.VideoInfo{Width: 640, Height: 360, FrameRate: 24}}

	p := NewWith(mp4, ff)
	info, err := p.Probe(context.Background(), "talk.mov")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.FrameRate != 24 {
		t.Errorf("expected frame rate from ffprobe, got %v", info.FrameRate)
	}
}

func TestProber_SkipsMP4ForOtherContainers(t *testing.T) {
	mp4 := &mocks.VideoProber{Info: ports.VideoInfo{Width: 1, Height: 1, FrameRate: 1}}
	ff := &mocks.VideoProber{Info: ports.VideoInfo{Codec: "vp9", Width: 640, Height: 360, FrameRate: 30}}

	p := NewWith(mp4, ff)
	if _, err := p.Probe(context.Background(), "talk.webm"); err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if len(mp4.Calls) != 0 {
		t.Errorf("expected mp4 prober to be skipped, got %d calls", len(mp4.Calls))
	}
}

func TestProber_AllBackendsFail(t *testing.T) {
	mp4 := &mocks.VideoProber{Err: errors.New("bad box")}
	ff := &mocks.VideoProber{Err: errors.New("ffprobe missing")}

	_, err := NewWith(mp4, ff).Probe(context.Background(), "talk.mp4")
	if !errors.Is(err, ErrNoProberAvailable) {
		t.Errorf("expected ErrNoProberAvailable, got %v", err)
	}
}

func TestProber_NoBackends(t *testing.T) {
	_, err := NewWith(nil, nil).Probe(context.Background(), "talk.mp4")
	if !errors.Is(err, ErrNoProberAvailable) {
		t.Errorf("expected ErrNoProberAvailable, got %v", err)
	}
}
