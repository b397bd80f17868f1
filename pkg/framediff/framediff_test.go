package framediff

import (
	"errors"
	"math"
	"testing"

	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/region"
)

// solidFrame creates a frame filled with a single RGB value.
func solidFrame(width, height int, r, g, b uint8) pipeline.Frame {
	f := pipeline.NewFrame(0, width, height, 0)
	for i := 0; i < len(f.Pix); i += pipeline.Channels {
		f.Pix[i] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
	}
	return f
}

// patternFrame creates a frame with a deterministic gradient.
func patternFrame(width, height, seed int) pipeline.Frame {
	f := pipeline.NewFrame(0, width, height, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := f.Offset(x, y)
			f.Pix[o] = uint8((x*7 + seed) % 256)
			f.Pix[o+1] = uint8((y*13 + seed*3) % 256)
			f.Pix[o+2] = uint8((x + y + seed*5) % 256)
		}
	}
	return f
}

func mustRegion(t *testing.T, w, h float64, c pipeline.Corner) pipeline.RegionSpec {
	t.Helper()
	rs, err := pipeline.NewRegionSpec(w, h, c)
	if err != nil {
		t.Fatalf("NewRegionSpec failed: %v", err)
	}
	return rs
}

func TestScore_IdenticalFramesAreZero(t *testing.T) {
	regions := []pipeline.RegionSpec{
		mustRegion(t, 0, 0, pipeline.TopLeft),
		mustRegion(t, 0.3, 0.4, pipeline.BottomRight),
		mustRegion(t, 1, 1, pipeline.TopLeft),
	}

	f := patternFrame(32, 24, 1)
	for _, rs := range regions {
		mask := region.Build(32, 24, rs)
		score, err := Score(f, f, mask)
		if err != nil {
			t.Fatalf("Score failed: %v", err)
		}
		if score != 0 {
			t.Errorf("region %+v: expected 0, got %v", rs, score)
		}
	}
}

func TestScore_BlackVsWhiteIsOne(t *testing.T) {
	mask := region.Build(8, 8, pipeline.RegionSpec{})

	score, err := Score(solidFrame(8, 8, 0, 0, 0), solidFrame(8, 8, 255, 255, 255), mask)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != 1 {
		t.Errorf("expected 1, got %v", score)
	}
}

func TestScore_FullFrameMeanAbsoluteDifference(t *testing.T) {
	a := patternFrame(20, 10, 0)
	b := patternFrame(20, 10, 9)
	mask := region.Build(20, 10, mustRegion(t, 0, 0, pipeline.TopLeft))

	var sum float64
	for i := range a.Pix {
		sum += math.Abs(float64(a.Pix[i]) - float64(b.Pix[i]))
	}
	want := sum / float64(len(a.Pix)) / 255

	got, err := Score(a, b, mask)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestScore_Symmetric(t *testing.T) {
	a := patternFrame(40, 30, 2)
	b := patternFrame(40, 30, 11)
	mask := region.Build(40, 30, mustRegion(t, 0.25, 0.25, pipeline.TopRight))

	ab, err := Score(a, b, mask)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	ba, err := Score(b, a, mask)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if ab != ba {
		t.Errorf("expected symmetric score, got %v and %v", ab, ba)
	}
}

func TestScore_IgnoresMaskedRegion(t *testing.T) {
	prev := solidFrame(10, 10, 100, 100, 100)
	curr := solidFrame(10, 10, 100, 100, 100)

	// Change only the top-left 5x5 block, which is masked.
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			o := curr.Offset(x, y)
			curr.Pix[o], curr.Pix[o+1], curr.Pix[o+2] = 255, 0, 0
		}
	}

	mask := region.Build(10, 10, mustRegion(t, 0.5, 0.5, pipeline.TopLeft))
	score, err := Score(prev, curr, mask)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != 0 {
		t.Errorf("expected masked change to score 0, got %v", score)
	}

	// Without the mask the change is visible.
	score, _ = Score(prev, curr, region.Build(10, 10, pipeline.RegionSpec{}))
	if score == 0 {
		t.Error("expected unmasked change to score above 0")
	}
}

func TestScore_NormalizesByIncludedPixels(t *testing.T) {
	// Half the frame is masked; the other half changes from 0 to 51 on every channel.
	prev := solidFrame(10, 4, 0, 0, 0)
	curr := solidFrame(10, 4, 0, 0, 0)
	for y := 0; y < 4; y++ {
		for x := 5; x < 10; x++ {
			o := curr.Offset(x, y)
			curr.Pix[o], curr.Pix[o+1], curr.Pix[o+2] = 51, 51, 51
		}
	}

	mask := region.Build(10, 4, mustRegion(t, 0.5, 1, pipeline.TopLeft))
	score, err := Score(prev, curr, mask)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(score-0.2) > 1e-12 {
		t.Errorf("expected 0.2, got %v", score)
	}
}

func TestScore_FullMaskIsZero(t *testing.T) {
	mask := region.Build(6, 6, mustRegion(t, 1, 1, pipeline.BottomLeft))

	score, err := Score(solidFrame(6, 6, 0, 0, 0), solidFrame(6, 6, 255, 255, 255), mask)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != 0 {
		t.Errorf("expected 0 for a full mask, got %v", score)
	}
}

func TestScore_DimensionMismatch(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr pipeline.Frame
		mask       region.Mask
	}{
		{
			name: "frames differ",
			prev: solidFrame(8, 8, 0, 0, 0),
			curr: solidFrame(8, 6, 0, 0, 0),
			mask: region.Build(8, 8, pipeline.RegionSpec{}),
		},
		{
			name: "mask differs",
			prev: solidFrame(8, 8, 0, 0, 0),
			curr: solidFrame(8, 8, 0, 0, 0),
			mask: region.Build(4, 4, pipeline.RegionSpec{}),
		},
		{
			name: "short buffer",
			prev: pipeline.Frame{Width: 8, Height: 8, Pix: make([]uint8, 10)},
			curr: solidFrame(8, 8, 0, 0, 0),
			mask: region.Build(8, 8, pipeline.RegionSpec{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.prev, tt.curr, tt.mask)
			if !errors.Is(err, pipeline.ErrDimensionMismatch) {
				t.Errorf("expected ErrDimensionMismatch, got %v", err)
			}
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	a := patternFrame(33, 17, 4)
	b := patternFrame(33, 17, 8)
	mask := region.Build(33, 17, mustRegion(t, 0.2, 0.3, pipeline.BottomLeft))

	first, _ := Score(a, b, mask)
	for i := 0; i < 5; i++ {
		again, _ := Score(a, b, mask)
		if again != first {
			t.Fatalf("expected identical score %v, got %v", first, again)
		}
	}
}
