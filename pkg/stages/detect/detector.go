package detect

import (
	"fmt"
	"time"

	"github.com/user/slidextract/pkg/framediff"
	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/region"
)

// Detector is the slide boundary state machine.
//
// Every frame is compared against the last emitted slide, never the
// previously observed frame. State changes only inside Observe.
type Detector struct {
	params pipeline.DetectionParams
	mask   region.Mask

	baseline     pipeline.Frame
	baselineTime time.Duration
	slides       int
}

// NewDetector creates a Detector for frames matching mask.
func NewDetector(params pipeline.DetectionParams, mask region.Mask) *Detector {
	return &Detector{params: params, mask: mask}
}

// Observe feeds the next frame in presentation order. It reports whether the
// frame starts a new slide and, if so, the emitted event.
// The first observed frame is always slide 0.
func (d *Detector) Observe(f pipeline.Frame) (pipeline.SlideEvent, bool, error) {
	if d.slides == 0 {
		if !d.mask.Matches(f.Width, f.Height) {
			return pipeline.SlideEvent{}, false, fmt.Errorf("%w: frame %dx%d, mask %dx%d",
				pipeline.ErrDimensionMismatch, f.Width, f.Height, d.mask.Width(), d.mask.Height())
		}
		if !f.Valid() {
			return pipeline.SlideEvent{}, false, fmt.Errorf("%w: frame %d has %d bytes for %dx%d",
				pipeline.ErrDimensionMismatch, f.Index, len(f.Pix), f.Width, f.Height)
		}
		return d.emit(f, 0), true, nil
	}

	score, err := framediff.Score(d.baseline, f, d.mask)
	if err != nil {
		return pipeline.SlideEvent{}, false, fmt.Errorf("frame %d: %w", f.Index, err)
	}

	if score < d.params.Threshold || f.Timestamp-d.baselineTime < d.params.MinInterval {
		return pipeline.SlideEvent{}, false, nil
	}
	return d.emit(f, score), true, nil
}

func (d *Detector) emit(f pipeline.Frame, score float64) pipeline.SlideEvent {
	ev := pipeline.SlideEvent{Index: d.slides, Frame: f, Score: score}
	d.baseline = f
	d.baselineTime = f.Timestamp
	d.slides++
	return ev
}

// Slides returns the number of slides emitted so far.
func (d *Detector) Slides() int {
	return d.slides
}
