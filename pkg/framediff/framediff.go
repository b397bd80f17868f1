// Package framediff scores the visual dissimilarity of two frames.
package framediff

import (
	"fmt"

	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/region"
)

// maxChannelValue is the largest value of an 8-bit channel.
const maxChannelValue = 255

// Score returns the mean absolute per-channel difference between prev and curr
// over the pixels not excluded by mask, normalized to [0,1].
//
// A mask that excludes every pixel yields 0. Both frames and the mask must
// share the same dimensions; otherwise an error wrapping
// pipeline.ErrDimensionMismatch is returned.
func Score(prev, curr pipeline.Frame, mask region.Mask) (float64, error) {
	if err := checkDimensions(prev, curr, mask); err != nil {
		return 0, err
	}

	included := mask.IncludedCount()
	if included == 0 {
		return 0, nil
	}

	var sum uint64
	if mask.ExcludedCount() == 0 {
		sum = absDiffSum(prev.Pix, curr.Pix)
	} else {
		n := prev.Width * prev.Height
		for i := 0; i < n; i++ {
			if mask.ExcludedAt(i) {
				continue
			}
			o := i * pipeline.Channels
			sum += absDiffSum(prev.Pix[o:o+pipeline.Channels], curr.Pix[o:o+pipeline.Channels])
		}
	}

	return float64(sum) / (float64(included) * pipeline.Channels * maxChannelValue), nil
}

func checkDimensions(prev, curr pipeline.Frame, mask region.Mask) error {
	if prev.Width != curr.Width || prev.Height != curr.Height {
		return fmt.Errorf("%w: frame %dx%d vs %dx%d",
			pipeline.ErrDimensionMismatch, prev.Width, prev.Height, curr.Width, curr.Height)
	}
	if !mask.Matches(curr.Width, curr.Height) {
		return fmt.Errorf("%w: frame %dx%d vs mask %dx%d",
			pipeline.ErrDimensionMismatch, curr.Width, curr.Height, mask.Width(), mask.Height())
	}
	if !prev.Valid() || !curr.Valid() {
		return fmt.Errorf("%w: pixel buffer does not match %dx%d",
			pipeline.ErrDimensionMismatch, curr.Width, curr.Height)
	}
	return nil
}

func absDiffSum(a, b []uint8) uint64 {
	var sum uint64
	for i := range a {
		if a[i] > b[i] {
			sum += uint64(a[i] - b[i])
		} else {
			sum += uint64(b[i] - a[i])
		}
	}
	return sum
}
