// Package region builds the exclusion mask for the ignored screen region.
package region

import (
	"image"
	"math"

	"github.com/user/slidextract/pkg/pipeline"
)

// Mask marks the pixels excluded from frame comparison.
// It is computed once per frame size and never modified afterwards.
type Mask struct {
	width    int
	height   int
	rect     image.Rectangle
	excluded []bool
}

// Build computes the mask for a frame of the given dimensions.
//
// The region is round(width*WidthRatio) x round(height*HeightRatio) pixels,
// anchored at spec.Corner. A zero ratio on either axis yields an empty mask.
func Build(width, height int, spec pipeline.RegionSpec) Mask {
	regionW := int(math.Round(float64(width) * spec.WidthRatio))
	regionH := int(math.Round(float64(height) * spec.HeightRatio))

	var x0, y0 int
	switch spec.Corner {
	case pipeline.TopRight:
		x0 = width - regionW
	case pipeline.BottomLeft:
		y0 = height - regionH
	case pipeline.BottomRight:
		x0 = width - regionW
		y0 = height - regionH
	}

	rect := image.Rect(x0, y0, x0+regionW, y0+regionH).Intersect(image.Rect(0, 0, width, height))

	m := Mask{
		width:    width,
		height:   height,
		rect:     rect,
		excluded: make([]bool, width*height),
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := m.excluded[y*width : (y+1)*width]
		for x := rect.Min.X; x < rect.Max.X; x++ {
			row[x] = true
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m Mask) Height() int { return m.height }

// Rect returns the excluded rectangle. It is empty for a no-op mask.
func (m Mask) Rect() image.Rectangle { return m.rect }

// Excluded reports whether pixel (x, y) is ignored.
func (m Mask) Excluded(x, y int) bool {
	return m.excluded[y*m.width+x]
}

// ExcludedAt reports whether the pixel at linear index i (y*width+x) is ignored.
func (m Mask) ExcludedAt(i int) bool {
	return m.excluded[i]
}

// ExcludedCount returns the number of ignored pixels.
func (m Mask) ExcludedCount() int {
	return m.rect.Dx() * m.rect.Dy()
}

// IncludedCount returns the number of pixels that take part in comparison.
func (m Mask) IncludedCount() int {
	return m.width*m.height - m.ExcludedCount()
}

// Matches reports whether the mask was built for the given dimensions.
func (m Mask) Matches(width, height int) bool {
	return m.width == width && m.height == height
}

// Image renders the mask: excluded pixels black, compared pixels white.
func (m Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for i, ex := range m.excluded {
		if !ex {
			img.Pix[i] = 0xff
		}
	}
	return img
}
