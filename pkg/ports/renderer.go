package ports

import (
	"image"
	"image/color"
)

// Renderer composes and encodes page images.
type Renderer interface {
	// CreateCanvas returns a width x height canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage encodes img. quality applies to JPEG only.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage scales img to exactly width x height.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas is a mutable page image.
type Canvas interface {
	DrawImage(img image.Image, x, y int)

	// DrawRect fills a rectangle, blending translucent colors.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawText draws a single line of text vertically centered on y.
	DrawText(text string, x, y int, style TextStyle)

	// MeasureText returns the size DrawText would cover.
	MeasureText(text string, style TextStyle) (width, height float64)

	ToImage() image.Image
}

// TextStyle controls how labels are drawn.
type TextStyle struct {
	Color color.Color

	// Align anchors x to the left edge, center or right edge of the text.
	Align TextAlign

	// FontPath optionally names a TrueType font; FontSize must be set with it.
	FontPath string
	FontSize float64
}

// TextAlign is the horizontal anchor of a text line.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat selects an image encoding.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
