package pipeline

import "errors"

// Error kinds surfaced to the top-level caller. Every failure returned by the
// stages wraps exactly one of these, so callers can tell them apart with errors.Is.
var (
	// ErrInvalidConfiguration is returned when a ratio, threshold or interval
	// is out of range. It is raised before any frame is processed.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrFrameAccess is returned when the frame source cannot produce a frame.
	ErrFrameAccess = errors.New("frame access failure")

	// ErrDimensionMismatch is returned when two frames, or a frame and a mask,
	// do not share the same dimensions.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDocumentWrite is returned when the output document cannot be built or committed.
	ErrDocumentWrite = errors.New("document write failure")
)
