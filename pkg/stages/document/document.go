// Package document implements the document assembly stage.
package document

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/ports"
)

// Label layout in page pixels.
const (
	labelMargin  = 10
	labelPadding = 4
)

var (
	labelColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	labelBackColor = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// Stage renders detected slides into a paginated document.
type Stage struct {
	renderer   ports.Renderer
	writer     ports.DocumentWriter
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new document stage.
func NewStage(renderer ports.Renderer, writer ports.DocumentWriter, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		renderer:   renderer,
		writer:     writer,
		logger:     logger.WithComponent("document"),
		numWorkers: numWorkers,
	}
}

// Execute composes one page per event, in event order, and commits the document.
// On any failure the document is discarded and nothing is written.
func (s *Stage) Execute(ctx context.Context, input pipeline.DocumentInput) (pipeline.DocumentResult, error) {
	if len(input.Events) == 0 {
		return pipeline.DocumentResult{}, fmt.Errorf("%w: no slides to write", pipeline.ErrDocumentWrite)
	}
	if input.OutputPath == "" {
		return pipeline.DocumentResult{}, fmt.Errorf("%w: no output path", pipeline.ErrInvalidConfiguration)
	}

	page := input.PageSize
	if page.IsZero() {
		first := input.Events[0].Frame
		page = pipeline.PageSize{Width: first.Width, Height: first.Height}
	}
	if page.IsZero() {
		return pipeline.DocumentResult{}, fmt.Errorf("%w: invalid page size %dx%d", pipeline.ErrDocumentWrite, page.Width, page.Height)
	}

	s.logger.Debug("Composing %d pages at %dx%d with %d workers", len(input.Events), page.Width, page.Height, s.numWorkers)

	doc, err := s.writer.NewDocument(ports.DocumentOptions{
		PageWidth:   page.Width,
		PageHeight:  page.Height,
		JPEGQuality: input.JPEGQuality,
		Title:       input.Title,
	})
	if err != nil {
		return pipeline.DocumentResult{}, fmt.Errorf("%w: open document: %v", pipeline.ErrDocumentWrite, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := doc.Discard(); err != nil {
				s.logger.Warn("Failed to discard document: %v", err)
			}
		}
	}()

	pages, err := s.composeParallel(ctx, input, page)
	if err != nil {
		return pipeline.DocumentResult{}, err
	}

	for i, img := range pages {
		if err := ctx.Err(); err != nil {
			return pipeline.DocumentResult{}, err
		}
		if err := doc.AddPage(img); err != nil {
			return pipeline.DocumentResult{}, wrapWrite(fmt.Sprintf("add page %d", i+1), err)
		}
	}

	if err := ctx.Err(); err != nil {
		return pipeline.DocumentResult{}, err
	}
	if err := doc.Commit(input.OutputPath); err != nil {
		return pipeline.DocumentResult{}, wrapWrite("commit "+input.OutputPath, err)
	}
	committed = true

	s.logger.Debug("Wrote %d pages to %s", doc.PageCount(), input.OutputPath)

	return pipeline.DocumentResult{
		Path:      input.OutputPath,
		PageCount: doc.PageCount(),
		PageSize:  page,
	}, nil
}

// indexedPage holds a page with its event index for sorting.
type indexedPage struct {
	index int
	img   image.Image
}

// composeParallel renders pages on a worker pool and returns them in event order.
func (s *Stage) composeParallel(ctx context.Context, input pipeline.DocumentInput, page pipeline.PageSize) ([]image.Image, error) {
	numPages := len(input.Events)
	workers := s.numWorkers
	if workers > numPages {
		workers = numPages
	}

	jobs := make(chan int, numPages)
	results := make(chan indexedPage, numPages)
	errChan := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				img, err := s.composePage(input.Events[idx], page, input)
				if err != nil {
					select {
					case errChan <- wrapWrite(fmt.Sprintf("compose page %d", idx+1), err):
					default:
					}
					return
				}
				results <- indexedPage{index: idx, img: img}
			}
		}()
	}

	for i := 0; i < numPages; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
		close(errChan)
	}()

	collected := make([]indexedPage, 0, numPages)
	for r := range results {
		collected = append(collected, r)
	}

	if err := <-errChan; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(collected) != numPages {
		return nil, fmt.Errorf("%w: composed %d of %d pages", pipeline.ErrDocumentWrite, len(collected), numPages)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	pages := make([]image.Image, numPages)
	for i, p := range collected {
		pages[i] = p.img
	}
	return pages, nil
}

// composePage letterboxes the slide frame on the page and stamps its time.
func (s *Stage) composePage(ev pipeline.SlideEvent, page pipeline.PageSize, input pipeline.DocumentInput) (image.Image, error) {
	if !ev.Frame.Valid() {
		return nil, fmt.Errorf("slide %d has an invalid frame", ev.Index)
	}

	bg := input.Background
	if bg == nil {
		bg = color.Black
	}
	canvas := s.renderer.CreateCanvas(page.Width, page.Height, bg)

	dst := Fit(ev.Frame.Width, ev.Frame.Height, page.Width, page.Height)
	img := s.renderer.ResizeImage(ev.Frame.Image(), dst.Dx(), dst.Dy())
	canvas.DrawImage(img, dst.Min.X, dst.Min.Y)

	if input.ShowTimestamps {
		drawLabel(canvas, TimestampLabel(ev), page)
	}

	return canvas.ToImage(), nil
}

// drawLabel draws text on a translucent box in the bottom-left corner.
func drawLabel(canvas ports.Canvas, text string, page pipeline.PageSize) {
	style := ports.TextStyle{Color: labelColor, Align: ports.AlignLeft}
	w, h := canvas.MeasureText(text, style)

	boxW := int(math.Ceil(w)) + 2*labelPadding
	boxH := int(math.Ceil(h)) + 2*labelPadding
	boxX := labelMargin
	boxY := page.Height - labelMargin - boxH

	canvas.DrawRect(boxX, boxY, boxW, boxH, labelBackColor)
	canvas.DrawText(text, boxX+labelPadding, boxY+boxH/2, style)
}

// TimestampLabel returns the page label for a slide.
func TimestampLabel(ev pipeline.SlideEvent) string {
	return "Time: " + pipeline.FormatClock(ev.Frame.Timestamp)
}

// Fit returns the largest rectangle with the source aspect ratio that fits
// inside the destination, centered.
func Fit(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}

	scale := math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))
	w = min(max(w, 1), dstW)
	h = min(max(h, 1), dstH)

	x := (dstW - w) / 2
	y := (dstH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// wrapWrite tags err as a document write failure unless it already is one.
func wrapWrite(what string, err error) error {
	if errors.Is(err, pipeline.ErrDocumentWrite) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%w: %s: %v", pipeline.ErrDocumentWrite, what, err)
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.DocumentInput, pipeline.DocumentResult] = (*Stage)(nil)
