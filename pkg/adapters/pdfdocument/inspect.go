package pdfdocument

import (
	"bytes"
	"fmt"

	"rsc.io/pdf"
)

// Info summarizes a PDF file.
type Info struct {
	Pages  int
	Width  float64 // Width of the first page in points
	Height float64 // Height of the first page in points
	Title  string
}

// Inspect reads back page count, first page size and title from PDF data.
func Inspect(data []byte) (info Info, err error) {
	// rsc.io/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfdocument: malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("pdfdocument: read pdf: %w", err)
	}

	info.Pages = r.NumPage()
	if info.Pages > 0 {
		box := inherited(r.Page(1).V, "MediaBox")
		info.Width = box.Index(2).Float64() - box.Index(0).Float64()
		info.Height = box.Index(3).Float64() - box.Index(1).Float64()
	}
	info.Title = r.Trailer().Key("Info").Key("Title").Text()

	return info, nil
}

// inherited looks key up on a page node and then its ancestors.
func inherited(v pdf.Value, key string) pdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if found := v.Key(key); !found.IsNull() {
			return found
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}
