package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/jung-kurt/gofpdf"

	"SlideInk/internal/capture"
)

// ErrNothingToExport is returned when a deck without pages is written.
var ErrNothingToExport = errors.New("export: no snapshots to export")

const pageMargin = 10.0 // mm

// Page is one captured slide.
type Page struct {
	Title         string
	PNG           []byte
	Width, Height int
}

// Deck collects annotated slide snapshots for a handout.
type Deck struct {
	pages []Page
}

// Add encodes img and appends it as a page.
func (d *Deck) Add(title string, img image.Image) error {
	var buf bytes.Buffer
	if err := capture.EncodePNG(&buf, img); err != nil {
		return err
	}
	b := img.Bounds()
	d.pages = append(d.pages, Page{Title: title, PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()})
	log.Printf("[EXPORT] Captured %q (%dx%d), %d page(s) queued", title, b.Dx(), b.Dy(), len(d.pages))
	return nil
}

// Len returns the number of pages.
func (d *Deck) Len() int { return len(d.pages) }

// WritePDF writes the deck to a PDF file, one landscape A4 page per snapshot.
func (d *Deck) WritePDF(path string) error {
	if len(d.pages) == 0 {
		return ErrNothingToExport
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	log.Printf("[EXPORT] Wrote %d page(s) to %s", len(d.pages), path)
	return nil
}

// WriteTo streams the PDF to w.
func (d *Deck) WriteTo(w io.Writer) (int64, error) {
	p, err := d.build()
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	if err := p.Output(cw); err != nil {
		return cw.n, fmt.Errorf("export: write pdf: %w", err)
	}
	return cw.n, nil
}

func (d *Deck) build() (*gofpdf.Fpdf, error) {
	if len(d.pages) == 0 {
		return nil, ErrNothingToExport
	}
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetCreator("SlideInk", true)
	pageW, pageH := p.GetPageSize()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}

	for i, page := range d.pages {
		p.AddPage()
		name := fmt.Sprintf("slide-%d", i)
		p.RegisterImageOptionsReader(name, opts, bytes.NewReader(page.PNG))

		// fit inside the margins keeping the aspect ratio
		boxW, boxH := pageW-2*pageMargin, pageH-2*pageMargin
		w, h := boxW, boxW*float64(page.Height)/float64(page.Width)
		if h > boxH {
			w, h = boxH*float64(page.Width)/float64(page.Height), boxH
		}
		x, y := (pageW-w)/2, (pageH-h)/2
		p.ImageOptions(name, x, y, w, h, false, opts, 0, "")
		if p.Err() {
			return nil, fmt.Errorf("export: page %d (%s): %w", i+1, page.Title, p.Error())
		}
	}
	return p, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
