package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"SlideInk/internal/capture"
	"SlideInk/internal/export"
	"SlideInk/internal/ink"
	"SlideInk/internal/render"
)

// PenStore persists the pen between sessions.
type PenStore interface {
	SavePen(ctx context.Context, p ink.Pen) error
}

// Presenter ties the slide deck, the drawing overlay and the exports
// together. Its methods run on the UI goroutine.
type Presenter struct {
	Overlay *OverlayWidget

	slides    []Slide
	index     int
	slideView *canvas.Image
	status    *widget.Label

	deck      export.Deck
	store     PenStore
	exportDir string

	window fyne.Window
}

// NewPresenter builds the widgets for slides. store may be nil.
func NewPresenter(slides []Slide, opts ink.Options, store PenStore, exportDir string) (*Presenter, error) {
	if len(slides) == 0 {
		slides = []Slide{{Name: "blank"}}
	}
	overlay, err := NewOverlayWidget(opts)
	if err != nil {
		return nil, fmt.Errorf("create overlay: %w", err)
	}
	p := &Presenter{
		Overlay:   overlay,
		slides:    slides,
		slideView: canvas.NewImageFromImage(nil),
		status:    widget.NewLabel("Ready"),
		store:     store,
		exportDir: exportDir,
	}
	p.slideView.FillMode = canvas.ImageFillStretch
	if opts.Fit == ink.FitContain {
		p.slideView.FillMode = canvas.ImageFillContain
	}
	p.showSlide()
	return p, nil
}

// Content returns the toolbar and the annotated slide.
func (p *Presenter) Content() fyne.CanvasObject {
	surface := container.NewStack(canvas.NewRectangle(color.White), p.slideView, p.Overlay)
	return container.NewBorder(NewToolbar(p), p.status, nil, nil, surface)
}

// Slide returns the current slide and its position.
func (p *Presenter) Slide() (Slide, int) { return p.slides[p.index], p.index }

// Status returns the status line text.
func (p *Presenter) Status() string { return p.status.Text }

func (p *Presenter) setStatus(format string, args ...any) {
	p.status.SetText(fmt.Sprintf(format, args...))
}

// SetMode switches the overlay mode.
func (p *Presenter) SetMode(m ink.Mode) {
	p.Overlay.ctrl.SetMode(m)
	p.setStatus("Mode: %s", m)
}

// SetColor changes the pen color for new strokes and remembers it.
func (p *Presenter) SetColor(c color.NRGBA) {
	pen := p.Overlay.ctrl.Pen()
	pen.Color = c
	p.setPen(pen)
}

// SetWidth changes the pen width for new strokes and remembers it.
func (p *Presenter) SetWidth(w float64) {
	pen := p.Overlay.ctrl.Pen()
	pen.Width = w
	p.setPen(pen)
}

func (p *Presenter) setPen(pen ink.Pen) {
	p.Overlay.ctrl.SetPen(pen)
	if p.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.store.SavePen(ctx, p.Overlay.ctrl.Pen()); err != nil {
		log.Printf("[UI] Could not save pen: %v", err)
	}
}

// Clear erases every annotation on the current slide.
func (p *Presenter) Clear() {
	p.Overlay.ctrl.Reset()
	p.setStatus("Cleared")
}

// Next advances to the following slide with a clean overlay.
func (p *Presenter) Next() bool {
	if p.index+1 >= len(p.slides) {
		return false
	}
	p.index++
	p.Overlay.ctrl.Reset()
	p.showSlide()
	return true
}

// Prev goes back one slide with a clean overlay.
func (p *Presenter) Prev() bool {
	if p.index == 0 {
		return false
	}
	p.index--
	p.Overlay.ctrl.Reset()
	p.showSlide()
	return true
}

func (p *Presenter) showSlide() {
	s := p.slides[p.index]
	p.slideView.Image = s.Image
	p.slideView.Refresh()
	p.setStatus("Slide %d/%d: %s", p.index+1, len(p.slides), s.Name)
}

// Snapshot bakes the current slide and its ink into an image, writes it as
// PNG to the export directory and queues it for the handout.
func (p *Presenter) Snapshot() (string, error) {
	slide := p.slides[p.index]
	img, err := capture.Snapshot(slide.Image, render.Controller(p.Overlay.ctrl))
	if err != nil {
		return "", err
	}

	n := p.deck.Len() + 1
	path, err := p.exportPath(fmt.Sprintf("%s-%d.png", slide.Name, n))
	if err != nil {
		return "", err
	}
	if err := writePNG(path, img); err != nil {
		return "", err
	}
	if err := p.deck.Add(fmt.Sprintf("%s (%d)", slide.Name, n), img); err != nil {
		return "", err
	}
	p.setStatus("Snapshot %d saved to %s", n, path)
	return path, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := capture.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}

// SaveSVG writes the annotations of the current slide as SVG.
func (p *Presenter) SaveSVG() (string, error) {
	slide := p.slides[p.index]
	path, err := p.exportPath(slide.Name + ".svg")
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create svg: %w", err)
	}
	ctrl := p.Overlay.ctrl
	if err := render.WriteSVG(f, ctrl.Strokes(), ctrl.Space(), ctrl.Fit()); err != nil {
		f.Close()
		return "", fmt.Errorf("write svg: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close svg: %w", err)
	}
	p.setStatus("Annotations saved to %s", path)
	return path, nil
}

// ExportPDF writes every snapshot taken so far into one handout.
func (p *Presenter) ExportPDF() (string, error) {
	if p.deck.Len() == 0 {
		return "", export.ErrNothingToExport
	}
	path, err := p.exportPath(fmt.Sprintf("handout-%s.pdf", time.Now().Format("20060102-150405")))
	if err != nil {
		return "", err
	}
	if err := p.deck.WritePDF(path); err != nil {
		return "", err
	}
	p.setStatus("Exported %d page(s) to %s", p.deck.Len(), path)
	return path, nil
}

func (p *Presenter) exportPath(name string) (string, error) {
	if err := os.MkdirAll(p.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return filepath.Join(p.exportDir, name), nil
}

// report shows a failed action in the window.
func (p *Presenter) report(action string, err error) {
	if err == nil {
		return
	}
	log.Printf("[UI] %s failed: %v", action, err)
	switch {
	case p.window == nil,
		errors.Is(err, export.ErrNothingToExport),
		errors.Is(err, capture.ErrEmptyScene):
		p.setStatus("%s: %v", action, err)
	default:
		dialog.ShowError(fmt.Errorf("%s: %w", action, err), p.window)
	}
}

// RunApp starts fyne, builds the presenter and blocks until its window is
// closed. ready is called with the presenter before the window shows.
func RunApp(build func() (*Presenter, error), ready func(*Presenter)) error {
	a := app.NewWithID("io.slideink.presenter")
	p, err := build()
	if err != nil {
		return err
	}
	w := a.NewWindow("SlideInk")
	w.Resize(fyne.NewSize(1280, 800))
	p.window = w

	w.SetContent(p.Content())
	w.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyRight, fyne.KeyPageDown, fyne.KeySpace:
			p.Next()
		case fyne.KeyLeft, fyne.KeyPageUp:
			p.Prev()
		case fyne.KeyEscape:
			p.SetMode(ink.ModeInert)
		}
	})
	if ready != nil {
		ready(p)
	}
	w.ShowAndRun()
	return nil
}
