package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SlideInk/internal/ink"
	"SlideInk/internal/settings"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// modeOptions are the labels of the mode selector, in display order.
var modeOptions = []string{"Off", "Draw", "Erase", "Laser"}

var modeByLabel = map[string]ink.Mode{
	"Off":   ink.ModeInert,
	"Draw":  ink.ModeDraw,
	"Erase": ink.ModeErase,
	"Laser": ink.ModeHighlight,
}

// NewToolbar builds the presenter controls.
func NewToolbar(p *Presenter) fyne.CanvasObject {
	modes := widget.NewRadioGroup(modeOptions, func(label string) {
		if m, ok := modeByLabel[label]; ok {
			p.SetMode(m)
		}
	})
	modes.Horizontal = true
	modes.Required = true
	for label, m := range modeByLabel {
		if m == p.Overlay.ctrl.Mode() {
			modes.Selected = label
		}
	}

	// --- Color Palette ---
	colorBox := container.NewHBox()
	for _, c := range settings.Palette {
		colorBox.Add(newColorSwatch(c, p.SetColor))
	}

	// --- Stroke Width Slider ---
	widthSlider := widget.NewSlider(1, 24)
	widthSlider.Step = 1
	widthSlider.SetValue(p.Overlay.ctrl.Pen().Width)
	widthSlider.OnChangeEnded = p.SetWidth
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), widthSlider)

	// toolbar with built-in tooltips
	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() { p.Prev() }),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() { p.Next() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentClearIcon(), p.Clear),
		widget.NewToolbarAction(theme.MediaPhotoIcon(), func() {
			_, err := p.Snapshot()
			p.report("Snapshot", err)
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			_, err := p.SaveSVG()
			p.report("Save SVG", err)
		}),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			_, err := p.ExportPDF()
			p.report("Export PDF", err)
		}),
	)

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		modes,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
		actions,
	)
}
