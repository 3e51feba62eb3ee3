package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"regexp"
	"strconv"
	"strings"

	"SlideInk/internal/ink"
)

// WriteSVG writes the strokes as an SVG document whose viewBox is the
// drawing space. Lines use non-scaling strokes so their width stays in
// screen pixels however the document is scaled.
func WriteSVG(w io.Writer, strokes []ink.Stroke, space ink.Space, fit ink.Fit) error {
	bw := bufio.NewWriter(w)
	aspect := "none"
	if fit == ink.FitContain {
		aspect = "xMidYMid meet"
	}
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" preserveAspectRatio="%s">`+"\n",
		num(space.Width), num(space.Height), aspect)
	for _, st := range strokes {
		if len(st.Points) < 2 {
			continue
		}
		fmt.Fprintf(bw, `<path id="%s" d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round" vector-effect="non-scaling-stroke"/>`+"\n",
			st.ID, PathData(st.Points), Hex(st.Color), num(st.Width))
	}
	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

// PathData encodes points as "M x y L x y ...".
func PathData(pts []ink.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(num(p.X))
		b.WriteByte(' ')
		b.WriteString(num(p.Y))
	}
	return b.String()
}

var pathCmd = regexp.MustCompile(`([ML])([^ML]*)`)

// ParsePathData reads path data produced by PathData. Only absolute M and L
// commands are understood.
func ParsePathData(d string) ([]ink.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}
	var pts []ink.Point
	for _, m := range pathCmd.FindAllStringSubmatch(d, -1) {
		fields := strings.Fields(strings.ReplaceAll(m[2], ",", " "))
		if len(fields) != 2 {
			return nil, fmt.Errorf("command %s: want 2 coordinates, got %d", m[1], len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", m[1], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", m[1], err)
		}
		pts = append(pts, ink.Point{X: x, Y: y})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no commands in %q", d)
	}
	return pts, nil
}

// Hex formats c as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
