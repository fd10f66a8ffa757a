package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/stellarsim/internal/evolution"
)

const fullCell = 0x28FF

// HRDiagram plots a track in the Hertzsprung–Russell plane: log T_eff on
// the horizontal axis with hot stars on the left, log L/L☉ vertically.
type HRDiagram struct {
	canvas     *Canvas
	logT, logL []float64

	TMin, TMax float64
	LMin, LMax float64
}

func NewHRDiagram(track *evolution.Track, w, h int) *HRDiagram {
	d := &HRDiagram{canvas: NewCanvas(w, h)}
	d.logT, d.logL = track.HRTrack()
	d.TMin, d.TMax = bounds(d.logT)
	d.LMin, d.LMax = bounds(d.logL)
	return d
}

// bounds returns the padded range of the finite values in v.
func bounds(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	if lo > hi {
		return 0, 1
	}
	pad := math.Max(0.05*(hi-lo), 0.05)
	return lo - pad, hi + pad
}

// Project maps a diagram point to dot coordinates.
func (d *HRDiagram) Project(logT, logL float64) (x, y int) {
	w, h := d.canvas.Dots()
	fx := (d.TMax - logT) / (d.TMax - d.TMin)
	fy := (d.LMax - logL) / (d.LMax - d.LMin)
	return int(math.Round(fx * float64(w-1))), int(math.Round(fy * float64(h-1)))
}

func (d *HRDiagram) finite(i int) bool {
	return !math.IsNaN(d.logT[i]) && !math.IsInf(d.logT[i], 0) &&
		!math.IsNaN(d.logL[i]) && !math.IsInf(d.logL[i], 0)
}

func (d *HRDiagram) draw() {
	d.canvas.Clear()
	px, py, have := 0, 0, false
	for i := range d.logT {
		if !d.finite(i) {
			have = false
			continue
		}
		x, y := d.Project(d.logT[i], d.logL[i])
		if have {
			d.canvas.DrawLine(px, py, x, y)
		} else {
			d.canvas.Set(x, y)
		}
		px, py, have = x, y, true
	}
}

// Render draws the track with line and fills the cell holding model
// current with marker. A current index outside the track draws no marker.
func (d *HRDiagram) Render(current int, line, marker lipgloss.Style) []string {
	d.draw()
	rows := d.canvas.Rows()

	mrow, mcol := -1, -1
	if current >= 0 && current < len(d.logT) && d.finite(current) {
		x, y := d.Project(d.logT[current], d.logL[current])
		w, h := d.canvas.Dots()
		x, y = max(0, min(w-1, x)), max(0, min(h-1, y))
		mrow, mcol = y/4, x/2
	}

	out := make([]string, len(rows))
	for i, r := range rows {
		if i != mrow {
			out[i] = line.Render(r)
			continue
		}
		cells := []rune(r)
		out[i] = line.Render(string(cells[:mcol])) +
			marker.Render(string(rune(fullCell))) +
			line.Render(string(cells[mcol+1:]))
	}
	return out
}

// Framed renders the diagram with axis labels.
func (d *HRDiagram) Framed(current int, line, marker, label lipgloss.Style) string {
	rows := d.Render(current, line, marker)
	top := fmt.Sprintf("%5.1f ┤", d.LMax)
	bottom := fmt.Sprintf("%5.1f ┤", d.LMin)
	blank := strings.Repeat(" ", 6) + "│"

	var b strings.Builder
	b.WriteString(label.Render("log L/L☉") + "\n")
	for i, r := range rows {
		prefix := blank
		switch i {
		case 0:
			prefix = top
		case len(rows) - 1:
			prefix = bottom
		}
		b.WriteString(label.Render(prefix) + r + "\n")
	}
	axis := fmt.Sprintf("%-*.2f%*.2f", d.canvas.Width/2, d.TMax, d.canvas.Width-d.canvas.Width/2, d.TMin)
	b.WriteString(strings.Repeat(" ", 7) + label.Render(axis) + "\n")
	b.WriteString(strings.Repeat(" ", 7) + label.Render("log T_eff (K) →"))
	return b.String()
}
