// Package export writes evolution tracks as standalone SVG figures.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/stellarsim/internal/evolution"
)

type SVGOptions struct {
	Width   int
	Height  int
	// Current marks one model with a ring; negative for none.
	Current int
	Title   string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 800, Height: 600, Current: -1}
}

const margin = 60.0

type frame struct {
	tMin, tMax, lMin, lMax float64
	w, h                   float64
}

// x puts hot stars on the left.
func (f frame) x(logT float64) float64 {
	return margin + (f.tMax-logT)/(f.tMax-f.tMin)*(f.w-2*margin)
}

func (f frame) y(logL float64) float64 {
	return f.h - margin - (logL-f.lMin)/(f.lMax-f.lMin)*(f.h-2*margin)
}

func padded(v []float64) (lo, hi float64) {
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
	r := hi - lo
	if r == 0 {
		r = 1
	}
	return lo - 0.1*r, hi + 0.1*r
}

// HRToSVG draws the track in the Hertzsprung–Russell plane. Each model is
// a dot in its blackbody colour, joined by the track path.
func HRToSVG(track *evolution.Track, opts SVGOptions) string {
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultSVGOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	logT, logL := track.HRTrack()
	f := frame{w: float64(opts.Width), h: float64(opts.Height)}
	f.tMin, f.tMax = padded(logT)
	f.lMin, f.lMax = padded(logL)

	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("%.2f M☉ evolution track", track.InitialMass())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="%.1f" y="30" fill="#e0e0e0" font-family="monospace" font-size="16" text-anchor="middle">%s</text>
`, opts.Width, opts.Height, opts.Width, opts.Height, f.w/2, escape(title))

	writeAxes(&sb, f)

	var path strings.Builder
	for i := range logT {
		if !finite(logT[i]) || !finite(logL[i]) {
			continue
		}
		cmd := " L"
		if path.Len() == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s%.1f,%.1f", cmd, f.x(logT[i]), f.y(logL[i]))
	}
	if path.Len() > 0 {
		fmt.Fprintf(&sb, `<path fill="none" stroke="#5566aa" stroke-width="1.5" d="%s"/>
`, path.String())
	}

	sb.WriteString(`<g class="models">` + "\n")
	for i := range logT {
		if !finite(logT[i]) || !finite(logL[i]) {
			continue
		}
		m := track.At(i)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, f.x(logT[i]), f.y(logL[i]), m.Color(), escape(m.String()))
	}
	sb.WriteString("</g>\n")

	if c := opts.Current; c >= 0 && c < len(logT) && finite(logT[c]) && finite(logL[c]) {
		fmt.Fprintf(&sb, `<circle class="current" cx="%.1f" cy="%.1f" r="8" fill="none" stroke="#ffffff" stroke-width="2"/>
`, f.x(logT[c]), f.y(logL[c]))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteHRSVG writes HRToSVG output to w.
func WriteHRSVG(w io.Writer, track *evolution.Track, opts SVGOptions) error {
	_, err := io.WriteString(w, HRToSVG(track, opts))
	return err
}

func writeAxes(sb *strings.Builder, f frame) {
	x0, x1 := margin, f.w-margin
	y0, y1 := f.h-margin, margin
	fmt.Fprintf(sb, `<g stroke="#444466" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, x0, y0, x1, y0, x0, y0, x0, y1)

	sb.WriteString(`<g fill="#888899" font-family="monospace" font-size="11">` + "\n")
	for _, v := range ticks(f.tMin, f.tMax) {
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="middle">%.1f</text>
`, f.x(v), y0+18, v)
	}
	for _, v := range ticks(f.lMin, f.lMax) {
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="end">%.0f</text>
`, x0-8, f.y(v)+4, v)
	}
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="middle">log T_eff (K)</text>
<text x="16" y="%.1f" text-anchor="middle" transform="rotate(-90 16 %.1f)">log L/L☉</text>
</g>
`, f.w/2, f.h-15, f.h/2, f.h/2)
}

// ticks returns round values inside [lo, hi], at most about six of them.
func ticks(lo, hi float64) []float64 {
	span := hi - lo
	if !(span > 0) {
		return nil
	}
	step := math.Pow(10, math.Floor(math.Log10(span/5)))
	for span/step > 6 {
		step *= 2
	}
	var out []float64
	for v := math.Ceil(lo/step) * step; v <= hi; v += step {
		out = append(out, v)
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
