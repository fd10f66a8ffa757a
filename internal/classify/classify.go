// Package classify maps effective temperature to a spectral class and a
// display colour.
package classify

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type spectralRange struct {
	class     string
	min, max  float64
	reference string
}

// Checked in order; bounds are inclusive so a boundary temperature goes to
// the hotter class.
var spectralClasses = []spectralRange{
	{"O", 30000, 60000, "#9bb0ff"},
	{"B", 10000, 30000, "#aabfff"},
	{"A", 7500, 10000, "#cad7ff"},
	{"F", 6000, 7500, "#f8f7ff"},
	{"G", 5200, 6000, "#fff4ea"},
	{"K", 3700, 5200, "#ffd2a1"},
	{"M", 2400, 3700, "#ffcc6f"},
}

// SpectralClass returns the Harvard class letter for an effective
// temperature in kelvin. Temperatures outside every range fall back to O
// when hotter than 30000 K and M otherwise.
func SpectralClass(teff float64) string {
	for _, sc := range spectralClasses {
		if sc.min <= teff && teff <= sc.max {
			return sc.class
		}
	}
	if teff > 30000 {
		return "O"
	}
	return "M"
}

// ReferenceColor returns the catalogue colour for a class letter, or "" for
// an unknown class.
func ReferenceColor(class string) string {
	for _, sc := range spectralClasses {
		if sc.class == class {
			return sc.reference
		}
	}
	return ""
}

// Classes lists the class letters from hottest to coolest.
func Classes() []string {
	out := make([]string, len(spectralClasses))
	for i, sc := range spectralClasses {
		out[i] = sc.class
	}
	return out
}

// TemperatureToRGB approximates the colour of a blackbody at temperature t.
// The input is clamped to [1000, 40000] K and each channel is truncated to
// an integer in [0, 255].
func TemperatureToRGB(t float64) (r, g, b int) {
	t = clamp(t, 1000, 40000) / 100.0

	var rf, gf, bf float64

	if t <= 66 {
		rf = 255
	} else {
		rf = clamp(329.698727446*math.Pow(t-60, -0.1332047592), 0, 255)
	}

	if t <= 66 {
		gf = clamp(99.4708025861*math.Log(t)-161.1195681661, 0, 255)
	} else {
		gf = clamp(288.1221695283*math.Pow(t-60, -0.0755148492), 0, 255)
	}

	switch {
	case t >= 66:
		bf = 255
	case t <= 19:
		bf = 0
	default:
		bf = clamp(138.5177312231*math.Log(t-10)-305.0447927307, 0, 255)
	}

	return int(rf), int(gf), int(bf)
}

// Color returns the blackbody colour as a colorful.Color.
func Color(t float64) colorful.Color {
	r, g, b := TemperatureToRGB(t)
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// TemperatureToHex formats the blackbody colour as #rrggbb.
func TemperatureToHex(t float64) string {
	return Color(t).Hex()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
