package classify

import "testing"

func TestSpectralClass(t *testing.T) {
	tests := []struct {
		teff float64
		want string
	}{
		{80000, "O"},
		{45000, "O"},
		{30000, "O"},
		{20000, "B"},
		{10000, "B"},
		{8000, "A"},
		{6500, "F"},
		{5772, "G"},
		{4500, "K"},
		{3000, "M"},
		{1500, "M"},
	}

	for _, tt := range tests {
		if got := SpectralClass(tt.teff); got != tt.want {
			t.Errorf("SpectralClass(%v) = %s, want %s", tt.teff, got, tt.want)
		}
	}
}

func TestReferenceColor(t *testing.T) {
	if got := ReferenceColor("G"); got != "#fff4ea" {
		t.Errorf("ReferenceColor(G) = %s", got)
	}
	if got := ReferenceColor("X"); got != "" {
		t.Errorf("ReferenceColor(X) = %q, want empty", got)
	}
	if n := len(Classes()); n != 7 {
		t.Errorf("expected 7 classes, got %d", n)
	}
}

func TestTemperatureToRGB(t *testing.T) {
	tests := []struct {
		name    string
		teff    float64
		r, g, b int
	}{
		{"floor", 1000, 255, 67, 0},
		{"below floor clamps", 500, 255, 67, 0},
		{"sun", 5772, 255, 242, 230},
		{"hot ceiling", 40000, 151, 185, 255},
		{"above ceiling clamps", 90000, 151, 185, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := TemperatureToRGB(tt.teff)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("TemperatureToRGB(%v) = (%d,%d,%d), want (%d,%d,%d)", tt.teff, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestTemperatureToRGB_BoundaryContinuity(t *testing.T) {
	r0, g0, b0 := TemperatureToRGB(6599)
	r1, g1, b1 := TemperatureToRGB(6600)
	r2, g2, b2 := TemperatureToRGB(6601)

	if r1 != 255 || b1 != 255 {
		t.Errorf("at 6600 K expected saturated red and blue, got (%d,%d,%d)", r1, g1, b1)
	}

	for _, pair := range [][2]int{{r0, r2}, {g0, g2}, {b0, b2}} {
		diff := pair[0] - pair[1]
		if diff < 0 {
			diff = -diff
		}
		if diff > 5 {
			t.Errorf("channel jumps by %d across 6600 K", diff)
		}
	}
}

func TestTemperatureToRGB_ChannelsInRange(t *testing.T) {
	for teff := 500.0; teff <= 50000; teff += 250 {
		r, g, b := TemperatureToRGB(teff)
		for _, c := range []int{r, g, b} {
			if c < 0 || c > 255 {
				t.Fatalf("channel out of range at %v K: (%d,%d,%d)", teff, r, g, b)
			}
		}
	}
}

func TestTemperatureToHex(t *testing.T) {
	if got := TemperatureToHex(5772); got != "#fff2e6" {
		t.Errorf("TemperatureToHex(5772) = %s, want #fff2e6", got)
	}
	if got := TemperatureToHex(1000); got != "#ff4300" {
		t.Errorf("TemperatureToHex(1000) = %s, want #ff4300", got)
	}
}
