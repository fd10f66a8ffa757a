package astro

import (
	"math"
	"testing"
)

func TestUnitConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"solar mass", SolarMass(2 * MSun), 2},
		{"solar radius", SolarRadius(RSun), 1},
		{"solar luminosity", SolarLuminosity(10 * LSun), 10},
		{"years", Years(3 * Year), 3},
		{"seconds", Seconds(1), Year},
		{"log T", LogT(1e4), 4},
		{"from log T", FromLogT(3), 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9*math.Abs(tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestRadiationConstant(t *testing.T) {
	if math.Abs(ARad-7.5657e-16)/7.5657e-16 > 1e-4 {
		t.Errorf("ARad = %e, want ~7.5657e-16", ARad)
	}
}

func TestMeanMolecularWeight(t *testing.T) {
	pureH := Composition{X: 1}
	if mu := pureH.MeanMolecularWeight(); mu != 0.5 {
		t.Errorf("pure hydrogen mu = %v, want 0.5", mu)
	}

	sun := SolarComposition()
	mu := sun.MeanMolecularWeight()
	if mu < 0.55 || mu > 0.65 {
		t.Errorf("solar mu = %v, want ~0.6", mu)
	}

	if got := sun.CNO(); math.Abs(got-0.01*ZSun) > 1e-15 {
		t.Errorf("CNO = %v, want %v", got, 0.01*ZSun)
	}
}
