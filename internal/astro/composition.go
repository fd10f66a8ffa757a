package astro

import "fmt"

// Composition holds hydrogen, helium and metal mass fractions. The fractions
// are not required to sum to one.
type Composition struct {
	X float64 `json:"X" yaml:"x" mapstructure:"x"`
	Y float64 `json:"Y" yaml:"y" mapstructure:"y"`
	Z float64 `json:"Z" yaml:"z" mapstructure:"z"`
}

func SolarComposition() Composition {
	return Composition{X: XSun, Y: YSun, Z: ZSun}
}

// MeanMolecularWeight assumes a fully ionized gas.
func (c Composition) MeanMolecularWeight() float64 {
	return 1.0 / (2*c.X + 0.75*c.Y + 0.5*c.Z)
}

// CNO is the CNO catalyst mass fraction used by the CNO cycle rate.
func (c Composition) CNO() float64 {
	return 0.01 * c.Z
}

func (c Composition) String() string {
	return fmt.Sprintf("X=%.4f Y=%.4f Z=%.4f", c.X, c.Y, c.Z)
}
