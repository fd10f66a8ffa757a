package evolution

import (
	"errors"
	"fmt"
)

// Phase is a stage of stellar evolution. The set is closed; the order
// follows a typical life cycle but a track need not visit it monotonically.
type Phase int

const (
	PreMainSequence Phase = iota
	MainSequence
	Subgiant
	RedGiant
	HorizontalBranch
	AsymptoticGiant
	PlanetaryNebula
	WhiteDwarf
	Supernova
	NeutronStar
	BlackHole
)

var phaseNames = [...]string{
	PreMainSequence:  "Pre-Main Sequence",
	MainSequence:     "Main Sequence",
	Subgiant:         "Subgiant",
	RedGiant:         "Red Giant",
	HorizontalBranch: "Horizontal Branch",
	AsymptoticGiant:  "Asymptotic Giant Branch",
	PlanetaryNebula:  "Planetary Nebula",
	WhiteDwarf:       "White Dwarf",
	Supernova:        "Supernova",
	NeutronStar:      "Neutron Star",
	BlackHole:        "Black Hole",
}

var ErrUnknownPhase = errors.New("unknown phase")

// Phases returns every phase in declaration order.
func Phases() []Phase {
	out := make([]Phase, len(phaseNames))
	for i := range phaseNames {
		out[i] = Phase(i)
	}
	return out
}

func (p Phase) Valid() bool {
	return p >= 0 && int(p) < len(phaseNames)
}

// String returns the display name.
func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Remnant reports whether the phase is an end state.
func (p Phase) Remnant() bool {
	return p == WhiteDwarf || p == NeutronStar || p == BlackHole
}

// ParsePhase maps a display name back to its phase. Matching is exact.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPhase, name)
}

func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
	}
	return []byte(phaseNames[p]), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	v, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
