package evolution

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PreMainSequence, "Pre-Main Sequence"},
		{MainSequence, "Main Sequence"},
		{RedGiant, "Red Giant"},
		{AsymptoticGiant, "Asymptotic Giant Branch"},
		{WhiteDwarf, "White Dwarf"},
		{BlackHole, "Black Hole"},
		{Phase(42), "Phase(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.phase.String())
	}
}

func TestPhase_ParseRoundTrip(t *testing.T) {
	phases := Phases()
	require.Len(t, phases, 11)

	seen := map[string]bool{}
	for _, p := range phases {
		name := p.String()
		assert.False(t, seen[name], "duplicate display name %q", name)
		seen[name] = true

		got, err := ParsePhase(name)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestPhase_ParseUnknown(t *testing.T) {
	_, err := ParsePhase("red giant")
	assert.True(t, errors.Is(err, ErrUnknownPhase))

	_, err = Phase(-1).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownPhase)
}

func TestPhase_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Phase Phase `json:"phase"`
	}{HorizontalBranch})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"Horizontal Branch"}`, string(data))

	var out struct {
		Phase Phase `json:"phase"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"phase":"Neutron Star"}`), &out))
	assert.Equal(t, NeutronStar, out.Phase)

	assert.Error(t, json.Unmarshal([]byte(`{"phase":"Quasar"}`), &out))
}

func TestPhase_Remnant(t *testing.T) {
	for _, p := range Phases() {
		want := p == WhiteDwarf || p == NeutronStar || p == BlackHole
		assert.Equal(t, want, p.Remnant(), p.String())
	}
}
