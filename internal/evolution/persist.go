package evolution

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/san-kum/stellarsim/internal/astro"
)

//go:embed track.schema.json
var trackSchemaJSON []byte

var trackSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("track.schema.json", bytes.NewReader(trackSchemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("track.schema.json")
})

// SerializationError reports a persisted track that could not be read or
// written.
type SerializationError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("evolution: %s track: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// The persisted document stores ages in years and bulk quantities in solar
// units.
type trackDocument struct {
	MInitial float64       `json:"M_initial"`
	X        float64       `json:"X"`
	Y        float64       `json:"Y"`
	Z        float64       `json:"Z"`
	Models   []modelRecord `json:"models"`
}

type modelRecord struct {
	Age   float64 `json:"age"`
	M     float64 `json:"M"`
	R     float64 `json:"R"`
	L     float64 `json:"L"`
	Teff  float64 `json:"T_eff"`
	Phase Phase   `json:"phase"`
	X     float64 `json:"X"`
	Y     float64 `json:"Y"`
	Z     float64 `json:"Z"`
}

// Save writes the track as an indented JSON document.
func (t *Track) Save(w io.Writer) error {
	doc := trackDocument{
		MInitial: t.initialMass,
		X:        t.comp.X,
		Y:        t.comp.Y,
		Z:        t.comp.Z,
		Models:   make([]modelRecord, len(t.models)),
	}
	for i, m := range t.models {
		doc.Models[i] = modelRecord{
			Age:   astro.Years(m.Age),
			M:     astro.SolarMass(m.Mass),
			R:     astro.SolarRadius(m.Radius),
			L:     astro.SolarLuminosity(m.Luminosity),
			Teff:  m.Teff,
			Phase: m.Phase,
			X:     m.Composition.X,
			Y:     m.Composition.Y,
			Z:     m.Composition.Z,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return &SerializationError{Op: "save", Err: err}
	}
	return nil
}

// Load reads a document written by Save. Documents that fail schema
// validation or have decreasing ages are rejected with a
// *SerializationError.
func Load(r io.Reader) (*Track, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &SerializationError{Op: "load", Err: err}
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SerializationError{Op: "load", Err: err}
	}
	schema, err := trackSchema()
	if err != nil {
		return nil, &SerializationError{Op: "load", Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(raw); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, &SerializationError{Op: "load", Err: formatValidationError(verr)}
		}
		return nil, &SerializationError{Op: "load", Err: err}
	}

	var doc trackDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &SerializationError{Op: "load", Err: err}
	}

	models := make([]StellarModel, len(doc.Models))
	for i, rec := range doc.Models {
		models[i] = StellarModel{
			Mass:        rec.M * astro.MSun,
			Radius:      rec.R * astro.RSun,
			Luminosity:  rec.L * astro.LSun,
			Teff:        rec.Teff,
			Age:         astro.Seconds(rec.Age),
			Phase:       rec.Phase,
			Composition: astro.Composition{X: rec.X, Y: rec.Y, Z: rec.Z},
		}
		if i > 0 && models[i].Age < models[i-1].Age {
			return nil, &SerializationError{Op: "load", Err: fmt.Errorf("models/%d: age decreases", i)}
		}
	}

	return NewTrack(doc.MInitial, astro.Composition{X: doc.X, Y: doc.Y, Z: doc.Z}, models), nil
}

func (t *Track) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadFile(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func formatValidationError(err *jsonschema.ValidationError) error {
	var messages []string
	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return errors.New("schema validation failed")
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(messages, "; "))
}
