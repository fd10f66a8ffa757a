package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/evolution"
	"github.com/san-kum/stellarsim/internal/integrators"
	"github.com/san-kum/stellarsim/internal/structure"
)

const (
	DefaultMass               = 1.0
	DefaultFPS                = 10
	DefaultDataDir            = ".stellarsim"
	DefaultCentralTemperature = 1.5e7

	// Bounds of the initial-mass control, in solar masses.
	MinMass = 0.1
	MaxMass = 100.0

	EnvPrefix = "STELLARSIM"
)

var ErrMassOutOfRange = errors.New("mass out of range")

type Config struct {
	Mass        float64           `yaml:"mass" mapstructure:"mass"`
	Composition astro.Composition `yaml:"composition" mapstructure:"composition"`
	Steps       evolution.Steps   `yaml:",inline" mapstructure:",squash"`
	Structure   StructureConfig   `yaml:"structure" mapstructure:"structure"`
	DataDir     string            `yaml:"data_dir" mapstructure:"data_dir"`
	FPS         int               `yaml:"fps" mapstructure:"fps"`
}

type StructureConfig struct {
	Integrator         string  `yaml:"integrator" mapstructure:"integrator"`
	RelTol             float64 `yaml:"rtol" mapstructure:"rtol"`
	AbsTol             float64 `yaml:"atol" mapstructure:"atol"`
	MaxSteps           int     `yaml:"max_steps" mapstructure:"max_steps"`
	// CoreLuminosity in W; zero selects the main-sequence luminosity.
	CoreLuminosity     float64 `yaml:"core_luminosity" mapstructure:"core_luminosity"`
	CentralTemperature float64 `yaml:"central_temperature" mapstructure:"central_temperature"`

	// Params overrides named structure parameters (x, y, z, gamma).
	Params map[string]float64 `yaml:"params,omitempty" mapstructure:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:        DefaultMass,
		Composition: astro.SolarComposition(),
		Steps:       evolution.DefaultSteps(),
		Structure: StructureConfig{
			Integrator:         integrators.DefaultStepper,
			RelTol:             astro.RTol,
			AbsTol:             astro.ATol,
			MaxSteps:           integrators.DefaultMaxSteps,
			CentralTemperature: DefaultCentralTemperature,
		},
		DataDir: DefaultDataDir,
		FPS:     DefaultFPS,
	}
}

// LoadFile strictly decodes a YAML file over the defaults. Unknown keys are
// an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads path (when non-empty) and then applies STELLARSIM_*
// environment overrides, e.g. STELLARSIM_MASS or STELLARSIM_COMPOSITION_Z.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mass", cfg.Mass)
	v.SetDefault("composition.x", cfg.Composition.X)
	v.SetDefault("composition.y", cfg.Composition.Y)
	v.SetDefault("composition.z", cfg.Composition.Z)
	v.SetDefault("ms_steps", cfg.Steps.MainSequence)
	v.SetDefault("post_ms_steps", cfg.Steps.PostMainSequence)
	v.SetDefault("structure.integrator", cfg.Structure.Integrator)
	v.SetDefault("structure.rtol", cfg.Structure.RelTol)
	v.SetDefault("structure.atol", cfg.Structure.AbsTol)
	v.SetDefault("structure.max_steps", cfg.Structure.MaxSteps)
	v.SetDefault("structure.core_luminosity", cfg.Structure.CoreLuminosity)
	v.SetDefault("structure.central_temperature", cfg.Structure.CentralTemperature)
	if len(cfg.Structure.Params) > 0 {
		v.SetDefault("structure.params", cfg.Structure.Params)
	}
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("fps", cfg.FPS)

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &out, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CheckMass enforces the range of the initial-mass control. The evolution
// engine itself accepts any mass.
func CheckMass(m float64) error {
	if !(m >= MinMass && m <= MaxMass) {
		return fmt.Errorf("%w: %g M☉ not in [%g, %g]", ErrMassOutOfRange, m, MinMass, MaxMass)
	}
	return nil
}

// StructureParams builds integrator parameters for the configured star.
func (c *Config) StructureParams() structure.Params {
	p := structure.DefaultParams(c.Mass, c.Composition)
	p.Integrator = c.Structure.Integrator
	p.RelTol = c.Structure.RelTol
	p.AbsTol = c.Structure.AbsTol
	p.MaxSteps = c.Structure.MaxSteps
	if c.Structure.CoreLuminosity > 0 {
		p.CoreLuminosity = c.Structure.CoreLuminosity
	}
	if c.Structure.CentralTemperature > 0 {
		p.CentralTemperature = c.Structure.CentralTemperature
	}
	if len(c.Structure.Params) > 0 {
		p.Overrides = make(map[string]float64, len(c.Structure.Params))
		for k, v := range c.Structure.Params {
			p.Overrides[k] = v
		}
	}
	return p
}

// ParseParams converts name=value flag pairs into structure parameter
// overrides.
func ParseParams(kv map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(kv))
	for name, raw := range kv {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", name, err)
		}
		out[strings.ToLower(strings.TrimSpace(name))] = v
	}
	return out, nil
}
