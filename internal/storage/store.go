package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/stellarsim/internal/astro"
	"github.com/san-kum/stellarsim/internal/evolution"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	trackFile    = "track.json"
	modelsFile   = "models.csv"
)

// Store keeps one directory per run under baseDir.
type Store struct {
	baseDir string
	log     *zap.Logger
}

func New(baseDir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	MassSolar   float64            `json:"mass_solar"`
	Composition astro.Composition  `json:"composition"`
	Timestamp   time.Time          `json:"timestamp"`
	Source      string             `json:"source"`
	Steps       evolution.Steps    `json:"steps"`
	Models      int                `json:"models"`
	FinalPhase  string             `json:"final_phase"`
	Metrics     map[string]float64 `json:"metrics"`
}

// SaveInfo carries the run details that are not part of the track itself.
type SaveInfo struct {
	Source  string // "computed" or "imported"
	Steps   evolution.Steps
	Metrics map[string]float64
}

// Save writes the track document, a CSV table of its models and the run
// metadata, and returns the new run ID.
func (s *Store) Save(track *evolution.Track, info SaveInfo) (string, error) {
	runID := fmt.Sprintf("m%s_%s", massSlug(track.InitialMass()), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if info.Source == "" {
		info.Source = "computed"
	}
	meta := RunMetadata{
		ID:          runID,
		MassSolar:   track.InitialMass(),
		Composition: track.Composition(),
		Timestamp:   time.Now(),
		Source:      info.Source,
		Steps:       info.Steps,
		Models:      track.Len(),
		Metrics:     info.Metrics,
	}
	if last, ok := track.Last(); ok {
		meta.FinalPhase = last.Phase.String()
	}

	if err := writeRun(runDir, meta, track); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.log.Warn("removing partial run", zap.String("dir", runDir), zap.Error(rmErr))
		}
		return "", err
	}

	s.log.Info("run saved",
		zap.String("run_id", runID),
		zap.Float64("mass_solar", meta.MassSolar),
		zap.Int("models", meta.Models),
		zap.String("dir", runDir))

	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, track *evolution.Track) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	if err := track.SaveFile(filepath.Join(runDir, trackFile)); err != nil {
		return err
	}
	return writeModelsCSV(filepath.Join(runDir, modelsFile), track)
}

func writeModelsCSV(path string, track *evolution.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"age_yr", "mass_msun", "radius_rsun", "luminosity_lsun", "teff_k", "phase", "x", "y", "z"}
	if err := w.Write(header); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }
	for i := 0; i < track.Len(); i++ {
		m := track.At(i)
		row := []string{
			format(astro.Years(m.Age)),
			format(astro.SolarMass(m.Mass)),
			format(astro.SolarRadius(m.Radius)),
			format(astro.SolarLuminosity(m.Luminosity)),
			format(m.Teff),
			m.Phase.String(),
			format(m.Composition.X),
			format(m.Composition.Y),
			format(m.Composition.Z),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Debug("skipping unreadable run", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrack reads the persisted track of a run.
func (s *Store) LoadTrack(runID string) (*evolution.Track, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	track, err := evolution.LoadFile(filepath.Join(dir, trackFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return track, err
}

func (s *Store) Delete(runID string) error {
	dir, err := s.runDir(runID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	s.log.Info("run deleted", zap.String("run_id", runID))
	return os.RemoveAll(dir)
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID != filepath.Base(runID) || strings.HasPrefix(runID, ".") {
		return "", fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func massSlug(m float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(m, 'f', 2, 64), ".", "p")
}
