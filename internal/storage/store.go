package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/san-kum/firesync/internal/swarm"
)

// Store persists runs under a base directory, one subdirectory per run:
// metadata.json plus states.csv with the full trajectory. Writes are
// serialized through a lock file so concurrent CLI invocations sharing a
// data directory do not interleave.
type Store struct {
	baseDir string
	lock    *flock.Flock
}

func New(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		lock:    flock.New(filepath.Join(baseDir, ".lock")),
	}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Size      int                `json:"size"`
	Coupling  float64            `json:"coupling"`
	FreqMin   float64            `json:"freq_min"`
	FreqMax   float64            `json:"freq_max"`
	Ticks     int                `json:"ticks"`
	Status    string             `json:"status"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, rec *Recorder) (string, error) {
	if err := s.lock.Lock(); err != nil {
		return "", fmt.Errorf("lock data dir: %w", err)
	}
	defer s.lock.Unlock()

	meta.ID = uuid.NewString()[:8]
	meta.Timestamp = time.Now()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, "metadata.json"), data, 0644); err != nil {
		return "", err
	}

	if rec != nil {
		if err := writeStatesCSV(filepath.Join(runDir, "states.csv"), rec); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip partial or foreign directories
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadStates reads a run's trajectory back: one time column plus
// (x, y, phase) triples per oscillator.
func (s *Store) LoadStates(runID string) ([]float64, [][]swarm.Oscillator, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("empty states file for run %s", runID)
	}

	times := make([]float64, 0, len(rows)-1)
	frames := make([][]swarm.Oscillator, 0, len(rows)-1)

	for _, row := range rows[1:] { // skip header
		if (len(row)-1)%3 != 0 {
			return nil, nil, fmt.Errorf("malformed row in run %s: %d columns", runID, len(row))
		}

		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, nil, err
		}

		frame := make([]swarm.Oscillator, (len(row)-1)/3)
		for i := range frame {
			x, err := strconv.ParseFloat(row[1+i*3], 64)
			if err != nil {
				return nil, nil, err
			}
			y, err := strconv.ParseFloat(row[2+i*3], 64)
			if err != nil {
				return nil, nil, err
			}
			phase, err := strconv.ParseFloat(row[3+i*3], 64)
			if err != nil {
				return nil, nil, err
			}
			frame[i] = swarm.Oscillator{Position: swarm.Vec2{X: x, Y: y}, Phase: phase}
		}

		times = append(times, t)
		frames = append(frames, frame)
	}

	return times, frames, nil
}

func writeStatesCSV(path string, rec *Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(rec.Frames) == 0 {
		return w.Write([]string{"t"})
	}

	header := []string{"t"}
	for i := range rec.Frames[0] {
		idx := strconv.Itoa(i)
		header = append(header, "x"+idx, "y"+idx, "phase"+idx)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for fi, frame := range rec.Frames {
		row := make([]string, 0, 1+len(frame)*3)
		row = append(row, strconv.FormatFloat(rec.Times[fi], 'g', -1, 64))
		for _, o := range frame {
			row = append(row,
				strconv.FormatFloat(o.Position.X, 'g', -1, 64),
				strconv.FormatFloat(o.Position.Y, 'g', -1, 64),
				strconv.FormatFloat(o.Phase, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
