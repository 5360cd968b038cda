package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/fracsim/internal/config"
	"github.com/san-kum/fracsim/internal/fractal"
)

const (
	metadataFile  = "metadata.json"
	imageFile     = "image.png"
	histogramFile = "histogram.csv"
)

var ErrNotFound = errors.New("storage: render not found")

// PNGEncoder is anything that can write itself as a PNG image.
type PNGEncoder interface {
	EncodePNG(w io.Writer) error
}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// TileParam is the Julia parameter drawn in one tile.
type TileParam struct {
	ID int     `json:"id"`
	A  float64 `json:"a"`
	B  float64 `json:"b"`
}

// RenderMetadata describes one saved render. ID, Mode, Code and Timestamp
// are filled in by Save.
type RenderMetadata struct {
	ID            string             `json:"id"`
	Mode          string             `json:"mode"`
	Timestamp     time.Time          `json:"timestamp"`
	Code          string             `json:"code"`
	Settings      config.Settings    `json:"settings"`
	MaxIterations int                `json:"max_iterations"`
	Palette       string             `json:"palette"`
	Seed          int64              `json:"seed"`
	Resolution    int                `json:"resolution"`
	Tiles         []TileParam        `json:"tiles"`
	ElapsedMS     float64            `json:"elapsed_ms"`
	Stats         map[string]float64 `json:"stats,omitempty"`
}

// TileParams extracts the per-tile parameters of a layout.
func TileParams(l fractal.Layout) []TileParam {
	out := make([]TileParam, len(l.Tiles))
	for i, t := range l.Tiles {
		out[i] = TileParam{ID: t.ID, A: t.Param.A, B: t.Param.B}
	}
	return out
}

// Save writes the metadata, the image (when img is non-nil) and the escape
// step counts (when steps is non-empty) into a new run directory and
// returns its ID.
func (s *Store) Save(meta RenderMetadata, img PNGEncoder, steps map[int]int) (string, error) {
	now := s.now()
	runID, runDir, err := s.newRunDir(meta.Settings.Mode(), now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Mode = meta.Settings.Mode()
	meta.Code = meta.Settings.Code()
	meta.Timestamp = now

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if img != nil {
		if err := writeImage(filepath.Join(runDir, imageFile), img); err != nil {
			return "", err
		}
	}

	if len(steps) > 0 {
		if err := writeHistogram(filepath.Join(runDir, histogramFile), steps); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// newRunDir creates <mode>_<unix>, adding a counter suffix when a render of
// the same mode was already saved in that second.
func (s *Store) newRunDir(mode string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}

	base := fmt.Sprintf("%s_%d", mode, now.Unix())
	runID := base
	for n := 2; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s-%d", base, n)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func writeImage(path string, img PNGEncoder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := img.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeHistogram(path string, steps map[int]int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	keys := make([]int, 0, len(steps))
	for step := range steps {
		keys = append(keys, step)
	}
	sort.Ints(keys)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "count"}); err != nil {
		return err
	}
	for _, step := range keys {
		if err := w.Write([]string{strconv.Itoa(step), strconv.Itoa(steps[step])}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns every saved render, oldest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RenderMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: corrupt metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

// ImagePath returns where the PNG of a saved render lives.
func (s *Store) ImagePath(runID string) string {
	return filepath.Join(s.baseDir, runID, imageFile)
}

// LoadHistogram reads the escape step counts of a saved render. A render
// saved without counts yields an empty map.
func (s *Store) LoadHistogram(runID string) (map[int]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, histogramFile))
	if err != nil {
		if os.IsNotExist(err) {
			if _, err := s.Load(runID); err != nil {
				return nil, err
			}
			return map[int]int{}, nil
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	steps := make(map[int]int, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 2 {
			continue
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		count, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		steps[step] = count
	}
	return steps, nil
}
