package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the portable form of a saved render.
type ExportData struct {
	RenderMetadata
	Histogram map[int]int `json:"histogram,omitempty"`
}

// Export bundles a saved render's metadata with its step counts.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	steps, err := s.LoadHistogram(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{RenderMetadata: *meta, Histogram: steps}, nil
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return EncodeJSON(file, data)
}

func EncodeJSON(w io.Writer, data *ExportData) error {
	if w == nil {
		w = os.Stdout
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
