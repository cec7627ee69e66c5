package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Trace []Sample `json:"trace"`
}

// ExportJSON writes a run with its full trace as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Trace: trace})
}
