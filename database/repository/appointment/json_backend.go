package appointmentRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"clinicbook/models"
)

// JSONBackend snapshots the appointment set to a single JSON file. This is the
// default persistence when no database is configured.
type JSONBackend struct {
	Path string
}

func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{Path: path}
}

// Load reads the snapshot file. A missing file is not an error: the store
// starts empty and the file is created on the first mutation.
func (b *JSONBackend) Load(_ context.Context) (map[string]models.Appointment, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]models.Appointment), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", b.Path, err)
	}

	appointments := make(map[string]models.Appointment)
	if err := json.Unmarshal(data, &appointments); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.Path, err)
	}
	// The id lives in the map key on disk; mirror it into the record.
	for id, appt := range appointments {
		appt.ID = id
		appointments[id] = appt
	}
	return appointments, nil
}

// Save writes the whole set atomically via a temp file rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (b *JSONBackend) Save(_ context.Context, appointments map[string]models.Appointment) error {
	data, err := json.MarshalIndent(appointments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal appointments: %w", err)
	}

	dir := filepath.Dir(b.Path)
	tmp, err := os.CreateTemp(dir, ".appointments-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, b.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
