package appointmentRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"clinicbook/models"
)

// Store owns the authoritative id -> appointment mapping for the process
// lifetime. Every mutation is written through to the backend before it is
// acknowledged; a failed snapshot leaves the in-memory state untouched so
// memory and disk never diverge.
type Store struct {
	mu           sync.RWMutex
	appointments map[string]models.Appointment
	backend      Backend
}

// NewStore loads the persisted appointment set and wraps it.
func NewStore(ctx context.Context, backend Backend) (*Store, error) {
	loaded, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	if loaded == nil {
		loaded = make(map[string]models.Appointment)
	}
	return &Store{
		appointments: loaded,
		backend:      backend,
	}, nil
}

// Get returns the appointment with the given id.
func (s *Store) Get(id string) (models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	appt, ok := s.appointments[id]
	return appt, ok
}

// All returns a copy of every appointment, sorted by (date, time) so repeated
// reads are stable.
func (s *Store) All() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0, len(s.appointments))
	for _, appt := range s.appointments {
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date == out[j].Date {
			if out[i].Time == out[j].Time {
				return out[i].ID < out[j].ID
			}
			return out[i].Time < out[j].Time
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// ByDate returns every appointment on the given date.
func (s *Store) ByDate(date string) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, appt := range s.appointments {
		if appt.Date == date {
			out = append(out, appt)
		}
	}
	return out
}

// Put inserts or replaces an appointment and snapshots the whole set.
func (s *Store) Put(ctx context.Context, appt models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.clone()
	next[appt.ID] = appt
	if err := s.backend.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist appointment %s: %w", appt.ID, err)
	}
	s.appointments = next
	return nil
}

// Delete removes an appointment and snapshots the whole set.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return fmt.Errorf("appointment %s not found", id)
	}
	next := s.clone()
	delete(next, id)
	if err := s.backend.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist removal of %s: %w", id, err)
	}
	s.appointments = next
	return nil
}

// clone copies the map so a failed snapshot cannot tear the live state.
// Callers must hold the write lock.
func (s *Store) clone() map[string]models.Appointment {
	next := make(map[string]models.Appointment, len(s.appointments)+1)
	for id, appt := range s.appointments {
		next[id] = appt
	}
	return next
}
