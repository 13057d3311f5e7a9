package appointmentRepo

import (
	"context"

	"clinicbook/models"
)

// Backend persists the full appointment set as a flat record set keyed by id.
// Save is a durable snapshot: it must not return success until the whole set
// is safely written.
type Backend interface {
	Load(ctx context.Context) (map[string]models.Appointment, error)
	Save(ctx context.Context, appointments map[string]models.Appointment) error
}
