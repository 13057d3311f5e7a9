package booking

import (
	"context"
	"strings"
	"sync"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
)

// CancelSelector picks the appointment to cancel: an explicit id, or a phone
// number meaning "the patient's next upcoming appointment".
type CancelSelector struct {
	ID    string
	Phone string
}

// ListFilter narrows List results. Empty fields match everything.
type ListFilter struct {
	Date    string
	Phone   string
	Dentist string
}

// Engine is the scheduling core exposed to the HTTP layer. All time inputs
// are canonical "HH:MM" grid values; free-text normalization happens outside.
type Engine interface {
	Book(ctx context.Context, req models.BookingRequest) (string, error)
	Update(ctx context.Context, id string, req models.UpdateRequest) (models.Appointment, error)
	Cancel(ctx context.Context, sel CancelSelector) (models.Appointment, error)
	List(filter ListFilter) []models.Appointment
	AvailableSlots(ctx context.Context, date, service, dentist string) (models.AvailableSlotsResponse, error)
	Get(id string) (models.Appointment, error)
	FirstOnDate(phone, date string) (models.Appointment, error)
}

// Policy holds the booking-window rules.
type Policy struct {
	MinAdvanceHours   int
	MaxAdvanceDays    int
	CancellationHours int
}

// DefaultEngine implements Engine. A single mutex serializes every mutating
// pipeline from the read of existing appointments through the snapshot write,
// so two requests for overlapping slots can never both pass the conflict
// check. Read-only queries go straight to the store, whose own lock keeps
// them from observing torn state.
type DefaultEngine struct {
	Calendar  *Calendar
	Durations *DurationResolver
	Registry  *Registry
	Store     *appointmentRepo.Store
	Cache     *SlotCache
	Policy    Policy

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	mu sync.Mutex
}

// NewDefaultEngine wires the engine. cache may be nil.
func NewDefaultEngine(
	calendar *Calendar,
	durations *DurationResolver,
	registry *Registry,
	store *appointmentRepo.Store,
	cache *SlotCache,
	policy Policy,
) *DefaultEngine {
	return &DefaultEngine{
		Calendar:  calendar,
		Durations: durations,
		Registry:  registry,
		Store:     store,
		Cache:     cache,
		Policy:    policy,
		Now:       time.Now,
	}
}

func (e *DefaultEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// validateBookingTime enforces the temporal policy for a (date, time) pair:
// the clinic must be open, the start must be a grid slot, and the moment must
// sit inside [now+MinAdvanceHours, now+MaxAdvanceDays].
func (e *DefaultEngine) validateBookingTime(date, slot string) error {
	appt, err := time.ParseInLocation(dateTimeLayout, date+" "+slot, time.Local)
	if err != nil {
		return newError(CodeInvalidTimeFormat,
			"invalid date or time format, use YYYY-MM-DD for date and HH:MM for time")
	}

	if !e.Calendar.IsOpen(date) {
		return newError(CodeClinicClosed, "no appointments available on %s", date)
	}
	if !e.Calendar.HasSlot(date, slot) {
		return newError(CodeSlotNotInSchedule, "time %s is not available on %s", slot, date)
	}

	now := e.now()
	if appt.Before(now.Add(time.Duration(e.Policy.MinAdvanceHours) * time.Hour)) {
		if appt.Before(now) {
			return newError(CodeInThePast, "cannot book appointments in the past")
		}
		return newError(CodeTooSoon,
			"appointments must be booked at least %d hours in advance", e.Policy.MinAdvanceHours)
	}
	if appt.After(now.AddDate(0, 0, e.Policy.MaxAdvanceDays)) {
		return newError(CodeTooFarAhead,
			"appointments can only be booked up to %d days in advance", e.Policy.MaxAdvanceDays)
	}
	return nil
}

// checkDuplicatePatient rejects a second appointment for the same patient
// (matched by phone OR email) at the same date and start slot. The check
// blocks across dentists.
func (e *DefaultEngine) checkDuplicatePatient(phone, email, date, slot, excludeID string, existing []models.Appointment) error {
	for _, appt := range existing {
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		if appt.Phone != phone && (email == "" || appt.Email != email) {
			continue
		}
		if appt.Date == date && appt.Time == slot {
			return newError(CodeDuplicatePatientBooking,
				"patient already has an appointment on %s at %s", date, slot)
		}
	}
	return nil
}

// resolveDentist picks the dentist for a booking. An explicit request must
// name a known dentist who works that date and whose span is free. With no
// request, dentists are tried in priority order and the first who is working
// and conflict-free wins.
func (e *DefaultEngine) resolveDentist(requested, service, date, slot, excludeID string, existing []models.Appointment) (string, error) {
	if requested != "" {
		if !e.Registry.Exists(requested) {
			return "", newError(CodePractitionerUnavailable,
				"dentist %q not found, available dentists: %s", requested, strings.Join(e.Registry.Dentists(), ", "))
		}
		if !e.Registry.IsAvailable(requested, date) {
			return "", newError(CodePractitionerUnavailable,
				"%s is not available on %s (not working or on vacation)", requested, date)
		}
		if err := e.checkSpan(service, date, slot, requested, excludeID, existing); err != nil {
			return "", err
		}
		return requested, nil
	}

	// The span's grid containment is dentist-independent; report a schedule
	// violation before blaming dentist availability.
	span := spanSlots(slot, e.Durations.Slots(service), e.Calendar.SlotMinutes())
	if off := e.offGridSlots(span); len(off) > 0 {
		return "", newError(CodeSlotNotInSchedule,
			"time slot %s is not available in the clinic schedule", off[0])
	}

	for _, dentist := range e.Registry.Dentists() {
		if !e.Registry.IsAvailable(dentist, date) {
			continue
		}
		if conflicts := e.findConflicts(span, date, dentist, existing, excludeID); len(conflicts) > 0 {
			continue
		}
		return dentist, nil
	}
	return "", newError(CodeNoPractitionerAvailable,
		"no dentist available for %s on %s at %s", service, date, slot)
}
