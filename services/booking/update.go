package booking

import (
	"context"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// Update applies a partial update to an appointment. Unset fields keep their
// prior values. Scheduling rules are re-checked only when a field affecting
// the reservation's placement (service, date, time, dentist) changes, with
// the appointment itself excluded so a no-op move never conflicts with its
// own slots.
func (e *DefaultEngine) Update(ctx context.Context, id string, req models.UpdateRequest) (models.Appointment, error) {
	logger := utils.GetLogger()

	e.mu.Lock()
	defer e.mu.Unlock()

	appt, ok := e.Store.Get(id)
	if !ok {
		return models.Appointment{}, newError(CodeNotFound, "appointment %s not found", id)
	}
	oldDate := appt.Date

	if req.Service != nil {
		if err := e.Durations.ValidateService(*req.Service); err != nil {
			return models.Appointment{}, err
		}
	}
	if req.Time != nil {
		if _, err := time.Parse(timeLayout, *req.Time); err != nil {
			return models.Appointment{}, newError(CodeInvalidTimeFormat,
				"time %q is not a valid HH:MM value", *req.Time)
		}
	}

	service := appt.Service
	if req.Service != nil {
		service = *req.Service
	}
	date := appt.Date
	if req.Date != nil {
		date = *req.Date
	}
	slot := appt.Time
	if req.Time != nil {
		slot = *req.Time
	}
	dentist := appt.Dentist
	if req.Dentist != nil {
		dentist = *req.Dentist
	}
	email := appt.Email
	if req.Email != nil {
		email = *req.Email
	}

	if req.Dentist != nil {
		if !e.Registry.Exists(dentist) {
			return models.Appointment{}, newError(CodePractitionerUnavailable,
				"dentist %q not found", dentist)
		}
		if !e.Registry.IsAvailable(dentist, date) {
			return models.Appointment{}, newError(CodePractitionerUnavailable,
				"%s is not available on %s (not working or on vacation)", dentist, date)
		}
	}

	placementChanged := req.Service != nil || req.Date != nil || req.Time != nil || req.Dentist != nil
	if placementChanged {
		if err := e.validateBookingTime(date, slot); err != nil {
			return models.Appointment{}, err
		}
		existing := e.Store.All()
		if err := e.checkDuplicatePatient(appt.Phone, email, date, slot, id, existing); err != nil {
			return models.Appointment{}, err
		}
		if err := e.checkSpan(service, date, slot, dentist, id, existing); err != nil {
			return models.Appointment{}, err
		}
	}

	appt.Service = service
	appt.Date = date
	appt.Time = slot
	appt.Dentist = dentist
	appt.Email = email
	if req.PatientName != nil {
		appt.PatientName = *req.PatientName
	}
	if req.InsuranceProvider != nil {
		appt.InsuranceProvider = *req.InsuranceProvider
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}

	if err := e.Store.Put(ctx, appt); err != nil {
		logger.Error("update commit failed", zap.String("appointmentID", id), zap.Error(err))
		return models.Appointment{}, err
	}
	e.Cache.Invalidate(ctx, oldDate)
	if appt.Date != oldDate {
		e.Cache.Invalidate(ctx, appt.Date)
	}

	logger.Info("appointment updated",
		zap.String("appointmentID", id),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))
	return appt, nil
}

// FirstOnDate returns the patient's earliest appointment on a date, for the
// update-by-phone flow.
func (e *DefaultEngine) FirstOnDate(phone, date string) (models.Appointment, error) {
	var first models.Appointment
	found := false
	for _, appt := range e.Store.All() {
		if appt.Phone != phone || appt.Date != date {
			continue
		}
		if !found || appt.Time < first.Time {
			first = appt
			found = true
		}
	}
	if !found {
		return models.Appointment{}, newError(CodeNotFound,
			"no appointments found for phone %s on %s", phone, date)
	}
	return first, nil
}
