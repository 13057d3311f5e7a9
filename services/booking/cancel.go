package booking

import (
	"context"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// Cancel removes an appointment. With an explicit id the target is exact;
// with a phone number the target is the patient's next upcoming appointment
// (earliest strictly-future start). Either way the cancellation window is
// enforced: less than CancellationHours before the start is too late.
func (e *DefaultEngine) Cancel(ctx context.Context, sel CancelSelector) (models.Appointment, error) {
	logger := utils.GetLogger()

	e.mu.Lock()
	defer e.mu.Unlock()

	var appt models.Appointment
	switch {
	case sel.ID != "":
		found, ok := e.Store.Get(sel.ID)
		if !ok {
			return models.Appointment{}, newError(CodeNotFound, "appointment %s not found", sel.ID)
		}
		appt = found
	case sel.Phone != "":
		next, err := e.nextUpcoming(sel.Phone)
		if err != nil {
			return models.Appointment{}, err
		}
		appt = next
	default:
		return models.Appointment{}, newError(CodeNotFound, "no appointment selector given")
	}

	start, err := time.ParseInLocation(dateTimeLayout, appt.Date+" "+appt.Time, time.Local)
	if err != nil {
		return models.Appointment{}, newError(CodeInvalidTimeFormat,
			"appointment %s has an unreadable start time", appt.ID)
	}
	if e.now().After(start.Add(-time.Duration(e.Policy.CancellationHours) * time.Hour)) {
		return models.Appointment{}, newError(CodeCancellationTooLate,
			"appointment on %s at %s must be cancelled at least %d hours in advance",
			appt.Date, appt.Time, e.Policy.CancellationHours)
	}

	if err := e.Store.Delete(ctx, appt.ID); err != nil {
		logger.Error("cancellation commit failed", zap.String("appointmentID", appt.ID), zap.Error(err))
		return models.Appointment{}, err
	}
	e.Cache.Invalidate(ctx, appt.Date)

	logger.Info("appointment cancelled",
		zap.String("appointmentID", appt.ID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))
	return appt, nil
}

// nextUpcoming finds the earliest strictly-future appointment for a phone
// number.
func (e *DefaultEngine) nextUpcoming(phone string) (models.Appointment, error) {
	now := e.now()
	var next models.Appointment
	var nextStart time.Time
	found := false
	any := false

	for _, appt := range e.Store.All() {
		if appt.Phone != phone {
			continue
		}
		any = true
		start, err := time.ParseInLocation(dateTimeLayout, appt.Date+" "+appt.Time, time.Local)
		if err != nil {
			continue
		}
		if !start.After(now) {
			continue
		}
		if !found || start.Before(nextStart) {
			next = appt
			nextStart = start
			found = true
		}
	}

	if !any {
		return models.Appointment{}, newError(CodeNotFound, "no appointments found for this phone number")
	}
	if !found {
		return models.Appointment{}, newError(CodeNotFound,
			"no upcoming appointments found for this phone number")
	}
	return next, nil
}
