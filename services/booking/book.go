package booking

import (
	"context"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultEmail     = "no-email@clinic.com"
	defaultInsurance = "No Insurance"
	defaultNotes     = "No additional notes"
)

// Book runs the full booking pipeline and commits the appointment. The time
// in req must already be canonical "HH:MM".
func (e *DefaultEngine) Book(ctx context.Context, req models.BookingRequest) (string, error) {
	logger := utils.GetLogger()

	if err := e.Durations.ValidateService(req.Service); err != nil {
		return "", err
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return "", newError(CodeInvalidTimeFormat, "time %q is not a valid HH:MM value", req.Time)
	}

	email := req.Email
	if email == "" {
		email = defaultEmail
	}

	// Everything from here reads the existing appointment set and ends in a
	// write; one critical section keeps check-then-act atomic.
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateBookingTime(req.Date, req.Time); err != nil {
		return "", err
	}

	existing := e.Store.All()
	if err := e.checkDuplicatePatient(req.Phone, email, req.Date, req.Time, "", existing); err != nil {
		return "", err
	}

	dentist, err := e.resolveDentist(req.Dentist, req.Service, req.Date, req.Time, "", existing)
	if err != nil {
		return "", err
	}

	appt := models.Appointment{
		ID:                uuid.New().String(),
		Service:           req.Service,
		PatientName:       req.PatientName,
		Phone:             req.Phone,
		Email:             email,
		Date:              req.Date,
		Time:              req.Time,
		Dentist:           dentist,
		InsuranceProvider: req.InsuranceProvider,
		Notes:             req.Notes,
	}
	if appt.InsuranceProvider == "" {
		appt.InsuranceProvider = defaultInsurance
	}
	if appt.Notes == "" {
		appt.Notes = defaultNotes
	}

	if err := e.Store.Put(ctx, appt); err != nil {
		logger.Error("booking commit failed", zap.String("appointmentID", appt.ID), zap.Error(err))
		return "", err
	}
	e.Cache.Invalidate(ctx, req.Date)

	logger.Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("service", appt.Service),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time),
		zap.String("dentist", appt.Dentist))
	return appt.ID, nil
}
