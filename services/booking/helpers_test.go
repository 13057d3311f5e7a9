package booking

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"clinicbook/config"
	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
)

// testNow is a Monday morning; the clinic is open Sunday through Thursday.
var testNow = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.Local)

func testAppConfig() config.Config {
	return config.Config{
		ClinicOpenTime:    "09:00",
		ClinicCloseTime:   "18:00",
		LunchStartTime:    "12:00",
		LunchEndTime:      "13:00",
		SlotMinutes:       30,
		ScheduleDays:      90,
		MinAdvanceHours:   2,
		MaxAdvanceDays:    90,
		CancellationHours: 24,
	}
}

func testClinic() config.ClinicConfig {
	return config.ClinicConfig{
		ServiceDurations: map[string]int{
			"Dental Cleaning": 30,
			"Root Canal":      90,
			"Teeth Whitening": 60,
			"Filling":         45,
			"Extraction":      45,
			"Consultation":    30,
			"Checkup":         30,
			"Default":         30,
		},
		Dentists: []string{"Dr. Sarah Ahmed", "Dr. Mohammad Hassan", "Dr. Layla Ibrahim"},
		DentistSchedules: map[string]config.DentistSchedule{
			"Dr. Sarah Ahmed": {
				WorkingDays: []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday},
			},
			"Dr. Mohammad Hassan": {
				WorkingDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday},
			},
			"Dr. Layla Ibrahim": {
				WorkingDays: []time.Weekday{time.Sunday, time.Tuesday, time.Wednesday, time.Thursday},
			},
		},
		Holidays: []string{"2026-03-11"},
		DaysOff:  []time.Weekday{time.Friday, time.Saturday},
	}
}

func newTestEngine(t *testing.T, clinic config.ClinicConfig) *DefaultEngine {
	t.Helper()

	cfg := testAppConfig()
	backend := appointmentRepo.NewJSONBackend(filepath.Join(t.TempDir(), "appointments.json"))
	store, err := appointmentRepo.NewStore(context.Background(), backend)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	engine := NewDefaultEngine(
		NewCalendar(cfg, clinic),
		NewDurationResolver(clinic, cfg.SlotMinutes),
		NewRegistry(clinic),
		store,
		nil,
		Policy{
			MinAdvanceHours:   cfg.MinAdvanceHours,
			MaxAdvanceDays:    cfg.MaxAdvanceDays,
			CancellationHours: cfg.CancellationHours,
		},
	)
	engine.Now = func() time.Time { return testNow }
	return engine
}

func bookingReq(service, date, slot string) models.BookingRequest {
	return models.BookingRequest{
		Service:     service,
		PatientName: "Sarah Johnson",
		Phone:       "0791234567",
		Email:       "sarah.j@example.com",
		Date:        date,
		Time:        slot,
	}
}

func mustBook(t *testing.T, e *DefaultEngine, req models.BookingRequest) string {
	t.Helper()
	id, err := e.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("Book(%s %s %s) failed: %v", req.Service, req.Date, req.Time, err)
	}
	return id
}

func wantCode(t *testing.T, err error, code Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := CodeOf(err); got != code {
		t.Fatalf("expected %s error, got %s (%v)", code, got, err)
	}
}
