package booking

import (
	"context"
	"testing"
	"time"

	"clinicbook/models"
)

func strPtr(s string) *string { return &s }

func TestUpdate_MoveToFreeSlot(t *testing.T) {
	e := newTestEngine(t, testClinic())
	id := mustBook(t, e, bookingReq("Checkup", openDate, "09:00"))

	updated, err := e.Update(context.Background(), id, models.UpdateRequest{Time: strPtr("14:00")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Time != "14:00" || updated.Date != openDate {
		t.Errorf("expected move to %s 14:00, got %s %s", openDate, updated.Date, updated.Time)
	}

	stored, err := e.Get(id)
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if stored.Time != "14:00" {
		t.Errorf("store still holds time %s", stored.Time)
	}
}

func TestUpdate_NoOpMoveDoesNotConflictWithSelf(t *testing.T) {
	e := newTestEngine(t, testClinic())
	id := mustBook(t, e, bookingReq("Root Canal", openDate, "09:00"))

	// Re-asserting the same time must not collide with the appointment's own
	// three-slot span.
	if _, err := e.Update(context.Background(), id, models.UpdateRequest{Time: strPtr("09:00")}); err != nil {
		t.Fatalf("no-op move failed: %v", err)
	}
}

func TestUpdate_MoveIntoOccupiedSpanConflicts(t *testing.T) {
	e := newTestEngine(t, testClinic())

	first := mustBook(t, e, bookingReq("Root Canal", openDate, "09:00"))
	assigned, _ := e.Get(first)

	req := bookingReq("Checkup", openDate, "14:00")
	req.Phone = "0795555123"
	req.Email = "ahmed@example.com"
	req.Dentist = assigned.Dentist
	second := mustBook(t, e, req)

	_, err := e.Update(context.Background(), second, models.UpdateRequest{Time: strPtr("09:30")})
	wantCode(t, err, CodeSlotConflict)
}

func TestUpdate_NonPlacementFieldsSkipScheduleChecks(t *testing.T) {
	e := newTestEngine(t, testClinic())
	id := mustBook(t, e, bookingReq("Checkup", openDate, "09:00"))

	// Force the clock past the appointment; a notes-only edit must still work.
	e.Now = func() time.Time { return time.Date(2026, time.March, 10, 8, 0, 0, 0, time.Local) }

	updated, err := e.Update(context.Background(), id, models.UpdateRequest{
		Notes: strPtr("patient prefers morning calls"),
	})
	if err != nil {
		t.Fatalf("notes-only update failed: %v", err)
	}
	if updated.Notes != "patient prefers morning calls" {
		t.Errorf("notes not applied: %q", updated.Notes)
	}
	if updated.Time != "09:00" {
		t.Errorf("time changed unexpectedly to %s", updated.Time)
	}
}

func TestUpdate_UnknownIDAndBadInputs(t *testing.T) {
	e := newTestEngine(t, testClinic())
	id := mustBook(t, e, bookingReq("Checkup", openDate, "09:00"))

	_, err := e.Update(context.Background(), "no-such-id", models.UpdateRequest{})
	wantCode(t, err, CodeNotFound)

	_, err = e.Update(context.Background(), id, models.UpdateRequest{Service: strPtr("Haircut")})
	wantCode(t, err, CodeInvalidService)

	_, err = e.Update(context.Background(), id, models.UpdateRequest{Time: strPtr("half past nine")})
	wantCode(t, err, CodeInvalidTimeFormat)

	_, err = e.Update(context.Background(), id, models.UpdateRequest{Dentist: strPtr("Dr. Nobody")})
	wantCode(t, err, CodePractitionerUnavailable)
}

func TestFirstOnDate_PicksEarliest(t *testing.T) {
	e := newTestEngine(t, testClinic())
	mustBook(t, e, bookingReq("Checkup", openDate, "14:00"))
	mustBook(t, e, bookingReq("Consultation", openDate, "09:00"))

	first, err := e.FirstOnDate("0791234567", openDate)
	if err != nil {
		t.Fatalf("FirstOnDate failed: %v", err)
	}
	if first.Time != "09:00" {
		t.Errorf("expected earliest at 09:00, got %s", first.Time)
	}

	_, err = e.FirstOnDate("0790000000", openDate)
	wantCode(t, err, CodeNotFound)
}

func TestCancel_ByID(t *testing.T) {
	e := newTestEngine(t, testClinic())
	id := mustBook(t, e, bookingReq("Checkup", openDate, "09:00"))

	cancelled, err := e.Cancel(context.Background(), CancelSelector{ID: id})
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.ID != id {
		t.Errorf("cancelled wrong appointment: %s", cancelled.ID)
	}
	if _, err := e.Get(id); CodeOf(err) != CodeNotFound {
		t.Errorf("appointment still present after cancel: %v", err)
	}
}

func TestCancel_TooLate(t *testing.T) {
	e := newTestEngine(t, testClinic())
	id := mustBook(t, e, bookingReq("Checkup", openDate, "09:00"))

	// 23:00 the night before is inside the 24-hour cancellation window.
	e.Now = func() time.Time { return time.Date(2026, time.March, 2, 23, 0, 0, 0, time.Local) }

	_, err := e.Cancel(context.Background(), CancelSelector{ID: id})
	wantCode(t, err, CodeCancellationTooLate)

	if _, err := e.Get(id); err != nil {
		t.Errorf("appointment should survive a rejected cancellation: %v", err)
	}
}

func TestCancel_NextUpcomingByPhone(t *testing.T) {
	e := newTestEngine(t, testClinic())

	// A past appointment, then two future ones. The earliest future one goes.
	past := mustBook(t, e, bookingReq("Checkup", openDate, "09:00"))
	mustBook(t, e, bookingReq("Consultation", "2026-03-09", "14:00"))
	mustBook(t, e, bookingReq("Checkup", "2026-03-10", "09:00"))

	e.Now = func() time.Time { return time.Date(2026, time.March, 4, 8, 0, 0, 0, time.Local) }

	cancelled, err := e.Cancel(context.Background(), CancelSelector{Phone: "0791234567"})
	if err != nil {
		t.Fatalf("Cancel by phone failed: %v", err)
	}
	if cancelled.Date != "2026-03-09" {
		t.Errorf("expected next upcoming on 2026-03-09, got %s", cancelled.Date)
	}
	if _, err := e.Get(past); err != nil {
		t.Errorf("past appointment should be untouched: %v", err)
	}
}

func TestCancel_NotFoundVariants(t *testing.T) {
	e := newTestEngine(t, testClinic())
	mustBook(t, e, bookingReq("Checkup", openDate, "09:00"))

	_, err := e.Cancel(context.Background(), CancelSelector{ID: "no-such-id"})
	wantCode(t, err, CodeNotFound)

	_, err = e.Cancel(context.Background(), CancelSelector{Phone: "0790000000"})
	wantCode(t, err, CodeNotFound)

	// The only appointment is in the past relative to this clock.
	e.Now = func() time.Time { return time.Date(2026, time.March, 20, 8, 0, 0, 0, time.Local) }
	_, err = e.Cancel(context.Background(), CancelSelector{Phone: "0791234567"})
	wantCode(t, err, CodeNotFound)
}
