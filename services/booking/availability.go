package booking

import (
	"context"

	"clinicbook/models"
)

// AvailableSlots lists the start times on a date at which the requested
// service fits entirely on the grid. With a dentist given, only that
// dentist's bookings block a start; without one, a start is listed when at
// least one dentist working that date has the whole span free. Unknown
// services fall back to the default duration here; this is a discovery
// endpoint, not a booking.
func (e *DefaultEngine) AvailableSlots(ctx context.Context, date, service, dentist string) (models.AvailableSlotsResponse, error) {
	schedule := e.Calendar.ScheduleFor(date)
	if schedule == nil {
		return models.AvailableSlotsResponse{}, newError(CodeClinicClosed,
			"no appointments available on %s", date)
	}

	if dentist != "" {
		if !e.Registry.Exists(dentist) {
			return models.AvailableSlotsResponse{}, newError(CodePractitionerUnavailable,
				"dentist %q not found", dentist)
		}
		if !e.Registry.IsAvailable(dentist, date) {
			return models.AvailableSlotsResponse{}, newError(CodePractitionerUnavailable,
				"%s is not available on %s (not working or on vacation)", dentist, date)
		}
	}

	if cached, ok := e.Cache.Get(ctx, date, service, dentist); ok {
		return *cached, nil
	}

	slotsNeeded := e.Durations.Slots(service)
	existing := e.Store.ByDate(date)

	var starts []string
	if dentist != "" {
		starts = e.freeStarts(schedule, slotsNeeded, date, dentist, existing)
	} else {
		for _, candidate := range e.Registry.Dentists() {
			if !e.Registry.IsAvailable(candidate, date) {
				continue
			}
			starts = mergeStarts(starts, e.freeStarts(schedule, slotsNeeded, date, candidate, existing))
		}
		starts = orderByGrid(schedule, starts)
	}

	resp := models.AvailableSlotsResponse{
		Date:            date,
		Service:         service,
		Dentist:         dentist,
		DurationMinutes: e.Durations.Minutes(service),
		SlotsNeeded:     slotsNeeded,
		TotalAvailable:  len(starts),
		AvailableTimes:  starts,
	}
	if resp.Dentist == "" {
		resp.Dentist = "Any available"
	}
	e.Cache.Set(ctx, date, service, dentist, resp)
	return resp, nil
}

// freeStarts returns the grid start times whose full span is on the grid and
// unbooked for the given dentist.
func (e *DefaultEngine) freeStarts(schedule []string, slotsNeeded int, date, dentist string, existing []models.Appointment) []string {
	booked := make(map[string]bool)
	for _, appt := range existing {
		if appt.Dentist != dentist {
			continue
		}
		for _, slot := range spanSlots(appt.Time, e.Durations.Slots(appt.Service), e.Calendar.SlotMinutes()) {
			booked[slot] = true
		}
	}

	var starts []string
	for _, start := range schedule {
		span := spanSlots(start, slotsNeeded, e.Calendar.SlotMinutes())
		ok := true
		for _, slot := range span {
			if !e.Calendar.onGrid(slot) || booked[slot] {
				ok = false
				break
			}
		}
		if ok {
			starts = append(starts, start)
		}
	}
	return starts
}

// mergeStarts unions two start-time lists, dropping duplicates.
func mergeStarts(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			a = append(a, s)
			seen[s] = true
		}
	}
	return a
}

// orderByGrid reorders start times into grid order.
func orderByGrid(schedule, starts []string) []string {
	member := make(map[string]bool, len(starts))
	for _, s := range starts {
		member[s] = true
	}
	out := make([]string, 0, len(starts))
	for _, slot := range schedule {
		if member[slot] {
			out = append(out, slot)
		}
	}
	return out
}
