package booking

import (
	"sort"
	"time"

	"clinicbook/models"
)

// spanSlots expands a start time into the n consecutive grid times the
// reservation occupies.
func spanSlots(start string, n, slotMinutes int) []string {
	t, err := time.Parse(timeLayout, start)
	if err != nil {
		return nil
	}
	slots := make([]string, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, t.Format(timeLayout))
		t = t.Add(time.Duration(slotMinutes) * time.Minute)
	}
	return slots
}

// offGridSlots returns the candidate slots that fall outside the calendar
// grid (spilling past closing time or into the lunch gap). A non-empty result
// is a schedule violation, distinct from a booking conflict.
func (e *DefaultEngine) offGridSlots(candidate []string) []string {
	var off []string
	for _, slot := range candidate {
		if !e.Calendar.onGrid(slot) {
			off = append(off, slot)
		}
	}
	return off
}

// findConflicts intersects the candidate span with the spans of existing
// appointments on the same date. Conflict checking is scoped per dentist:
// only appointments assigned to the same dentist can collide. excludeID skips
// the appointment being updated so it never conflicts with itself.
func (e *DefaultEngine) findConflicts(candidate []string, date, dentist string, existing []models.Appointment, excludeID string) []string {
	candidateSet := make(map[string]bool, len(candidate))
	for _, slot := range candidate {
		candidateSet[slot] = true
	}

	overlap := make(map[string]bool)
	for _, appt := range existing {
		if excludeID != "" && appt.ID == excludeID {
			continue
		}
		if appt.Date != date {
			continue
		}
		if dentist != "" && appt.Dentist != dentist {
			continue
		}
		occupied := spanSlots(appt.Time, e.Durations.Slots(appt.Service), e.Calendar.SlotMinutes())
		for _, slot := range occupied {
			if candidateSet[slot] {
				overlap[slot] = true
			}
		}
	}
	if len(overlap) == 0 {
		return nil
	}

	conflicts := make([]string, 0, len(overlap))
	for slot := range overlap {
		conflicts = append(conflicts, slot)
	}
	sort.Strings(conflicts)
	return conflicts
}

// checkSpan validates that the candidate span lies on the grid and is free
// for the given dentist.
func (e *DefaultEngine) checkSpan(service, date, start, dentist, excludeID string, existing []models.Appointment) error {
	span := spanSlots(start, e.Durations.Slots(service), e.Calendar.SlotMinutes())
	if off := e.offGridSlots(span); len(off) > 0 {
		return newError(CodeSlotNotInSchedule,
			"time slot %s is not available in the clinic schedule", off[0])
	}
	if conflicts := e.findConflicts(span, date, dentist, existing, excludeID); len(conflicts) > 0 {
		return newConflictError(conflicts,
			"time slots are already booked for %s on %s", dentistLabel(dentist), date)
	}
	return nil
}

func dentistLabel(dentist string) string {
	if dentist == "" {
		return "the clinic"
	}
	return dentist
}
