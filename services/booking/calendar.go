package booking

import (
	"time"

	"clinicbook/config"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// Calendar owns the fixed grid of bookable slots. A date is open iff its
// weekday is a clinic day and it is not an explicit holiday; open dates all
// share the same daily grid. "Closed" (no schedule at all) is distinct from
// "fully booked" (open but every slot taken).
type Calendar struct {
	dailySlots  []string
	slotIndex   map[string]int
	daysOff     map[time.Weekday]bool
	holidays    map[string]bool
	slotMinutes int
}

// NewCalendar builds the daily grid from the clinic hours, excluding the
// lunch gap.
func NewCalendar(cfg config.Config, clinic config.ClinicConfig) *Calendar {
	cal := &Calendar{
		slotIndex:   make(map[string]int),
		daysOff:     make(map[time.Weekday]bool),
		holidays:    make(map[string]bool),
		slotMinutes: cfg.SlotMinutes,
	}
	for _, day := range clinic.DaysOff {
		cal.daysOff[day] = true
	}
	for _, holiday := range clinic.Holidays {
		cal.holidays[holiday] = true
	}

	open, _ := time.Parse(timeLayout, cfg.ClinicOpenTime)
	close, _ := time.Parse(timeLayout, cfg.ClinicCloseTime)
	lunchStart, _ := time.Parse(timeLayout, cfg.LunchStartTime)
	lunchEnd, _ := time.Parse(timeLayout, cfg.LunchEndTime)

	step := time.Duration(cfg.SlotMinutes) * time.Minute
	for t := open; t.Before(close); t = t.Add(step) {
		if !t.Before(lunchStart) && t.Before(lunchEnd) {
			continue
		}
		slot := t.Format(timeLayout)
		cal.slotIndex[slot] = len(cal.dailySlots)
		cal.dailySlots = append(cal.dailySlots, slot)
	}
	return cal
}

// SlotMinutes returns the grid granularity.
func (c *Calendar) SlotMinutes() int {
	return c.slotMinutes
}

// IsOpen reports whether the clinic is open on the given date. Malformed
// dates count as closed.
func (c *Calendar) IsOpen(date string) bool {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	if c.daysOff[d.Weekday()] {
		return false
	}
	return !c.holidays[date]
}

// ScheduleFor returns the ordered bookable slots for a date, or nil when the
// clinic is closed that day.
func (c *Calendar) ScheduleFor(date string) []string {
	if !c.IsOpen(date) {
		return nil
	}
	out := make([]string, len(c.dailySlots))
	copy(out, c.dailySlots)
	return out
}

// HasSlot reports whether the time is a grid slot on an open date.
func (c *Calendar) HasSlot(date, slot string) bool {
	if !c.IsOpen(date) {
		return false
	}
	_, ok := c.slotIndex[slot]
	return ok
}

// onGrid reports whether the time is a grid slot, ignoring the date.
func (c *Calendar) onGrid(slot string) bool {
	_, ok := c.slotIndex[slot]
	return ok
}
