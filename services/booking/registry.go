package booking

import (
	"time"

	"clinicbook/config"
)

// Registry answers whether a dentist works on a given date. Availability is
// (weekday in working days) AND (date not a vacation date); unknown dentists
// are never available.
type Registry struct {
	order     []string
	schedules map[string]config.DentistSchedule
}

func NewRegistry(clinic config.ClinicConfig) *Registry {
	return &Registry{
		order:     clinic.Dentists,
		schedules: clinic.DentistSchedules,
	}
}

// Dentists returns the dentists in auto-assignment priority order.
func (r *Registry) Dentists() []string {
	return r.order
}

// Exists reports whether the dentist is known to the clinic.
func (r *Registry) Exists(dentist string) bool {
	_, ok := r.schedules[dentist]
	return ok
}

// IsAvailable reports whether the dentist works on the date.
func (r *Registry) IsAvailable(dentist, date string) bool {
	schedule, ok := r.schedules[dentist]
	if !ok {
		return false
	}
	for _, vacation := range schedule.VacationDates {
		if vacation == date {
			return false
		}
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	for _, weekday := range schedule.WorkingDays {
		if d.Weekday() == weekday {
			return true
		}
	}
	return false
}
