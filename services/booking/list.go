package booking

import "clinicbook/models"

// Get returns the appointment with the given id.
func (e *DefaultEngine) Get(id string) (models.Appointment, error) {
	appt, ok := e.Store.Get(id)
	if !ok {
		return models.Appointment{}, newError(CodeNotFound, "appointment %s not found", id)
	}
	return appt, nil
}

// List returns appointments matching the filter, sorted by (date, time).
func (e *DefaultEngine) List(filter ListFilter) []models.Appointment {
	all := e.Store.All()
	out := make([]models.Appointment, 0, len(all))
	for _, appt := range all {
		if filter.Date != "" && appt.Date != filter.Date {
			continue
		}
		if filter.Phone != "" && appt.Phone != filter.Phone {
			continue
		}
		if filter.Dentist != "" && appt.Dentist != filter.Dentist {
			continue
		}
		out = append(out, appt)
	}
	return out
}
