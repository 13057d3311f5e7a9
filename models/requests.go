package models

// BookingRequest is the payload for creating a new appointment. Dentist is
// optional; when empty one is auto-assigned.
type BookingRequest struct {
	Service           string `json:"service" binding:"required"`
	PatientName       string `json:"patient_name" binding:"required"`
	Phone             string `json:"phone" binding:"required"`
	Email             string `json:"email"`
	Date              string `json:"appointment_date" binding:"required"`
	Time              string `json:"time" binding:"required"`
	Dentist           string `json:"dentist"`
	InsuranceProvider string `json:"insurance_provider"`
	Notes             string `json:"notes"`
}

// BookingResponse acknowledges a successful booking.
type BookingResponse struct {
	Success       bool   `json:"success"`
	AppointmentID string `json:"appointment_id"`
}

// UpdateRequest carries a partial update. Nil fields keep their prior values.
type UpdateRequest struct {
	AppointmentID     string  `json:"appointment_id"`
	Service           *string `json:"service"`
	PatientName       *string `json:"patient_name"`
	Email             *string `json:"email"`
	Date              *string `json:"appointment_date"`
	Time              *string `json:"time"`
	Dentist           *string `json:"dentist"`
	InsuranceProvider *string `json:"insurance_provider"`
	Notes             *string `json:"notes"`
}

// UpdateResponse reports the outcome of an update.
type UpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteResponse reports the outcome of a cancellation.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AppointmentList is the response for listing appointments.
type AppointmentList struct {
	Total        int           `json:"total"`
	Appointments []Appointment `json:"appointments"`
}

// AvailableSlotsResponse lists the bookable start times for a date, taking the
// requested service's full duration into account.
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	Service         string   `json:"service"`
	Dentist         string   `json:"dentist"`
	DurationMinutes int      `json:"duration_minutes"`
	SlotsNeeded     int      `json:"slots_needed"`
	TotalAvailable  int      `json:"total_available"`
	AvailableTimes  []string `json:"available_times"`
}
