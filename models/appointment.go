package models

// Appointment is a patient's claim on one or more consecutive slots for a
// service. The ID is assigned once at booking time and never changes.
type Appointment struct {
	ID                string `json:"appointment_id" bson:"_id"`
	Service           string `json:"service" bson:"service"`
	PatientName       string `json:"patient_name" bson:"patientName"`
	Phone             string `json:"phone" bson:"phone"`
	Email             string `json:"email" bson:"email"`
	Date              string `json:"appointment_date" bson:"appointmentDate"`
	Time              string `json:"time" bson:"time"`
	Dentist           string `json:"dentist" bson:"dentist"`
	InsuranceProvider string `json:"insurance_provider" bson:"insuranceProvider"`
	Notes             string `json:"notes" bson:"notes"`
}

// TimeSlot is a single bookable (date, time) pair on the clinic grid.
type TimeSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}
