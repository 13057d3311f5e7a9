package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultServiceKey is the fallback entry in the duration table. It is not a
// bookable service and must be rejected when requested explicitly.
const DefaultServiceKey = "Default"

// DentistSchedule describes when a dentist is at the clinic.
type DentistSchedule struct {
	WorkingDays   []time.Weekday `mapstructure:"working_days"`
	VacationDates []string       `mapstructure:"vacation_dates"`
}

// ClinicConfig holds the string-keyed domain tables. Loaded once at startup
// and treated as read-only afterwards.
type ClinicConfig struct {
	// ServiceDurations maps service name to duration in minutes. Includes
	// Arabic aliases for every service.
	ServiceDurations map[string]int

	// Dentists in auto-assignment priority order.
	Dentists []string

	DentistSchedules map[string]DentistSchedule

	// Holidays are explicit closed dates in YYYY-MM-DD form, on top of the
	// weekly days off.
	Holidays []string

	// DaysOff are the weekly clinic closure days.
	DaysOff []time.Weekday
}

var Clinic ClinicConfig

// LoadClinicConfig populates the clinic tables, letting a config file override
// the built-in defaults under the "clinic" key.
func LoadClinicConfig() {
	Clinic = ClinicConfig{
		ServiceDurations: map[string]int{
			"Dental Cleaning": 30,
			"تنظيف الأسنان":   30,
			"Root Canal":      90,
			"علاج العصب":      90,
			"Teeth Whitening": 60,
			"تبييض الأسنان":   60,
			"Filling":         45,
			"حشو":             45,
			"Extraction":      45,
			"خلع":             45,
			"Consultation":    30,
			"استشارة":         30,
			"Checkup":         30,
			"فحص":             30,
			DefaultServiceKey: 30,
		},
		Dentists: []string{
			"Dr. Sarah Ahmed",
			"Dr. Mohammad Hassan",
			"Dr. Layla Ibrahim",
		},
		DentistSchedules: map[string]DentistSchedule{
			"Dr. Sarah Ahmed": {
				WorkingDays:   []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday},
				VacationDates: []string{},
			},
			"Dr. Mohammad Hassan": {
				WorkingDays:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday},
				VacationDates: []string{},
			},
			"Dr. Layla Ibrahim": {
				WorkingDays:   []time.Weekday{time.Sunday, time.Tuesday, time.Wednesday, time.Thursday},
				VacationDates: []string{},
			},
		},
		Holidays: []string{"2026-01-01", "2026-07-20"},
		DaysOff:  []time.Weekday{time.Friday, time.Saturday},
	}

	if viper.IsSet("clinic.service_durations") {
		durations := make(map[string]int)
		if err := viper.UnmarshalKey("clinic.service_durations", &durations); err == nil {
			Clinic.ServiceDurations = durations
		}
	}
	if viper.IsSet("clinic.dentists") {
		Clinic.Dentists = viper.GetStringSlice("clinic.dentists")
	}
	if viper.IsSet("clinic.holidays") {
		Clinic.Holidays = viper.GetStringSlice("clinic.holidays")
	}
	if viper.IsSet("clinic.dentist_schedules") {
		schedules := make(map[string]DentistSchedule)
		if err := viper.UnmarshalKey("clinic.dentist_schedules", &schedules); err == nil {
			Clinic.DentistSchedules = schedules
		}
	}
}
