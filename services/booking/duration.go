package booking

import (
	"sort"
	"strings"

	"clinicbook/config"
)

// DurationResolver maps service names to slot counts. Unknown names fall back
// to the configured default duration; the fallback key itself is not bookable.
type DurationResolver struct {
	durations   map[string]int
	slotMinutes int
}

func NewDurationResolver(clinic config.ClinicConfig, slotMinutes int) *DurationResolver {
	return &DurationResolver{
		durations:   clinic.ServiceDurations,
		slotMinutes: slotMinutes,
	}
}

// ValidateService rejects unknown service names and the fallback sentinel.
func (r *DurationResolver) ValidateService(service string) error {
	if _, ok := r.durations[service]; !ok || service == config.DefaultServiceKey {
		return newError(CodeInvalidService,
			"invalid service %q, valid services: %s", service, strings.Join(r.ValidServices(), ", "))
	}
	return nil
}

// Minutes returns the duration for a service, falling back to the default for
// unknown names.
func (r *DurationResolver) Minutes(service string) int {
	if minutes, ok := r.durations[service]; ok {
		return minutes
	}
	return r.durations[config.DefaultServiceKey]
}

// Slots returns how many consecutive grid slots the service occupies.
func (r *DurationResolver) Slots(service string) int {
	slots := r.Minutes(service) / r.slotMinutes
	if slots < 1 {
		slots = 1
	}
	return slots
}

// ValidServices lists the bookable service names, sorted, sentinel excluded.
func (r *DurationResolver) ValidServices() []string {
	out := make([]string, 0, len(r.durations))
	for name := range r.durations {
		if name == config.DefaultServiceKey {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
