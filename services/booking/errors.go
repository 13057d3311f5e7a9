package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a business-rule rejection. Anything not carrying a Code is
// an internal fault (persistence, programming error) and maps to HTTP 500.
type Code string

const (
	CodeInvalidService          Code = "InvalidService"
	CodeInvalidTimeFormat       Code = "InvalidTimeFormat"
	CodeClinicClosed            Code = "ClinicClosed"
	CodeSlotNotInSchedule       Code = "SlotNotInSchedule"
	CodeTooSoon                 Code = "TooSoon"
	CodeTooFarAhead             Code = "TooFarAhead"
	CodeInThePast               Code = "InThePast"
	CodeDuplicatePatientBooking Code = "DuplicatePatientBooking"
	CodePractitionerUnavailable Code = "PractitionerUnavailable"
	CodeSlotConflict            Code = "SlotConflict"
	CodeNoPractitionerAvailable Code = "NoPractitionerAvailable"
	CodeNotFound                Code = "NotFound"
	CodeCancellationTooLate     Code = "CancellationTooLate"
)

// Error is a structured, user-displayable booking rejection.
type Error struct {
	Code    Code
	Message string
	// Slots carries the conflicting slot times for CodeSlotConflict.
	Slots []string
}

func (e *Error) Error() string {
	if len(e.Slots) > 0 {
		return fmt.Sprintf("%s: %s (slots: %s)", e.Code, e.Message, strings.Join(e.Slots, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func newConflictError(slots []string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    CodeSlotConflict,
		Message: fmt.Sprintf(format, args...),
		Slots:   slots,
	}
}

// CodeOf extracts the business code from err, or "" when err is not a
// booking rejection.
func CodeOf(err error) Code {
	var bookingErr *Error
	if errors.As(err, &bookingErr) {
		return bookingErr.Code
	}
	return ""
}
