package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"clinicbook/models"
	"clinicbook/services/booking"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the booking engine over HTTP.
type AppointmentHandler struct {
	Engine booking.Engine
	Logger *zap.Logger
}

func NewAppointmentHandler(engine booking.Engine, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Engine: engine, Logger: logger}
}

// CreateAppointment books a new appointment. Dentist is optional and
// auto-assigned when absent.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	normalized, err := utils.NormalizeTime(req.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid time format",
			"code":  string(booking.CodeInvalidTimeFormat),
		})
		return
	}
	req.Time = normalized

	id, err := h.Engine.Book(c.Request.Context(), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.BookingResponse{Success: true, AppointmentID: id})
}

// ListAppointments returns appointments filtered by date, phone and dentist,
// sorted by (date, time).
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	appointments := h.Engine.List(booking.ListFilter{
		Date:    c.Query("date"),
		Phone:   c.Query("phone"),
		Dentist: c.Query("dentist"),
	})
	c.JSON(http.StatusOK, models.AppointmentList{
		Total:        len(appointments),
		Appointments: appointments,
	})
}

// UpdateAppointment applies a partial update. The target is either the
// appointment_id in the body, or the patient's earliest appointment on
// ?phone=...&date=... .
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req models.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	id := req.AppointmentID
	if id == "" {
		phone := c.Query("phone")
		date := c.Query("date")
		if phone == "" || date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "provide appointment_id, or phone and date query parameters"})
			return
		}
		target, err := h.Engine.FirstOnDate(phone, date)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		id = target.ID
	}

	if req.Time != nil {
		normalized, err := utils.NormalizeTime(*req.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid time format",
				"code":  string(booking.CodeInvalidTimeFormat),
			})
			return
		}
		req.Time = &normalized
	}

	old, err := h.Engine.Get(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	updated, err := h.Engine.Update(c.Request.Context(), id, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UpdateResponse{
		Success: true,
		Message: fmt.Sprintf("Appointment updated: %s at %s -> %s at %s",
			old.Date, old.Time, updated.Date, updated.Time),
	})
}

// DeleteAppointment cancels an appointment: ?id=... for an explicit target,
// or ?phone=... for the patient's next upcoming appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	sel := booking.CancelSelector{
		ID:    c.Query("id"),
		Phone: c.Query("phone"),
	}
	if sel.ID == "" && sel.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide id or phone query parameter"})
		return
	}

	cancelled, err := h.Engine.Cancel(c.Request.Context(), sel)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DeleteResponse{
		Success: true,
		Message: fmt.Sprintf("Appointment cancelled: %s at %s with %s",
			cancelled.Date, cancelled.Time, cancelled.Dentist),
	})
}

// GetAvailableSlots lists bookable start times for a date, sized for the
// requested service's duration.
func (h *AppointmentHandler) GetAvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	service := c.DefaultQuery("service", "Default")
	dentist := c.Query("dentist")

	resp, err := h.Engine.AvailableSlots(c.Request.Context(), date, service, dentist)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondBookingError maps a booking rejection to its HTTP status. Errors
// without a business code are internal (persistence) failures.
func respondBookingError(c *gin.Context, err error) {
	code := booking.CodeOf(err)
	if code == "" {
		utils.GetLogger().Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": err.Error(), "code": string(code)}
	var bookingErr *booking.Error
	if errors.As(err, &bookingErr) && len(bookingErr.Slots) > 0 {
		body["conflicting_slots"] = bookingErr.Slots
	}
	c.JSON(statusForCode(code), body)
}

func statusForCode(code booking.Code) int {
	switch code {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeSlotConflict, booking.CodeDuplicatePatientBooking, booking.CodeNoPractitionerAvailable:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
