package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	confirm    *ucBooking.ConfirmAppointment
	complete   *ucBooking.CompleteAppointment
	cancel     *ucBooking.CancelAppointment
	listByDate *ucBooking.ListAppointmentsByDate
}

func NewAppointmentHandler(
	confirm *ucBooking.ConfirmAppointment,
	complete *ucBooking.CompleteAppointment,
	cancel *ucBooking.CancelAppointment,
	listByDate *ucBooking.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		confirm:    confirm,
		complete:   complete,
		cancel:     cancel,
		listByDate: listByDate,
	}
}

type transition func(ctx context.Context, businessID, staffID, appointmentID uint) (*models.Appointment, error)

func (h *AppointmentHandler) apply(c *gin.Context, fn transition) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := fn(c.Request.Context(), businessID, staffID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	items, err := h.listByDate.Execute(c.Request.Context(), staffID, businessID, c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.apply(c, h.confirm.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.apply(c, h.complete.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.apply(c, h.cancel.Execute)
}
