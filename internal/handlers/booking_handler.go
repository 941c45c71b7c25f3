package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	availability *ucBooking.CalculateAvailability
	selection    *ucBooking.SelectServices
	slots        *ucBooking.FindMultiServiceSlots
	commit       *ucBooking.CreateMultiServiceAppointment
}

func NewBookingHandler(
	availability *ucBooking.CalculateAvailability,
	selection *ucBooking.SelectServices,
	slots *ucBooking.FindMultiServiceSlots,
	commit *ucBooking.CreateMultiServiceAppointment,
) *BookingHandler {
	return &BookingHandler{
		availability: availability,
		selection:    selection,
		slots:        slots,
		commit:       commit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotsRequest struct {
	Services         []ucBooking.ServiceChoice `json:"services" binding:"dive"`
	Date             string                    `json:"date"`
	StaffID          *uint                     `json:"staff_id"`
	PreferredStaffID *uint                     `json:"preferred_staff_id"`
}

type PriceRequest struct {
	Services []ucBooking.ServiceChoice `json:"services" binding:"dive"`
}

type CreateAppointmentRequest struct {
	ClientID uint                      `json:"client_id" binding:"required"`
	StaffID  *uint                     `json:"staff_id"`
	Services []ucBooking.ServiceChoice `json:"services" binding:"dive"`
	Date     string                    `json:"date"`
	Time     string                    `json:"time"`
	Notes    string                    `json:"notes" binding:"max=255"`
}

type PriceLine struct {
	ServiceID uint     `json:"service_id"`
	Name      string   `json:"name"`
	Options   []string `json:"options,omitempty"`
	Price     float64  `json:"price"`
}

type PriceResponse struct {
	Lines           []PriceLine `json:"lines"`
	TotalPrice      float64     `json:"total_price"`
	DurationMinutes int         `json:"duration_minutes"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	businessID, ok := uintParam(c, "businessID")
	if !ok {
		return
	}

	staffID, err := optionalUint(c.Query("staff_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff_id.")
		return
	}
	serviceID, err := optionalUint(c.Query("service_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service_id.")
		return
	}
	duration, err := optionalInt(c.Query("duration"))
	if err != nil {
		httperr.BadRequest(c, "invalid_duration", "Invalid duration.")
		return
	}
	interval, err := optionalInt(c.Query("interval"))
	if err != nil {
		httperr.BadRequest(c, "invalid_interval", "Invalid interval.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BusinessID:      businessID,
		StaffID:         staffID,
		ServiceID:       serviceID,
		Date:            c.Query("date"),
		DurationMinutes: duration,
		Resource:        c.Query("resource"),
		IntervalMinutes: interval,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// SLOTS (bundle)
// ======================================================

func (h *BookingHandler) Slots(c *gin.Context) {
	businessID, ok := uintParam(c, "businessID")
	if !ok {
		return
	}

	var req SlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	services, err := h.selection.Execute(c.Request.Context(), businessID, req.Services)
	if ucBooking.IsUnknownService(err) {
		httpresp.List(c, []domain.BookingSlot{})
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), domain.BookingSession{
		BusinessID:       businessID,
		StaffID:          req.StaffID,
		PreferredStaffID: req.PreferredStaffID,
		Date:             req.Date,
		Services:         services,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// PRICE
// ======================================================

func (h *BookingHandler) Price(c *gin.Context) {
	businessID, ok := uintParam(c, "businessID")
	if !ok {
		return
	}

	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	services, err := h.selection.Execute(c.Request.Context(), businessID, req.Services)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	resp := PriceResponse{
		Lines:           make([]PriceLine, 0, len(services)),
		TotalPrice:      domain.CalculateMultiServicePrice(services),
		DurationMinutes: domain.TotalDuration(services),
	}
	for _, s := range services {
		resp.Lines = append(resp.Lines, PriceLine{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Options:   s.Options,
			Price:     s.LinePrice(),
		})
	}

	httpresp.OK(c, resp)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) CreateAppointment(c *gin.Context) {
	businessID, ok := uintParam(c, "businessID")
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	services, err := h.selection.Execute(c.Request.Context(), businessID, req.Services)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	// the price is always recomputed from the catalog
	total := domain.CalculateMultiServicePrice(services)

	result, err := h.commit.Execute(c.Request.Context(), domain.BookingSession{
		BusinessID: businessID,
		ClientID:   req.ClientID,
		StaffID:    req.StaffID,
		Date:       req.Date,
		StartTime:  req.Time,
		Services:   services,
		Notes:      req.Notes,
	}, total)
	if err != nil {
		if errors.Is(err, domain.ErrPartialFailureRolledBack) {
			httperr.Internal(c, "booking_rolled_back", "Booking could not be completed, nothing was saved.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, result)
}
