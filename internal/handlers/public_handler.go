package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

// PublicHandler serves the read-only catalog shown before booking.
type PublicHandler struct {
	repo domain.Repository
}

func NewPublicHandler(repo domain.Repository) *PublicHandler {
	return &PublicHandler{repo: repo}
}

type PublicServiceDTO struct {
	ID               uint               `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	DurationMinutes  int                `json:"duration_minutes"`
	Price            float64            `json:"price"`
	PricingModifiers map[string]float64 `json:"pricing_modifiers,omitempty"`
}

type PublicStaffDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	businessID, ok := uintParam(c, "businessID")
	if !ok {
		return
	}

	services, err := h.repo.ListServices(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "services_failed", "Could not list services.")
		return
	}

	out := make([]PublicServiceDTO, 0, len(services))
	for _, s := range services {
		if !s.Active {
			continue
		}
		out = append(out, PublicServiceDTO{
			ID:               s.ID,
			Name:             s.Name,
			Description:      s.Description,
			DurationMinutes:  s.DurationMinutes,
			Price:            s.Price,
			PricingModifiers: s.PricingModifiers,
		})
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	businessID, ok := uintParam(c, "businessID")
	if !ok {
		return
	}

	staff, err := h.repo.ListActiveStaff(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "staff_failed", "Could not list staff.")
		return
	}

	out := make([]PublicStaffDTO, 0, len(staff))
	for _, s := range staff {
		out = append(out, PublicStaffDTO{ID: s.ID, Name: s.Name})
	}

	httpresp.List(c, out)
}
