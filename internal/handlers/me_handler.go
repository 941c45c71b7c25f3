package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the authenticated staff member, their business and the
// services they are assigned to.
func (h *MeHandler) GetMe(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var staff models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Business").
		Where("id = ? AND business_id = ?", staffID, businessID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	var serviceIDs []uint
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.StaffService{}).
		Where("staff_id = ?", staffID).
		Order("service_id ASC").
		Pluck("service_id", &serviceIDs).Error; err != nil {
		httperr.Internal(c, "assignments_failed", "Could not load assigned services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staff": gin.H{
			"id":          staff.ID,
			"name":        staff.Name,
			"active":      staff.Active,
			"role":        c.GetString(middleware.ContextUserRole),
			"service_ids": serviceIDs,
		},
		"business": gin.H{
			"id":                    staff.Business.ID,
			"name":                  staff.Business.Name,
			"slug":                  staff.Business.Slug,
			"timezone":              staff.Business.Timezone,
			"open_time":             staff.Business.OpenTime,
			"close_time":            staff.Business.CloseTime,
			"slot_interval_minutes": staff.Business.SlotIntervalMinutes,
		},
	})
}
