package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	dateLayout = "2006-01-02"

	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// AuditLogFilter is the query string of GET /api/me/audit-logs. Dates are
// inclusive business days.
type AuditLogFilter struct {
	Action  string `form:"action"`
	Entity  string `form:"entity"`
	StaffID *uint  `form:"staff_id"`
	From    string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To      string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

func (f *AuditLogFilter) normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > maxAuditLimit {
		f.Limit = defaultAuditLimit
	}
}

func (f AuditLogFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.StaffID != nil {
		q = q.Where("staff_id = ?", *f.StaffID)
	}
	if from, err := time.Parse(dateLayout, f.From); err == nil {
		q = q.Where("created_at >= ?", from)
	}
	if to, err := time.Parse(dateLayout, f.To); err == nil {
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}
	return q
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var filter AuditLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httperr.BadRequest(c, "invalid_filter", "Invalid audit log filter.")
		return
	}
	filter.normalize()

	// always scoped to the caller's business
	q := filter.apply(h.db.
		WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("business_id = ?", businessID))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, logs, filter.Page, filter.Limit, total)
}
