package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps a use case error to its HTTP response.
func FromError(c *gin.Context, err error) {
	var ve ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    ve.Code,
			Message: "Invalid request.",
			Field:   ve.Field,
		})
		return
	}

	if IsBookingConflict(err) {
		Conflict(c, "booking_conflict", "Slot is no longer available, refresh availability and retry.")
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "appointment_not_found":
			NotFound(c, be.Code, "Appointment not found.")
		case "staff_not_found":
			NotFound(c, be.Code, "Staff member not found.")
		default:
			Write(c, http.StatusUnprocessableEntity, be.Code, "Request cannot be processed.")
		}
		return
	}

	Internal(c, "internal_error", "Unexpected error.")
}
