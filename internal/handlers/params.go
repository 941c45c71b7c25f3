package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// uintParam reads a positive path parameter, answering 400 when it is not one.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

// optionalUint parses an optional numeric query value.
func optionalUint(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
