package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	ContextStaffID    = "staffID"
	ContextBusinessID = "businessID"
	ContextUserRole   = "userRole"
)

// AuthMiddleware accepts HS256 tokens issued elsewhere. "sub" is the staff
// member, "businessId" their business.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	key := func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}

	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			deny(c, "invalid_authorization_header")
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(raw, claims, key)
		if err != nil || !token.Valid {
			deny(c, "invalid_token")
			return
		}

		staffID, ok1 := idClaim(claims["sub"])
		businessID, ok2 := idClaim(claims["businessId"])
		if !ok1 || !ok2 {
			deny(c, "invalid_token_payload")
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextStaffID, staffID)
		c.Set(ContextBusinessID, businessID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// idClaim reads a positive id stored either as a JSON number or a string.
func idClaim(v any) (uint, bool) {
	switch id := v.(type) {
	case float64:
		if id >= 1 && id == float64(uint(id)) {
			return uint(id), true
		}
	case string:
		n, err := strconv.ParseUint(id, 10, 0)
		if err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}

func deny(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Authentication required.")
	c.Abort()
}
