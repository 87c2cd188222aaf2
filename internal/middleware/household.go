package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderHousehold carries the caller's household identity. Auth sits in
	// front of this service; by the time a request lands here the header is
	// trusted.
	HeaderHousehold = "X-Household-ID"

	ContextKeyHouseholdID = "household_id"
)

var errNoHousehold = errors.New("household context missing")

// HouseholdGuard returns middleware that requires a valid X-Household-ID
// header and injects it into the request context. Every data route is
// scoped to a household; requests without one are rejected.
func HouseholdGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderHousehold)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing " + HeaderHousehold + " header"},
			})
			return
		}
		householdID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid " + HeaderHousehold + " header"},
			})
			return
		}
		c.Set(ContextKeyHouseholdID, householdID)
		c.Next()
	}
}

// GetHouseholdID extracts the household ID set by HouseholdGuard.
func GetHouseholdID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get(ContextKeyHouseholdID)
	if !exists {
		return uuid.Nil, errNoHousehold
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, errNoHousehold
	}
	return id, nil
}
