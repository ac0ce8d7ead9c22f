package controllers

import (
	"net/http"

	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// employerID pulls the authenticated employer scope out of the gin context.
// Responds with the appropriate error itself; callers just return on !ok.
func employerID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("employerId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Employer ID not found in context")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid employer ID format")
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user, falling back to the employer
// scope when the sub claim is missing (owner tokens carry the same ID twice).
func currentUserID(c *gin.Context) uuid.UUID {
	if raw, exists := c.Get("userId"); exists {
		if id, err := uuid.Parse(raw.(string)); err == nil {
			return id
		}
	}
	if raw, exists := c.Get("employerId"); exists {
		if id, err := uuid.Parse(raw.(string)); err == nil {
			return id
		}
	}
	return uuid.Nil
}

// pathUUID parses a :id path parameter.
func pathUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
