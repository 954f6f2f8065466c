package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type OverrideLogController struct {
	Audit *services.AuditLog
}

func NewOverrideLogController(audit *services.AuditLog) *OverrideLogController {
	return &OverrideLogController{Audit: audit}
}

// List returns the audit trail, newest first. Routing restricts this
// to managers.
func (oc *OverrideLogController) List(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := oc.Audit.List(limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Override log", entries)
}
