package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/events"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type SettingsController struct {
	Settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

// GetOnlineOrdering -> the current toggle state.
func (sc *SettingsController) GetOnlineOrdering(c *gin.Context) {
	enabled, err := sc.Settings.OnlineOrderingEnabled()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Online ordering status", gin.H{"enabled": enabled})
}

// SetOnlineOrdering flips the flag. Routing restricts this to managers.
func (sc *SettingsController) SetOnlineOrdering(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Settings.SetOnlineOrdering(*req.Enabled, session.Employee); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if *req.Enabled {
		events.BroadcastStaffNotification("Online ordering enabled")
	} else {
		events.BroadcastStaffNotification("Online ordering paused")
	}
	utils.RespondJSON(c, http.StatusOK, "Online ordering updated", gin.H{"enabled": *req.Enabled})
}
