package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type SPLHController struct {
	Monitor *services.SPLHMonitor
}

func NewSPLHController(monitor *services.SPLHMonitor) *SPLHController {
	return &SPLHController{Monitor: monitor}
}

// GetCurrent computes the figure on demand, outside the broadcast
// interval, for the dashboard widget's initial render.
func (sc *SPLHController) GetCurrent(c *gin.Context) {
	snapshot, err := sc.Monitor.Compute(time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current SPLH", snapshot)
}
