package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type TimeclockController struct {
	DB        *gorm.DB
	Timeclock *services.TimeclockService
}

func NewTimeclockController(db *gorm.DB, timeclock *services.TimeclockService) *TimeclockController {
	return &TimeclockController{DB: db, Timeclock: timeclock}
}

// ClockIn opens a shift for the authenticated employee.
func (tc *TimeclockController) ClockIn(c *gin.Context) {
	id, ok := currentEmployeeID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	shift, err := tc.Timeclock.ClockIn(id)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyClockedIn) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Clocked in", shift)
}

// ClockOut closes the current shift.
func (tc *TimeclockController) ClockOut(c *gin.Context) {
	id, ok := currentEmployeeID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	shift, err := tc.Timeclock.ClockOut(id)
	if err != nil {
		if errors.Is(err, services.ErrNotClockedIn) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Clocked out", shift)
}

// StartBreak stamps a break start on the open shift.
func (tc *TimeclockController) StartBreak(c *gin.Context) {
	tc.stampBreak(c, tc.Timeclock.StartBreak, "Break started")
}

// EndBreak stamps a break end on the open shift.
func (tc *TimeclockController) EndBreak(c *gin.Context) {
	tc.stampBreak(c, tc.Timeclock.EndBreak, "Break ended")
}

func (tc *TimeclockController) stampBreak(c *gin.Context, stamp func(uint) error, message string) {
	id, ok := currentEmployeeID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	if err := stamp(id); err != nil {
		if errors.Is(err, services.ErrNotClockedIn) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}
