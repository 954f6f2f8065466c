package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/events"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type HeldOrderController struct {
	Store *services.HeldOrderStore
}

func NewHeldOrderController(store *services.HeldOrderStore) *HeldOrderController {
	return &HeldOrderController{Store: store}
}

// Hold parks the current ticket and frees the register for the next
// customer.
func (hc *HeldOrderController) Hold(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	held, err := hc.Store.Hold(session)
	if err != nil {
		if errors.Is(err, services.ErrNothingToHold) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastHeldOrdersUpdate(session.Employee.ID)
	events.BroadcastTicketUpdate(ticketView(session))
	utils.RespondJSON(c, http.StatusCreated, "Ticket held", held)
}

// List -> the operator's parked tickets, oldest first.
func (hc *HeldOrderController) List(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	held, err := hc.Store.List(session.Employee.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Held orders", held)
}

// Resume swaps a parked ticket back onto the register. The active
// ticket must be empty or held first; resuming never merges.
func (hc *HeldOrderController) Resume(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	if !session.Ticket.IsEmpty() {
		utils.RespondError(c, http.StatusConflict,
			errors.New("hold or void the active ticket before resuming"))
		return
	}

	if err := hc.Store.Resume(c.Param("id"), session); err != nil {
		if errors.Is(err, services.ErrHeldOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastHeldOrdersUpdate(session.Employee.ID)
	events.BroadcastTicketUpdate(ticketView(session))
	utils.RespondJSON(c, http.StatusOK, "Ticket resumed", ticketView(session))
}

// Delete discards a parked ticket without resuming it.
func (hc *HeldOrderController) Delete(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if err := hc.Store.Delete(c.Param("id"), session.Employee.ID); err != nil {
		if errors.Is(err, services.ErrHeldOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastHeldOrdersUpdate(session.Employee.ID)
	utils.RespondJSON(c, http.StatusOK, "Held order deleted", nil)
}
