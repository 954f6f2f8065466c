package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/events"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// AuthGateController drives the manager PIN pad for a session's pending
// restricted action. The authorized action is executed here, between
// Submit succeeding and Complete returning the gate to idle.
type AuthGateController struct {
	DB    *gorm.DB
	Menus *services.MenuService
	Audit *services.AuditLog
}

func NewAuthGateController(db *gorm.DB, menus *services.MenuService, audit *services.AuditLog) *AuthGateController {
	return &AuthGateController{DB: db, Menus: menus, Audit: audit}
}

func gateView(session *services.OrderSession) gin.H {
	return gin.H{
		"state":   session.Gate.State(),
		"pending": session.Gate.Pending(),
	}
}

// Status -> the gate state and pending request, for the approval modal.
func (ac *AuthGateController) Status(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Authorization status", gateView(session))
}

// PressDigit feeds one PIN pad digit into the buffer.
func (ac *AuthGateController) PressDigit(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Digit string `json:"digit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.Digit) != 1 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidDigit)
		return
	}

	if err := session.Gate.PressDigit(req.Digit[0]); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNoPendingRequest) {
			status = http.StatusConflict
		}
		utils.RespondError(c, status, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Digit accepted", nil)
}

// ClearPIN wipes the buffer so the manager can start over.
func (ac *AuthGateController) ClearPIN(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	session.Gate.ClearPIN()
	utils.RespondJSON(c, http.StatusOK, "PIN cleared", nil)
}

// Submit verifies the PIN and, on success, executes the pending action
// under the approving manager's identity. A denial leaves the request
// pending with a fresh buffer.
func (ac *AuthGateController) Submit(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	manager, err := session.Gate.Submit()
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPendingRequest):
			utils.RespondError(c, http.StatusConflict, err)
		case errors.Is(err, services.ErrPINTooShort):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusUnauthorized, services.ErrAuthDenied)
		}
		return
	}

	pending := session.Gate.Pending()
	if pending == nil {
		session.Gate.Cancel()
		utils.RespondError(c, http.StatusConflict, services.ErrNoPendingRequest)
		return
	}

	if err := ac.execute(session, *pending, *manager); err != nil {
		session.Gate.Cancel()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	req := session.Gate.Complete()
	utils.RespondJSON(c, http.StatusOK, "Action authorized", gin.H{
		"action":        req.Kind,
		"authorized_by": manager.ID,
	})
}

// Cancel abandons the pending request; nothing mutates.
func (ac *AuthGateController) Cancel(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	session.Gate.Cancel()
	utils.RespondJSON(c, http.StatusOK, "Authorization cancelled", nil)
}

// execute performs the approved action. Audit entries carry the
// requesting operator as the actor and the approving manager in the
// reason line.
func (ac *AuthGateController) execute(session *services.OrderSession, req services.AuthRequest, manager models.Employee) error {
	switch req.Kind {
	case services.ActionVoid:
		session.Ticket.Clear()
		session.ResetCheckout()
		ac.Audit.Record(models.OverrideLog{
			EmployeeID: session.Employee.ID,
			Action:     models.ActionVoid,
			Reason:     "Authorized by " + manager.Name,
			ShiftID:    session.Employee.CurrentShiftID,
		})
		events.BroadcastTicketUpdate(ticketView(session))
		return nil

	case services.ActionMarkSoldOut:
		if req.ItemID == nil {
			return errors.New("sold-out request is missing the menu item")
		}
		_, err := ac.Menus.MarkSoldOut(*req.ItemID, session.Employee)
		return err

	case services.ActionHighDiscount:
		if req.Amount == nil {
			return errors.New("discount request is missing the percent")
		}
		if err := session.CurrentQuote().SetDiscount(*req.Amount); err != nil {
			return err
		}
		ac.Audit.Record(models.OverrideLog{
			EmployeeID:      session.Employee.ID,
			Action:          models.ActionHighDiscount,
			DiscountPercent: req.Amount,
			Reason:          "Authorized by " + manager.Name,
			ShiftID:         session.Employee.CurrentShiftID,
		})
		return nil
	}
	return errors.New("unknown authorization action")
}
