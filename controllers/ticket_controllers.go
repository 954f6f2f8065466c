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

type TicketController struct {
	DB    *gorm.DB
	Audit *services.AuditLog
}

func NewTicketController(db *gorm.DB, audit *services.AuditLog) *TicketController {
	return &TicketController{DB: db, Audit: audit}
}

// ticketView renders the ticket with display-rounded money.
func ticketView(session *services.OrderSession) gin.H {
	lines := session.Ticket.Lines()
	viewLines := make([]gin.H, len(lines))
	for i, line := range lines {
		viewLines[i] = gin.H{
			"id":         line.ID,
			"menu_id":    line.MenuID,
			"name":       line.Name,
			"quantity":   line.Quantity,
			"unit_price": utils.ToCurrency(line.UnitPrice),
			"selections": line.Selections,
			"line_total": utils.ToCurrency(line.Total()),
		}
	}

	subtotal := session.Ticket.Subtotal()
	tax := session.Ticket.Tax()
	return gin.H{
		"lines":    viewLines,
		"subtotal": utils.ToCurrency(subtotal),
		"tax":      utils.ToCurrency(tax),
		"total":    utils.ToCurrency(subtotal.Add(tax)),
	}
}

// GetTicket -> the operator's current ticket
func (tc *TicketController) GetTicket(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current ticket", ticketView(session))
}

// AddLine rings up a menu item, running its modifier selections through
// validation first. Validation failures block the line and come back as
// a message list; the ticket is untouched.
func (tc *TicketController) AddLine(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		MenuID     uint              `json:"menu_id" binding:"required"`
		Selections map[string][]uint `json:"selections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := tc.DB.Preload("ModifierGroups.Options").First(&menu, req.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !menu.IsAvailable {
		utils.RespondError(c, http.StatusConflict, errors.New("menu item is sold out"))
		return
	}

	selections, violations, err := services.BuildSelections(menu, req.Selections)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(violations) > 0 {
		c.JSON(http.StatusUnprocessableEntity, utils.JSONResponse{
			Status:  false,
			Message: "Modifier validation failed",
			Data:    gin.H{"errors": violations},
		})
		return
	}

	line := session.Ticket.AddLine(menu, selections)
	events.BroadcastTicketUpdate(ticketView(session))
	utils.RespondJSON(c, http.StatusCreated, "Line added", gin.H{
		"line":   line.ID,
		"ticket": ticketView(session),
	})
}

// ChangeQuantity adjusts a line by +/- delta; zero removes the line.
func (tc *TicketController) ChangeQuantity(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := session.Ticket.ChangeQuantity(c.Param("line_id"), req.Delta); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	events.BroadcastTicketUpdate(ticketView(session))
	utils.RespondJSON(c, http.StatusOK, "Quantity updated", ticketView(session))
}

// RemoveLine deletes one line.
func (tc *TicketController) RemoveLine(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if err := session.Ticket.RemoveLine(c.Param("line_id")); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	events.BroadcastTicketUpdate(ticketView(session))
	utils.RespondJSON(c, http.StatusOK, "Line removed", ticketView(session))
}

// Void clears the whole ticket. A manager voids directly; anyone else
// parks the void behind the authorization gate.
func (tc *TicketController) Void(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if !session.Employee.Role.IsManager() {
		if err := session.Gate.Request(services.AuthRequest{Kind: services.ActionVoid}); err != nil {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondJSON(c, http.StatusAccepted, "Manager authorization required", gin.H{
			"pending": services.ActionVoid,
		})
		return
	}

	session.Ticket.Clear()
	session.ResetCheckout()
	tc.Audit.Record(models.OverrideLog{
		EmployeeID: session.Employee.ID,
		Action:     models.ActionVoid,
		ShiftID:    session.Employee.CurrentShiftID,
	})
	events.BroadcastTicketUpdate(ticketView(session))
	utils.RespondJSON(c, http.StatusOK, "Ticket voided", ticketView(session))
}
