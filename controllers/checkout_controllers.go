package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CheckoutController struct {
	DB       *gorm.DB
	Checkout *services.CheckoutService
	Receipts *services.ReceiptService
	Sessions *services.SessionManager
}

func NewCheckoutController(db *gorm.DB, checkout *services.CheckoutService, receipts *services.ReceiptService, sessions *services.SessionManager) *CheckoutController {
	return &CheckoutController{DB: db, Checkout: checkout, Receipts: receipts, Sessions: sessions}
}

// quoteView renders the running quote with display-rounded money.
func quoteView(q *services.Quote) gin.H {
	return gin.H{
		"subtotal":           utils.ToCurrency(q.Subtotal),
		"tax":                utils.ToCurrency(q.Tax),
		"pre_discount_total": utils.ToCurrency(q.PreDiscountTotal()),
		"discount_percent":   utils.ToCurrency(q.DiscountPercent),
		"discount_amount":    utils.ToCurrency(q.DiscountAmount()),
		"tip":                utils.ToCurrency(q.Tip),
		"final_total":        utils.ToCurrency(q.FinalTotal()),
	}
}

// Begin snapshots the ticket into a fresh quote and opens the payment
// screen.
func (cc *CheckoutController) Begin(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	if session.Ticket.IsEmpty() {
		utils.RespondError(c, http.StatusConflict, services.ErrEmptyTicket)
		return
	}
	quote := session.BeginCheckout()
	utils.RespondJSON(c, http.StatusOK, "Checkout started", quoteView(quote))
}

// GetQuote -> the in-progress quote.
func (cc *CheckoutController) GetQuote(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current quote", quoteView(session.CurrentQuote()))
}

// SetDiscount applies a discount percent. Anything above the high
// discount threshold from a non-manager parks behind the gate instead
// of applying.
func (cc *CheckoutController) SetDiscount(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Percent float64 `json:"percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Percent < 0 || req.Percent > 100 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrDiscountOutOfRange)
		return
	}

	cfg := cc.Sessions.Config()
	if services.RequiresAuthorization(req.Percent, cfg.DiscountAuthThreshold, session.Employee.Role.IsManager()) {
		amount := req.Percent
		if err := session.Gate.Request(services.AuthRequest{
			Kind:   services.ActionHighDiscount,
			Amount: &amount,
		}); err != nil {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondJSON(c, http.StatusAccepted, "Manager authorization required", gin.H{
			"pending": services.ActionHighDiscount,
		})
		return
	}

	quote := session.CurrentQuote()
	if err := quote.SetDiscount(req.Percent); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Discount applied", quoteView(quote))
}

// SetTip applies a preset percent button or a custom entry. An empty
// body clears the tip.
func (cc *CheckoutController) SetTip(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Preset *int     `json:"preset"`
		Mode   string   `json:"mode"`
		Value  *float64 `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	quote := session.CurrentQuote()
	switch {
	case req.Preset != nil:
		switch *req.Preset {
		case 10, 15, 20:
			quote.SetTipPreset(*req.Preset)
		default:
			utils.RespondError(c, http.StatusBadRequest, errors.New("tip preset must be 10, 15 or 20"))
			return
		}
	case req.Value != nil:
		mode := services.TipMode(req.Mode)
		if mode != services.TipPercent && mode != services.TipAmount {
			utils.RespondError(c, http.StatusBadRequest, errors.New("tip mode must be percent or amount"))
			return
		}
		if *req.Value < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("tip cannot be negative"))
			return
		}
		quote.SetCustomTip(mode, *req.Value)
	default:
		quote.ClearTip()
	}
	utils.RespondJSON(c, http.StatusOK, "Tip updated", quoteView(quote))
}

// Cancel abandons checkout and returns to the ticket.
func (cc *CheckoutController) Cancel(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	session.ResetCheckout()
	utils.RespondJSON(c, http.StatusOK, "Checkout cancelled", nil)
}

// Complete validates the tender and records the sale.
func (cc *CheckoutController) Complete(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		PaymentType string  `json:"payment_type" binding:"required"`
		CashAmount  float64 `json:"cash_amount"`
		CardAmount  float64 `json:"card_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	paymentType, err := services.ParsePaymentType(req.PaymentType)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	quote := session.CurrentQuote()
	order, err := cc.Checkout.Complete(session, quote, services.Tender{
		Type:       paymentType,
		CashAmount: decimal.NewFromFloat(req.CashAmount),
		CardAmount: decimal.NewFromFloat(req.CardAmount),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTicket):
			utils.RespondError(c, http.StatusConflict, err)
		case errors.Is(err, services.ErrInsufficientTender):
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment complete", gin.H{
		"order":      order,
		"change_due": order.ChangeDue,
	})
}

// DeliverReceipt handles the post-payment receipt choice. "none" is a
// valid choice and just closes the flow.
func (cc *CheckoutController) DeliverReceipt(c *gin.Context) {
	if _, err := currentSession(c); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		OrderID uint   `json:"order_id" binding:"required"`
		Method  string `json:"method" binding:"required"`
		Email   string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := cc.DB.First(&order, req.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	switch req.Method {
	case "print":
		if err := cc.Receipts.Print(order); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case "email":
		if err := cc.Receipts.Email(order, req.Email); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	case "none":
		// Customer declined, nothing to deliver.
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("receipt method must be print, email or none"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt handled", gin.H{"method": req.Method})
}
