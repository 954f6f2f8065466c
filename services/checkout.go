package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/events"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// CheckoutService finalizes a validated payment into an order record.
type CheckoutService struct {
	DB    *gorm.DB
	Audit *AuditLog
}

func NewCheckoutService(db *gorm.DB, audit *AuditLog) *CheckoutService {
	return &CheckoutService{DB: db, Audit: audit}
}

// Complete validates the tender against the quote, records the sale and
// clears the ticket. The order insert must succeed before the local
// ticket is released; the discount audit entry is best-effort and is
// written before the payment record, matching the register's paper
// trail ordering.
func (s *CheckoutService) Complete(session *OrderSession, quote *Quote, tender Tender) (*models.Order, error) {
	lines := session.Ticket.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyTicket
	}

	result, err := quote.ValidateTender(tender)
	if err != nil {
		return nil, err
	}

	if quote.DiscountPercent.IsPositive() {
		percent := utils.ToCurrency(quote.DiscountPercent)
		amount := utils.ToCurrency(quote.DiscountAmount())
		s.Audit.Record(models.OverrideLog{
			EmployeeID:      session.Employee.ID,
			Action:          models.ActionDiscountApplied,
			DiscountPercent: &percent,
			Amount:          &amount,
			Reason:          "Manual discount",
			ShiftID:         session.Employee.CurrentShiftID,
		})
	}

	items, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("snapshot ticket: %w", err)
	}

	order := models.Order{
		EmployeeID:      session.Employee.ID,
		ShiftID:         session.Employee.CurrentShiftID,
		Items:           string(items),
		Subtotal:        utils.ToCurrency(quote.Subtotal),
		Tax:             utils.ToCurrency(quote.Tax),
		DiscountPercent: utils.ToCurrency(quote.DiscountPercent),
		Tip:             utils.ToCurrency(quote.Tip),
		Total:           utils.ToCurrency(quote.FinalTotal()),
		PaymentType:     string(result.Type),
		CashAmount:      utils.ToCurrency(result.CashAmount),
		CardAmount:      utils.ToCurrency(result.CardAmount),
		ChangeDue:       utils.ToCurrency(result.Change),
		Timestamp:       time.Now(),
	}

	if err := s.DB.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	session.Ticket.Clear()
	session.ResetCheckout()

	events.BroadcastOrderCompleted(order)
	return &order, nil
}
