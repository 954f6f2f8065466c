package services

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-pos/models"
)

func checkoutFixture(t *testing.T) (*CheckoutService, *OrderSession) {
	t.Helper()
	db := openTestDB(t)
	cashier := seedEmployee(t, db, "Casey", models.RoleCashier, "1111")
	session := sessionWithTicket(t, cashier)
	session.Ticket.AddLine(models.Menu{ID: 1, Name: "Burger", Price: 8.00}, SelectionSet{
		"Size": {{ID: 2, Name: "Large", PriceDelta: 1.00}},
	})
	return NewCheckoutService(db, NewAuditLog(db)), session
}

func TestCompleteCashPayment(t *testing.T) {
	svc, session := checkoutFixture(t)
	quote := session.BeginCheckout()

	order, err := svc.Complete(session, quote, Tender{
		Type:       PaymentCash,
		CashAmount: decimal.NewFromInt(20),
	})
	assert.NoError(t, err)
	assert.Equal(t, 18.00, order.Subtotal)
	assert.Equal(t, 1.44, order.Tax)
	assert.Equal(t, 19.44, order.Total)
	assert.Equal(t, "cash", order.PaymentType)
	assert.Equal(t, 0.56, order.ChangeDue)

	// The line snapshot survives as JSON.
	var lines []OrderLine
	assert.NoError(t, json.Unmarshal([]byte(order.Items), &lines))
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	// Ticket and quote are released only after the insert succeeded.
	assert.True(t, session.Ticket.IsEmpty())
	assert.Nil(t, session.Quote)
}

func TestCompleteInsufficientCashKeepsTicket(t *testing.T) {
	svc, session := checkoutFixture(t)
	quote := session.BeginCheckout()

	_, err := svc.Complete(session, quote, Tender{
		Type:       PaymentCash,
		CashAmount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ErrInsufficientTender)
	assert.False(t, session.Ticket.IsEmpty())

	var count int64
	svc.DB.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCompleteEmptyTicket(t *testing.T) {
	db := openTestDB(t)
	cashier := seedEmployee(t, db, "Casey", models.RoleCashier, "1111")
	svc := NewCheckoutService(db, NewAuditLog(db))
	session := &OrderSession{Employee: cashier, Ticket: NewTicket(0.08)}

	_, err := svc.Complete(session, session.BeginCheckout(), Tender{Type: PaymentCard})
	assert.ErrorIs(t, err, ErrEmptyTicket)
}

func TestCompleteRecordsDiscountInAuditTrail(t *testing.T) {
	svc, session := checkoutFixture(t)
	quote := session.BeginCheckout()
	assert.NoError(t, quote.SetDiscount(10))

	order, err := svc.Complete(session, quote, Tender{Type: PaymentCard})
	assert.NoError(t, err)
	assert.Equal(t, 10.0, order.DiscountPercent)
	assert.Equal(t, 17.50, order.Total)

	var entries []models.OverrideLog
	assert.NoError(t, svc.DB.Find(&entries).Error)
	assert.Len(t, entries, 1)
	assert.Equal(t, models.ActionDiscountApplied, entries[0].Action)
	assert.Equal(t, session.Employee.ID, entries[0].EmployeeID)
	assert.NotNil(t, entries[0].DiscountPercent)
	assert.Equal(t, 10.0, *entries[0].DiscountPercent)
}

func TestCompleteSplitPayment(t *testing.T) {
	svc, session := checkoutFixture(t)
	quote := session.BeginCheckout()

	order, err := svc.Complete(session, quote, Tender{
		Type:       PaymentSplit,
		CashAmount: decimal.NewFromInt(10),
		CardAmount: decimal.NewFromFloat(9.44),
	})
	assert.NoError(t, err)
	assert.Equal(t, "split", order.PaymentType)
	assert.Equal(t, 10.00, order.CashAmount)
	assert.Equal(t, 9.44, order.CardAmount)
}
