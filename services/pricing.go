package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentCash  PaymentType = "cash"
	PaymentCard  PaymentType = "card"
	PaymentSplit PaymentType = "split"
)

func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case PaymentCash, PaymentCard, PaymentSplit:
		return PaymentType(s), nil
	}
	return "", fmt.Errorf("unknown payment type %q", s)
}

// TipMode selects how a custom tip entry is interpreted.
type TipMode string

const (
	TipPercent TipMode = "percent"
	TipAmount  TipMode = "amount"
)

var (
	ErrDiscountOutOfRange   = errors.New("discount percent must be between 0 and 100")
	ErrInsufficientTender   = errors.New("tendered amount is below the final total")
	ErrEmptyTicket          = errors.New("ticket has no lines")
	ErrDiscountNeedsManager = errors.New("discount requires manager authorization")
)

// Quote carries one checkout computation: the ticket's subtotal and tax
// plus the operator's discount and tip inputs. All arithmetic is exact;
// callers round with utils.Round2 only when displaying or persisting.
type Quote struct {
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	DiscountPercent decimal.Decimal
	Tip             decimal.Decimal
}

// NewQuote snapshots the ticket totals for checkout.
func NewQuote(t *Ticket) *Quote {
	return &Quote{
		Subtotal: t.Subtotal(),
		Tax:      t.Tax(),
	}
}

// PreDiscountTotal is subtotal+tax, the base for discounts and tip
// presets.
func (q *Quote) PreDiscountTotal() decimal.Decimal {
	return q.Subtotal.Add(q.Tax)
}

func (q *Quote) DiscountAmount() decimal.Decimal {
	return q.PreDiscountTotal().Mul(q.DiscountPercent).Div(decimal.NewFromInt(100))
}

func (q *Quote) DiscountedTotal() decimal.Decimal {
	return q.PreDiscountTotal().Sub(q.DiscountAmount())
}

func (q *Quote) FinalTotal() decimal.Decimal {
	return q.DiscountedTotal().Add(q.Tip)
}

// SetDiscount applies a discount percent in [0,100]. Authorization for
// high discounts is the caller's concern; this only checks the range.
func (q *Quote) SetDiscount(percent float64) error {
	if percent < 0 || percent > 100 {
		return ErrDiscountOutOfRange
	}
	q.DiscountPercent = decimal.NewFromFloat(percent)
	return nil
}

// SetTipPreset applies one of the preset buttons (10/15/20). Presets
// are computed against the pre-discount total at the moment pressed.
func (q *Quote) SetTipPreset(percent int) {
	q.Tip = q.PreDiscountTotal().Mul(decimal.New(int64(percent), -2))
}

// SetCustomTip applies an operator-entered tip in the given mode.
func (q *Quote) SetCustomTip(mode TipMode, value float64) {
	v := decimal.NewFromFloat(value)
	if mode == TipPercent {
		q.Tip = q.PreDiscountTotal().Mul(v).Div(decimal.NewFromInt(100))
		return
	}
	q.Tip = v
}

// ClearTip resets the tip to zero ("No Tip").
func (q *Quote) ClearTip() {
	q.Tip = decimal.Zero
}

// Tender is the operator's payment entry.
type Tender struct {
	Type       PaymentType
	CashAmount decimal.Decimal
	CardAmount decimal.Decimal
}

// TenderResult is the validated payment ready to persist.
type TenderResult struct {
	Type       PaymentType
	CashAmount decimal.Decimal
	CardAmount decimal.Decimal
	Change     decimal.Decimal
}

// ValidateTender checks the tender against the final total. Completion
// stays blocked until the relevant inequality holds:
//
//	cash:  cashAmount >= finalTotal, change = cashAmount - finalTotal
//	card:  no pre-validation, cardAmount defaults to finalTotal
//	split: cashAmount + cardAmount >= finalTotal
func (q *Quote) ValidateTender(t Tender) (TenderResult, error) {
	final := q.FinalTotal()

	switch t.Type {
	case PaymentCash:
		if t.CashAmount.LessThan(final) {
			return TenderResult{}, ErrInsufficientTender
		}
		return TenderResult{
			Type:       PaymentCash,
			CashAmount: t.CashAmount,
			Change:     t.CashAmount.Sub(final),
		}, nil

	case PaymentCard:
		card := t.CardAmount
		if card.IsZero() {
			card = final
		}
		return TenderResult{Type: PaymentCard, CardAmount: card}, nil

	case PaymentSplit:
		if t.CashAmount.Add(t.CardAmount).LessThan(final) {
			return TenderResult{}, ErrInsufficientTender
		}
		return TenderResult{
			Type:       PaymentSplit,
			CashAmount: t.CashAmount,
			CardAmount: t.CardAmount,
		}, nil
	}
	return TenderResult{}, fmt.Errorf("unknown payment type %q", t.Type)
}

// RequiresAuthorization reports whether a discount percent needs the
// manager gate for an operator with the given manager standing.
func RequiresAuthorization(percent, threshold float64, isManager bool) bool {
	return percent > threshold && !isManager
}
