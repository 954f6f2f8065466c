package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var ErrMissingEmailAddress = errors.New("email receipt needs an address")

// ReceiptDeliverer is the delivery collaborator invoked with a
// finalized order. Nothing in the engine consumes its output.
type ReceiptDeliverer interface {
	Print(order models.Order) error
	Email(order models.Order, address string) error
}

// ReceiptService is the default deliverer. The actual printer/mailer
// integration lives outside the terminal; this records the intent.
type ReceiptService struct{}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

func (s *ReceiptService) Print(order models.Order) error {
	utils.InfoLogger.Printf("printing receipt for order %d (%s)",
		order.ID, utils.FormatUSD(decimal.NewFromFloat(order.Total)))
	return nil
}

func (s *ReceiptService) Email(order models.Order, address string) error {
	if address == "" {
		return ErrMissingEmailAddress
	}
	utils.InfoLogger.Printf("emailing receipt for order %d to %s", order.ID, address)
	return nil
}
