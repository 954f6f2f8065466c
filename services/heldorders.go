package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var (
	ErrHeldOrderNotFound = errors.New("held order not found")
	ErrNothingToHold     = errors.New("cannot hold an empty ticket")
)

// HeldOrderStore parks and resumes ticket snapshots. Snapshots are
// namespaced per employee; one operator never sees another's parked
// tickets.
type HeldOrderStore struct {
	DB *gorm.DB
}

func NewHeldOrderStore(db *gorm.DB) *HeldOrderStore {
	return &HeldOrderStore{DB: db}
}

// Hold persists an immutable snapshot of the session's ticket and only
// then clears the active ticket. A failed insert leaves the ticket
// untouched.
func (s *HeldOrderStore) Hold(session *OrderSession) (*models.HeldOrder, error) {
	lines := session.Ticket.Lines()
	if len(lines) == 0 {
		return nil, ErrNothingToHold
	}

	items, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("snapshot ticket: %w", err)
	}

	subtotal := session.Ticket.Subtotal()
	tax := session.Ticket.Tax()

	held := models.HeldOrder{
		ID:         uuid.NewString(),
		EmployeeID: session.Employee.ID,
		Items:      string(items),
		Subtotal:   utils.ToCurrency(subtotal),
		Tax:        utils.ToCurrency(tax),
		Total:      utils.ToCurrency(subtotal.Add(tax)),
		CreatedAt:  time.Now(),
	}

	if err := s.DB.Create(&held).Error; err != nil {
		return nil, fmt.Errorf("persist held order: %w", err)
	}

	session.Ticket.Clear()
	session.ResetCheckout()
	return &held, nil
}

// List returns the employee's parked tickets, oldest first.
func (s *HeldOrderStore) List(employeeID uint) ([]models.HeldOrder, error) {
	var held []models.HeldOrder
	if err := s.DB.Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&held).Error; err != nil {
		return nil, err
	}
	return held, nil
}

// Resume loads a snapshot back into the session's ticket and deletes
// it, atomically: after a successful resume the snapshot is gone, and
// after a failed one it is still parked.
func (s *HeldOrderStore) Resume(id string, session *OrderSession) error {
	var held models.HeldOrder

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND employee_id = ?", id, session.Employee.ID).
			First(&held).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHeldOrderNotFound
			}
			return err
		}
		return tx.Delete(&models.HeldOrder{}, "id = ?", held.ID).Error
	})
	if err != nil {
		return err
	}

	var lines []OrderLine
	if err := json.Unmarshal([]byte(held.Items), &lines); err != nil {
		return fmt.Errorf("decode held order %s: %w", held.ID, err)
	}

	session.Ticket.Restore(lines)
	session.ResetCheckout()
	return nil
}

// Delete discards a snapshot without resuming it. An unknown id is an
// error, not a silent success.
func (s *HeldOrderStore) Delete(id string, employeeID uint) error {
	res := s.DB.Where("id = ? AND employee_id = ?", id, employeeID).
		Delete(&models.HeldOrder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrHeldOrderNotFound
	}
	return nil
}
