package services

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
)

// ActionKind is the restricted action a gate request covers.
type ActionKind string

const (
	ActionVoid         ActionKind = models.ActionVoid
	ActionMarkSoldOut  ActionKind = models.ActionMarkSoldOut
	ActionHighDiscount ActionKind = models.ActionHighDiscount
)

// GateState is the authorization gate's state machine position:
// Idle → Pending → (Authorized | Idle via cancel). A denied attempt
// stays Pending so the manager can retry.
type GateState int

const (
	GateIdle GateState = iota
	GatePending
	GateAuthorized
)

var (
	ErrNoPendingRequest = errors.New("no pending authorization request")
	ErrRequestPending   = errors.New("an authorization request is already pending")
	ErrPINTooShort      = errors.New("PIN must be at least 4 digits")
	ErrInvalidDigit     = errors.New("PIN accepts digits only")
	// ErrAuthDenied covers mismatch, lookup failure and empty results
	// alike; the caller never learns which. Absence of proof is denial.
	ErrAuthDenied = errors.New("invalid manager PIN")
)

// AuthRequest describes the action awaiting manager approval.
type AuthRequest struct {
	Kind   ActionKind `json:"kind"`
	ItemID *uint      `json:"item_id,omitempty"`
	LineID string     `json:"line_id,omitempty"`
	Amount *float64   `json:"amount,omitempty"`
}

// AuthorizationGate gates restricted actions behind manager PIN entry.
// The PIN is accumulated digit by digit like the physical pad; every
// failure path denies and never silently escalates to authorized.
type AuthorizationGate struct {
	mu        sync.Mutex
	db        *gorm.DB
	state     GateState
	pending   *AuthRequest
	pinBuffer []byte
	minLen    int
	maxLen    int
}

func NewAuthorizationGate(db *gorm.DB, pinMinLen, pinMaxLen int) *AuthorizationGate {
	return &AuthorizationGate{
		db:     db,
		state:  GateIdle,
		minLen: pinMinLen,
		maxLen: pinMaxLen,
	}
}

func (g *AuthorizationGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *AuthorizationGate) Pending() *AuthRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return nil
	}
	req := *g.pending
	return &req
}

// Request moves the gate from Idle to Pending for the given action.
func (g *AuthorizationGate) Request(req AuthRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GateIdle {
		return ErrRequestPending
	}
	g.pending = &req
	g.state = GatePending
	g.pinBuffer = g.pinBuffer[:0]
	return nil
}

// PressDigit appends one digit to the PIN buffer. Input past the max
// length is dropped.
func (g *AuthorizationGate) PressDigit(d byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GatePending {
		return ErrNoPendingRequest
	}
	if d < '0' || d > '9' {
		return ErrInvalidDigit
	}
	if len(g.pinBuffer) < g.maxLen {
		g.pinBuffer = append(g.pinBuffer, d)
	}
	return nil
}

// ClearPIN empties the buffer without touching the pending request.
func (g *AuthorizationGate) ClearPIN() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pinBuffer = g.pinBuffer[:0]
}

// Submit checks the accumulated PIN against manager-role employees.
// On success the gate moves to Authorized and the matching manager is
// returned; the caller executes the pending action and must call
// Complete. On any failure the buffer resets and the gate stays
// Pending for another attempt.
func (g *AuthorizationGate) Submit() (*models.Employee, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GatePending {
		return nil, ErrNoPendingRequest
	}
	if len(g.pinBuffer) < g.minLen {
		g.pinBuffer = g.pinBuffer[:0]
		return nil, ErrPINTooShort
	}

	pin := string(g.pinBuffer)
	g.pinBuffer = g.pinBuffer[:0]

	var managers []models.Employee
	if err := g.db.Where("role = ?", models.RoleManager).Find(&managers).Error; err != nil {
		// Lookup failure denies; it never authorizes.
		return nil, ErrAuthDenied
	}

	for i := range managers {
		if bcrypt.CompareHashAndPassword([]byte(managers[i].PINHash), []byte(pin)) == nil {
			g.state = GateAuthorized
			return &managers[i], nil
		}
	}
	return nil, ErrAuthDenied
}

// Complete finishes an authorized request and returns it for audit
// logging. The gate returns to Idle.
func (g *AuthorizationGate) Complete() *AuthRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GateAuthorized {
		return nil
	}
	req := g.pending
	g.pending = nil
	g.state = GateIdle
	g.pinBuffer = g.pinBuffer[:0]
	return req
}

// Cancel discards the pending request; no ticket mutation happens.
func (g *AuthorizationGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pending = nil
	g.state = GateIdle
	g.pinBuffer = g.pinBuffer[:0]
}
