package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-pos/models"
)

func pendingGate(t *testing.T, gate *AuthorizationGate) {
	t.Helper()
	assert.NoError(t, gate.Request(AuthRequest{Kind: ActionVoid}))
	assert.Equal(t, GatePending, gate.State())
}

func enterPIN(t *testing.T, gate *AuthorizationGate, pin string) {
	t.Helper()
	for i := 0; i < len(pin); i++ {
		assert.NoError(t, gate.PressDigit(pin[i]))
	}
}

func TestGateRejectsSecondRequest(t *testing.T) {
	gate := NewAuthorizationGate(openTestDB(t), 4, 6)
	pendingGate(t, gate)
	assert.ErrorIs(t, gate.Request(AuthRequest{Kind: ActionMarkSoldOut}), ErrRequestPending)
}

func TestGateDigitsOnly(t *testing.T) {
	gate := NewAuthorizationGate(openTestDB(t), 4, 6)
	pendingGate(t, gate)
	assert.ErrorIs(t, gate.PressDigit('a'), ErrInvalidDigit)
}

func TestGateIgnoresDigitWhenIdle(t *testing.T) {
	gate := NewAuthorizationGate(openTestDB(t), 4, 6)
	assert.ErrorIs(t, gate.PressDigit('1'), ErrNoPendingRequest)
}

func TestGateAuthorizesManagerPIN(t *testing.T) {
	db := openTestDB(t)
	manager := seedEmployee(t, db, "Morgan", models.RoleManager, "4321")
	seedEmployee(t, db, "Casey", models.RoleCashier, "1111")

	gate := NewAuthorizationGate(db, 4, 6)
	pendingGate(t, gate)
	enterPIN(t, gate, "4321")

	approved, err := gate.Submit()
	assert.NoError(t, err)
	assert.Equal(t, manager.ID, approved.ID)
	assert.Equal(t, GateAuthorized, gate.State())

	req := gate.Complete()
	assert.NotNil(t, req)
	assert.Equal(t, ActionVoid, req.Kind)
	assert.Equal(t, GateIdle, gate.State())
}

func TestGateDeniesNonManagerPIN(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "Casey", models.RoleCashier, "1111")

	gate := NewAuthorizationGate(db, 4, 6)
	pendingGate(t, gate)
	enterPIN(t, gate, "1111")

	_, err := gate.Submit()
	assert.ErrorIs(t, err, ErrAuthDenied)
	// A denial keeps the request pending for a retry.
	assert.Equal(t, GatePending, gate.State())
	assert.NotNil(t, gate.Pending())
}

func TestGateDenialResetsBuffer(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "Morgan", models.RoleManager, "4321")

	gate := NewAuthorizationGate(db, 4, 6)
	pendingGate(t, gate)
	enterPIN(t, gate, "9999")
	_, err := gate.Submit()
	assert.ErrorIs(t, err, ErrAuthDenied)

	// The failed digits are gone; a clean retry succeeds.
	enterPIN(t, gate, "4321")
	_, err = gate.Submit()
	assert.NoError(t, err)
}

func TestGateShortPIN(t *testing.T) {
	gate := NewAuthorizationGate(openTestDB(t), 4, 6)
	pendingGate(t, gate)
	enterPIN(t, gate, "12")

	_, err := gate.Submit()
	assert.ErrorIs(t, err, ErrPINTooShort)
	assert.Equal(t, GatePending, gate.State())
}

func TestGateDropsInputPastMaxLength(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "Morgan", models.RoleManager, "432109")

	gate := NewAuthorizationGate(db, 4, 6)
	pendingGate(t, gate)
	// Two extra presses past the 6-digit cap are discarded.
	enterPIN(t, gate, "43210988")

	_, err := gate.Submit()
	assert.NoError(t, err)
}

func TestGateCancelDiscardsRequest(t *testing.T) {
	gate := NewAuthorizationGate(openTestDB(t), 4, 6)
	pendingGate(t, gate)
	gate.Cancel()

	assert.Equal(t, GateIdle, gate.State())
	assert.Nil(t, gate.Pending())
	_, err := gate.Submit()
	assert.ErrorIs(t, err, ErrNoPendingRequest)
}

func TestGateCompleteOnlyWhenAuthorized(t *testing.T) {
	gate := NewAuthorizationGate(openTestDB(t), 4, 6)
	assert.Nil(t, gate.Complete())
	pendingGate(t, gate)
	assert.Nil(t, gate.Complete())
}
