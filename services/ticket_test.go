package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-pos/models"
)

func sizeLarge() SelectionSet {
	return SelectionSet{
		"Size": {{ID: 2, Name: "Large", PriceDelta: 1.00}},
	}
}

func TestAddLineComputesUnitPriceWithDeltas(t *testing.T) {
	ticket := NewTicket(0.08)
	burger := models.Menu{ID: 1, Name: "Burger", Price: 8.00}

	line := ticket.AddLine(burger, sizeLarge())
	assert.Equal(t, "9", line.UnitPrice.String())
	assert.Equal(t, 1, line.Quantity)
}

func TestSubtotalAndTaxForTwoLargeBurgers(t *testing.T) {
	ticket := NewTicket(0.08)
	burger := models.Menu{ID: 1, Name: "Burger", Price: 8.00}

	ticket.AddLine(burger, sizeLarge())
	ticket.AddLine(burger, sizeLarge())

	assert.Equal(t, "18", ticket.Subtotal().String())
	assert.Equal(t, "1.44", ticket.Tax().String())
}

func TestAddLineMergesIdenticalSelections(t *testing.T) {
	ticket := NewTicket(0.08)
	burger := models.Menu{ID: 1, Name: "Burger", Price: 8.00}

	a := SelectionSet{"Toppings": {
		{ID: 3, Name: "Cheese", PriceDelta: 0.50},
		{ID: 4, Name: "Bacon", PriceDelta: 1.50},
	}}
	b := SelectionSet{"Toppings": {
		{ID: 4, Name: "Bacon", PriceDelta: 1.50},
		{ID: 3, Name: "Cheese", PriceDelta: 0.50},
	}}

	ticket.AddLine(burger, a)
	line := ticket.AddLine(burger, b)

	assert.Len(t, ticket.Lines(), 1)
	assert.Equal(t, 2, line.Quantity)
}

func TestAddLineKeepsDifferentSelectionsApart(t *testing.T) {
	ticket := NewTicket(0.08)
	burger := models.Menu{ID: 1, Name: "Burger", Price: 8.00}

	ticket.AddLine(burger, SelectionSet{})
	ticket.AddLine(burger, sizeLarge())

	assert.Len(t, ticket.Lines(), 2)
}

func TestChangeQuantityClampsToRemoval(t *testing.T) {
	ticket := NewTicket(0.08)
	line := ticket.AddLine(models.Menu{ID: 1, Name: "Burger", Price: 8.00}, nil)

	assert.NoError(t, ticket.ChangeQuantity(line.ID, 2))
	assert.Equal(t, 3, ticket.Lines()[0].Quantity)

	assert.NoError(t, ticket.ChangeQuantity(line.ID, -3))
	assert.True(t, ticket.IsEmpty())
}

func TestChangeQuantityUnknownLine(t *testing.T) {
	ticket := NewTicket(0.08)
	assert.ErrorIs(t, ticket.ChangeQuantity("nope", 1), ErrLineNotFound)
}

func TestQuantityChangePreservesUnitPrice(t *testing.T) {
	ticket := NewTicket(0.08)
	line := ticket.AddLine(models.Menu{ID: 1, Name: "Burger", Price: 8.00}, sizeLarge())

	assert.NoError(t, ticket.ChangeQuantity(line.ID, 4))
	got := ticket.Lines()[0]
	assert.Equal(t, "9", got.UnitPrice.String())
	assert.Equal(t, "45", got.Total().String())
}

func TestRemoveLine(t *testing.T) {
	ticket := NewTicket(0.08)
	line := ticket.AddLine(models.Menu{ID: 1, Name: "Burger", Price: 8.00}, nil)

	assert.NoError(t, ticket.RemoveLine(line.ID))
	assert.True(t, ticket.IsEmpty())
	assert.ErrorIs(t, ticket.RemoveLine(line.ID), ErrLineNotFound)
}

func TestRestoreRebuildsMergeKeys(t *testing.T) {
	ticket := NewTicket(0.08)
	burger := models.Menu{ID: 1, Name: "Burger", Price: 8.00}
	ticket.AddLine(burger, sizeLarge())

	snapshot := ticket.Lines()
	restored := NewTicket(0.08)
	restored.Restore(snapshot)

	// The same selection merged after restore proves the key survived.
	restored.AddLine(burger, sizeLarge())
	assert.Len(t, restored.Lines(), 1)
	assert.Equal(t, 2, restored.Lines()[0].Quantity)
}
