package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartIsEmpty(t *testing.T) {
	cart := NewCart()

	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.LineItems)
	assert.True(t, cart.ShippingAddress.IsEmpty())
}

func TestFindItem(t *testing.T) {
	cart := NewCart()
	cart.LineItems = []LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 9, Quantity: 1},
	}

	item := cart.FindItem(9)
	require.NotNil(t, item)
	assert.Equal(t, 1, item.Quantity)

	// returned pointer aliases the slice entry
	item.Quantity = 5
	assert.Equal(t, 5, cart.LineItems[1].Quantity)

	assert.Nil(t, cart.FindItem(404))
}

func TestShippingAddressIsEmpty(t *testing.T) {
	assert.True(t, ShippingAddress{}.IsEmpty())
	assert.False(t, ShippingAddress{City: "Pune"}.IsEmpty())
	assert.False(t, ShippingAddress{PostalCode: "411001"}.IsEmpty())
}
