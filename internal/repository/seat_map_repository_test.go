package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalePriceCents(t *testing.T) {
	price, sellable := salePriceCents(1500, 1.0)
	assert.True(t, sellable)
	assert.Equal(t, uint32(1500), price)

	// VIP multiplier, rounded to whole cents.
	price, sellable = salePriceCents(1099, 1.5)
	assert.True(t, sellable)
	assert.Equal(t, uint32(1649), price)

	price, sellable = salePriceCents(1000, 0.333)
	assert.True(t, sellable)
	assert.Equal(t, uint32(333), price)
}

func TestSalePriceCentsZeroMultiplier(t *testing.T) {
	// A zero multiplier must not produce a zero-priced sale row.
	price, sellable := salePriceCents(1500, 0)
	assert.False(t, sellable)
	assert.Equal(t, uint32(1500), price)

	// Tiny multipliers that round to zero cents are the same case.
	price, sellable = salePriceCents(10, 0.01)
	assert.False(t, sellable)
	assert.Equal(t, uint32(10), price)
}
