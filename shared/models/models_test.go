package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id, err := NewID("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id.String())

	_, err = NewID("not-a-uuid")
	assert.Error(t, err)
}

func TestMoneyAdd(t *testing.T) {
	a := NewMoney(1000, "usd")
	b := NewMoney(800, "usd")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), sum.Amount)
	assert.Equal(t, "usd", sum.Currency)

	_, err = a.Add(NewMoney(500, "eur"))
	assert.Error(t, err)
}

func TestMoneyMultiplyBy(t *testing.T) {
	price := NewMoney(599, "usd")
	assert.Equal(t, int64(1797), price.MultiplyBy(3).Amount)
	assert.Equal(t, int64(0), price.MultiplyBy(0).Amount)
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, NewMoney(0, "usd").IsZero())
	assert.True(t, NewMoney(100, "usd").IsPositive())
	assert.True(t, NewMoney(-100, "usd").IsNegative())
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "18.00 usd", NewMoney(1800, "usd").String())
	assert.Equal(t, "5.99 usd", NewMoney(599, "usd").String())
	assert.Equal(t, "0.05 usd", NewMoney(5, "usd").String())
}

func TestVersionUpdate(t *testing.T) {
	v := NewVersion()
	assert.Equal(t, 1, v.Value)
	assert.Equal(t, 2, v.Update().Value)
	assert.Equal(t, 1, v.Value)
}
