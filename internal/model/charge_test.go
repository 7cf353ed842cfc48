package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCharge_Validation(t *testing.T) {
	c, err := NewCharge(5, Positive, Point{X: 3, Y: 3})
	require.NoError(t, err)
	assert.True(t, c.Positive())
	assert.Equal(t, 5.0, c.SignedValue())

	_, err = NewCharge(0, Positive, Point{})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = NewCharge(-1, Negative, Point{})
	assert.Error(t, err)

	_, err = NewCharge(math.NaN(), Positive, Point{})
	assert.Error(t, err)

	_, err = NewCharge(1, Sign("sideways"), Point{})
	assert.Error(t, err)

	_, err = NewCharge(1, Negative, Point{X: math.Inf(1)})
	assert.Error(t, err)
}

func TestSign(t *testing.T) {
	assert.Equal(t, Positive, SignFromBool(true))
	assert.Equal(t, Negative, SignFromBool(false))
	assert.Equal(t, 1.0, Positive.Factor())
	assert.Equal(t, -1.0, Negative.Factor())
	assert.Equal(t, "+", Positive.Label())
	assert.Equal(t, "-", Negative.Label())
	assert.Equal(t, Negative, Positive.Opposite())
}

func TestCharge_Flipped(t *testing.T) {
	c := Charge{Value: 7, Sign: Negative, Position: Point{X: 5, Y: -5}}
	f := c.Flipped()
	assert.Equal(t, Positive, f.Sign)
	assert.Equal(t, Negative, c.Sign, "original must stay unchanged")
	assert.Equal(t, -c.SignedValue(), f.SignedValue())
}
