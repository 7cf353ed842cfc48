package model

import (
	"errors"
	"fmt"
	"math"
)

// Validation failures wrap one of these so callers can tell which part of a charge is bad.
var (
	ErrInvalidValue    = errors.New("invalid charge value")
	ErrInvalidSign     = errors.New("invalid charge sign")
	ErrInvalidPosition = errors.New("invalid charge position")
)

// Charge is a point source of electrostatic field.
// Units:
// - Value: coulombs (magnitude, always > 0)
// - Position: plot units
type Charge struct {
	Value    float64
	Sign     Sign
	Position Point
}

func NewCharge(value float64, sign Sign, pos Point) (Charge, error) {
	c := Charge{Value: value, Sign: sign, Position: pos}
	if err := c.Validate(); err != nil {
		return Charge{}, err
	}
	return c, nil
}

func (c Charge) Validate() error {
	if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
		return fmt.Errorf("%w: Value must be finite", ErrInvalidValue)
	}
	if c.Value <= 0 {
		return fmt.Errorf("%w: Value must be > 0", ErrInvalidValue)
	}
	if c.Sign != Positive && c.Sign != Negative {
		return fmt.Errorf("%w: Sign must be Positive or Negative", ErrInvalidSign)
	}
	if !c.Position.IsFinite() {
		return fmt.Errorf("%w: Position must be finite", ErrInvalidPosition)
	}
	return nil
}

// Positive reports whether the charge is a positive source.
func (c Charge) Positive() bool { return c.Sign == Positive }

// SignedValue is Value with the sign applied.
func (c Charge) SignedValue() float64 {
	return c.Value * c.Sign.Factor()
}

// Flipped returns a copy with the opposite sign.
func (c Charge) Flipped() Charge {
	c.Sign = c.Sign.Opposite()
	return c
}
