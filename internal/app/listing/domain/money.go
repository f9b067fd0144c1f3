package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var ratHundred = big.NewRat(100, 1)

// Money represents a monetary value with precise decimal arithmetic.
// It uses big.Rat internally so percentage discounts never round mid-calculation.
// Money is immutable - all operations return new instances.
type Money struct {
	amount *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// For example: NewMoney(1999, 100) represents 19.99.
func NewMoney(numerator, denominator int64) *Money {
	if denominator == 0 {
		panic("money: denominator cannot be zero")
	}
	return &Money{amount: big.NewRat(numerator, denominator)}
}

// NewMoneyFromRat creates Money from an existing big.Rat. The rat is copied.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{amount: new(big.Rat).Set(rat)}
}

// MoneyFromDecimal converts a shopspring decimal (as decoded from JSON) into Money.
func MoneyFromDecimal(d decimal.Decimal) *Money {
	return &Money{amount: d.Rat()}
}

// Zero returns a Money instance representing zero.
func Zero() *Money {
	return &Money{amount: new(big.Rat)}
}

func (m *Money) Subtract(other *Money) *Money {
	return &Money{amount: new(big.Rat).Sub(m.amount, other.amount)}
}

// MultiplyByRat scales the amount by r.
func (m *Money) MultiplyByRat(r *big.Rat) *Money {
	return &Money{amount: new(big.Rat).Mul(m.amount, r)}
}

// FloorAtZero returns m, or zero when m is negative.
func (m *Money) FloorAtZero() *Money {
	if m.IsNegative() {
		return Zero()
	}
	return m
}

func (m *Money) IsZero() bool {
	return m.amount.Sign() == 0
}

func (m *Money) IsNegative() bool {
	return m.amount.Sign() < 0
}

func (m *Money) GreaterThan(other *Money) bool {
	return m.amount.Cmp(other.amount) > 0
}

func (m *Money) LessThan(other *Money) bool {
	return m.amount.Cmp(other.amount) < 0
}

// Equals returns true if m equals other. A nil other is never equal.
func (m *Money) Equals(other *Money) bool {
	if other == nil {
		return false
	}
	return m.amount.Cmp(other.amount) == 0
}

// Rat returns a copy of the internal big.Rat.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.amount)
}

// Decimal returns the amount as a shopspring decimal rounded to 10 places,
// which is what transport layers serialise.
func (m *Money) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(m.amount.FloatString(10))
	if err != nil {
		// FloatString always yields a valid decimal literal.
		panic(fmt.Sprintf("money: %v", err))
	}
	return d
}

func (m *Money) String() string {
	return m.amount.FloatString(2)
}
