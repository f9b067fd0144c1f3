package domain

import (
	"fmt"
	"strings"
	"math/big"
	"time"
)

// PromotionKind selects how a promotion value is applied to a base price.
type PromotionKind string

const (
	// PromotionKindPercentage takes value percent off the base price.
	PromotionKindPercentage PromotionKind = "percentage"

	// PromotionKindFixedAmount subtracts value from the base price.
	PromotionKindFixedAmount PromotionKind = "fixed_amount"
)

// ParsePromotionKind accepts the catalog spellings of a promotion kind.
func ParsePromotionKind(s string) (PromotionKind, error) {
	switch s {
	case "percentage", "Percentage", "PERCENTAGE", "percent":
		return PromotionKindPercentage, nil
	case "fixed_amount", "FixedAmount", "FIXED_AMOUNT", "fixed":
		return PromotionKindFixedAmount, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPromotionKind, s)
}

// PromotionStatus is the lifecycle flag carried by the catalog.
// Anything other than PromotionStatusActive is treated as not active.
type PromotionStatus string

const (
	PromotionStatusActive   PromotionStatus = "active"
	PromotionStatusInactive PromotionStatus = "inactive"
)

// ParsePromotionStatus normalises case and surrounding space. Unknown values
// are kept as given and are never eligible.
func ParsePromotionStatus(s string) PromotionStatus {
	return PromotionStatus(strings.ToLower(strings.TrimSpace(s)))
}

// Promotion is a time-boxed discount rule attached to a variant.
// Promotion is immutable once created.
type Promotion struct {
	id       string
	kind     PromotionKind
	value    *big.Rat
	status   PromotionStatus
	startsAt time.Time
	endsAt   time.Time
}

// NewPromotion creates a Promotion. The value is not range-checked here:
// catalog data may carry out-of-range values and Validate reports them.
func NewPromotion(id string, kind PromotionKind, value *big.Rat, status PromotionStatus, startsAt, endsAt time.Time) (*Promotion, error) {
	if kind != PromotionKindPercentage && kind != PromotionKindFixedAmount {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPromotionKind, kind)
	}
	if endsAt.Before(startsAt) {
		return nil, ErrInvalidPromotionPeriod
	}
	if value == nil {
		value = new(big.Rat)
	}
	return &Promotion{
		id:       id,
		kind:     kind,
		value:    new(big.Rat).Set(value),
		status:   status,
		startsAt: startsAt,
		endsAt:   endsAt,
	}, nil
}

func (p *Promotion) ID() string {
	return p.id
}

func (p *Promotion) Kind() PromotionKind {
	return p.kind
}

// Value returns a copy of the raw promotion value as supplied by the catalog.
func (p *Promotion) Value() *big.Rat {
	return new(big.Rat).Set(p.value)
}

func (p *Promotion) Status() PromotionStatus {
	return p.status
}

func (p *Promotion) StartsAt() time.Time {
	return p.startsAt
}

func (p *Promotion) EndsAt() time.Time {
	return p.endsAt
}

// IsEligibleAt reports whether the promotion is active and now lies within
// [startsAt, endsAt], both ends inclusive.
func (p *Promotion) IsEligibleAt(now time.Time) bool {
	if p.status != PromotionStatusActive {
		return false
	}
	return !now.Before(p.startsAt) && !now.After(p.endsAt)
}

// Validate reports ErrInvalidPromotionValue for a negative value or a
// percentage above 100.
func (p *Promotion) Validate() error {
	if p.value.Sign() < 0 {
		return fmt.Errorf("%w: %s is negative", ErrInvalidPromotionValue, p.value.FloatString(2))
	}
	if p.kind == PromotionKindPercentage && p.value.Cmp(ratHundred) > 0 {
		return fmt.Errorf("%w: %s%% exceeds 100", ErrInvalidPromotionValue, p.value.FloatString(2))
	}
	return nil
}

// EffectiveValue returns the value clamped to its usable range:
// [0,100] for percentages, >= 0 for fixed amounts.
func (p *Promotion) EffectiveValue() *big.Rat {
	if p.value.Sign() < 0 {
		return new(big.Rat)
	}
	if p.kind == PromotionKindPercentage && p.value.Cmp(ratHundred) > 0 {
		return new(big.Rat).Set(ratHundred)
	}
	return new(big.Rat).Set(p.value)
}

func (p *Promotion) String() string {
	unit := ""
	if p.kind == PromotionKindPercentage {
		unit = "%"
	}
	return fmt.Sprintf("%s %s%s off (%s, %s to %s)",
		p.id,
		p.value.FloatString(2), unit,
		p.status,
		p.startsAt.UTC().Format(time.RFC3339),
		p.endsAt.UTC().Format(time.RFC3339))
}
