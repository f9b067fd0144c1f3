package services

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

var refNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func promo(t *testing.T, id string, kind domain.PromotionKind, value int64, status domain.PromotionStatus, start, end time.Time) *domain.Promotion {
	t.Helper()
	p, err := domain.NewPromotion(id, kind, big.NewRat(value, 1), status, start, end)
	require.NoError(t, err)
	return p
}

func activePromo(t *testing.T, id string, kind domain.PromotionKind, value int64) *domain.Promotion {
	return promo(t, id, kind, value, domain.PromotionStatusActive, refNow.Add(-24*time.Hour), refNow.Add(24*time.Hour))
}

func variant(t *testing.T, id string, base int64, stock, sold int64, promos ...*domain.Promotion) *domain.Variant {
	t.Helper()
	v, err := domain.NewVariant(id, domain.NewMoney(base, 1), stock, sold, promos)
	require.NoError(t, err)
	return v
}

func TestSelectPromotion_FirstEligibleWins(t *testing.T) {
	pe := NewPromotionEvaluator()

	a := activePromo(t, "A", domain.PromotionKindPercentage, 10)
	b := activePromo(t, "B", domain.PromotionKindFixedAmount, 5000)

	got := pe.SelectPromotion([]*domain.Promotion{a, b}, refNow)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.ID())
}

func TestSelectPromotion_SkipsIneligible(t *testing.T) {
	pe := NewPromotionEvaluator()

	expired := promo(t, "expired", domain.PromotionKindPercentage, 50, domain.PromotionStatusActive,
		refNow.Add(-48*time.Hour), refNow.Add(-time.Second))
	inactive := promo(t, "inactive", domain.PromotionKindPercentage, 50, domain.PromotionStatusInactive,
		refNow.Add(-time.Hour), refNow.Add(time.Hour))
	future := promo(t, "future", domain.PromotionKindPercentage, 50, domain.PromotionStatusActive,
		refNow.Add(time.Second), refNow.Add(time.Hour))
	ok := activePromo(t, "ok", domain.PromotionKindFixedAmount, 100)

	got := pe.SelectPromotion([]*domain.Promotion{nil, expired, inactive, future, ok}, refNow)
	require.NotNil(t, got)
	assert.Equal(t, "ok", got.ID())

	assert.Nil(t, pe.SelectPromotion([]*domain.Promotion{expired, inactive, future}, refNow))
	assert.Nil(t, pe.SelectPromotion(nil, refNow))
}

func TestSelectPromotion_WindowBoundsInclusive(t *testing.T) {
	pe := NewPromotionEvaluator()
	p := promo(t, "edge", domain.PromotionKindPercentage, 10, domain.PromotionStatusActive, refNow, refNow.Add(time.Hour))

	assert.NotNil(t, pe.SelectPromotion([]*domain.Promotion{p}, refNow), "start instant is eligible")
	assert.NotNil(t, pe.SelectPromotion([]*domain.Promotion{p}, refNow.Add(time.Hour)), "end instant is eligible")
	assert.Nil(t, pe.SelectPromotion([]*domain.Promotion{p}, refNow.Add(time.Hour+time.Nanosecond)))
	assert.Nil(t, pe.SelectPromotion([]*domain.Promotion{p}, refNow.Add(-time.Nanosecond)))
}

func TestComputeEffectivePrice(t *testing.T) {
	pc := NewPricingCalculator()
	base := domain.NewMoney(100000, 1)

	tests := []struct {
		name  string
		promo *domain.Promotion
		want  *domain.Money
	}{
		{"no promotion", nil, domain.NewMoney(100000, 1)},
		{"percentage 20", activePromo(t, "p20", domain.PromotionKindPercentage, 20), domain.NewMoney(80000, 1)},
		{"percentage 100", activePromo(t, "p100", domain.PromotionKindPercentage, 100), domain.Zero()},
		{"fixed 30000", activePromo(t, "f30k", domain.PromotionKindFixedAmount, 30000), domain.NewMoney(70000, 1)},
		{"fixed above base clamps to zero", activePromo(t, "f150k", domain.PromotionKindFixedAmount, 150000), domain.Zero()},
		{"percentage above 100 clamps to zero", activePromo(t, "p150", domain.PromotionKindPercentage, 150), domain.Zero()},
		{"negative percentage is ignored", activePromo(t, "pneg", domain.PromotionKindPercentage, -20), domain.NewMoney(100000, 1)},
		{"negative fixed is ignored", activePromo(t, "fneg", domain.PromotionKindFixedAmount, -500), domain.NewMoney(100000, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pc.ComputeEffectivePrice(base, tt.promo)
			assert.True(t, tt.want.Equals(got), "want %s, got %s", tt.want, got)
			assert.False(t, got.IsNegative())
			assert.False(t, got.GreaterThan(base))
		})
	}
}

func TestComputeEffectivePrice_FractionalPercentage(t *testing.T) {
	pc := NewPricingCalculator()
	p, err := domain.NewPromotion("p", domain.PromotionKindPercentage, big.NewRat(25, 2), domain.PromotionStatusActive,
		refNow.Add(-time.Hour), refNow.Add(time.Hour)) // 12.5%
	require.NoError(t, err)

	got := pc.ComputeEffectivePrice(domain.NewMoney(1999, 100), p)
	assert.Equal(t, "17.49125", got.Rat().FloatString(5))
}

func TestCalculateSavings(t *testing.T) {
	pc := NewPricingCalculator()
	base := domain.NewMoney(100000, 1)

	assert.True(t, pc.CalculateSavings(base, nil).IsZero())
	assert.True(t, domain.NewMoney(20000, 1).Equals(pc.CalculateSavings(base, activePromo(t, "p", domain.PromotionKindPercentage, 20))))
	assert.True(t, base.Equals(pc.CalculateSavings(base, activePromo(t, "f", domain.PromotionKindFixedAmount, 150000))))
}

func TestAggregate_EmptyVariantSet(t *testing.T) {
	va := NewVariantAggregator(nil, nil)

	_, err := va.Aggregate(nil, refNow)
	require.ErrorIs(t, err, domain.ErrEmptyVariantSet)

	_, err = va.Aggregate([]*domain.Variant{}, refNow)
	require.ErrorIs(t, err, domain.ErrEmptyVariantSet)
}

func TestAggregate_SingleVariant(t *testing.T) {
	va := NewVariantAggregator(nil, nil)
	v := variant(t, "v1", 100000, 3, 7, activePromo(t, "p20", domain.PromotionKindPercentage, 20))

	s, err := va.Aggregate([]*domain.Variant{v}, refNow)
	require.NoError(t, err)

	assert.True(t, domain.NewMoney(80000, 1).Equals(s.MinEffective))
	assert.True(t, s.MinEffective.Equals(s.MaxEffective))
	assert.True(t, s.MinOriginal.Equals(s.MaxOriginal))
	require.NotNil(t, s.DiscountInfo)
	assert.Equal(t, "p20", s.DiscountInfo.ID())
	assert.Equal(t, int64(3), s.TotalStock)
	assert.Equal(t, int64(7), s.TotalSold)
}

func TestAggregate_ExpiredPromotion(t *testing.T) {
	va := NewVariantAggregator(nil, nil)
	expired := promo(t, "old", domain.PromotionKindPercentage, 30, domain.PromotionStatusActive,
		refNow.Add(-72*time.Hour), refNow.Add(-24*time.Hour))
	v := variant(t, "v1", 50000, 1, 0, expired)

	s, err := va.Aggregate([]*domain.Variant{v}, refNow)
	require.NoError(t, err)

	assert.True(t, domain.NewMoney(50000, 1).Equals(s.MinEffective))
	assert.Nil(t, s.DiscountInfo)
	require.Len(t, s.Variants, 1)
	assert.False(t, s.Variants[0].HasDiscount())
}

func TestAggregate_TwoVariants(t *testing.T) {
	va := NewVariantAggregator(nil, nil)
	v1 := variant(t, "v1", 200000, 5, 2)
	v2 := variant(t, "v2", 150000, 4, 9, activePromo(t, "ten", domain.PromotionKindPercentage, 10))

	s, err := va.Aggregate([]*domain.Variant{v1, v2}, refNow)
	require.NoError(t, err)

	assert.True(t, domain.NewMoney(135000, 1).Equals(s.MinEffective))
	assert.True(t, domain.NewMoney(200000, 1).Equals(s.MaxEffective))
	assert.True(t, domain.NewMoney(150000, 1).Equals(s.MinOriginal))
	assert.True(t, domain.NewMoney(200000, 1).Equals(s.MaxOriginal))
	require.NotNil(t, s.DiscountInfo)
	assert.Equal(t, "ten", s.DiscountInfo.ID())
	assert.Equal(t, "v2", s.MinVariantID)
	assert.Equal(t, int64(9), s.TotalStock)
	assert.Equal(t, int64(11), s.TotalSold)
}

func TestAggregate_TieKeepsFirstHolder(t *testing.T) {
	va := NewVariantAggregator(nil, nil)
	v1 := variant(t, "v1", 90000, 1, 0)
	v2 := variant(t, "v2", 100000, 1, 0, activePromo(t, "f10k", domain.PromotionKindFixedAmount, 10000))

	s, err := va.Aggregate([]*domain.Variant{v1, v2}, refNow)
	require.NoError(t, err)

	assert.Equal(t, "v1", s.MinVariantID)
	assert.Nil(t, s.DiscountInfo, "first holder of the tied min price has no promotion")
	assert.True(t, domain.NewMoney(90000, 1).Equals(s.MinOriginal))
	assert.True(t, domain.NewMoney(90000, 1).Equals(s.MaxOriginal), "max holder is also v1 on a tie")
}

func TestAggregate_OriginalPriceCoupledToEffectiveHolder(t *testing.T) {
	va := NewVariantAggregator(nil, nil)
	// v2 has the higher original price but the lower effective price.
	v1 := variant(t, "v1", 100, 1, 0)
	v2 := variant(t, "v2", 1000, 1, 0, activePromo(t, "deep", domain.PromotionKindPercentage, 95))

	s, err := va.Aggregate([]*domain.Variant{v1, v2}, refNow)
	require.NoError(t, err)

	assert.True(t, domain.NewMoney(50, 1).Equals(s.MinEffective))
	assert.True(t, domain.NewMoney(1000, 1).Equals(s.MinOriginal))
	assert.True(t, domain.NewMoney(100, 1).Equals(s.MaxEffective))
	assert.True(t, domain.NewMoney(100, 1).Equals(s.MaxOriginal))
}

func TestAggregate_StockAndSoldIgnorePromotions(t *testing.T) {
	va := NewVariantAggregator(nil, nil)
	variants := []*domain.Variant{
		variant(t, "a", 10, 1, 10, activePromo(t, "p", domain.PromotionKindPercentage, 50)),
		variant(t, "b", 20, 2, 20),
		variant(t, "c", 30, 3, 30, activePromo(t, "f", domain.PromotionKindFixedAmount, 100)),
	}

	s, err := va.Aggregate(variants, refNow)
	require.NoError(t, err)

	assert.Equal(t, int64(6), s.TotalStock)
	assert.Equal(t, int64(60), s.TotalSold)
	for _, p := range s.Variants {
		assert.False(t, p.EffectivePrice.IsNegative())
		assert.False(t, p.EffectivePrice.GreaterThan(p.OriginalPrice))
	}
	assert.False(t, s.MinEffective.GreaterThan(s.MaxEffective))
}

func TestAggregate_ReportsAnomalies(t *testing.T) {
	va := NewVariantAggregator(nil, nil)
	v := variant(t, "v1", 1000, 1, 0, activePromo(t, "bad", domain.PromotionKindPercentage, 140))

	s, err := va.Aggregate([]*domain.Variant{v}, refNow)
	require.NoError(t, err)

	require.Len(t, s.Anomalies, 1)
	assert.Equal(t, "v1", s.Anomalies[0].VariantID)
	assert.Equal(t, "bad", s.Anomalies[0].PromotionID)
	assert.True(t, errors.Is(s.Anomalies[0].Err, domain.ErrInvalidPromotionValue))
	assert.True(t, s.MinEffective.IsZero())
}

func TestAggregate_InvalidBasePrice(t *testing.T) {
	va := NewVariantAggregator(nil, nil)
	bad := domain.ReconstructVariant("neg", domain.NewMoney(-1, 1), 0, 0, nil)

	_, err := va.Aggregate([]*domain.Variant{variant(t, "ok", 10, 0, 0), bad}, refNow)
	require.ErrorIs(t, err, domain.ErrInvalidBasePrice)
}

func TestStableWindow_Boundaries(t *testing.T) {
	pe := NewPromotionEvaluator()
	startA, endA := refNow.Add(-time.Hour), refNow.Add(time.Hour)
	startB := refNow.Add(30 * time.Minute)

	a := promo(t, "A", domain.PromotionKindPercentage, 10, domain.PromotionStatusActive, startA, endA)
	b := promo(t, "B", domain.PromotionKindPercentage, 20, domain.PromotionStatusActive, startB, refNow.Add(3*time.Hour))
	off := promo(t, "off", domain.PromotionKindPercentage, 90, domain.PromotionStatusInactive, refNow.Add(time.Minute), refNow.Add(2*time.Minute))
	variants := []*domain.Variant{
		variant(t, "v1", 100, 1, 0, a, off),
		variant(t, "v2", 200, 1, 0, b),
	}

	w := pe.StableWindow(variants, refNow)
	assert.Equal(t, startA, w.From)
	assert.Equal(t, startB, w.Until)
	assert.True(t, w.Contains(refNow))
	assert.Equal(t, 30*time.Minute, w.Remaining(refNow))

	// The end instant is still inside the window; the next nanosecond is not.
	w = pe.StableWindow(variants, endA)
	assert.Equal(t, startB, w.From)
	assert.Equal(t, endA.Add(time.Nanosecond), w.Until)
	assert.False(t, w.Contains(endA.Add(time.Nanosecond)))
}

func TestStableWindow_NoPromotionsIsUnbounded(t *testing.T) {
	w := NewPromotionEvaluator().StableWindow([]*domain.Variant{variant(t, "v1", 100, 0, 0)}, refNow)
	assert.True(t, w.From.IsZero())
	assert.True(t, w.Until.IsZero())
	assert.Equal(t, time.Duration(-1), w.Remaining(refNow))
	assert.True(t, w.Contains(refNow.Add(100*time.Hour)))
}

func TestStableWindow_PricesMatchAcrossWindow(t *testing.T) {
	pe := NewPromotionEvaluator()
	agg := NewVariantAggregator(pe, NewPricingCalculator())
	end := refNow.Add(10 * time.Second)
	sale := promo(t, "sale", domain.PromotionKindPercentage, 50, domain.PromotionStatusActive, refNow.Add(-time.Hour), end)
	variants := []*domain.Variant{variant(t, "v1", 1000, 1, 0, sale)}

	w := pe.StableWindow(variants, refNow)
	require.True(t, w.Contains(end))

	atStart, err := agg.Aggregate(variants, w.From)
	require.NoError(t, err)
	atEnd, err := agg.Aggregate(variants, end)
	require.NoError(t, err)
	assert.True(t, atStart.MinEffective.Equals(atEnd.MinEffective))

	after, err := agg.Aggregate(variants, w.Until)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", after.MinEffective.String())
}
