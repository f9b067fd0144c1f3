package get_listing

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/assembler"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/catalogjson"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/obs"
	"github.com/murkotick/listing-pricing-service/internal/pkg/clock"
)

var saleStart = time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)

func newReader(t *testing.T) *catalogjson.FileReader {
	t.Helper()
	promo, err := domain.NewPromotion("black-friday", domain.PromotionKindFixedAmount, big.NewRat(20000, 1),
		domain.PromotionStatusActive, saleStart, saleStart.Add(72*time.Hour))
	require.NoError(t, err)
	v, err := domain.NewVariant("v1", domain.NewMoney(150000, 1), 10, 3, []*domain.Promotion{promo})
	require.NoError(t, err)

	return catalogjson.NewStaticReader([]*domain.Product{
		domain.ReconstructProduct(domain.ProductSnapshot{
			ID: "jacket", Name: "Rain Jacket", Status: domain.ProductStatusActive, Variants: []*domain.Variant{v},
		}),
	})
}

func TestExecute_UsesClock(t *testing.T) {
	clk := clock.NewFake(saleStart.Add(-time.Hour))
	h := NewHandler(newReader(t), assembler.New(assembler.Config{}), clk, nil)

	before, err := h.Execute(context.Background(), Query{ProductID: "jacket"})
	require.NoError(t, err)
	assert.Equal(t, "150000", before.Price.String())
	assert.Nil(t, before.DiscountInfo)

	clk.Set(saleStart)
	during, err := h.Execute(context.Background(), Query{ProductID: "jacket"})
	require.NoError(t, err)
	assert.Equal(t, "130000", during.Price.String())
	require.NotNil(t, during.DiscountInfo)
	assert.Equal(t, "black-friday", during.DiscountInfo.ID)
}

func TestExecute_AtOverridesClock(t *testing.T) {
	h := NewHandler(newReader(t), assembler.New(assembler.Config{}), clock.NewFake(saleStart.Add(-time.Hour)), nil)

	at := saleStart.Add(72 * time.Hour)
	out, err := h.Execute(context.Background(), Query{ProductID: "jacket", At: &at})
	require.NoError(t, err)
	assert.Equal(t, "130000", out.Price.String(), "end instant is inclusive")

	after := at.Add(time.Second)
	out, err = h.Execute(context.Background(), Query{ProductID: "jacket", At: &after})
	require.NoError(t, err)
	assert.Equal(t, "150000", out.Price.String())
}

func TestExecute_NotFound(t *testing.T) {
	metrics := obs.NewListingMetrics("test", prometheus.NewRegistry())
	h := NewHandler(newReader(t), assembler.New(assembler.Config{}), nil, metrics)

	_, err := h.Execute(context.Background(), Query{ProductID: "missing"})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Projections.WithLabelValues(obs.ResultFetchFailed)))
}
