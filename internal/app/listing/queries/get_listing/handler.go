package get_listing

import (
	"context"
	"fmt"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/assembler"
	contracts "github.com/murkotick/listing-pricing-service/internal/app/listing/contracts"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
	"github.com/murkotick/listing-pricing-service/internal/obs"
	"github.com/murkotick/listing-pricing-service/internal/pkg/clock"
)

type Handler struct {
	reader    contracts.CatalogReader
	assembler *assembler.Assembler
	clock     clock.Clock
	metrics   *obs.ListingMetrics
}

func NewHandler(r contracts.CatalogReader, a *assembler.Assembler, clk clock.Clock, m *obs.ListingMetrics) *Handler {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Handler{reader: r, assembler: a, clock: clk, metrics: m}
}

// Execute fetches the product snapshot and prices it at q.At or the clock's now.
func (h *Handler) Execute(ctx context.Context, q Query) (*dto.ProductListingDTO, error) {
	product, err := h.reader.GetProduct(ctx, q.ProductID)
	if err != nil {
		h.metrics.ObserveProjection(obs.ResultFetchFailed, 0)
		return nil, fmt.Errorf("get product %s: %w", q.ProductID, err)
	}

	now := h.clock.Now()
	if q.At != nil {
		now = q.At.UTC()
	}
	return h.assembler.Assemble(ctx, product, now)
}
