package list_listings

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/assembler"
	contracts "github.com/murkotick/listing-pricing-service/internal/app/listing/contracts"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
	"github.com/murkotick/listing-pricing-service/internal/pkg/clock"
)

// ListingItem is dto.ListingResult; aliased so callers need only this package.
type ListingItem = dto.ListingResult

const defaultConcurrency = 8

type Handler struct {
	reader         contracts.CatalogReader
	assembler      *assembler.Assembler
	clock          clock.Clock
	maxConcurrency int
	logger         zerolog.Logger
}

func NewHandler(r contracts.CatalogReader, a *assembler.Assembler, clk clock.Clock, maxConcurrency int, logger *zerolog.Logger) *Handler {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if maxConcurrency <= 0 {
		maxConcurrency = defaultConcurrency
	}
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Handler{reader: r, assembler: a, clock: clk, maxConcurrency: maxConcurrency, logger: l}
}

// Execute lists a page of products and prices each one concurrently.
// A product that cannot be priced yields an unavailable entry instead of
// failing the page; only catalog read errors and cancellation fail the call.
func (h *Handler) Execute(ctx context.Context, q Query) (*Result, error) {
	products, err := h.reader.ListProducts(ctx, q.Category, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if q.At != nil {
		now = q.At.UTC()
	}

	items, err := ProjectAll(ctx, h.assembler, products, now, h.maxConcurrency)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.Err != nil && !errors.Is(it.Err, domain.ErrEmptyVariantSet) {
			h.logger.Error().Err(it.Err).Str("product_id", it.ProductID).Msg("listing projection failed")
		}
	}
	return &Result{Items: items, Fetched: len(products)}, nil
}

// ProjectAll prices products at now with at most limit concurrent workers.
// Results keep the input order.
func ProjectAll(ctx context.Context, a *assembler.Assembler, products []*domain.Product, now time.Time, limit int) ([]ListingItem, error) {
	items := make([]ListingItem, len(products))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range products {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			listing, err := a.Assemble(gctx, p, now)
			items[i] = toItem(p, listing, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func toItem(p *domain.Product, listing *dto.ProductListingDTO, err error) ListingItem {
	item := ListingItem{}
	if p != nil {
		item.ProductID = p.ID()
	}
	if err != nil {
		item.Availability = dto.AvailabilityUnavailable
		item.Error = err.Error()
		item.Err = err
		return item
	}
	item.Listing = listing
	item.Availability = dto.AvailabilityAvailable
	return item
}
