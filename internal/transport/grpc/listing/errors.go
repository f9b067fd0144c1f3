package listing

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

// mapError translates domain sentinel errors into proper gRPC status codes.
// Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	if errors.Is(err, domain.ErrProductNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}

	// The product exists but its catalog data cannot be priced.
	switch {
	case errors.Is(err, domain.ErrEmptyVariantSet),
		errors.Is(err, domain.ErrInvalidBasePrice),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPromotionValue),
		errors.Is(err, domain.ErrInvalidPromotionKind),
		errors.Is(err, domain.ErrInvalidPromotionPeriod):
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
