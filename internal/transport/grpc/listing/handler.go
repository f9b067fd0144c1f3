package listing

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries/get_listing"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries/list_listings"
	"github.com/murkotick/listing-pricing-service/internal/transport/pagination"
)

// Queries groups read handlers.
type Queries struct {
	Get  *get_listing.Handler
	List *list_listings.Handler
}

// Handler is a thin gRPC transport adapter.
// It validates input, maps Struct <-> application DTOs and delegates to query handlers.
type Handler struct {
	queries Queries
}

var _ ListingServiceServer = (*Handler)(nil)

func NewHandler(qry Queries) *Handler {
	return &Handler{queries: qry}
}

func (h *Handler) GetListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := validateGetListing(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	listing, err := h.queries.Get.Execute(ctx, get_listing.Query{ProductID: in.productID, At: in.at})
	if err != nil {
		return nil, mapError(err)
	}

	out, err := mapListingToStruct(listing)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (h *Handler) ListListings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := validateListListings(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	limit := pagination.ClampPageSize(in.pageSize)
	offset, err := pagination.DecodeToken(in.pageToken)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid page_token")
	}

	res, err := h.queries.List.Execute(ctx, list_listings.Query{
		Category: in.category,
		Limit:    limit,
		Offset:   offset,
		At:       in.at,
	})
	if err != nil {
		return nil, mapError(err)
	}

	out, err := mapListingsToStruct(res.Items, pagination.NextToken(offset, limit, res.Fetched))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
