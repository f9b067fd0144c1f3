package listing

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
)

type getListingReply struct {
	Listing *dto.ProductListingDTO `json:"listing"`
}

type listListingsReply struct {
	Listings      []dto.ListingResult `json:"listings"`
	NextPageToken string              `json:"next_page_token"`
}

// toStruct renders v through its JSON form so Struct replies carry exactly
// the field names and decimal strings the HTTP API returns.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal reply: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("convert reply: %w", err)
	}
	return out, nil
}

func mapListingToStruct(in *dto.ProductListingDTO) (*structpb.Struct, error) {
	if in == nil {
		return nil, fmt.Errorf("nil listing")
	}
	return toStruct(getListingReply{Listing: in})
}

func mapListingsToStruct(items []dto.ListingResult, next string) (*structpb.Struct, error) {
	if items == nil {
		items = []dto.ListingResult{}
	}
	return toStruct(listListingsReply{Listings: items, NextPageToken: next})
}
