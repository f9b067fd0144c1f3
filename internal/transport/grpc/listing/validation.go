package listing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

type getListingRequest struct {
	productID string
	at        *time.Time
}

type listListingsRequest struct {
	category  *string
	pageSize  int
	pageToken string
	at        *time.Time
}

func validateGetListing(req *structpb.Struct) (getListingRequest, error) {
	if req == nil {
		return getListingRequest{}, fmt.Errorf("request is required")
	}
	id, err := stringField(req, "product_id")
	if err != nil {
		return getListingRequest{}, err
	}
	if strings.TrimSpace(id) == "" {
		return getListingRequest{}, fmt.Errorf("product_id is required")
	}
	at, err := timeField(req, "at")
	if err != nil {
		return getListingRequest{}, err
	}
	return getListingRequest{productID: id, at: at}, nil
}

func validateListListings(req *structpb.Struct) (listListingsRequest, error) {
	if req == nil {
		return listListingsRequest{}, fmt.Errorf("request is required")
	}
	out := listListingsRequest{}

	category, err := stringField(req, "category")
	if err != nil {
		return out, err
	}
	if category != "" {
		out.category = &category
	}

	if v, ok := req.GetFields()["page_size"]; ok {
		n, isNum := v.GetKind().(*structpb.Value_NumberValue)
		if !isNum || n.NumberValue != math.Trunc(n.NumberValue) || n.NumberValue < 0 {
			return out, fmt.Errorf("page_size must be a non-negative integer")
		}
		out.pageSize = int(n.NumberValue)
	}

	if out.pageToken, err = stringField(req, "page_token"); err != nil {
		return out, err
	}
	if out.at, err = timeField(req, "at"); err != nil {
		return out, err
	}
	return out, nil
}

func stringField(req *structpb.Struct, name string) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return "", nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", fmt.Errorf("%s must be a string", name)
	}
}

// timeField reads an optional RFC3339 instant.
func timeField(req *structpb.Struct, name string) (*time.Time, error) {
	s, err := stringField(req, name)
	if err != nil || s == "" {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be an RFC3339 timestamp", name)
	}
	t = t.UTC()
	return &t, nil
}
