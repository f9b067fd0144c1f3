package catalogjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeProducts reads either a JSON array of products or a single product
// object from r and converts them to domain snapshots.
func DecodeProducts(r io.Reader) ([]*domain.Product, error) {
	records, err := DecodeRecords(r)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Product, 0, len(records))
	for i := range records {
		p, err := ConvertRecord(records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// DecodeRecords parses the wire records without validating them.
func DecodeRecords(r io.Reader) ([]ProductRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var records []ProductRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		var single ProductRecord
		if errSingle := json.Unmarshal(raw, &single); errSingle != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		records = []ProductRecord{single}
	}
	return records, nil
}

// ConvertRecord validates rec and converts it into a domain snapshot.
func ConvertRecord(rec ProductRecord) (*domain.Product, error) {
	if err := validate.Struct(rec); err != nil {
		return nil, fmt.Errorf("product %q: %w", rec.ID, describeValidation(err))
	}
	for _, v := range rec.Variants {
		if v.BasePrice.IsNegative() {
			return nil, fmt.Errorf("product %s: variant %s: %w", rec.ID, v.ID, domain.ErrInvalidBasePrice)
		}
	}
	return rec.ToDomain()
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Tag() == "gte" {
		return fmt.Errorf("%s: %w", fe.Namespace(), domain.ErrInvalidQuantity)
	}
	return fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())
}
