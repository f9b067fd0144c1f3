package catalogjson

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
)

// FileReader serves catalog snapshots decoded from a JSON file.
// The file is read once at construction; the reader is then immutable.
type FileReader struct {
	byID    map[string]*domain.Product
	ordered []*domain.Product
}

// NewFileReader loads path and indexes its products.
func NewFileReader(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	products, err := DecodeProducts(f)
	if err != nil {
		return nil, err
	}
	return NewStaticReader(products), nil
}

// NewStaticReader indexes already decoded products.
func NewStaticReader(products []*domain.Product) *FileReader {
	r := &FileReader{byID: make(map[string]*domain.Product, len(products))}
	for _, p := range products {
		if p == nil {
			continue
		}
		r.byID[p.ID()] = p
		r.ordered = append(r.ordered, p)
	}
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.ordered[i].Name() < r.ordered[j].Name()
	})
	return r
}

func (r *FileReader) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := r.byID[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// ListProducts returns active products ordered by name, like the Spanner reader.
func (r *FileReader) ListProducts(ctx context.Context, category *string, limit, offset int) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var matched []*domain.Product
	for _, p := range r.ordered {
		if !p.IsActive() {
			continue
		}
		if category != nil {
			c := p.CategoryName()
			if c == nil || !strings.EqualFold(*c, *category) {
				continue
			}
		}
		matched = append(matched, p)
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}
