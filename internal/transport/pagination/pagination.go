// Package pagination holds the offset page-token rules shared by the gRPC and
// HTTP listing transports.
package pagination

import (
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// EncodeToken uses a plain offset string.
func EncodeToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return strconv.Itoa(offset)
}

func DecodeToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// ClampPageSize maps a non-positive size to the default and caps the rest.
func ClampPageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// NextToken returns a token only when the page came back full.
func NextToken(offset, limit, fetched int) string {
	if fetched < limit {
		return ""
	}
	return EncodeToken(offset + fetched)
}
