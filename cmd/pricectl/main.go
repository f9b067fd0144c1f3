// Command pricectl prints product listings from a catalog JSON file.
//
// Usage:
//
//	go run ./cmd/pricectl -file testdata/catalog.json -at 2025-04-01T12:00:00Z
//	go run ./cmd/pricectl -file testdata/catalog.json -id p-rain-jacket
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/assembler"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/catalogjson"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain/services"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/projector"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries/get_listing"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries/list_listings"
	"github.com/murkotick/listing-pricing-service/internal/pkg/clock"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "pricectl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pricectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		file        = fs.String("file", "testdata/catalog.json", "catalog JSON file")
		at          = fs.String("at", "", "RFC3339 pricing instant (default: now)")
		productID   = fs.String("id", "", "price a single product")
		category    = fs.String("category", "", "only list products in this category")
		imageBase   = fs.String("image-base", "", "base URL for relative image paths")
		placeholder = fs.String("placeholder", "", "image URL for products without one")
		workers     = fs.Int("workers", 4, "concurrent projections")
		verbose     = fs.Bool("v", false, "log promotion anomalies to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var ref *time.Time
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("-at: %w", err)
		}
		ref = &t
	}

	reader, err := catalogjson.NewFileReader(*file)
	if err != nil {
		return err
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()
	}
	calc := services.NewPricingCalculator()
	asm := assembler.New(assembler.Config{
		Projector:    projector.NewCatalogProjector(calc, *placeholder),
		ImageBaseURL: *imageBase,
		Logger:       &logger,
	})
	clk := clock.FromReference(ref)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	if *productID != "" {
		listing, err := get_listing.NewHandler(reader, asm, clk, nil).Execute(ctx, get_listing.Query{ProductID: *productID})
		if err != nil {
			return err
		}
		return enc.Encode(listing)
	}

	var cat *string
	if *category != "" {
		cat = category
	}
	res, err := list_listings.NewHandler(reader, asm, clk, *workers, &logger).Execute(ctx, list_listings.Query{Category: cat})
	if err != nil {
		return err
	}
	return enc.Encode(res.Items)
}
