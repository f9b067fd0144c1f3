// Command seed loads a catalog JSON file into Cloud Spanner, replacing any
// stored rows of the same products. Records without ids get fresh UUIDs.
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/seed -file testdata/catalog.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/catalogjson"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/repo"
	"github.com/murkotick/listing-pricing-service/internal/obs"
	committer "github.com/murkotick/listing-pricing-service/internal/pkg/committer"
)

// Spanner caps a commit at 80k mutations; stay well below it.
const maxMutationsPerCommit = 2000

func main() {
	file := flag.String("file", "testdata/catalog.json", "catalog JSON file")
	flag.Parse()

	logger := obs.NewLogger(os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))

	db := os.Getenv("SPANNER_DATABASE")
	if db == "" {
		logger.Fatal().Msg("SPANNER_DATABASE is required (e.g. projects/test-project/instances/emulator-instance/databases/test-db)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("open catalog")
	}
	records, err := catalogjson.DecodeRecords(f)
	f.Close()
	if err != nil {
		logger.Fatal().Err(err).Msg("decode catalog")
	}

	client, err := spanner.NewClient(ctx, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("spanner.NewClient")
	}
	defer client.Close()

	catalogRepo := repo.NewCatalogRepo()
	plan := committer.NewPlan()

	for i := range records {
		assignIDs(&records[i])
		p, err := catalogjson.ConvertRecord(records[i])
		if err != nil {
			logger.Fatal().Err(err).Int("index", i).Msg("invalid record")
		}
		muts, err := catalogRepo.ReplaceMuts(p)
		if err != nil {
			logger.Fatal().Err(err).Str("product_id", p.ID()).Msg("build mutations")
		}
		plan.Add(muts...)
	}

	commits, err := committer.NewAdapter(client).ApplyBatched(ctx, plan, maxMutationsPerCommit)
	if err != nil {
		logger.Fatal().Err(err).Int("committed_batches", commits).Msg("commit")
	}
	logger.Info().Int("products", len(records)).Int("commits", commits).Msg("catalog seeded")

	fmt.Printf("Seeded %d products into %s\n", len(records), db)
}

func assignIDs(rec *catalogjson.ProductRecord) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	for i := range rec.Variants {
		v := &rec.Variants[i]
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		for j := range v.Promotions {
			if v.Promotions[j].ID == "" {
				v.Promotions[j].ID = uuid.NewString()
			}
		}
	}
}
