package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"

	"github.com/murkotick/listing-pricing-service/internal/obs"
)

// A small migration helper that applies a DDL file (products, variants and
// promotions tables) to a Cloud Spanner database, typically the emulator.
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate -ddl migrations/001_initial_schema.sql
func main() {
	ddlPath := flag.String("ddl", "migrations/001_initial_schema.sql", "DDL file to apply")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	logger := obs.NewLogger(os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := os.Getenv("SPANNER_DATABASE")
	if db == "" {
		logger.Fatal().Msg("SPANNER_DATABASE is required (e.g. projects/test-project/instances/emulator-instance/databases/test-db)")
	}

	stmts, err := readDDLStatements(*ddlPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *ddlPath).Msg("read DDL")
	}
	if len(stmts) == 0 {
		logger.Fatal().Str("path", *ddlPath).Msg("no DDL statements found")
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("database admin client")
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("UpdateDatabaseDdl")
	}

	if err := op.Wait(ctx); err != nil {
		logger.Fatal().Err(err).Msg("UpdateDatabaseDdl wait")
	}

	fmt.Printf("Applied %d DDL statements to %s\n", len(stmts), db)
}

func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitDDL(string(b)), nil
}

// splitDDL splits on ';' and drops blank statements and "--" comment lines.
func splitDDL(sql string) []string {
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		var lines []string
		for _, line := range strings.Split(p, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
