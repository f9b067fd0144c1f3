package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"APP_ENV", "GRPC_ADDR", "HTTP_ADDR", "CATALOG_SOURCE", "SPANNER_DATABASE", "CATALOG_FILE",
	"IMAGE_BASE_URL", "IMAGE_PLACEHOLDER", "PRICING_REFERENCE_TIME", "REDIS_URL", "LISTING_CACHE_TTL",
	"LOG_FORMAT", "LOG_LEVEL", "METRICS_NAMESPACE", "LIST_MAX_CONCURRENCY",
}

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, values[k])
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{
		"SPANNER_DATABASE": "projects/p/instances/i/databases/d",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, SourceSpanner, cfg.CatalogSource)
	assert.Equal(t, 30*time.Second, cfg.ListingCacheTTL)
	assert.Equal(t, 8, cfg.ListMaxConcurrency)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "listing", cfg.MetricsNamespace)
	assert.Nil(t, cfg.ReferenceTime)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_FileSourceWithOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"CATALOG_SOURCE":         "FILE",
		"CATALOG_FILE":           "testdata/catalog.json",
		"HTTP_ADDR":              "9090",
		"PRICING_REFERENCE_TIME": "2025-06-01T10:00:00+07:00",
		"REDIS_URL":              "redis://localhost:6379/0",
		"LISTING_CACHE_TTL":      "1m",
		"LIST_MAX_CONCURRENCY":   "4",
		"IMAGE_BASE_URL":         "https://cdn.example.com",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourceFile, cfg.CatalogSource)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	require.NotNil(t, cfg.ReferenceTime)
	assert.Equal(t, time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC), *cfg.ReferenceTime)
	assert.Equal(t, time.Minute, cfg.ListingCacheTTL)
	assert.Equal(t, 4, cfg.ListMaxConcurrency)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{"spanner without database", map[string]string{}, "SPANNER_DATABASE"},
		{"file without path", map[string]string{"CATALOG_SOURCE": "file"}, "CATALOG_FILE"},
		{"unknown source", map[string]string{"CATALOG_SOURCE": "mongo"}, "CATALOG_SOURCE"},
		{"bad reference time", map[string]string{"SPANNER_DATABASE": "db", "PRICING_REFERENCE_TIME": "yesterday"}, "PRICING_REFERENCE_TIME"},
		{"zero concurrency", map[string]string{"SPANNER_DATABASE": "db", "LIST_MAX_CONCURRENCY": "0"}, "LIST_MAX_CONCURRENCY"},
		{"bad image base", map[string]string{"SPANNER_DATABASE": "db", "IMAGE_BASE_URL": "not a url"}, "IMAGE_BASE_URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
