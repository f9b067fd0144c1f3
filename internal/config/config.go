package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Catalog sources.
const (
	SourceSpanner = "spanner"
	SourceFile    = "file"
)

// Config holds service configuration loaded from the environment.
type Config struct {
	AppEnv string

	GRPCAddr string `validate:"required"`
	HTTPAddr string `validate:"required"`

	CatalogSource   string `validate:"oneof=spanner file"`
	SpannerDatabase string `validate:"required_if=CatalogSource spanner"`
	CatalogFile     string `validate:"required_if=CatalogSource file"`

	ImageBaseURL     string `validate:"omitempty,url"`
	ImagePlaceholder string

	// ReferenceTime pins the pricing instant when set.
	ReferenceTime *time.Time

	RedisURL        string
	ListingCacheTTL time.Duration `validate:"gte=0"`

	LogFormat        string `validate:"omitempty,oneof=json console text"`
	LogLevel         string
	MetricsNamespace string

	ListMaxConcurrency int `validate:"gte=1,lte=256"`
}

var validate = validator.New()

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		GRPCAddr:           normalizeAddr(valueOrDefault(k.String("GRPC_ADDR"), ":50051")),
		HTTPAddr:           normalizeAddr(valueOrDefault(k.String("HTTP_ADDR"), ":8080")),
		CatalogSource:      strings.ToLower(valueOrDefault(k.String("CATALOG_SOURCE"), SourceSpanner)),
		SpannerDatabase:    strings.TrimSpace(k.String("SPANNER_DATABASE")),
		CatalogFile:        strings.TrimSpace(k.String("CATALOG_FILE")),
		ImageBaseURL:       strings.TrimSpace(k.String("IMAGE_BASE_URL")),
		ImagePlaceholder:   strings.TrimSpace(k.String("IMAGE_PLACEHOLDER")),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		ListingCacheTTL:    parseDuration(k.String("LISTING_CACHE_TTL"), "30s"),
		LogFormat:          strings.ToLower(valueOrDefault(k.String("LOG_FORMAT"), "json")),
		LogLevel:           valueOrDefault(k.String("LOG_LEVEL"), "info"),
		MetricsNamespace:   valueOrDefault(k.String("METRICS_NAMESPACE"), "listing"),
		ListMaxConcurrency: parseInt(k.String("LIST_MAX_CONCURRENCY"), 8),
	}

	if raw := strings.TrimSpace(k.String("PRICING_REFERENCE_TIME")); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("PRICING_REFERENCE_TIME: %w", err)
		}
		at = at.UTC()
		cfg.ReferenceTime = &at
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

// CacheEnabled reports whether listings should be cached in Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" && c.ListingCacheTTL > 0
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", envName(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

var envNames = map[string]string{
	"GRPCAddr":           "GRPC_ADDR",
	"HTTPAddr":           "HTTP_ADDR",
	"CatalogSource":      "CATALOG_SOURCE",
	"SpannerDatabase":    "SPANNER_DATABASE",
	"CatalogFile":        "CATALOG_FILE",
	"ImageBaseURL":       "IMAGE_BASE_URL",
	"ListingCacheTTL":    "LISTING_CACHE_TTL",
	"LogFormat":          "LOG_FORMAT",
	"ListMaxConcurrency": "LIST_MAX_CONCURRENCY",
}

func envName(field string) string {
	if n, ok := envNames[field]; ok {
		return n
	}
	return field
}

func normalizeAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr != "" && !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
