package listing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/murkotick/listing-pricing-service/internal/app/listing/domain"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/dto"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries/get_listing"
	"github.com/murkotick/listing-pricing-service/internal/app/listing/queries/list_listings"
	"github.com/murkotick/listing-pricing-service/internal/transport/pagination"
)

// ErrorBody is the error payload returned by the API.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Get    *get_listing.Handler
	List   *list_listings.Handler
	Logger *zerolog.Logger

	// Gatherer backs GET /metrics; nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Handler exposes listing endpoints over HTTP.
type Handler struct {
	get      *get_listing.Handler
	list     *list_listings.Handler
	logger   zerolog.Logger
	gatherer prometheus.Gatherer
}

func NewHandler(cfg HandlerConfig) *Handler {
	l := zerolog.Nop()
	if cfg.Logger != nil {
		l = *cfg.Logger
	}
	g := cfg.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return &Handler{get: cfg.Get, list: cfg.List, logger: l, gatherer: g}
}

// Routes mounts the listing API, health and metrics endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	r.Route("/v1/listings", func(r chi.Router) {
		r.Get("/", h.ListListings)
		r.Get("/{productID}", h.GetListing)
	})
	return r
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GetListing handles GET /v1/listings/{productID}?at=.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	listing, err := h.get.Execute(r.Context(), get_listing.Query{ProductID: chi.URLParam(r, "productID"), At: at})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": listing})
}

// ListListings handles GET /v1/listings?category=&limit=&page_token=&at=.
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := pagination.DefaultPageSize
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "limit must be a positive integer")
			return
		}
		limit = pagination.ClampPageSize(n)
	}

	offset, err := pagination.DecodeToken(q.Get("page_token"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid page_token")
		return
	}

	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	var category *string
	if c := strings.TrimSpace(q.Get("category")); c != "" {
		category = &c
	}

	res, err := h.list.Execute(r.Context(), list_listings.Query{Category: category, Limit: limit, Offset: offset, At: at})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	items := res.Items
	if items == nil {
		items = []dto.ListingResult{}
	}
	next := pagination.NextToken(offset, limit, res.Fetched)
	writeJSON(w, http.StatusOK, map[string]any{"data": items, "next_page_token": next})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("listing request failed")
	}
	writeError(w, status, code, err.Error())
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmptyVariantSet):
		return http.StatusUnprocessableEntity, "UNAVAILABLE"
	case errors.Is(err, domain.ErrInvalidBasePrice),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPromotionValue),
		errors.Is(err, domain.ErrInvalidPromotionKind),
		errors.Is(err, domain.ErrInvalidPromotionPeriod):
		return http.StatusUnprocessableEntity, "INVALID_CATALOG_DATA"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "DEADLINE_EXCEEDED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func parseAt(r *http.Request) (*time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.New("at must be an RFC3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{"error": ErrorBody{Code: code, Message: message}})
}
