package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"discount_etl/internal/domain"
	"discount_etl/internal/metrics"
)

// Config holds catalog source configuration.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxPages   int
	MaxRetries int
	RetryDelay time.Duration
}

// Source fetches listing batches from the catalog bridge.
type Source struct {
	httpClient *http.Client
	baseURL    string
	maxPages   int
	maxRetries int
	retryDelay time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a new catalog source.
func New(cfg Config, m *metrics.Metrics, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:    cfg.BaseURL,
		maxPages:   cfg.MaxPages,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		metrics:    m,
		logger:     logger.With("component", "catalog"),
	}
}

// Fetch returns the listings of one scope. It never fails: when every attempt
// fails the result carries no listings and a Failure describing the last error.
func (s *Source) Fetch(ctx context.Context, scope domain.Scope) domain.FetchResult {
	ctx, span := otel.Tracer("discount-etl").Start(ctx, "catalog.Fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("scope", scope.String())),
	)
	defer span.End()

	endpoint := s.endpoint(scope)
	maxAttempts := s.maxRetries + 1
	result := domain.FetchResult{Scope: scope}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result.Attempts = attempt

		var listings []domain.RawListing
		listings, err = s.doRequest(ctx, endpoint, scope)
		if err == nil {
			s.metrics.FetchAttempts.WithLabelValues("success").Inc()
			s.logger.Info("fetched scope",
				"scope", scope.String(),
				"listings", len(listings),
				"attempt", attempt,
			)
			result.Listings = listings
			return result
		}
		s.metrics.FetchAttempts.WithLabelValues("failure").Inc()

		if attempt == maxAttempts {
			break
		}

		s.logger.Warn("request failed, retrying",
			"scope", scope.String(),
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"delay", s.retryDelay,
			"error", err,
		)

		if !sleep(ctx, s.retryDelay) {
			err = ctx.Err()
			break
		}
	}

	s.logger.Error("all fetch attempts failed",
		"scope", scope.String(),
		"attempts", result.Attempts,
		"error", err,
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, "fetch failed")

	result.Failure = &domain.ErrorDetail{
		Kind:    domain.KindFetch,
		Scope:   scope.String(),
		Message: fmt.Sprintf("fetch failed after %d attempts: %v", result.Attempts, err),
		Context: map[string]string{"url": endpoint},
	}
	return result
}

func (s *Source) endpoint(scope domain.Scope) string {
	q := url.Values{}
	q.Set("max_pages", strconv.Itoa(s.maxPages))

	if scope.Kind == domain.ScopeShop {
		return fmt.Sprintf("%s/discounts/shop/%s?%s", s.baseURL, url.PathEscape(scope.ID), q.Encode())
	}
	return fmt.Sprintf("%s/v1/discounts/category/%s/etl?%s", s.baseURL, url.PathEscape(scope.ID), q.Encode())
}

func (s *Source) doRequest(ctx context.Context, endpoint string, scope domain.Scope) ([]domain.RawListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "DiscountETL/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return transform(scope, body.Products), nil
}

func transform(scope domain.Scope, products []Product) []domain.RawListing {
	listings := make([]domain.RawListing, 0, len(products))

	for _, p := range products {
		listing := domain.RawListing{
			Scope:           scope,
			Name:            p.Name,
			Category:        p.Category,
			CategoryDisplay: p.CategoryDisplay,
		}

		if len(p.Shops) > 0 || len(p.Prices) > 0 {
			listing.Shape = domain.ShapeLegacy
			listing.Shops = flatten(p.Shops)
			listing.Prices = flatten(p.Prices)
			listing.Amounts = flatten(p.Amounts)
			listing.Validities = flatten(p.Validities)
		} else {
			listing.Shape = domain.ShapeNormalized
			listing.Price = p.Price
			listing.ShopName = p.ShopName
			listing.Unit = p.Unit
			listing.ImageURL = p.ImageURL
			if p.ValidFrom != nil {
				listing.ValidFrom = *p.ValidFrom
			}
			if p.ValidUntil != nil {
				listing.ValidUntil = *p.ValidUntil
			}
		}

		listings = append(listings, listing)
	}

	return listings
}

// flatten turns a JSON array that may contain nulls into plain strings.
func flatten(values []*string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
