package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"discount_etl/internal/domain"
	"discount_etl/internal/metrics"
)

type SourceTestSuite struct {
	suite.Suite
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func (s *SourceTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.metrics = metrics.New(prometheus.NewRegistry())
}

func TestSourceTestSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}

func (s *SourceTestSuite) newSource(url string, maxRetries int) *Source {
	return New(Config{
		BaseURL:    url,
		Timeout:    2 * time.Second,
		MaxPages:   3,
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
	}, s.metrics, s.logger)
}

func (s *SourceTestSuite) TestFetch_CategoryScopeNormalizedShape() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/discounts/category/pecivo/etl", r.URL.Path)
		s.Equal("3", r.URL.Query().Get("max_pages"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"products": [{
				"name": "Rohlík tukový",
				"price": 2.9,
				"original_price": null,
				"discount_percentage": null,
				"shop_name": "lidl",
				"category": "pecivo",
				"category_display": "Pečivo",
				"unit": "43 g",
				"valid_from": "2026-01-20",
				"valid_until": "2026-01-26",
				"is_food": true,
				"image_url": null
			}],
			"total_count": 1,
			"category": "pecivo",
			"category_display": "Pečivo",
			"fetched_at": "2026-01-20T10:00:00+01:00"
		}`)
	}))
	defer srv.Close()

	scope := domain.Scope{Kind: domain.ScopeCategory, ID: "pecivo"}
	result := s.newSource(srv.URL, 3).Fetch(context.Background(), scope)

	s.Nil(result.Failure)
	s.Equal(1, result.Attempts)
	s.Require().Len(result.Listings, 1)

	l := result.Listings[0]
	s.Equal(domain.ShapeNormalized, l.Shape)
	s.Equal(scope, l.Scope)
	s.Equal("Rohlík tukový", l.Name)
	s.Require().NotNil(l.Price)
	s.InDelta(2.9, *l.Price, 0.0001)
	s.Equal("lidl", l.ShopName)
	s.Equal("pecivo", l.Category)
	s.Equal("2026-01-20", l.ValidFrom)
	s.Equal("2026-01-26", l.ValidUntil)
	s.Require().NotNil(l.Unit)
	s.Equal("43 g", *l.Unit)
	s.Nil(l.ImageURL)
}

func (s *SourceTestSuite) TestFetch_ShopScopeLegacyShape() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/discounts/shop/albert", r.URL.Path)
		fmt.Fprint(w, `{
			"products": [{
				"name": "Pilsner Urquell 0,5 l",
				"shops": ["Albert", "Billa"],
				"prices": ["24,90 Kč", "25,90 Kč"],
				"amounts": ["0.5 l", null],
				"validities": ["od 20.1. do 26.1.", "platí do 26.1."],
				"category": "unknown",
				"category_display": "Neznámá kategorie",
				"is_food": true
			}],
			"total_count": 1,
			"category_counts": {"unknown": 1},
			"shop_counts": {"albert": 1}
		}`)
	}))
	defer srv.Close()

	result := s.newSource(srv.URL, 0).Fetch(context.Background(), domain.Scope{Kind: domain.ScopeShop, ID: "albert"})

	s.Nil(result.Failure)
	s.Require().Len(result.Listings, 1)

	l := result.Listings[0]
	s.Equal(domain.ShapeLegacy, l.Shape)
	s.Equal([]string{"Albert", "Billa"}, l.Shops)
	s.Equal([]string{"24,90 Kč", "25,90 Kč"}, l.Prices)
	s.Equal([]string{"0.5 l", ""}, l.Amounts)
	s.Equal("unknown", l.Category)
}

func (s *SourceTestSuite) TestFetch_RetriesUntilSuccess() {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"products": [], "total_count": 0}`)
	}))
	defer srv.Close()

	result := s.newSource(srv.URL, 3).Fetch(context.Background(), domain.Scope{Kind: domain.ScopeCategory, ID: "alkohol"})

	s.Nil(result.Failure)
	s.Equal(3, result.Attempts)
	s.Empty(result.Listings)
	s.Equal(float64(2), testutil.ToFloat64(s.metrics.FetchAttempts.WithLabelValues("failure")))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.FetchAttempts.WithLabelValues("success")))
}

func (s *SourceTestSuite) TestFetch_ExhaustedRetriesReturnsFailure() {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	scope := domain.Scope{Kind: domain.ScopeCategory, ID: "konzervy"}
	result := s.newSource(srv.URL, 2).Fetch(context.Background(), scope)

	s.Equal(int32(3), calls.Load())
	s.Equal(3, result.Attempts)
	s.Empty(result.Listings)
	s.Require().NotNil(result.Failure)
	s.Equal(domain.KindFetch, result.Failure.Kind)
	s.Equal("category:konzervy", result.Failure.Scope)
	s.Contains(result.Failure.Message, "unexpected status: 500")
}

func (s *SourceTestSuite) TestFetch_DecodeErrorIsRetried() {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `not json`)
	}))
	defer srv.Close()

	result := s.newSource(srv.URL, 1).Fetch(context.Background(), domain.Scope{Kind: domain.ScopeCategory, ID: "pecivo"})

	s.Equal(int32(2), calls.Load())
	s.Require().NotNil(result.Failure)
	s.Contains(result.Failure.Message, "decode response")
}

func (s *SourceTestSuite) TestFetch_CancelledContextStopsRetrying() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := New(Config{
		BaseURL:    srv.URL,
		Timeout:    time.Second,
		MaxRetries: 5,
		RetryDelay: time.Hour,
	}, s.metrics, s.logger)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := src.Fetch(ctx, domain.Scope{Kind: domain.ScopeCategory, ID: "pecivo"})

	s.Equal(1, result.Attempts)
	s.Require().NotNil(result.Failure)
	s.Contains(result.Failure.Message, "context deadline exceeded")
}
