package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"discount_etl/internal/domain"
)

type DiscountStore interface {
	// FindCheapestOverlapping returns nil when no record of the product
	// overlaps the window.
	FindCheapestOverlapping(ctx context.Context, productName, shopName string, from, until time.Time) (*domain.Discount, error)
	Insert(ctx context.Context, d *domain.Discount) (domain.Outcome, error)
	ReplaceOffer(ctx context.Context, id int64, d *domain.Discount) error
	DeleteSuperseded(ctx context.Context, keepID int64, key domain.NaturalKey) (int64, error)
	DeleteExpired(ctx context.Context, today time.Time) (int64, error)
	CountActiveByCategory(ctx context.Context, today time.Time) (map[string]int, error)
	CountActiveByShop(ctx context.Context, today time.Time) (map[string]int, error)
}

type RunLogStore interface {
	Insert(ctx context.Context, log *domain.RunLog) error
	LastSuccessful(ctx context.Context) (*domain.RunLog, error)
	Recent(ctx context.Context, limit int) ([]domain.RunLog, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, scope domain.Scope) domain.FetchResult
}

type Normalizer interface {
	Normalize(raw domain.RawListing) []domain.Offer
}

type Classifier interface {
	Classify(o domain.Offer) domain.Classification
}

// TransactionManager runs fn in one transaction that holds an exclusive
// lock on lockKey until it ends. Callers sharing a key are serialized.
type TransactionManager interface {
	WithLockedTransaction(ctx context.Context, lockKey string, fn func(ctx context.Context) error) error
}

type Publisher interface {
	PublishRun(ctx context.Context, report *domain.RunReport) error
	Close() error
}
