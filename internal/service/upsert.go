package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"discount_etl/internal/domain"
	"discount_etl/internal/metrics"
)

// Upserter applies offers to the discount store. For a product whose
// validity overlaps a stored record, the cheapest stored record wins unless
// the offer undercuts it; an equally priced offer from another shop is kept
// as a separate record.
type Upserter struct {
	discounts DiscountStore
	txManager TransactionManager
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewUpserter(
	discounts DiscountStore,
	txManager TransactionManager,
	m *metrics.Metrics,
	logger *slog.Logger,
	now func() time.Time,
) *Upserter {
	return &Upserter{
		discounts: discounts,
		txManager: txManager,
		metrics:   m,
		logger:    logger.With("component", "upserter"),
		now:       now,
	}
}

// Apply stores one offer. Invalid offers return OutcomeSkipped together with
// an *InvalidOfferError; any other error comes from the store.
func (u *Upserter) Apply(ctx context.Context, offer domain.Offer, class domain.Classification) (domain.Outcome, error) {
	if invalid := validateOffer(offer, domain.DateOf(u.now())); invalid != nil {
		u.metrics.InvalidOffers.WithLabelValues(invalid.Reason).Inc()
		u.logger.Debug("offer skipped",
			"product", offer.ProductName,
			"shop", offer.ShopName,
			"reason", invalid.Reason,
		)
		return domain.OutcomeSkipped, invalid
	}

	incoming := newDiscount(offer, class)

	// The lookup and the write must see each other across scope workers, so
	// both run under a per-product lock held until commit.
	var outcome domain.Outcome
	err := u.txManager.WithLockedTransaction(ctx, incoming.ProductName, func(txCtx context.Context) error {
		var err error
		outcome, err = u.apply(txCtx, incoming)
		return err
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (u *Upserter) apply(ctx context.Context, incoming *domain.Discount) (domain.Outcome, error) {
	existing, err := u.discounts.FindCheapestOverlapping(ctx, incoming.ProductName, incoming.ShopName, incoming.ValidFrom, incoming.ValidUntil)
	if err != nil {
		return "", fmt.Errorf("find overlapping discount: %w", err)
	}

	if existing == nil {
		outcome, err := u.discounts.Insert(ctx, incoming)
		if err != nil {
			return "", fmt.Errorf("insert discount: %w", err)
		}
		return outcome, nil
	}

	switch cmp := incoming.Price.Cmp(existing.Price); {
	case cmp < 0:
		if err := u.replace(ctx, existing, incoming); err != nil {
			return "", err
		}
		return domain.OutcomeUpdated, nil

	case cmp == 0 && existing.ShopName != incoming.ShopName:
		outcome, err := u.discounts.Insert(ctx, incoming)
		if err != nil {
			return "", fmt.Errorf("insert discount: %w", err)
		}
		return outcome, nil
	}

	return domain.OutcomeSkipped, nil
}

// replace moves the existing record to the cheaper offer in place. A record
// of the incoming shop for the existing window would collide on the natural
// key afterwards, so it is removed first.
func (u *Upserter) replace(ctx context.Context, existing, incoming *domain.Discount) error {
	key := domain.NaturalKey{
		ProductName: incoming.ProductName,
		ShopName:    incoming.ShopName,
		ValidFrom:   existing.ValidFrom,
		ValidUntil:  existing.ValidUntil,
	}
	removed, err := u.discounts.DeleteSuperseded(ctx, existing.ID, key)
	if err != nil {
		return fmt.Errorf("delete superseded discount: %w", err)
	}
	if removed > 0 {
		u.logger.Debug("superseded discounts removed", "product", incoming.ProductName, "count", removed)
	}

	if err := u.discounts.ReplaceOffer(ctx, existing.ID, incoming); err != nil {
		return fmt.Errorf("replace discount %d: %w", existing.ID, err)
	}
	return nil
}

func newDiscount(offer domain.Offer, class domain.Classification) *domain.Discount {
	week, year := domain.ISOWeek(offer.ValidFrom)
	return &domain.Discount{
		ProductName:     offer.ProductName,
		Price:           offer.Price.Decimal,
		ShopName:        offer.ShopName,
		Category:        class.Category,
		CategoryDisplay: class.Display,
		Unit:            offer.Unit,
		ValidFrom:       offer.ValidFrom,
		ValidUntil:      offer.ValidUntil,
		WeekNumber:      week,
		Year:            year,
		IsFood:          class.IsFood,
		ImageURL:        offer.ImageURL,
	}
}
