package service

import (
	"time"

	"discount_etl/internal/domain"
)

// InvalidOfferError reports why an offer was skipped before the upsert
// policy ran. It matches domain.ErrInvalidOffer.
type InvalidOfferError struct {
	Reason string
}

func (e *InvalidOfferError) Error() string {
	return "invalid offer: " + e.Reason
}

func (e *InvalidOfferError) Unwrap() error {
	return domain.ErrInvalidOffer
}

const (
	reasonName    = "missing_name"
	reasonPrice   = "invalid_price"
	reasonShop    = "unknown_shop"
	reasonWindow  = "invalid_window"
	reasonExpired = "expired"
)

// validateOffer returns nil when o may be stored on the given day.
func validateOffer(o domain.Offer, today time.Time) *InvalidOfferError {
	switch {
	case o.ProductName == "":
		return &InvalidOfferError{Reason: reasonName}
	case !o.Price.Valid || !o.Price.Decimal.IsPositive():
		return &InvalidOfferError{Reason: reasonPrice}
	case o.ShopName == "":
		return &InvalidOfferError{Reason: reasonShop}
	case o.ValidUntil.Before(o.ValidFrom):
		return &InvalidOfferError{Reason: reasonWindow}
	case o.ValidUntil.Before(today):
		return &InvalidOfferError{Reason: reasonExpired}
	}
	return nil
}
