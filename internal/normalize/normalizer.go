package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"discount_etl/internal/domain"
)

// Normalizer turns raw listings into offers, one per shop.
type Normalizer struct {
	shops []string
	now   func() time.Time
}

// New creates a normalizer that maps shop names onto the known shops. now
// supplies the current time in the configured time zone.
func New(shops []string, now func() time.Time) *Normalizer {
	known := make([]string, len(shops))
	for i, s := range shops {
		known[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return &Normalizer{shops: known, now: now}
}

// Normalize expands one listing into its offers. Offers that cannot be
// parsed are still returned with the unusable field left empty so that
// callers can count them as skipped.
func (n *Normalizer) Normalize(raw domain.RawListing) []domain.Offer {
	today := domain.DateOf(n.now())

	if raw.Shape == domain.ShapeNormalized {
		return []domain.Offer{n.normalized(raw, today)}
	}
	return n.legacy(raw, today)
}

func (n *Normalizer) normalized(raw domain.RawListing, today time.Time) domain.Offer {
	offer := domain.Offer{
		Scope:           raw.Scope,
		ProductName:     strings.TrimSpace(raw.Name),
		ShopName:        n.Shop(raw.ShopName),
		Unit:            nonEmpty(raw.Unit),
		Category:        raw.Category,
		CategoryDisplay: raw.CategoryDisplay,
		ImageURL:        nonEmpty(raw.ImageURL),
	}

	if raw.Price != nil {
		offer.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*raw.Price).Round(2))
	}

	offer.ValidFrom = today
	if from, ok := ParseDate(raw.ValidFrom); ok {
		offer.ValidFrom = from
	}
	offer.ValidUntil = today.Add(fallbackWindow)
	if until, ok := ParseDate(raw.ValidUntil); ok {
		offer.ValidUntil = until
	}

	return offer
}

func (n *Normalizer) legacy(raw domain.RawListing, today time.Time) []domain.Offer {
	name := strings.TrimSpace(raw.Name)

	if len(raw.Shops) == 0 {
		from, until := today, today.Add(fallbackWindow)
		return []domain.Offer{{
			Scope:       raw.Scope,
			ProductName: name,
			ValidFrom:   from,
			ValidUntil:  until,
		}}
	}

	offers := make([]domain.Offer, 0, len(raw.Shops))
	for i, shop := range raw.Shops {
		offer := domain.Offer{
			Scope:           raw.Scope,
			ProductName:     name,
			ShopName:        n.Shop(shop),
			Price:           ParsePrice(at(raw.Prices, i)),
			Category:        raw.Category,
			CategoryDisplay: raw.CategoryDisplay,
		}

		if unit := strings.TrimSpace(at(raw.Amounts, i)); unit != "" {
			offer.Unit = &unit
		}

		offer.ValidFrom, offer.ValidUntil = ParseValidity(at(raw.Validities, i), today)
		offers = append(offers, offer)
	}

	return offers
}

// Shop maps a free-form shop name onto a known shop, or returns "".
func (n *Normalizer) Shop(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	for _, known := range n.shops {
		if name == known {
			return known
		}
	}
	for _, known := range n.shops {
		if strings.Contains(name, known) || strings.Contains(known, name) {
			return known
		}
	}
	return ""
}

// at returns values[i], falling back to the first element when the slice is
// shorter than the shop list.
func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
