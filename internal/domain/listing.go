package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ScopeKind string

const (
	ScopeCategory ScopeKind = "category"
	ScopeShop     ScopeKind = "shop"
)

// Scope is a single fetch unit: one category or one shop.
type Scope struct {
	Kind ScopeKind
	ID   string
}

func (s Scope) String() string {
	return string(s.Kind) + ":" + s.ID
}

// ParseScope parses the "kind:id" form produced by Scope.String.
func ParseScope(s string) (Scope, error) {
	kind, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || id == "" {
		return Scope{}, fmt.Errorf("invalid scope %q: want kind:id", s)
	}
	switch ScopeKind(kind) {
	case ScopeCategory, ScopeShop:
		return Scope{Kind: ScopeKind(kind), ID: id}, nil
	default:
		return Scope{}, fmt.Errorf("invalid scope kind %q", kind)
	}
}

type ListingShape int

const (
	ShapeLegacy ListingShape = iota
	ShapeNormalized
)

// RawListing is a listing as received from the catalog source. Legacy listings
// carry parallel slices where index i across Shops, Prices, Amounts and
// Validities describes one offer. Normalized listings describe exactly one offer.
type RawListing struct {
	Scope Scope
	Shape ListingShape
	Name  string

	Shops      []string
	Prices     []string
	Amounts    []string
	Validities []string

	Price           *float64
	ShopName        string
	Category        string
	CategoryDisplay string
	Unit            *string
	ValidFrom       string
	ValidUntil      string
	ImageURL        *string
}

// Offer is one product at one shop for one validity window.
type Offer struct {
	Scope           Scope
	ProductName     string
	Price           decimal.NullDecimal
	ShopName        string
	Unit            *string
	ValidFrom       time.Time
	ValidUntil      time.Time
	Category        string // native category id, empty when the source had none
	CategoryDisplay string
	ImageURL        *string
}

// NativeCategory reports whether the offer carries a source-provided category.
func (o Offer) NativeCategory() bool {
	return o.Category != "" && o.Category != "unknown"
}

// FetchResult is what the fetcher hands back for a scope. Failure is set when
// every attempt failed; Listings is empty in that case.
type FetchResult struct {
	Scope    Scope
	Listings []RawListing
	Attempts int
	Failure  *ErrorDetail
}
