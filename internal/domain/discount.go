package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount is a persisted offer. Original price and discount percentage are
// never supplied upstream and stay null.
type Discount struct {
	ID                 int64               `db:"id"`
	ProductName        string              `db:"product_name"`
	Price              decimal.Decimal     `db:"price"`
	OriginalPrice      decimal.NullDecimal `db:"original_price"`
	DiscountPercentage decimal.NullDecimal `db:"discount_percentage"`
	ShopName           string              `db:"shop_name"`
	Category           string              `db:"category"`
	CategoryDisplay    string              `db:"category_display"`
	Unit               *string             `db:"unit"`
	ValidFrom          time.Time           `db:"valid_from"`
	ValidUntil         time.Time           `db:"valid_until"`
	WeekNumber         int                 `db:"week_number"`
	Year               int                 `db:"year"`
	IsFood             bool                `db:"is_food"`
	ImageURL           *string             `db:"image_url"`
	CreatedAt          time.Time           `db:"created_at"`
	UpdatedAt          time.Time           `db:"updated_at"`
}

// NaturalKey identifies one offer instance.
type NaturalKey struct {
	ProductName string
	ShopName    string
	ValidFrom   time.Time
	ValidUntil  time.Time
}

func (d *Discount) Key() NaturalKey {
	return NaturalKey{
		ProductName: d.ProductName,
		ShopName:    d.ShopName,
		ValidFrom:   d.ValidFrom,
		ValidUntil:  d.ValidUntil,
	}
}

// Outcome is the result of applying one offer to the store.
type Outcome string

const (
	OutcomeAdded   Outcome = "added"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
)

// Classification is the category assigned to an offer.
type Classification struct {
	Category string
	Display  string
	IsFood   bool
	Native   bool
}
