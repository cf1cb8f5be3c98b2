package catalog

// Product covers both listing shapes of the bridge. Legacy products fill the
// parallel Shops/Prices/Amounts/Validities slices; normalized products fill
// the single-offer fields.
type Product struct {
	Name string `json:"name"`

	Shops      []*string `json:"shops"`
	Prices     []*string `json:"prices"`
	Amounts    []*string `json:"amounts"`
	Validities []*string `json:"validities"`

	Price           *float64 `json:"price"`
	ShopName        string   `json:"shop_name"`
	Category        string   `json:"category"`
	CategoryDisplay string   `json:"category_display"`
	Unit            *string  `json:"unit"`
	ValidFrom       *string  `json:"valid_from"`
	ValidUntil      *string  `json:"valid_until"`
	ImageURL        *string  `json:"image_url"`
}

// ListResponse is the body of both the per-category and the per-shop
// endpoint. Counts, fetch time and the upstream is_food flag are not read:
// food status follows from the classified category.
type ListResponse struct {
	Products []Product `json:"products"`
}
