package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"discount_etl/internal/domain"
)

const discountColumns = `
	id, product_name, price, original_price, discount_percentage, shop_name,
	category, category_display, unit, valid_from, valid_until, week_number,
	year, is_food, image_url, created_at, updated_at`

type DiscountStore struct {
	db *sqlx.DB
}

func NewDiscountStore(db *sqlx.DB) *DiscountStore {
	return &DiscountStore{db: db}
}

func (s *DiscountStore) FindCheapestOverlapping(ctx context.Context, productName, shopName string, from, until time.Time) (*domain.Discount, error) {
	query := `SELECT ` + discountColumns + `
		FROM discounts
		WHERE product_name = $1
			AND valid_from <= $4::date
			AND valid_until >= $3::date
		ORDER BY price ASC, (shop_name = $2) DESC, id ASC
		LIMIT 1`

	var d domain.Discount
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &d, query,
		productName, shopName, dateParam(from), dateParam(until))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d.ValidFrom = domain.DateOf(d.ValidFrom)
	d.ValidUntil = domain.DateOf(d.ValidUntil)
	return &d, nil
}

// Insert adds a discount. On a natural key conflict the stored row is only
// lowered to a strictly cheaper price.
func (s *DiscountStore) Insert(ctx context.Context, d *domain.Discount) (domain.Outcome, error) {
	query := `
		INSERT INTO discounts (
			product_name, price, original_price, discount_percentage, shop_name,
			category, category_display, unit, valid_from, valid_until,
			week_number, year, is_food, image_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9::date, $10::date, $11, $12, $13, $14
		)
		ON CONFLICT (product_name, shop_name, valid_from, valid_until) DO UPDATE SET
			price = EXCLUDED.price,
			unit = EXCLUDED.unit,
			image_url = COALESCE(EXCLUDED.image_url, discounts.image_url),
			updated_at = NOW()
		WHERE discounts.price > EXCLUDED.price
		RETURNING (xmax = 0) AS inserted`

	var inserted bool
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		d.ProductName,
		d.Price,
		d.OriginalPrice,
		d.DiscountPercentage,
		d.ShopName,
		d.Category,
		d.CategoryDisplay,
		d.Unit,
		dateParam(d.ValidFrom),
		dateParam(d.ValidUntil),
		d.WeekNumber,
		d.Year,
		d.IsFood,
		d.ImageURL,
	).Scan(&inserted)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.OutcomeSkipped, nil
	case err != nil:
		return "", err
	case inserted:
		return domain.OutcomeAdded, nil
	default:
		return domain.OutcomeUpdated, nil
	}
}

// ReplaceOffer moves record id to the price, shop and unit of d, keeping its
// validity window.
func (s *DiscountStore) ReplaceOffer(ctx context.Context, id int64, d *domain.Discount) error {
	query := `
		UPDATE discounts SET
			price = $2,
			shop_name = $3,
			unit = $4,
			original_price = NULL,
			discount_percentage = NULL,
			updated_at = NOW()
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, d.Price, d.ShopName, d.Unit)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("discount %d not found", id)
	}
	return nil
}

func (s *DiscountStore) DeleteSuperseded(ctx context.Context, keepID int64, key domain.NaturalKey) (int64, error) {
	query := `
		DELETE FROM discounts
		WHERE product_name = $1
			AND shop_name = $2
			AND valid_from = $3::date
			AND valid_until = $4::date
			AND id <> $5`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		key.ProductName, key.ShopName, dateParam(key.ValidFrom), dateParam(key.ValidUntil), keepID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *DiscountStore) DeleteExpired(ctx context.Context, today time.Time) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`DELETE FROM discounts WHERE valid_until < $1::date`, dateParam(today))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *DiscountStore) CountActiveByCategory(ctx context.Context, today time.Time) (map[string]int, error) {
	return s.countActive(ctx, "category", today)
}

func (s *DiscountStore) CountActiveByShop(ctx context.Context, today time.Time) (map[string]int, error) {
	return s.countActive(ctx, "shop_name", today)
}

// column is one of the two constants above, never user input.
func (s *DiscountStore) countActive(ctx context.Context, column string, today time.Time) (map[string]int, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s AS key, COUNT(*) AS count
		FROM discounts
		WHERE valid_until >= $1::date
		GROUP BY %[1]s`, column)

	var rows []struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, dateParam(today)); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Count
	}
	return counts, nil
}

func dateParam(t time.Time) string {
	return t.Format(time.DateOnly)
}
