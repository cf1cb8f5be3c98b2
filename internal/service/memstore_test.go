package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"discount_etl/internal/domain"
)

// memStore is an in-memory DiscountStore and RunLogStore with the same
// conflict semantics as the postgres store.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Discount
	logs   []domain.RunLog

	insertErr error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[int64]*domain.Discount)}
}

func (m *memStore) FindCheapestOverlapping(_ context.Context, productName, shopName string, from, until time.Time) (*domain.Discount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var candidates []*domain.Discount
	for _, r := range m.rows {
		if r.ProductName == productName && !r.ValidFrom.After(until) && !r.ValidUntil.Before(from) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if c := a.Price.Cmp(b.Price); c != 0 {
			return c < 0
		}
		if (a.ShopName == shopName) != (b.ShopName == shopName) {
			return a.ShopName == shopName
		}
		return a.ID < b.ID
	})

	found := *candidates[0]
	return &found, nil
}

func (m *memStore) Insert(_ context.Context, d *domain.Discount) (domain.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return "", m.insertErr
	}

	for _, r := range m.rows {
		if r.Key() == d.Key() {
			if d.Price.LessThan(r.Price) {
				r.Price = d.Price
				r.Unit = d.Unit
				r.UpdatedAt = time.Now()
				return domain.OutcomeUpdated, nil
			}
			return domain.OutcomeSkipped, nil
		}
	}

	m.nextID++
	row := *d
	row.ID = m.nextID
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	m.rows[row.ID] = &row
	return domain.OutcomeAdded, nil
}

func (m *memStore) ReplaceOffer(_ context.Context, id int64, d *domain.Discount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[id]
	if !ok {
		return errors.New("discount not found")
	}
	r.Price = d.Price
	r.ShopName = d.ShopName
	r.Unit = d.Unit
	r.UpdatedAt = time.Now()
	return nil
}

func (m *memStore) DeleteSuperseded(_ context.Context, keepID int64, key domain.NaturalKey) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, r := range m.rows {
		if id != keepID && r.Key() == key {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteExpired(_ context.Context, today time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, r := range m.rows {
		if r.ValidUntil.Before(today) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountActiveByCategory(_ context.Context, today time.Time) (map[string]int, error) {
	return m.countActive(today, func(d *domain.Discount) string { return d.Category }), nil
}

func (m *memStore) CountActiveByShop(_ context.Context, today time.Time) (map[string]int, error) {
	return m.countActive(today, func(d *domain.Discount) string { return d.ShopName }), nil
}

func (m *memStore) countActive(today time.Time, key func(*domain.Discount) string) map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int)
	for _, r := range m.rows {
		if !r.ValidUntil.Before(today) {
			counts[key(r)]++
		}
	}
	return counts
}

func (m *memStore) all() []domain.Discount {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Discount, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// memRunLogs implements RunLogStore.
type memRunLogs struct {
	mu   sync.Mutex
	rows []domain.RunLog
}

func (m *memRunLogs) Insert(_ context.Context, log *domain.RunLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := *log
	row.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, row)
	return nil
}

func (m *memRunLogs) LastSuccessful(_ context.Context) (*domain.RunLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].Status == domain.StatusSuccess {
			row := m.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (m *memRunLogs) Recent(_ context.Context, limit int) ([]domain.RunLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.RunLog
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

func (m *memRunLogs) snapshot() []domain.RunLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RunLog(nil), m.rows...)
}

// lockingTx runs fn without a transaction while holding a per-key mutex,
// matching the serialization of the postgres advisory lock.
type lockingTx struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockingTx() *lockingTx {
	return &lockingTx{locks: make(map[string]*sync.Mutex)}
}

func (t *lockingTx) WithLockedTransaction(ctx context.Context, lockKey string, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	l, ok := t.locks[lockKey]
	if !ok {
		l = &sync.Mutex{}
		t.locks[lockKey] = l
	}
	t.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(ctx)
}
