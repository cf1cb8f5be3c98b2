package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"discount_etl/internal/domain"
)

// gatedStore holds each overlap lookup until `callers` lookups have arrived
// or wait has passed. Apply calls that are not serialized would all read
// before any of them writes.
type gatedStore struct {
	*memStore
	callers int32
	wait    time.Duration

	arrived atomic.Int32
	all     chan struct{}
}

func newGatedStore(store *memStore, callers int32) *gatedStore {
	return &gatedStore{memStore: store, callers: callers, wait: 200 * time.Millisecond, all: make(chan struct{})}
}

func (g *gatedStore) FindCheapestOverlapping(ctx context.Context, productName, shopName string, from, until time.Time) (*domain.Discount, error) {
	if g.arrived.Add(1) == g.callers {
		close(g.all)
	}
	select {
	case <-g.all:
	case <-time.After(g.wait):
	}
	return g.memStore.FindCheapestOverlapping(ctx, productName, shopName, from, until)
}

func (s *CoordinatorTestSuite) applyConcurrently(u *Upserter, offers ...domain.Offer) []domain.Outcome {
	class := domain.Classification{Category: "mlecne-vyrobky-a-vejce", IsFood: true}
	outcomes := make([]domain.Outcome, len(offers))

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, o := range offers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			outcome, err := u.Apply(context.Background(), o, class)
			s.NoError(err)
			outcomes[i] = outcome
		}()
	}
	close(start)
	wg.Wait()
	return outcomes
}

func (s *CoordinatorTestSuite) TestPolicyA_ConcurrentInsertsKeepCheapest() {
	gated := newGatedStore(s.store, 2)
	u := NewUpserter(gated, newLockingTx(), s.metrics, s.logger, s.clock)

	outcomes := s.applyConcurrently(u, s.offer("lidl", "30"), s.offer("albert", "25"))

	rows := s.store.all()
	s.Require().Len(rows, 1)
	s.Equal("albert", rows[0].ShopName)
	s.Equal("25", rows[0].Price.String())
	s.Contains(outcomes, domain.OutcomeAdded)
}

func (s *CoordinatorTestSuite) TestPolicyA_ConcurrentReplacesKeepCheapest() {
	_, err := s.store.Insert(context.Background(), newDiscount(s.offer("lidl", "30"), domain.Classification{}))
	s.Require().NoError(err)

	gated := newGatedStore(s.store, 2)
	u := NewUpserter(gated, newLockingTx(), s.metrics, s.logger, s.clock)

	outcomes := s.applyConcurrently(u, s.offer("albert", "25"), s.offer("penny", "20"))

	rows := s.store.all()
	s.Require().Len(rows, 1)
	s.Equal("penny", rows[0].ShopName)
	s.Equal("20", rows[0].Price.String())
	s.Contains(outcomes, domain.OutcomeUpdated)
}
