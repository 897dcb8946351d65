package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"precojusto-backend/models"
)

// PriceEvent describes one price record transition produced by a mutation.
// Before is nil for created records and After is nil for removed ones.
type PriceEvent struct {
	Reason string
	Before *models.PriceRecord
	After  *models.PriceRecord
	At     time.Time
}

// PriceObserver is notified after a mutation commits, outside the store lock.
type PriceObserver func(PriceEvent)

// Store serializes catalog mutations over an immutable State value.
type Store struct {
	mu       sync.RWMutex
	state    State
	observer PriceObserver

	newID func(prefix string) string
	now   func() time.Time
}

func NewStore(seed State) *Store {
	return &Store{
		state: seed.clone(),
		newID: func(prefix string) string { return prefix + "-" + uuid.NewString() },
		now:   time.Now,
	}
}

// OnPriceChange registers fn as the single price observer.
func (st *Store) OnPriceChange(fn PriceObserver) {
	st.mu.Lock()
	st.observer = fn
	st.mu.Unlock()
}

// Snapshot returns a copy of the current state that callers may keep.
func (st *Store) Snapshot() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.clone()
}

func (st *Store) apply(update func(State, Stamp) (State, error)) error {
	st.mu.Lock()
	at := st.now()
	before := st.state
	after, err := update(before, Stamp{NewID: st.newID, At: at})
	if err != nil {
		st.mu.Unlock()
		return err
	}
	st.state = after
	observer := st.observer
	st.mu.Unlock()

	if observer != nil {
		for _, ev := range diffPrices(before, after, at) {
			observer(ev)
		}
	}
	return nil
}

func (st *Store) AddProduct(in NewProduct) (models.Product, error) {
	var out models.Product
	err := st.apply(func(s State, stamp Stamp) (State, error) {
		next, p, err := s.AddProduct(in, stamp)
		out = p
		return next, err
	})
	return out, err
}

func (st *Store) UpdateProduct(p models.Product) (models.Product, error) {
	var out models.Product
	err := st.apply(func(s State, _ Stamp) (State, error) {
		next, updated, err := s.UpdateProduct(p)
		out = updated
		return next, err
	})
	return out, err
}

func (st *Store) DeleteProduct(id string) error {
	return st.apply(func(s State, _ Stamp) (State, error) {
		return s.DeleteProduct(id)
	})
}

func (st *Store) SetProductImage(id, imageURL string) (models.Product, error) {
	var out models.Product
	err := st.apply(func(s State, _ Stamp) (State, error) {
		next, p, err := s.SetProductImage(id, imageURL)
		out = p
		return next, err
	})
	return out, err
}

func (st *Store) AddBranch(b models.Branch) (models.Branch, error) {
	var out models.Branch
	err := st.apply(func(s State, stamp Stamp) (State, error) {
		next, created, err := s.AddBranch(b, stamp)
		out = created
		return next, err
	})
	return out, err
}

func (st *Store) UpdateBranch(b models.Branch) (models.Branch, error) {
	var out models.Branch
	err := st.apply(func(s State, _ Stamp) (State, error) {
		next, updated, err := s.UpdateBranch(b)
		out = updated
		return next, err
	})
	return out, err
}

func (st *Store) SetPrice(in PriceUpdate) (models.PriceRecord, error) {
	var out models.PriceRecord
	err := st.apply(func(s State, stamp Stamp) (State, error) {
		next, rec, err := s.SetPrice(in, stamp)
		out = rec
		return next, err
	})
	return out, err
}

func (st *Store) AdjustStock(productID, branchID string, delta int) (models.PriceRecord, error) {
	var out models.PriceRecord
	err := st.apply(func(s State, stamp Stamp) (State, error) {
		next, rec, err := s.AdjustStock(productID, branchID, delta, stamp)
		out = rec
		return next, err
	})
	return out, err
}

// diffPrices pairs records by id across two states.
func diffPrices(before, after State, at time.Time) []PriceEvent {
	old := make(map[string]models.PriceRecord, len(before.Prices))
	for _, rec := range before.Prices {
		old[rec.ID] = rec
	}

	var events []PriceEvent
	for _, rec := range after.Prices {
		cur := rec
		prev, ok := old[rec.ID]
		delete(old, rec.ID)
		switch {
		case !ok:
			events = append(events, PriceEvent{Reason: models.PriceChangeCreated, After: &cur, At: at})
		case prev.Price != cur.Price || !sameOriginal(prev.OriginalPrice, cur.OriginalPrice):
			p := prev
			events = append(events, PriceEvent{Reason: models.PriceChangePrice, Before: &p, After: &cur, At: at})
		case prev.Stock != cur.Stock:
			p := prev
			events = append(events, PriceEvent{Reason: models.PriceChangeStock, Before: &p, After: &cur, At: at})
		}
	}
	for _, rec := range before.Prices {
		if _, gone := old[rec.ID]; gone {
			p := rec
			events = append(events, PriceEvent{Reason: models.PriceChangeRemoved, Before: &p, At: at})
		}
	}
	return events
}

func sameOriginal(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
