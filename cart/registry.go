package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"precojusto-backend/catalog"
	"precojusto-backend/models"
)

// DefaultTTL is how long an untouched list is kept.
const DefaultTTL = 24 * time.Hour

type list struct {
	items     Items
	updatedAt time.Time
}

// Registry holds shopping lists in memory, keyed by id.
type Registry struct {
	lists map[string]*list
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		lists: make(map[string]*list),
		ttl:   ttl,
		now:   time.Now,
	}
}

// CleanupExpired removes lists untouched for longer than the TTL.
func (r *Registry) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, l := range r.lists {
		if l.updatedAt.Before(cutoff) {
			delete(r.lists, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Create() models.ShoppingList {
	r.CleanupExpired()

	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	l := &list{items: Items{}, updatedAt: r.now()}
	r.lists[id] = l
	return snapshot(id, l)
}

func (r *Registry) Get(id string) (models.ShoppingList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lists[id]
	if !ok {
		return models.ShoppingList{}, &catalog.NotFoundError{Kind: "shopping list", ID: id}
	}
	return snapshot(id, l), nil
}

// Update applies fn to the list's items and stores the result.
func (r *Registry) Update(id string, fn func(Items) (Items, error)) (models.ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[id]
	if !ok {
		return models.ShoppingList{}, &catalog.NotFoundError{Kind: "shopping list", ID: id}
	}
	next, err := fn(l.items)
	if err != nil {
		return models.ShoppingList{}, err
	}
	l.items = next
	l.updatedAt = r.now()
	return snapshot(id, l), nil
}

func (r *Registry) AddItem(id string, p models.Product) (models.ShoppingList, error) {
	return r.Update(id, func(items Items) (Items, error) {
		return items.Add(p), nil
	})
}

func (r *Registry) SetQuantity(id, productID string, delta int) (models.ShoppingList, error) {
	return r.Update(id, func(items Items) (Items, error) {
		return items.SetQuantity(productID, delta)
	})
}

func (r *Registry) RemoveItem(id, productID string) (models.ShoppingList, error) {
	return r.Update(id, func(items Items) (Items, error) {
		return items.Remove(productID), nil
	})
}

// DropProduct removes productID from every list, after the product leaves
// the catalog.
func (r *Registry) DropProduct(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.lists {
		l.items = l.items.Remove(productID)
	}
}

func snapshot(id string, l *list) models.ShoppingList {
	items := make([]models.ShoppingListItem, len(l.items))
	copy(items, l.items)
	return models.ShoppingList{ID: id, Items: items, UpdatedAt: models.Millis(l.updatedAt)}
}
