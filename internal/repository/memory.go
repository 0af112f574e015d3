package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/drinks/internal/model"
)

// MemoryDrinkRepository keeps drinks in a map. It is safe for concurrent use.
type MemoryDrinkRepository struct {
	mu     sync.RWMutex
	drinks map[int64]model.Drink
	nextID int64
	now    func() time.Time
}

func NewMemoryDrinkRepository() *MemoryDrinkRepository {
	return &MemoryDrinkRepository{
		drinks: make(map[int64]model.Drink),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryDrinkRepository) FindAll(_ context.Context, filter model.DrinkFilter) ([]model.Drink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Drink, 0, len(r.drinks))
	for _, d := range r.drinks {
		if filter.Matches(d.Name) {
			result = append(result, d)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *MemoryDrinkRepository) FindByID(_ context.Context, id int64) (*model.Drink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drinks[id]
	if !ok {
		return nil, fmt.Errorf("drink %d: %w", id, ErrNotFound)
	}
	return &d, nil
}

func (r *MemoryDrinkRepository) Create(_ context.Context, drink *model.Drink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	drink.ID = r.nextID
	drink.CreatedAt = now
	drink.UpdatedAt = now
	r.nextID++

	r.drinks[drink.ID] = *drink
	return nil
}

func (r *MemoryDrinkRepository) Update(_ context.Context, drink *model.Drink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.drinks[drink.ID]
	if !ok {
		return fmt.Errorf("drink %d: %w", drink.ID, ErrNotFound)
	}

	drink.CreatedAt = existing.CreatedAt
	drink.UpdatedAt = r.now()
	r.drinks[drink.ID] = *drink
	return nil
}

func (r *MemoryDrinkRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drinks[id]; !ok {
		return fmt.Errorf("drink %d: %w", id, ErrNotFound)
	}
	delete(r.drinks, id)
	return nil
}

func (r *MemoryDrinkRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.drinks)), nil
}
