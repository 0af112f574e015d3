// Package repository persists drinks.
//
// DrinkRepository is implemented twice: on PostgreSQL through pgx for
// real deployments, and in memory for local runs and tests.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/drinks/internal/model"
)

// ErrNotFound is returned when no drink has the requested id.
var ErrNotFound = errors.New("drink not found")

// DrinkRepository stores and retrieves drinks.
//
// Create fills in ID and timestamps on the given drink. Update and Delete
// return ErrNotFound when the id does not exist.
type DrinkRepository interface {
	FindAll(ctx context.Context, filter model.DrinkFilter) ([]model.Drink, error)
	FindByID(ctx context.Context, id int64) (*model.Drink, error)
	Create(ctx context.Context, drink *model.Drink) error
	Update(ctx context.Context, drink *model.Drink) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
