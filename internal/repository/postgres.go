package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/drinks/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const drinkColumns = "id, name, description, created_at, updated_at"

// PostgresDrinkRepository stores drinks in the drinks table.
type PostgresDrinkRepository struct {
	db Querier
}

func NewPostgresDrinkRepository(db Querier) *PostgresDrinkRepository {
	return &PostgresDrinkRepository{db: db}
}

func (r *PostgresDrinkRepository) FindAll(ctx context.Context, filter model.DrinkFilter) ([]model.Drink, error) {
	query := "SELECT " + drinkColumns + " FROM drinks"
	var args []any

	if filter.Prefix != "" {
		op := "LIKE"
		if filter.CaseInsensitive {
			op = "ILIKE"
		}
		query += " WHERE name " + op + ` $1 ESCAPE '\'`
		args = append(args, escapeLike(filter.Prefix)+"%")
	}
	query += ` ORDER BY name COLLATE "C", id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query drinks: %w", err)
	}

	drinks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Drink])
	if err != nil {
		return nil, fmt.Errorf("failed to collect drinks: %w", err)
	}

	return drinks, nil
}

func (r *PostgresDrinkRepository) FindByID(ctx context.Context, id int64) (*model.Drink, error) {
	rows, err := r.db.Query(ctx, "SELECT "+drinkColumns+" FROM drinks WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query drink %d: %w", id, err)
	}

	drink, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Drink])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("drink %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to collect drink %d: %w", id, err)
	}

	return &drink, nil
}

func (r *PostgresDrinkRepository) Create(ctx context.Context, drink *model.Drink) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO drinks (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		drink.Name, drink.Description,
	).Scan(&drink.ID, &drink.CreatedAt, &drink.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert drink: %w", err)
	}
	return nil
}

func (r *PostgresDrinkRepository) Update(ctx context.Context, drink *model.Drink) error {
	err := r.db.QueryRow(ctx,
		`UPDATE drinks
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		drink.ID, drink.Name, drink.Description,
	).Scan(&drink.CreatedAt, &drink.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("drink %d: %w", drink.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update drink %d: %w", drink.ID, err)
	}
	return nil
}

func (r *PostgresDrinkRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM drinks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete drink %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("drink %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *PostgresDrinkRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM drinks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count drinks: %w", err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
