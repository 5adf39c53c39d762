package repositories

import (
	"context"

	"acme-ice-cream/flavors/internal/models/entities"
)

// FlavorStore is implemented by the sqlx and the GORM flavor repositories.
type FlavorStore interface {
	// Reset prepares the flavor table at startup. With reseed it drops the
	// table, recreates it and inserts the seed rows; otherwise it only
	// creates the table when missing.
	Reset(ctx context.Context, reseed bool) error

	// Create inserts one row and returns it as stored
	Create(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error)

	// List returns every row, most recently created first
	List(ctx context.Context) ([]entities.Flavor, error)

	// FindByID returns the rows matching id: zero or one
	FindByID(ctx context.Context, id string) ([]entities.Flavor, error)

	// Update overwrites name and is_favorite and refreshes updated_at.
	// It returns nil, nil when no row matches id.
	Update(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error)

	// Delete removes the row matching id and reports how many rows went away
	Delete(ctx context.Context, id string) (int64, error)

	Ping(ctx context.Context) error
}
