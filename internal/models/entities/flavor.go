package entities

import "time"

// Flavor is one row of the flavor table.
type Flavor struct {
	ID         int64     `db:"id" json:"id"`
	Name       *string   `db:"name" json:"name"`
	IsFavorite bool      `db:"is_favorite" json:"is_favorite"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FlavorInput carries the writable columns in their text form; the
// database coerces them to the column types or rejects them. nil fields
// are written as NULL for name and FALSE for is_favorite.
type FlavorInput struct {
	Name       *string
	IsFavorite *string
}
