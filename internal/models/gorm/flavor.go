package gorm

import (
	"time"

	"acme-ice-cream/flavors/internal/models/entities"
)

// Flavor maps the flavor table for the GORM repository
type Flavor struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name       *string   `gorm:"column:name;type:varchar(255)"`
	IsFavorite bool      `gorm:"column:is_favorite;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Flavor) TableName() string {
	return "flavor"
}

func (f Flavor) ToEntity() entities.Flavor {
	return entities.Flavor{
		ID:         f.ID,
		Name:       f.Name,
		IsFavorite: f.IsFavorite,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
