package repositories

import (
	"context"
	"time"

	"acme-ice-cream/flavors/internal/constants"
	"acme-ice-cream/flavors/internal/db"
	"acme-ice-cream/flavors/internal/models/entities"
	gormModels "acme-ice-cream/flavors/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FlavorRepositoryGORM implements FlavorStore with GORM. It works against
// Postgres and SQLite alike.
type FlavorRepositoryGORM struct {
	db           *gormlib.DB
	queryTimeout time.Duration
}

var _ FlavorStore = (*FlavorRepositoryGORM)(nil)

func NewFlavorRepositoryGORM(gdb *gormlib.DB, queryTimeout time.Duration) *FlavorRepositoryGORM {
	return &FlavorRepositoryGORM{db: gdb, queryTimeout: queryTimeout}
}

// seedFlavors mirrors constants.SeedFlavors for SQLite; Vanilla keeps the
// column default.
var seedFlavors = []gormModels.Flavor{
	{Name: strPtr("Chocolate"), IsFavorite: false},
	{Name: strPtr("Raspberry Cheesecake"), IsFavorite: true},
	{Name: strPtr("Vanilla")},
}

// Reset runs the same DDL and seed statements as the sqlx repository on
// Postgres so both clients share one table layout. SQLite, which has no
// SERIAL, gets the table from the GORM model.
func (r *FlavorRepositoryGORM) Reset(ctx context.Context, reseed bool) error {
	ctx, cancel := db.WithQueryTimeout(ctx, r.queryTimeout)
	defer cancel()

	tx := r.db.WithContext(ctx)
	if tx.Dialector.Name() == "postgres" {
		return db.Wrap(constants.QueryResetFlavors, r.resetPostgres(tx, reseed))
	}

	if !reseed {
		return db.Wrap(constants.QueryResetFlavors, tx.AutoMigrate(&gormModels.Flavor{}))
	}
	if err := tx.Migrator().DropTable(&gormModels.Flavor{}); err != nil {
		return db.Wrap(constants.QueryResetFlavors, err)
	}
	if err := tx.AutoMigrate(&gormModels.Flavor{}); err != nil {
		return db.Wrap(constants.QueryResetFlavors, err)
	}
	for _, seed := range seedFlavors {
		row := seed
		if err := tx.Create(&row).Error; err != nil {
			return db.Wrap(constants.QueryResetFlavors, err)
		}
	}
	return nil
}

func (r *FlavorRepositoryGORM) resetPostgres(tx *gormlib.DB, reseed bool) error {
	if !reseed {
		return tx.Exec(constants.CreateFlavorTableIfMissing).Error
	}
	statements := append([]string{constants.DropFlavorTable, constants.CreateFlavorTable}, constants.SeedFlavors...)
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *FlavorRepositoryGORM) Create(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error) {
	ctx, cancel := db.WithQueryTimeout(ctx, r.queryTimeout)
	defer cancel()

	fav, err := db.ParseBool(constants.QueryInsertFlavor, in.IsFavorite)
	if err != nil {
		return nil, err
	}
	row := gormModels.Flavor{
		Name:       in.Name,
		IsFavorite: fav,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, db.Wrap(constants.QueryInsertFlavor, err)
	}
	flavor := row.ToEntity()
	return &flavor, nil
}

func (r *FlavorRepositoryGORM) List(ctx context.Context) ([]entities.Flavor, error) {
	ctx, cancel := db.WithQueryTimeout(ctx, r.queryTimeout)
	defer cancel()

	var rows []gormModels.Flavor
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, db.Wrap(constants.QueryListFlavors, err)
	}
	return toEntities(rows), nil
}

func (r *FlavorRepositoryGORM) FindByID(ctx context.Context, id string) ([]entities.Flavor, error) {
	ctx, cancel := db.WithQueryTimeout(ctx, r.queryTimeout)
	defer cancel()

	var rows []gormModels.Flavor
	if err := r.db.WithContext(ctx).Where("id = ?", id).Find(&rows).Error; err != nil {
		return nil, db.Wrap(constants.QueryGetFlavor, err)
	}
	return toEntities(rows), nil
}

func (r *FlavorRepositoryGORM) Update(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error) {
	ctx, cancel := db.WithQueryTimeout(ctx, r.queryTimeout)
	defer cancel()

	fav, err := db.ParseBool(constants.QueryUpdateFlavor, in.IsFavorite)
	if err != nil {
		return nil, err
	}

	var row gormModels.Flavor
	res := r.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        in.Name,
			"is_favorite": fav,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return nil, db.Wrap(constants.QueryUpdateFlavor, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	flavor := row.ToEntity()
	return &flavor, nil
}

func (r *FlavorRepositoryGORM) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := db.WithQueryTimeout(ctx, r.queryTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&gormModels.Flavor{})
	if res.Error != nil {
		return 0, db.Wrap(constants.QueryDeleteFlavor, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *FlavorRepositoryGORM) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func toEntities(rows []gormModels.Flavor) []entities.Flavor {
	out := make([]entities.Flavor, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToEntity())
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
