package repositories

import (
	"context"

	"acme-ice-cream/flavors/internal/constants"
	"acme-ice-cream/flavors/internal/db"
	"acme-ice-cream/flavors/internal/models/entities"
)

// FlavorRepository runs the flavor statements as raw SQL through the gateway.
type FlavorRepository struct {
	gw *db.Gateway
}

var _ FlavorStore = (*FlavorRepository)(nil)

func NewFlavorRepository(gw *db.Gateway) *FlavorRepository {
	return &FlavorRepository{gw: gw}
}

func (r *FlavorRepository) Reset(ctx context.Context, reseed bool) error {
	if !reseed {
		_, err := r.gw.Exec(ctx, constants.QueryResetFlavors, constants.CreateFlavorTableIfMissing)
		return err
	}

	if _, err := r.gw.Exec(ctx, constants.QueryResetFlavors, constants.DropFlavorTable); err != nil {
		return err
	}
	if _, err := r.gw.Exec(ctx, constants.QueryResetFlavors, constants.CreateFlavorTable); err != nil {
		return err
	}
	for _, seed := range constants.SeedFlavors {
		if _, err := r.gw.Exec(ctx, constants.QueryResetFlavors, seed); err != nil {
			return err
		}
	}
	return nil
}

func (r *FlavorRepository) Create(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error) {
	var flavor entities.Flavor
	if _, err := r.gw.Get(ctx, constants.QueryInsertFlavor, &flavor, constants.InsertFlavor, in.Name, in.IsFavorite); err != nil {
		return nil, err
	}
	return &flavor, nil
}

func (r *FlavorRepository) List(ctx context.Context) ([]entities.Flavor, error) {
	flavors := make([]entities.Flavor, 0)
	if err := r.gw.Select(ctx, constants.QueryListFlavors, &flavors, constants.ListFlavors); err != nil {
		return nil, err
	}
	return flavors, nil
}

func (r *FlavorRepository) FindByID(ctx context.Context, id string) ([]entities.Flavor, error) {
	flavors := make([]entities.Flavor, 0, 1)
	if err := r.gw.Select(ctx, constants.QueryGetFlavor, &flavors, constants.GetFlavorByID, id); err != nil {
		return nil, err
	}
	return flavors, nil
}

func (r *FlavorRepository) Update(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error) {
	var flavor entities.Flavor
	found, err := r.gw.Get(ctx, constants.QueryUpdateFlavor, &flavor, constants.UpdateFlavor, in.Name, in.IsFavorite, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &flavor, nil
}

func (r *FlavorRepository) Delete(ctx context.Context, id string) (int64, error) {
	return r.gw.Exec(ctx, constants.QueryDeleteFlavor, constants.DeleteFlavor, id)
}

func (r *FlavorRepository) Ping(ctx context.Context) error {
	return r.gw.Ping(ctx)
}
