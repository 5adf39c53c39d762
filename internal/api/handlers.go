package api

import (
	"context"
	"net/http"

	"acme-ice-cream/flavors/internal/models/entities"
)

// FlavorService is what the flavor handlers need from the service layer.
type FlavorService interface {
	CreateFlavor(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error)
	ListFlavors(ctx context.Context) ([]entities.Flavor, error)
	GetFlavor(ctx context.Context, id string) ([]entities.Flavor, error)
	UpdateFlavor(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error)
	DeleteFlavor(ctx context.Context, id string) error
	Strict() bool
}

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

func (h *Handlers) CreateFlavor() http.HandlerFunc {
	return CreateFlavorHandler(h.deps.Services.Flavors)
}

func (h *Handlers) ListFlavors() http.HandlerFunc {
	return ListFlavorsHandler(h.deps.Services.Flavors)
}

func (h *Handlers) GetFlavor() http.HandlerFunc {
	return GetFlavorHandler(h.deps.Services.Flavors)
}

func (h *Handlers) UpdateFlavor() http.HandlerFunc {
	return UpdateFlavorHandler(h.deps.Services.Flavors)
}

func (h *Handlers) DeleteFlavor() http.HandlerFunc {
	return DeleteFlavorHandler(h.deps.Services.Flavors)
}

func (h *Handlers) HealthCheck() http.HandlerFunc {
	info := HealthInfo{UpSince: h.deps.UpSince}
	if h.deps.Config != nil {
		info.DBClient = string(h.deps.Config.DBClient)
		info.StrictMode = h.deps.Config.StrictMode
	}
	return HealthCheckHandler(h.deps.Repo.Flavors, info)
}
