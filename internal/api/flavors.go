package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"acme-ice-cream/flavors/internal/models/dtos"
	"acme-ice-cream/flavors/internal/models/entities"
	"acme-ice-cream/flavors/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// CreateFlavorHandler handles POST /api/flavors
//
// @Summary Create a flavor
// @Tags Flavors
// @Accept json
// @Param body body dtos.FlavorRequest true "name and is_favorite, both optional"
// @Success 201 {object} entities.Flavor
// @Router /api/flavors [post]
func CreateFlavorHandler(svc FlavorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeFlavorInput(w, r, svc.Strict())
		if err != nil {
			handleError(w, r, err, svc.Strict())
			return
		}

		flavor, err := svc.CreateFlavor(r.Context(), in)
		if err != nil {
			handleError(w, r, err, svc.Strict())
			return
		}

		respondWithJSON(w, http.StatusCreated, flavor)
	}
}

// ListFlavorsHandler handles GET /api/flavors
//
// @Summary List every flavor, most recently created first
// @Tags Flavors
// @Success 200 {array} entities.Flavor
// @Router /api/flavors [get]
func ListFlavorsHandler(svc FlavorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flavors, err := svc.ListFlavors(r.Context())
		if err != nil {
			handleError(w, r, err, svc.Strict())
			return
		}

		respondWithJSON(w, http.StatusOK, flavors)
	}
}

// GetFlavorHandler handles GET /api/flavors/{id}
//
// Responds with an array of zero or one rows and never 404s; existing
// clients depend on that shape.
//
// @Summary Get a flavor by id
// @Tags Flavors
// @Param id path string true "Flavor id"
// @Success 200 {array} entities.Flavor
// @Router /api/flavors/{id} [get]
func GetFlavorHandler(svc FlavorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flavors, err := svc.GetFlavor(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, err, svc.Strict())
			return
		}

		respondWithJSON(w, http.StatusOK, flavors)
	}
}

// UpdateFlavorHandler handles PUT /api/flavors/{id}
//
// Full overwrite: omitted fields become NULL / false.
//
// @Summary Replace a flavor
// @Tags Flavors
// @Accept json
// @Param id path string true "Flavor id"
// @Param body body dtos.FlavorRequest true "name and is_favorite"
// @Success 200 {object} entities.Flavor
// @Failure 404 {object} responses.ErrorResponse "strict mode only"
// @Router /api/flavors/{id} [put]
func UpdateFlavorHandler(svc FlavorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeFlavorInput(w, r, svc.Strict())
		if err != nil {
			handleError(w, r, err, svc.Strict())
			return
		}

		flavor, err := svc.UpdateFlavor(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			handleError(w, r, err, svc.Strict())
			return
		}
		if flavor == nil {
			// permissive miss: 200 with no body
			w.WriteHeader(http.StatusOK)
			return
		}

		respondWithJSON(w, http.StatusOK, flavor)
	}
}

// DeleteFlavorHandler handles DELETE /api/flavors/{id}
//
// @Summary Delete a flavor
// @Tags Flavors
// @Param id path string true "Flavor id"
// @Success 204
// @Router /api/flavors/{id} [delete]
func DeleteFlavorHandler(svc FlavorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteFlavor(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleError(w, r, err, svc.Strict())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

var errInvalidBody = errors.New("request body is not a JSON object")

// decodeFlavorInput reads the body of POST and PUT. A missing or blank body
// counts as {}. Permissive mode takes an object or an array (which has no
// fields) and passes every value through as text; strict mode requires an
// object with a string name and a boolean is_favorite.
func decodeFlavorInput(w http.ResponseWriter, r *http.Request, strict bool) (entities.FlavorInput, error) {
	if r.Body == nil {
		return entities.FlavorInput{}, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return entities.FlavorInput{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return entities.FlavorInput{}, nil
	}
	if !json.Valid(body) {
		return entities.FlavorInput{}, errInvalidBody
	}

	switch {
	case body[0] == '[' && !strict:
		return entities.FlavorInput{}, nil
	case body[0] != '{':
		return entities.FlavorInput{}, errInvalidBody
	}

	if !strict {
		var req dtos.RawFlavorRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return entities.FlavorInput{}, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		return req.ToInput(), nil
	}

	var req dtos.FlavorRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return entities.FlavorInput{}, &services.ValidationError{
				Field:   typeErr.Field,
				Message: "must be a " + fieldType(typeErr.Field),
			}
		}
		return entities.FlavorInput{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return req.ToInput(), nil
}

func fieldType(field string) string {
	if field == "is_favorite" {
		return "boolean or null"
	}
	return "string or null"
}
