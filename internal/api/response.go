package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"acme-ice-cream/flavors/internal/constants"
	reqctx "acme-ice-cream/flavors/internal/context"
	"acme-ice-cream/flavors/internal/db"
	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/models/dtos/responses"
	"acme-ice-cream/flavors/internal/services"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}

func respondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	respondWithJSON(w, statusCode, responses.NewErrorResponse(message, reqctx.GetRequestID(r.Context())))
}

// handleError is the single error path for the flavor routes. A body that
// is not JSON is a 400 in both modes. Otherwise permissive mode sends every
// failure to 500; strict mode separates bad input (400) and update misses
// (404) from backend failures. 5xx bodies never carry driver text.
func handleError(w http.ResponseWriter, r *http.Request, err error, strict bool) {
	status := http.StatusInternalServerError
	message := constants.MsgInternalError

	var vErr *services.ValidationError
	dbErr, isDBErr := db.AsDatabaseError(err)
	switch {
	case errors.Is(err, errInvalidBody):
		status, message = http.StatusBadRequest, constants.MsgInvalidJSON
	case errors.As(err, &vErr):
		status, message = http.StatusBadRequest, vErr.Error()
	case errors.Is(err, services.ErrFlavorNotFound):
		status, message = http.StatusNotFound, constants.MsgFlavorNotFound
	case isDBErr && strict && dbErr.IsClientError():
		status, message = http.StatusBadRequest, dbErr.Error()
	case isDBErr:
		message = constants.MsgDatabaseError
	}

	log := logging.WithRequest(reqctx.GetRequestID(r.Context()), r.Method+" "+r.URL.Path)
	if status >= 500 {
		log.Errorw("Request failed", "status_code", status, "error", err.Error())
	} else {
		log.Warnw("Request rejected", "status_code", status, "error", err.Error())
	}

	respondWithError(w, r, status, message)
}
