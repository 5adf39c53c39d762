package api

import (
	"context"
	"net/http"
	"time"

	"acme-ice-cream/flavors/internal/models/entities"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthInfo is the static part of the health report.
type HealthInfo struct {
	UpSince    time.Time
	DBClient   string
	StrictMode bool
}

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the server is running and the database answers.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Failure 503 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(db Pinger, info HealthInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]entities.ServiceStatus)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		dbDetails := "Database Connected"
		if err := db.Ping(ctx); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		}
		services["database"] = entities.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}

		respondWithJSON(w, code, entities.HealthCheckResponse{
			Status:     overallStatus,
			DBClient:   info.DBClient,
			StrictMode: info.StrictMode,
			Services:   services,
			UpSince:    info.UpSince.UTC(),
			Uptime:     time.Since(info.UpSince).Round(time.Second).String(),
		})
	}
}
