package entities

import "time"

// ServiceStatus is the state of one backing service.
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// HealthCheckResponse is the body of GET /healthCheck.
type HealthCheckResponse struct {
	Status     string                   `json:"status"`
	DBClient   string                   `json:"db_client,omitempty"`
	StrictMode bool                     `json:"strict_mode"`
	Services   map[string]ServiceStatus `json:"services"`
	UpSince    time.Time                `json:"up_since"`
	Uptime     string                   `json:"uptime"`
}
