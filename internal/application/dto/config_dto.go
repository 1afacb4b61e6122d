package dto

import "time"

// ConfigRequest body para PUT /api/config.
type ConfigRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ConfigResponse valor de configuración.
type ConfigResponse struct {
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
