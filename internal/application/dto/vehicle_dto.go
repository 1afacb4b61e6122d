package dto

import "time"

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	Name      string  `json:"name"`
	Plate     string  `json:"plate"`
	Type      string  `json:"type"`
	CurrentKm float64 `json:"current_km"`
}

// UpdateVehicleRequest body para PUT /api/vehicles/:id (campos opcionales).
type UpdateVehicleRequest struct {
	Name      *string  `json:"name,omitempty"`
	Plate     *string  `json:"plate,omitempty"`
	Type      *string  `json:"type,omitempty"`
	Status    *string  `json:"status,omitempty"`
	CurrentKm *float64 `json:"current_km,omitempty"`
}

// VehicleResponse vehículo de la flota.
type VehicleResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Plate           string     `json:"plate"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	LastServiceDate *time.Time `json:"last_service_date,omitempty"`
	NextServiceKm   *float64   `json:"next_service_km,omitempty"`
	CurrentKm       float64    `json:"current_km"`
}
