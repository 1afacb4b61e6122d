package entity

import "time"

// Estados operativos de un vehículo.
const (
	VehicleStatusOperational  = "OPERATIONAL"
	VehicleStatusMaintenance  = "MAINTENANCE"
	VehicleStatusOutOfService = "OUT_OF_SERVICE"
)

// ServiceIntervalKm kilómetros hasta el próximo service al registrar uno.
const ServiceIntervalKm = 10000.0

// Vehicle es un vehículo de la flota.
type Vehicle struct {
	ID              string
	Name            string
	Plate           string // patente, única
	Type            string // TRUCK, UTE, VAN, CAR
	Status          string
	LastServiceDate *time.Time
	NextServiceKm   *float64
	CurrentKm       float64
}

// RegisterService marca el service realizado hoy y programa el siguiente.
func (v *Vehicle) RegisterService(at time.Time) {
	next := v.CurrentKm + ServiceIntervalKm
	v.LastServiceDate = &at
	v.NextServiceKm = &next
	v.Status = VehicleStatusOperational
}

// ValidVehicleStatus indica si s es un estado conocido.
func ValidVehicleStatus(s string) bool {
	switch s {
	case VehicleStatusOperational, VehicleStatusMaintenance, VehicleStatusOutOfService:
		return true
	}
	return false
}
