package repository

import (
	"context"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// ConfigRepository define el puerto de la configuración clave/valor.
type ConfigRepository interface {
	// Get devuelve nil si la clave no existe.
	Get(ctx context.Context, key string) (*entity.SystemConfig, error)
	Set(ctx context.Context, cfg *entity.SystemConfig) error
}
