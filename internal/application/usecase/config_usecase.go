package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// ConfigUseCase lee y actualiza la configuración global (precio del metro, etc.).
type ConfigUseCase struct {
	repo repository.ConfigRepository
}

// NewConfigUseCase construye el caso de uso.
func NewConfigUseCase(repo repository.ConfigRepository) *ConfigUseCase {
	return &ConfigUseCase{repo: repo}
}

// Get devuelve el valor de key; una clave inexistente se informa como "0".
func (uc *ConfigUseCase) Get(ctx context.Context, key string) (*dto.ConfigResponse, error) {
	cfg, err := uc.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &dto.ConfigResponse{Key: key, Value: "0"}, nil
	}
	return &dto.ConfigResponse{Key: cfg.Key, Value: cfg.Value, UpdatedAt: &cfg.UpdatedAt}, nil
}

// Set crea o reemplaza un valor. El precio del metro debe ser un número no negativo.
func (uc *ConfigUseCase) Set(ctx context.Context, in dto.ConfigRequest) (*dto.ConfigResponse, error) {
	key := strings.TrimSpace(in.Key)
	value := strings.TrimSpace(in.Value)
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	if key == entity.KeyMeterPrice {
		price, err := decimal.NewFromString(value)
		if err != nil || price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	cfg := &entity.SystemConfig{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := uc.repo.Set(ctx, cfg); err != nil {
		return nil, err
	}
	return &dto.ConfigResponse{Key: cfg.Key, Value: cfg.Value, UpdatedAt: &cfg.UpdatedAt}, nil
}
