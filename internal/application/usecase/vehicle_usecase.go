package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// VehicleUseCase gestión de la flota.
type VehicleUseCase struct {
	repo repository.VehicleRepository
	now  func() time.Time
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, now: time.Now}
}

// Create da de alta un vehículo OPERATIONAL. La patente es única.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	name := strings.TrimSpace(in.Name)
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	if name == "" || plate == "" || in.CurrentKm < 0 {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.Vehicle{
		ID:        uuid.New().String(),
		Name:      name,
		Plate:     plate,
		Type:      strings.ToUpper(strings.TrimSpace(in.Type)),
		Status:    entity.VehicleStatusOperational,
		CurrentKm: in.CurrentKm,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

// List lista la flota.
func (uc *VehicleUseCase) List(ctx context.Context) ([]dto.VehicleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVehicleResponse(v))
	}
	return out, nil
}

// Update modifica los campos informados.
func (uc *VehicleUseCase) Update(ctx context.Context, id string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	v, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Plate != nil {
		v.Plate = strings.ToUpper(strings.TrimSpace(*in.Plate))
	}
	if in.Type != nil {
		v.Type = strings.ToUpper(strings.TrimSpace(*in.Type))
	}
	if in.Status != nil {
		if !entity.ValidVehicleStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		v.Status = *in.Status
	}
	if in.CurrentKm != nil {
		if *in.CurrentKm < 0 {
			return nil, domain.ErrInvalidInput
		}
		v.CurrentKm = *in.CurrentKm
	}
	if v.Name == "" || v.Plate == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

// RegisterService registra un service hoy y programa el siguiente a +10.000 km.
func (uc *VehicleUseCase) RegisterService(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	v, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	v.RegisterService(uc.now())
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

func (uc *VehicleUseCase) get(ctx context.Context, id string) (*entity.Vehicle, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:              v.ID,
		Name:            v.Name,
		Plate:           v.Plate,
		Type:            v.Type,
		Status:          v.Status,
		LastServiceDate: v.LastServiceDate,
		NextServiceKm:   v.NextServiceKm,
		CurrentKm:       v.CurrentKm,
	}
}
