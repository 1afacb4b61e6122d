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

// EmployeeUseCase alta, baja y listado de empleados y cuadrillas.
type EmployeeUseCase struct {
	employees repository.EmployeeRepository
	groups    repository.EmployeeGroupRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(employees repository.EmployeeRepository, groups repository.EmployeeGroupRepository) *EmployeeUseCase {
	return &EmployeeUseCase{employees: employees, groups: groups}
}

// CreateGroup crea una cuadrilla (nombre único).
func (uc *EmployeeUseCase) CreateGroup(ctx context.Context, in dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	g := &entity.EmployeeGroup{ID: uuid.New().String(), Name: name}
	if err := uc.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	return &dto.GroupResponse{ID: g.ID, Name: g.Name}, nil
}

// ListGroups lista las cuadrillas.
func (uc *EmployeeUseCase) ListGroups(ctx context.Context) ([]dto.GroupResponse, error) {
	list, err := uc.groups.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GroupResponse, 0, len(list))
	for _, g := range list {
		out = append(out, dto.GroupResponse{ID: g.ID, Name: g.Name})
	}
	return out, nil
}

// DeleteGroup borra la cuadrilla y sus empleados.
func (uc *EmployeeUseCase) DeleteGroup(ctx context.Context, id string) error {
	return uc.groups.Delete(ctx, id)
}

// Create da de alta un empleado, opcionalmente en una cuadrilla existente.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.GroupID != nil && *in.GroupID == "" {
		in.GroupID = nil
	}
	if in.GroupID != nil {
		g, err := uc.groups.GetByID(ctx, *in.GroupID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, domain.ErrNotFound
		}
	}
	e := &entity.Employee{ID: uuid.New().String(), Name: name, GroupID: in.GroupID, CreatedAt: time.Now()}
	if err := uc.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// List lista los empleados por nombre.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

// Delete borra el empleado con sus adelantos, jornales y retiros.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	return uc.employees.Delete(ctx, id)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{ID: e.ID, Name: e.Name, GroupID: e.GroupID, CreatedAt: e.CreatedAt}
}
