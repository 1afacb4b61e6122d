package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/memory"
)

func TestConfig_GetInexistenteEsCero(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewConfigUseCase(memory.New().Repos().Config)

	got, err := uc.Get(ctx, entity.KeyMeterPrice)
	require.NoError(t, err)
	assert.Equal(t, "0", got.Value)
	assert.Nil(t, got.UpdatedAt)

	_, err = uc.Set(ctx, dto.ConfigRequest{Key: entity.KeyMeterPrice, Value: " 1250.50 "})
	require.NoError(t, err)
	got, err = uc.Get(ctx, entity.KeyMeterPrice)
	require.NoError(t, err)
	assert.Equal(t, "1250.50", got.Value)
	assert.NotNil(t, got.UpdatedAt)
}

func TestConfig_SetValidaPrecio(t *testing.T) {
	uc := usecase.NewConfigUseCase(memory.New().Repos().Config)
	for _, v := range []string{"abc", "-1", ""} {
		_, err := uc.Set(context.Background(), dto.ConfigRequest{Key: entity.KeyMeterPrice, Value: v})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, v)
	}
	_, err := uc.Set(context.Background(), dto.ConfigRequest{Key: " ", Value: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmployees_AltaConCuadrillaYBaja(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	uc := usecase.NewEmployeeUseCase(repos.Employees, repos.Groups)

	g, err := uc.CreateGroup(ctx, dto.CreateGroupRequest{Name: "Cuadrilla Norte"})
	require.NoError(t, err)
	_, err = uc.CreateGroup(ctx, dto.CreateGroupRequest{Name: "cuadrilla norte"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	e, err := uc.Create(ctx, dto.CreateEmployeeRequest{Name: "Juan", GroupID: &g.ID})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateEmployeeRequest{Name: "Ana"})
	require.NoError(t, err)

	missing := "no-existe"
	_, err = uc.Create(ctx, dto.CreateEmployeeRequest{Name: "X", GroupID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, dto.CreateEmployeeRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)

	require.NoError(t, uc.DeleteGroup(ctx, g.ID))
	list, err = uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, e.ID, list[0].ID)

	assert.ErrorIs(t, uc.Delete(ctx, e.ID), domain.ErrNotFound)
}

func TestVehicles_ServiceYActualizacion(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewVehicleUseCase(memory.New().Repos().Vehicles)

	v, err := uc.Create(ctx, dto.CreateVehicleRequest{Name: "Hilux", Plate: "ab123cd", Type: "ute", CurrentKm: 45000})
	require.NoError(t, err)
	assert.Equal(t, "AB123CD", v.Plate)
	assert.Equal(t, entity.VehicleStatusOperational, v.Status)

	_, err = uc.Create(ctx, dto.CreateVehicleRequest{Name: "Otra", Plate: "AB123CD"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	status := entity.VehicleStatusMaintenance
	v, err = uc.Update(ctx, v.ID, dto.UpdateVehicleRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleStatusMaintenance, v.Status)

	bad := "ROTO"
	_, err = uc.Update(ctx, v.ID, dto.UpdateVehicleRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	v, err = uc.RegisterService(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, v.NextServiceKm)
	assert.Equal(t, 55000.0, *v.NextServiceKm)
	assert.NotNil(t, v.LastServiceDate)
	assert.Equal(t, entity.VehicleStatusOperational, v.Status)

	_, err = uc.RegisterService(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttendance_GuardaYActualiza(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e1", Name: "Juan"}))
	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e2", Name: "Ana"}))
	uc := usecase.NewAttendanceUseCase(repos.Attendance, repos.Employees)

	_, err := uc.Save(ctx, dto.AttendanceRequest{Date: "2026-05-04", Records: []dto.AttendanceEntry{
		{EmployeeID: "e1", IsPresent: true},
		{EmployeeID: "e2", IsPresent: true},
	}})
	require.NoError(t, err)

	got, err := uc.Save(ctx, dto.AttendanceRequest{Date: "2026-05-04", Records: []dto.AttendanceEntry{
		{EmployeeID: "e2", IsPresent: false},
	}})
	require.NoError(t, err)
	require.Len(t, got.Records, 2)
	assert.Equal(t, dto.AttendanceEntry{EmployeeID: "e2", IsPresent: false}, got.Records[1])

	_, err = uc.Get(ctx, "04/05/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Save(ctx, dto.AttendanceRequest{Date: "2026-05-04", Records: []dto.AttendanceEntry{{EmployeeID: "x"}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
