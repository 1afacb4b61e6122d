package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// DateLayout formato de fecha de la asistencia.
const DateLayout = "2006-01-02"

// AttendanceUseCase asistencia diaria (una fila por empleado y día).
type AttendanceUseCase struct {
	attendance repository.AttendanceRepository
	employees  repository.EmployeeRepository
}

// NewAttendanceUseCase construye el caso de uso.
func NewAttendanceUseCase(attendance repository.AttendanceRepository, employees repository.EmployeeRepository) *AttendanceUseCase {
	return &AttendanceUseCase{attendance: attendance, employees: employees}
}

// ParseDay interpreta YYYY-MM-DD. Otro formato es domain.ErrInvalidInput.
func ParseDay(s string) (time.Time, error) {
	day, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return day, nil
}

// Save guarda la asistencia del día, actualizando la existente de cada empleado.
func (uc *AttendanceUseCase) Save(ctx context.Context, in dto.AttendanceRequest) (*dto.AttendanceResponse, error) {
	day, err := ParseDay(in.Date)
	if err != nil {
		return nil, err
	}
	for _, r := range in.Records {
		emp, err := uc.employees.GetByID(ctx, r.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrNotFound
		}
	}
	for _, r := range in.Records {
		a := &entity.DailyAttendance{ID: uuid.New().String(), EmployeeID: r.EmployeeID, Date: day, IsPresent: r.IsPresent}
		if err := uc.attendance.Upsert(ctx, a); err != nil {
			return nil, err
		}
	}
	return uc.Get(ctx, in.Date)
}

// Get devuelve la asistencia de un día (YYYY-MM-DD).
func (uc *AttendanceUseCase) Get(ctx context.Context, date string) (*dto.AttendanceResponse, error) {
	day, err := ParseDay(date)
	if err != nil {
		return nil, err
	}
	rows, err := uc.attendance.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	out := &dto.AttendanceResponse{Date: day.Format(DateLayout), Records: make([]dto.AttendanceEntry, 0, len(rows))}
	for _, r := range rows {
		out.Records = append(out.Records, dto.AttendanceEntry{EmployeeID: r.EmployeeID, IsPresent: r.IsPresent})
	}
	return out, nil
}
