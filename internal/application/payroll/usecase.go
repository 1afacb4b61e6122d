// Package payroll registra jornales por producción y adelantos de efectivo.
package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/settlement"
)

// UseCase casos de uso de liquidación de jornales y adelantos.
type UseCase struct {
	repos repository.Store
	tx    TxRunner
	log   zerolog.Logger
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos repository.Store, tx TxRunner, log zerolog.Logger) *UseCase {
	return &UseCase{repos: repos, tx: tx, log: log, now: time.Now}
}

// RecordPayroll registra un jornal al precio vigente y lo compensa con los adelantos pendientes.
// El egreso de caja registrado es el neto: max(0, bruto - total pendiente).
func (uc *UseCase) RecordPayroll(ctx context.Context, employeeID string, in dto.PayrollRequest) (*dto.PayrollResponse, error) {
	if in.Meters.IsNegative() {
		return nil, fmt.Errorf("metros negativos: %w", domain.ErrInvalidInput)
	}
	date := uc.now()
	if in.Date != nil {
		date = *in.Date
	}

	var resp *dto.PayrollResponse
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		emp, err := mustEmployee(ctx, s, employeeID)
		if err != nil {
			return err
		}
		cfg, err := s.Config.Get(ctx, entity.KeyMeterPrice)
		if err != nil {
			return err
		}
		gross := in.Meters.Mul(entity.PriceFrom(cfg))

		pending, err := s.Advances.ListPendingForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}
		res := settlement.SettleAdvances(gross, pending)
		if len(res.SettledIDs) > 0 {
			if err := s.Advances.MarkSettled(ctx, res.SettledIDs); err != nil {
				return err
			}
		}

		cat, err := s.Categories.Ensure(ctx, entity.CategoryPayroll, entity.TxTypeExpense)
		if err != nil {
			return err
		}
		desc := fmt.Sprintf("Pago Jornal: %s (%sm)", emp.Name, in.Meters.String())
		if res.TotalPending.IsPositive() {
			desc += " - [Compensado con Adelantos]"
		}
		tx := &entity.Transaction{
			ID:          uuid.New().String(),
			Date:        date,
			Amount:      res.Net,
			Description: desc,
			Type:        entity.TxTypeExpense,
			CategoryID:  cat.ID,
		}
		if err := s.Transactions.Create(ctx, tx); err != nil {
			return err
		}

		rec := &entity.PayrollRecord{
			ID:            uuid.New().String(),
			EmployeeID:    employeeID,
			Date:          date,
			Meters:        in.Meters,
			TotalAmount:   gross,
			IsPaid:        true,
			TransactionID: &tx.ID,
		}
		if err := s.Payroll.Create(ctx, rec); err != nil {
			return err
		}

		resp = toPayrollResponse(rec)
		resp.TotalPending = res.TotalPending
		resp.NetPaid = res.Net
		resp.SettledAdvanceIDs = res.SettledIDs
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("employee_id", employeeID).
		Str("gross", resp.TotalAmount.String()).
		Str("net", resp.NetPaid.String()).
		Int("advances_settled", len(resp.SettledAdvanceIDs)).
		Msg("jornal registrado")
	return resp, nil
}

// RecordAdvance registra un adelanto pendiente y su egreso de caja.
func (uc *UseCase) RecordAdvance(ctx context.Context, employeeID string, in dto.AdvanceRequest) (*dto.AdvanceResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("el monto debe ser positivo: %w", domain.ErrInvalidInput)
	}
	date := uc.now()
	if in.Date != nil {
		date = *in.Date
	}
	var resp *dto.AdvanceResponse
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		emp, err := mustEmployee(ctx, s, employeeID)
		if err != nil {
			return err
		}
		note := strings.TrimSpace(in.Description)
		desc := note
		if desc == "" {
			desc = "Adelanto a " + emp.Name
			note = "Sin desc."
		}

		cat, err := s.Categories.Ensure(ctx, entity.CategoryAdvances, entity.TxTypeExpense)
		if err != nil {
			return err
		}
		tx := &entity.Transaction{
			ID:          uuid.New().String(),
			Date:        date,
			Amount:      in.Amount,
			Description: fmt.Sprintf("Adelanto: %s (%s)", emp.Name, note),
			Type:        entity.TxTypeExpense,
			CategoryID:  cat.ID,
		}
		if err := s.Transactions.Create(ctx, tx); err != nil {
			return err
		}
		adv := &entity.Advance{
			ID:            uuid.New().String(),
			EmployeeID:    employeeID,
			Amount:        in.Amount,
			Date:          date,
			Description:   desc,
			TransactionID: &tx.ID,
		}
		if err := s.Advances.Create(ctx, adv); err != nil {
			return err
		}
		resp = toAdvanceResponse(adv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// attendanceLogDays cuántos días de asistencia devuelve el legajo.
const attendanceLogDays = 60

// History devuelve el legajo del empleado (más recientes primero): jornales, adelantos,
// retiros de material, salidas cerradas y los últimos días de asistencia.
// net_payable es lo producido en salidas menos los adelantos pendientes.
func (uc *UseCase) History(ctx context.Context, employeeID string) (*dto.EmployeeHistoryResponse, error) {
	emp, err := mustEmployee(ctx, uc.repos, employeeID)
	if err != nil {
		return nil, err
	}
	records, err := uc.repos.Payroll.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	advances, err := uc.repos.Advances.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	usages, err := uc.repos.Usages.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	trips, err := uc.repos.Trips.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	attendance, err := uc.repos.Attendance.ListByEmployee(ctx, employeeID, attendanceLogDays)
	if err != nil {
		return nil, err
	}
	out := &dto.EmployeeHistoryResponse{
		Employee:        dto.EmployeeResponse{ID: emp.ID, Name: emp.Name, GroupID: emp.GroupID, CreatedAt: emp.CreatedAt},
		Records:         make([]dto.PayrollResponse, 0, len(records)),
		Advances:        make([]dto.AdvanceResponse, 0, len(advances)),
		MaterialUsages:  make([]dto.MaterialUsageResponse, 0, len(usages)),
		TripAssignments: make([]dto.EmployeeTripDTO, 0, len(trips)),
		AttendanceLog:   make([]dto.AttendanceDay, 0, len(attendance)),
		TotalPending:    decimal.Zero,
		BalanceEarned:   decimal.Zero,
	}
	for _, u := range usages {
		out.MaterialUsages = append(out.MaterialUsages, dto.MaterialUsageResponse{
			ID:             u.ID,
			StockItemID:    u.StockItemID,
			EmployeeID:     u.EmployeeID,
			Quantity:       u.Quantity,
			Date:           u.Date,
			Description:    u.Description,
			SalePriceTotal: u.SalePriceTotal,
		})
	}
	for _, t := range trips {
		out.TripAssignments = append(out.TripAssignments, dto.EmployeeTripDTO{
			TripID:          t.TripID,
			Date:            t.Date,
			TripDescription: t.Description,
			MetersDone:      t.MetersDone,
			HistoricalPrice: t.HistoricalPrice,
			TotalEarned:     t.TotalEarned,
		})
		out.BalanceEarned = out.BalanceEarned.Add(t.TotalEarned)
	}
	for _, a := range attendance {
		out.AttendanceLog = append(out.AttendanceLog, dto.AttendanceDay{Date: a.Date.Format(time.DateOnly), IsPresent: a.IsPresent})
	}
	for _, r := range records {
		out.Records = append(out.Records, *toPayrollResponse(r))
	}
	for _, a := range advances {
		out.Advances = append(out.Advances, *toAdvanceResponse(a))
		if !a.IsSettled {
			out.TotalPending = out.TotalPending.Add(a.Amount)
		}
	}
	out.NetPayable = out.BalanceEarned.Sub(out.TotalPending)
	return out, nil
}

func mustEmployee(ctx context.Context, s repository.Store, id string) (*entity.Employee, error) {
	emp, err := s.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, fmt.Errorf("empleado %s: %w", id, domain.ErrNotFound)
	}
	return emp, nil
}

func toPayrollResponse(r *entity.PayrollRecord) *dto.PayrollResponse {
	return &dto.PayrollResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		Date:              r.Date,
		Meters:            r.Meters,
		TotalAmount:       r.TotalAmount,
		IsPaid:            r.IsPaid,
		TransactionID:     r.TransactionID,
		SettledAdvanceIDs: []string{},
	}
}

func toAdvanceResponse(a *entity.Advance) *dto.AdvanceResponse {
	return &dto.AdvanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Amount:        a.Amount,
		Date:          a.Date,
		Description:   a.Description,
		IsSettled:     a.IsSettled,
		TransactionID: a.TransactionID,
	}
}
