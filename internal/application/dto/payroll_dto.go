package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRequest body para POST /api/employees/:id/records.
type PayrollRequest struct {
	Meters decimal.Decimal `json:"meters"`
	Date   *time.Time      `json:"date,omitempty"`
}

// PayrollResponse jornal registrado con el detalle de la compensación de adelantos.
type PayrollResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	Date              time.Time       `json:"date"`
	Meters            decimal.Decimal `json:"meters"`
	TotalAmount       decimal.Decimal `json:"total_amount"` // bruto
	IsPaid            bool            `json:"is_paid"`
	TransactionID     *string         `json:"transaction_id,omitempty"`
	TotalPending      decimal.Decimal `json:"total_pending"`
	NetPaid           decimal.Decimal `json:"net_paid"`
	SettledAdvanceIDs []string        `json:"settled_advance_ids"`
}

// AdvanceRequest body para POST /api/employees/:id/advances.
type AdvanceRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

// AdvanceResponse adelanto registrado.
type AdvanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	IsSettled     bool            `json:"is_settled"`
	TransactionID *string         `json:"transaction_id,omitempty"`
}

// EmployeeTripDTO producción del empleado en una salida cerrada.
type EmployeeTripDTO struct {
	TripID          string          `json:"trip_id"`
	Date            time.Time       `json:"date"`
	TripDescription string          `json:"trip_description"`
	MetersDone      decimal.Decimal `json:"meters_done"`
	HistoricalPrice decimal.Decimal `json:"historical_price"`
	TotalEarned     decimal.Decimal `json:"total_earned"`
}

// AttendanceDay presencia del empleado en un día (YYYY-MM-DD).
type AttendanceDay struct {
	Date      string `json:"date"`
	IsPresent bool   `json:"is_present"`
}

// EmployeeHistoryResponse legajo de un empleado: jornales, adelantos, salidas, asistencia y retiros.
// net_payable = balance_earned - total_pending.
type EmployeeHistoryResponse struct {
	Employee        EmployeeResponse        `json:"employee"`
	Records         []PayrollResponse       `json:"records"`
	Advances        []AdvanceResponse       `json:"advances"`
	MaterialUsages  []MaterialUsageResponse `json:"material_usages"`
	TripAssignments []EmployeeTripDTO       `json:"trip_assignments"`
	AttendanceLog   []AttendanceDay         `json:"attendance_log"`
	TotalPending    decimal.Decimal         `json:"total_pending"`
	BalanceEarned   decimal.Decimal         `json:"balance_earned"`
	NetPayable      decimal.Decimal         `json:"net_payable"`
}
