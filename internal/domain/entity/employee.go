package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeGroup agrupa empleados (cuadrilla). Borrar el grupo borra sus empleados.
type EmployeeGroup struct {
	ID   string
	Name string
}

// Employee es un trabajador que cobra por producción (metros).
// Borrar un empleado borra en cascada sus adelantos, jornales y retiros de material.
type Employee struct {
	ID        string
	Name      string
	GroupID   *string
	CreatedAt time.Time
}

// Advance es un adelanto (vale) de efectivo pendiente de descontar de la producción.
// Se salda completo o no se salda: no hay saldo parcial.
type Advance struct {
	ID            string
	EmployeeID    string
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	IsSettled     bool
	TransactionID *string
}

// PayrollRecord es un jornal registrado: metros producidos y su valor bruto.
type PayrollRecord struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Meters        decimal.Decimal
	TotalAmount   decimal.Decimal // bruto (metros x precio vigente)
	IsPaid        bool
	TransactionID *string
}

// DailyAttendance registra la presencia de un empleado en un día.
type DailyAttendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	IsPresent  bool
}
