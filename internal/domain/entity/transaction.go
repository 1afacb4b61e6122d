package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento contable.
const (
	TxTypeIncome  = "INCOME"
	TxTypeExpense = "EXPENSE"
)

// Transaction es un movimiento del libro contable (salida real o entrada de caja).
type Transaction struct {
	ID           string
	Date         time.Time
	Amount       decimal.Decimal
	Description  string
	Type         string
	IsInvoiced   bool
	CategoryID   string
	CategoryName string // solo lectura (join)
}
