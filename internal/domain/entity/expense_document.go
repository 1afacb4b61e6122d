package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseDocument comprobante de un gasto (ticket, factura) con el archivo guardado en disco.
// Al subirlo se registra el egreso en el libro; TransactionID apunta a ese movimiento.
type ExpenseDocument struct {
	ID            string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	FilePath      string
	FileType      string // extensión en minúsculas: pdf, jpg, png...
	TransactionID *string
	CreatedAt     time.Time
}
