package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest entrada para registrar un movimiento manual del libro.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"` // INCOME | EXPENSE
	CategoryID  string          `json:"category_id"`
	IsInvoiced  bool            `json:"is_invoiced"`
	Date        *time.Time      `json:"date,omitempty"`
}

// TransactionResponse salida de un movimiento contable.
type TransactionResponse struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	IsInvoiced   bool            `json:"is_invoiced"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
}

// TransactionListResponse listado paginado del libro.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CreateCategoryRequest entrada para crear una categoría contable.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// FinanceSummaryResponse respuesta de GET /api/finances/summary.
// labor_cost: producción liquidada de salidas cerradas del mes.
// expense_cost: egresos del libro sin jornales ni adelantos (ya cubiertos por labor_cost).
// receipts_cost: parte de expense_cost registrada al subir comprobantes.
type FinanceSummaryResponse struct {
	Period       string          `json:"period"` // "3/2026"
	LaborCost    decimal.Decimal `json:"labor_cost"`
	ExpenseCost  decimal.Decimal `json:"expense_cost"`
	ReceiptsCost decimal.Decimal `json:"receipts_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Income       decimal.Decimal `json:"income"`
	Balance      decimal.Decimal `json:"balance"`
}

// UploadExpenseRequest campos del formulario de POST /api/finance/expenses (multipart).
type UploadExpenseRequest struct {
	Description string
	Amount      decimal.Decimal
	Date        string // YYYY-MM-DD; vacío = hoy
	Filename    string
}

// ExpenseDocumentResponse comprobante de gasto subido.
type ExpenseDocumentResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	FilePath      string          `json:"file_path"`
	FileType      string          `json:"file_type"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
