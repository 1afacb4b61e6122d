package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var _ repository.ExpenseDocumentRepository = (*ExpenseDocumentRepo)(nil)

// ExpenseDocumentRepo comprobantes de gastos sobre PostgreSQL.
type ExpenseDocumentRepo struct {
	q Querier
}

// NewExpenseDocumentRepository construye el adaptador de comprobantes.
func NewExpenseDocumentRepository(q Querier) *ExpenseDocumentRepo {
	return &ExpenseDocumentRepo{q: q}
}

const expenseDocumentColumns = `id, date, description, amount, file_path, file_type, transaction_id, created_at`

// Create persiste el comprobante. Un transaction_id inexistente es ErrNotFound.
func (r *ExpenseDocumentRepo) Create(ctx context.Context, doc *entity.ExpenseDocument) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO expense_documents (`+expenseDocumentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.Date, doc.Description, doc.Amount, doc.FilePath, doc.FileType, doc.TransactionID, doc.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("movimiento del comprobante: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert expense document: %w", err)
	}
	return nil
}

// List lista todos los comprobantes, más recientes primero.
func (r *ExpenseDocumentRepo) List(ctx context.Context) ([]*entity.ExpenseDocument, error) {
	return r.list(ctx, `SELECT `+expenseDocumentColumns+` FROM expense_documents ORDER BY date DESC`)
}

// ListBetween lista los comprobantes con fecha en [from, to).
func (r *ExpenseDocumentRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ExpenseDocument, error) {
	return r.list(ctx, `SELECT `+expenseDocumentColumns+` FROM expense_documents
		WHERE date >= $1 AND date < $2 ORDER BY date DESC`, from, to)
}

func (r *ExpenseDocumentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ExpenseDocument, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expense documents: %w", err)
	}
	defer rows.Close()
	var out []*entity.ExpenseDocument
	for rows.Next() {
		var doc entity.ExpenseDocument
		if err := rows.Scan(&doc.ID, &doc.Date, &doc.Description, &doc.Amount, &doc.FilePath,
			&doc.FileType, &doc.TransactionID, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense document: %w", err)
		}
		out = append(out, &doc)
	}
	return out, rows.Err()
}
