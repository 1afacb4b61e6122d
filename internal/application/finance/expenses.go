package finance

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// UploadExpense guarda el archivo del comprobante y registra el gasto: un EXPENSE en la
// categoría de comprobantes y el ExpenseDocument que lo respalda, en la misma transacción.
// Si la transacción falla se borra el archivo.
func (uc *UseCase) UploadExpense(ctx context.Context, in dto.UploadExpenseRequest, file io.Reader) (*dto.ExpenseDocumentResponse, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, fmt.Errorf("descripción requerida: %w", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("monto debe ser mayor a 0: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Filename) == "" || file == nil {
		return nil, fmt.Errorf("archivo requerido: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	date := now
	if s := strings.TrimSpace(in.Date); s != "" {
		d, err := time.ParseInLocation(time.DateOnly, s, now.Location())
		if err != nil {
			return nil, fmt.Errorf("fecha %q (YYYY-MM-DD): %w", s, domain.ErrInvalidInput)
		}
		date = d
	}

	path, err := uc.docs.Save(ctx, date, in.Filename, file)
	if err != nil {
		return nil, fmt.Errorf("finance: guardar comprobante: %w", err)
	}

	doc := &entity.ExpenseDocument{
		ID:          uuid.New().String(),
		Date:        date,
		Description: desc,
		Amount:      in.Amount,
		FilePath:    path,
		FileType:    strings.ToLower(strings.TrimPrefix(filepath.Ext(in.Filename), ".")),
		CreatedAt:   now,
	}
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		cat, err := s.Categories.Ensure(ctx, entity.CategoryReceipts, entity.TxTypeExpense)
		if err != nil {
			return err
		}
		tx := &entity.Transaction{
			ID:          uuid.New().String(),
			Date:        date,
			Amount:      in.Amount,
			Description: "Comprobante: " + desc,
			Type:        entity.TxTypeExpense,
			CategoryID:  cat.ID,
		}
		if err := s.Transactions.Create(ctx, tx); err != nil {
			return err
		}
		doc.TransactionID = &tx.ID
		return s.Expenses.Create(ctx, doc)
	})
	if err != nil {
		_ = uc.docs.Remove(context.WithoutCancel(ctx), path)
		return nil, err
	}
	out := toExpenseDocumentResponse(doc)
	return &out, nil
}

// ListExpenses lista los comprobantes del mes (más recientes primero). Con year o month en
// cero devuelve todos.
func (uc *UseCase) ListExpenses(ctx context.Context, year, month int) ([]dto.ExpenseDocumentResponse, error) {
	var (
		docs []*entity.ExpenseDocument
		err  error
	)
	if year == 0 || month == 0 {
		docs, err = uc.repos.Expenses.List(ctx)
	} else {
		if year, month, err = uc.resolvePeriod(year, month); err != nil {
			return nil, err
		}
		from, to := MonthRange(year, month, uc.now().Location())
		docs, err = uc.repos.Expenses.ListBetween(ctx, from, to)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toExpenseDocumentResponse(doc))
	}
	return out, nil
}

func toExpenseDocumentResponse(doc *entity.ExpenseDocument) dto.ExpenseDocumentResponse {
	return dto.ExpenseDocumentResponse{
		ID:            doc.ID,
		Date:          doc.Date,
		Description:   doc.Description,
		Amount:        doc.Amount,
		FilePath:      doc.FilePath,
		FileType:      doc.FileType,
		TransactionID: doc.TransactionID,
		CreatedAt:     doc.CreatedAt,
	}
}
