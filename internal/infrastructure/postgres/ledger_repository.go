package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var (
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.ConfigRepository      = (*ConfigRepo)(nil)
)

// TransactionRepo implementación del libro contable sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del libro.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionSelect = `
	SELECT t.id, t.date, t.amount, t.description, t.type, t.is_invoiced, t.category_id, COALESCE(c.name, '')
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id`

// Create persiste un movimiento.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, date, amount, description, type, is_invoiced, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Date, t.Amount, t.Description, t.Type, t.IsInvoiced, t.CategoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("categoría %s: %w", t.CategoryID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var out []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Amount, &t.Description, &t.Type,
			&t.IsInvoiced, &t.CategoryID, &t.CategoryName); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// List lista el libro por fecha descendente.
func (r *TransactionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	return r.list(ctx, transactionSelect+` ORDER BY t.date DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListBetween lista movimientos con fecha en [from, to) por fecha ascendente.
func (r *TransactionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return r.list(ctx, transactionSelect+` WHERE t.date >= $1 AND t.date < $2 ORDER BY t.date`, from, to)
}

// Delete borra un movimiento. Adelantos/jornales/compras que lo referencian quedan sin transacción.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		if noRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Ensure devuelve la categoría por nombre; si no existe la crea. Seguro ante inserts concurrentes.
func (r *CategoryRepo) Ensure(ctx context.Context, name, txType string) (*entity.Category, error) {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, name, type) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		uuid.New().String(), name, txType)
	if err != nil {
		return nil, fmt.Errorf("ensure category: %w", err)
	}
	var c entity.Category
	err = r.q.QueryRow(ctx,
		`SELECT id, name, type FROM categories WHERE lower(name) = lower($1)`, name,
	).Scan(&c.ID, &c.Name, &c.Type)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Create persiste una categoría. Nombre único sin distinguir mayúsculas.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (id, name, type) VALUES ($1, $2, $3)`, c.ID, c.Name, c.Type)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// List lista las categorías por tipo y nombre.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, type FROM categories ORDER BY type, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ConfigRepo implementación de ConfigRepository sobre PostgreSQL.
type ConfigRepo struct {
	q Querier
}

// NewConfigRepository construye el adaptador de configuración.
func NewConfigRepository(q Querier) *ConfigRepo {
	return &ConfigRepo{q: q}
}

// Get obtiene un valor de configuración; nil si la clave no existe.
func (r *ConfigRepo) Get(ctx context.Context, key string) (*entity.SystemConfig, error) {
	var c entity.SystemConfig
	err := r.q.QueryRow(ctx,
		`SELECT key, value, updated_at FROM system_config WHERE key = $1`, key,
	).Scan(&c.Key, &c.Value, &c.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	return &c, nil
}

// Set inserta o actualiza un valor de configuración.
func (r *ConfigRepo) Set(ctx context.Context, c *entity.SystemConfig) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO system_config (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		c.Key, c.Value, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	return nil
}
