package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const txColumns = `id, item_name, category, quantity, unit, type, user_id, username, rate, amount, vendor, notes, created_at`

// TransactionRepo log de auditoría del inventario (append-only) sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Append agrega una transacción.
func (r *TransactionRepo) Append(ctx context.Context, t *entity.Transaction) error {
	query := `INSERT INTO inventory_transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ItemName, t.Category, t.Quantity, t.Unit, t.Type, t.UserID, t.Username,
		t.Rate, t.Amount, t.Vendor, t.Notes, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// List filtra por tipo y rango [From, To); más recientes primero.
func (r *TransactionRepo) List(ctx context.Context, f entity.TransactionFilter) ([]*entity.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if !f.From.IsZero() {
		add("created_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("created_at < $%d", f.To)
	}

	query := `SELECT ` + txColumns + ` FROM inventory_transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return r.query(ctx, query, args...)
}

// ListByItem historial de un ítem, más reciente primero.
func (r *TransactionRepo) ListByItem(ctx context.Context, itemName string) ([]*entity.Transaction, error) {
	return r.query(ctx, `SELECT `+txColumns+` FROM inventory_transactions WHERE item_name = $1 ORDER BY created_at DESC`, itemName)
}

// DeleteOlderThan elimina las transacciones anteriores a cutoff.
func (r *TransactionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_transactions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TransactionRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var out []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.ItemName, &t.Category, &t.Quantity, &t.Unit, &t.Type, &t.UserID, &t.Username,
		&t.Rate, &t.Amount, &t.Vendor, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
