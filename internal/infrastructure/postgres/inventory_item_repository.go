package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `item_name, category, quantity, unit, total_purchased, last_updated`

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	if err := row.Scan(&it.ItemName, &it.Category, &it.Quantity, &it.Unit, &it.TotalPurchased, &it.LastUpdated); err != nil {
		return nil, err
	}
	return &it, nil
}

// Get obtiene un ítem por nombre; (nil, nil) si no existe.
func (r *InventoryItemRepo) Get(ctx context.Context, itemName string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE item_name = $1`, itemName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetForUpdate toma un advisory lock de transacción sobre el nombre y luego lee la fila con
// SELECT FOR UPDATE. El lock cubre también el nombre que todavía no existe, así dos altas
// concurrentes del mismo ítem se serializan. Solo vale dentro de una transacción.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, itemName string) (*entity.InventoryItem, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, itemName); err != nil {
		return nil, fmt.Errorf("lock inventory item: %w", err)
	}
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE item_name = $1 FOR UPDATE`, itemName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return it, nil
}

// List todos los ítems.
func (r *InventoryItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY category, item_name`)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Upsert inserta o actualiza el estado del ítem.
func (r *InventoryItemRepo) Upsert(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (item_name)
		DO UPDATE SET category = EXCLUDED.category, quantity = EXCLUDED.quantity, unit = EXCLUDED.unit,
			total_purchased = EXCLUDED.total_purchased, last_updated = EXCLUDED.last_updated`
	_, err := r.q.Exec(ctx, query, it.ItemName, it.Category, it.Quantity, it.Unit, it.TotalPurchased, it.LastUpdated)
	if err != nil {
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

// Rename cambia la clave del ítem.
func (r *InventoryItemRepo) Rename(ctx context.Context, oldName, newName string) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventory_items SET item_name = $2 WHERE item_name = $1`, oldName, newName)
	if err != nil {
		return writeError(err, "rename inventory item", newName+" ya existe")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, oldName)
	}
	return nil
}

// Delete elimina el ítem.
func (r *InventoryItemRepo) Delete(ctx context.Context, itemName string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE item_name = $1`, itemName)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, itemName)
	}
	return nil
}

// CountByCategory ítems que usan la categoría.
func (r *InventoryItemRepo) CountByCategory(ctx context.Context, category string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items WHERE category = $1`, category).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return n, nil
}

// RenameCategory propaga el nuevo nombre de categoría a los ítems.
func (r *InventoryItemRepo) RenameCategory(ctx context.Context, oldName, newName string) error {
	if _, err := r.q.Exec(ctx, `UPDATE inventory_items SET category = $2 WHERE category = $1`, oldName, newName); err != nil {
		return fmt.Errorf("rename category on items: %w", err)
	}
	return nil
}
