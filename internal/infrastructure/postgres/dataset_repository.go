package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ repository.DatasetRepository = (*DatasetRepo)(nil)

// DatasetRepo guarda los cuatro reportes en tablas propias. Replace los sustituye en una sola transacción.
type DatasetRepo struct {
	pool *pgxpool.Pool
}

// NewDatasetRepository construye el adaptador.
func NewDatasetRepository(pool *pgxpool.Pool) *DatasetRepo {
	return &DatasetRepo{pool: pool}
}

// Load lee la instantánea completa. Se usa una transacción de solo lectura para que las
// cuatro consultas vean el mismo estado.
func (r *DatasetRepo) Load(ctx context.Context) (*entity.Dataset, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin dataset load: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ds := &entity.Dataset{}
	if ds.Purchases, err = collect(ctx, tx,
		`SELECT date, item_name, quantity, unit, rate, amount FROM purchase_records ORDER BY id`,
		func(row pgx.CollectableRow) (entity.PurchaseRecord, error) {
			var p entity.PurchaseRecord
			err := row.Scan(&p.Date, &p.ItemName, &p.Quantity, &p.Unit, &p.Rate, &p.Amount)
			return p, err
		}); err != nil {
		return nil, err
	}
	if ds.Issues, err = collect(ctx, tx,
		`SELECT date, item_name, category, quantity_issued, unit FROM issue_records ORDER BY id`,
		func(row pgx.CollectableRow) (entity.IssueRecord, error) {
			var i entity.IssueRecord
			err := row.Scan(&i.Date, &i.ItemName, &i.Category, &i.QuantityIssued, &i.Unit)
			return i, err
		}); err != nil {
		return nil, err
	}
	if ds.Sales, err = collect(ctx, tx,
		`SELECT date, item_name, category, quantity_sold, price, revenue, food_cost, profit FROM sale_records ORDER BY id`,
		func(row pgx.CollectableRow) (entity.SaleRecord, error) {
			var s entity.SaleRecord
			err := row.Scan(&s.Date, &s.ItemName, &s.Category, &s.QuantitySold, &s.Price, &s.Revenue, &s.FoodCost, &s.Profit)
			return s, err
		}); err != nil {
		return nil, err
	}
	if ds.Recipes, err = collect(ctx, tx,
		`SELECT menu_item, ingredient, quantity_per_unit, unit FROM recipe_components ORDER BY id`,
		func(row pgx.CollectableRow) (entity.RecipeComponent, error) {
			var c entity.RecipeComponent
			err := row.Scan(&c.MenuItem, &c.Ingredient, &c.QuantityPerUnit, &c.Unit)
			return c, err
		}); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `SELECT loaded_at FROM dataset_meta WHERE id = 1`).Scan(&ds.LoadedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("dataset meta: %w", err)
	}
	return ds, nil
}

func collect[T any](ctx context.Context, q Querier, query string, fn pgx.RowToFunc[T]) ([]T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	out, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	return out, nil
}

// Replace trunca las cuatro tablas y copia la nueva instantánea (COPY FROM) en una transacción.
func (r *DatasetRepo) Replace(ctx context.Context, ds *entity.Dataset) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE purchase_records, issue_records, sale_records, recipe_components`); err != nil {
		return fmt.Errorf("truncate dataset: %w", err)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"purchase_records"},
		[]string{"date", "item_name", "quantity", "unit", "rate", "amount"},
		pgx.CopyFromSlice(len(ds.Purchases), func(i int) ([]any, error) {
			p := ds.Purchases[i]
			return []any{p.Date, p.ItemName, p.Quantity, p.Unit, p.Rate, p.Amount}, nil
		})); err != nil {
		return fmt.Errorf("copy purchase_records: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"issue_records"},
		[]string{"date", "item_name", "category", "quantity_issued", "unit"},
		pgx.CopyFromSlice(len(ds.Issues), func(i int) ([]any, error) {
			s := ds.Issues[i]
			return []any{s.Date, s.ItemName, s.Category, s.QuantityIssued, s.Unit}, nil
		})); err != nil {
		return fmt.Errorf("copy issue_records: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"sale_records"},
		[]string{"date", "item_name", "category", "quantity_sold", "price", "revenue", "food_cost", "profit"},
		pgx.CopyFromSlice(len(ds.Sales), func(i int) ([]any, error) {
			s := ds.Sales[i]
			return []any{s.Date, s.ItemName, s.Category, s.QuantitySold, s.Price, s.Revenue, s.FoodCost, s.Profit}, nil
		})); err != nil {
		return fmt.Errorf("copy sale_records: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"recipe_components"},
		[]string{"menu_item", "ingredient", "quantity_per_unit", "unit"},
		pgx.CopyFromSlice(len(ds.Recipes), func(i int) ([]any, error) {
			c := ds.Recipes[i]
			return []any{c.MenuItem, c.Ingredient, c.QuantityPerUnit, c.Unit}, nil
		})); err != nil {
		return fmt.Errorf("copy recipe_components: %w", err)
	}

	loadedAt := ds.LoadedAt
	if loadedAt.IsZero() {
		loadedAt = time.Now()
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO dataset_meta (id, loaded_at) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET loaded_at = EXCLUDED.loaded_at`, loadedAt); err != nil {
		return fmt.Errorf("dataset meta: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
