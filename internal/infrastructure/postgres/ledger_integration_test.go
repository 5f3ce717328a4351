package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	appinv "github.com/jhoicas/restaurant-analytics/internal/application/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/postgres"
)

// setupTestDB abre TEST_DATABASE_URL, aplica migraciones y vacía las tablas del ledger.
// Sin la variable el test se omite para no tocar la base de la aplicación.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definida, se omite el test de integración")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dbURL)
	require.NoError(t, err)
	cfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(pool))
	_, err = pool.Exec(ctx, `TRUNCATE TABLE inventory_transactions, inventory_items, categories CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestLedgerPostgres_AltasConcurrentesNoPierdenCompras(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	uc := appinv.NewLedgerUseCase(postgres.NewTxRunner(pool), inventory.DefaultRules(), nil, nil, nil)
	actor := appinv.Actor{UserID: "u-1", Username: "compras"}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Purchase(ctx, actor, dto.PurchaseRequest{ItemName: "Rice", Quantity: decimal.NewFromInt(1), Unit: "KG"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items := postgres.NewInventoryItemRepository(pool)
	it, err := items.Get(ctx, "Rice")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.True(t, it.Quantity.Equal(decimal.NewFromInt(n)), "quantity=%s", it.Quantity)
	assert.True(t, it.TotalPurchased.Equal(decimal.NewFromInt(n)))

	txs, err := postgres.NewTransactionRepository(pool).ListByItem(ctx, "Rice")
	require.NoError(t, err)
	history := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		history = append(history, *tx)
	}
	assert.True(t, it.Quantity.Equal(inventory.Reconcile(history)))
}

func TestLedgerPostgres_AltaDeGerenteDuplicadaConcurrente(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	uc := appinv.NewLedgerUseCase(postgres.NewTxRunner(pool), inventory.DefaultRules(), nil, nil, nil)
	actor := appinv.Actor{UserID: "u-1", Username: "gerente"}

	const n = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ManagerAdd(ctx, actor, dto.ManagerAddRequest{ItemName: "Salt", Quantity: decimal.NewFromInt(5), Category: "Grocery", Unit: "KG"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				oks++
			case assert.ErrorIs(t, err, domain.ErrDuplicate):
				dups++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, oks)
	assert.Equal(t, n-1, dups)
}
