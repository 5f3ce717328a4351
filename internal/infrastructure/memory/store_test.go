package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/memory"
)

func TestRun_RollbackDescartaCambios(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	boom := errors.New("fallo")
	err := store.Run(ctx, func(items repository.InventoryItemRepository, txs repository.TransactionRepository, _ repository.CategoryRepository) error {
		require.NoError(t, items.Upsert(ctx, &entity.InventoryItem{ItemName: "Rice", Quantity: decimal.NewFromInt(5)}))
		require.NoError(t, txs.Append(ctx, &entity.Transaction{ID: "t1", ItemName: "Rice", Type: entity.TxTypePurchase}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	it, err := store.InventoryItems().Get(ctx, "Rice")
	require.NoError(t, err)
	assert.Nil(t, it, "el ítem no debe persistir tras el rollback")

	list, err := store.Transactions().List(ctx, entity.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.Run(ctx, func(items repository.InventoryItemRepository, _ repository.TransactionRepository, _ repository.CategoryRepository) error {
		return items.Upsert(ctx, &entity.InventoryItem{ItemName: "Rice", Category: "Grocery", Quantity: decimal.NewFromInt(5)})
	})
	require.NoError(t, err)

	n, err := store.InventoryItems().CountByCategory(ctx, "Grocery")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestItems_LecturasSonCopias(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.InventoryItems().Upsert(ctx, &entity.InventoryItem{ItemName: "Rice", Quantity: decimal.NewFromInt(5)}))

	it, err := store.InventoryItems().Get(ctx, "Rice")
	require.NoError(t, err)
	it.Quantity = decimal.NewFromInt(99)

	again, err := store.InventoryItems().Get(ctx, "Rice")
	require.NoError(t, err)
	assert.True(t, again.Quantity.Equal(decimal.NewFromInt(5)))
}

func TestTransactions_FiltroYLimite(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Transactions().Append(ctx, &entity.Transaction{
			ID: string(rune('a' + i)), ItemName: "Rice", Type: entity.TxTypePurchase, CreatedAt: base.AddDate(0, 0, i),
		}))
	}

	out, err := store.Transactions().List(ctx, entity.TransactionFilter{From: base.AddDate(0, 0, 1), To: base.AddDate(0, 0, 4), Limit: 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "d", out[0].ID)
	assert.Equal(t, "c", out[1].ID)

	n, err := store.Transactions().DeleteOlderThan(ctx, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCategories_SembradasYUnicas(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	dairy, err := store.Categories().GetByName(ctx, "Dairy")
	require.NoError(t, err)
	require.NotNil(t, dairy)

	missing, err := store.Categories().GetByName(ctx, "Meat")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDatasetStore_Replace(t *testing.T) {
	ds := memory.NewDatasetStore(nil)
	ctx := context.Background()

	cur, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.True(t, cur.Empty())

	require.NoError(t, ds.Replace(ctx, &entity.Dataset{Sales: []entity.SaleRecord{{ItemName: "Biryani"}}}))
	cur, err = ds.Load(ctx)
	require.NoError(t, err)
	assert.False(t, cur.Empty())
	assert.False(t, cur.LoadedAt.IsZero())
}
