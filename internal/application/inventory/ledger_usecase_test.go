package inventory_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	appinv "github.com/jhoicas/restaurant-analytics/internal/application/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var actor = appinv.Actor{UserID: "u-1", Username: "compras"}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal { v := d(s); return &v }

func sp(s string) *string { return &s }

type recordingPublisher struct{ txs []*entity.Transaction }

func (p *recordingPublisher) PublishTransaction(_ context.Context, tx *entity.Transaction) error {
	p.txs = append(p.txs, tx)
	return nil
}

type recordingMetrics struct {
	ports.NopMetrics
	rejected []string
}

func (m *recordingMetrics) LedgerRejected(reason string) { m.rejected = append(m.rejected, reason) }

type failingPublisher struct{}

func (failingPublisher) PublishTransaction(context.Context, *entity.Transaction) error {
	return errors.New("broker caído")
}

func newLedger(t *testing.T, events ports.EventPublisher) (*appinv.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return appinv.NewLedgerUseCase(store, inventory.DefaultRules(), events, nil, nil), store
}

func purchase(t *testing.T, uc *appinv.LedgerUseCase, name, qty string) *entity.InventoryItem {
	t.Helper()
	it, err := uc.Purchase(context.Background(), actor, dto.PurchaseRequest{ItemName: name, Quantity: d(qty), Unit: "KG"})
	require.NoError(t, err)
	return it
}

func history(t *testing.T, store *memory.Store, name string) []entity.Transaction {
	t.Helper()
	txs, err := store.Transactions().ListByItem(context.Background(), name)
	require.NoError(t, err)
	out := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, *tx)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchase_CreaYAcumula(t *testing.T) {
	uc, store := newLedger(t, nil)

	it := purchase(t, uc, "Rice", "10")
	assert.True(t, it.Quantity.Equal(d("10")))
	assert.True(t, it.TotalPurchased.Equal(d("10")))

	it = purchase(t, uc, "Rice", "5")
	assert.True(t, it.Quantity.Equal(d("15")), "10 + 5 debe dar 15")
	assert.True(t, it.TotalPurchased.Equal(d("15")))

	txs := history(t, store, "Rice")
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, entity.TxTypePurchase, tx.Type)
		assert.Equal(t, "compras", tx.Username)
	}
}

func TestPurchase_CalculaMontoYClasifica(t *testing.T) {
	uc, store := newLedger(t, nil)

	it, err := uc.Purchase(context.Background(), actor, dto.PurchaseRequest{
		ItemName: "Fresh Milk", Quantity: d("4"), Rate: dp("2.5"), Vendor: "Lácteos SA",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dairy", it.Category, "sin categoría se usa el clasificador")
	assert.Equal(t, "LTR", it.Unit)

	txs := history(t, store, "Fresh Milk")
	require.Len(t, txs, 1)
	require.NotNil(t, txs[0].Amount)
	assert.True(t, txs[0].Amount.Equal(d("10")), "amount = rate × qty")
	assert.Equal(t, "Lácteos SA", txs[0].Vendor)
}

func TestPurchase_CantidadNoPositiva(t *testing.T) {
	uc, store := newLedger(t, nil)

	for _, q := range []string{"0", "-3", "0.0004"} {
		_, err := uc.Purchase(context.Background(), actor, dto.PurchaseRequest{ItemName: "Rice", Quantity: d(q)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "qty=%s", q)
	}
	assert.Empty(t, history(t, store, "Rice"), "una compra rechazada no deja rastro")

	purchase(t, uc, "Rice", "1")
	_, _, err := uc.Issue(context.Background(), actor, dto.IssueRequest{ItemName: "Rice", Quantity: d("0.0004")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "0.0004 redondea a 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas a cocina
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_DescuentaYDetectaStockBajo(t *testing.T) {
	uc, _ := newLedger(t, nil)
	purchase(t, uc, "Rice", "15")

	it, low, err := uc.Issue(context.Background(), actor, dto.IssueRequest{ItemName: "Rice", Quantity: d("12")})
	require.NoError(t, err)
	assert.True(t, it.Quantity.Equal(d("3")))
	assert.True(t, it.TotalPurchased.Equal(d("15")), "una salida no cambia total_purchased")
	assert.False(t, low, "3 no es menor que el umbral 1.5")

	it, low, err = uc.Issue(context.Background(), actor, dto.IssueRequest{ItemName: "Rice", Quantity: d("2")})
	require.NoError(t, err)
	assert.True(t, it.Quantity.Equal(d("1")))
	assert.True(t, low)
}

func TestIssue_StockInsuficienteNoModifica(t *testing.T) {
	uc, store := newLedger(t, nil)
	purchase(t, uc, "Rice", "3")

	_, _, err := uc.Issue(context.Background(), actor, dto.IssueRequest{ItemName: "Rice", Quantity: d("10")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "3", ise.Available)

	it, err := store.InventoryItems().Get(context.Background(), "Rice")
	require.NoError(t, err)
	assert.True(t, it.Quantity.Equal(d("3")), "la cantidad no debe cambiar")
	assert.Len(t, history(t, store, "Rice"), 1, "no se registra transacción")
}

func TestIssue_ToleranciaPermiteSalidaExacta(t *testing.T) {
	uc, store := newLedger(t, nil)
	purchase(t, uc, "Oil", "2")

	it, _, err := uc.Issue(context.Background(), actor, dto.IssueRequest{ItemName: "Oil", Quantity: d("2.0005")})
	require.NoError(t, err)
	assert.True(t, it.Quantity.IsZero(), "no debe quedar negativo")

	txs := history(t, store, "Oil")
	require.Len(t, txs, 2)
	assert.True(t, txs[0].Quantity.Equal(d("2")), "se registra lo que salió, no lo pedido")
	assert.True(t, inventory.Reconcile(txs).Equal(it.Quantity))
}

func TestIssue_ItemInexistente(t *testing.T) {
	uc, _ := newLedger(t, nil)

	_, _, err := uc.Issue(context.Background(), actor, dto.IssueRequest{ItemName: "Saffron", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones del gerente
// ──────────────────────────────────────────────────────────────────────────────

func TestManagerAdd_Duplicado(t *testing.T) {
	uc, _ := newLedger(t, nil)
	_, err := uc.ManagerAdd(context.Background(), actor, dto.ManagerAddRequest{ItemName: "Salt", Quantity: d("5"), Category: "Grocery", Unit: "KG"})
	require.NoError(t, err)

	_, err = uc.ManagerAdd(context.Background(), actor, dto.ManagerAddRequest{ItemName: "Salt", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestManagerUpdate_AjustesDeCantidad(t *testing.T) {
	uc, store := newLedger(t, nil)
	purchase(t, uc, "Sugar", "10")

	it, err := uc.ManagerUpdate(context.Background(), actor, dto.ManagerUpdateRequest{OriginalName: "Sugar", Quantity: dp("4")})
	require.NoError(t, err)
	assert.True(t, it.Quantity.Equal(d("4")))

	it, err = uc.ManagerUpdate(context.Background(), actor, dto.ManagerUpdateRequest{OriginalName: "Sugar", Quantity: dp("20")})
	require.NoError(t, err)
	assert.True(t, it.Quantity.Equal(d("20")))
	assert.True(t, it.TotalPurchased.GreaterThanOrEqual(it.Quantity), "quantity <= total_purchased")

	txs := history(t, store, "Sugar")
	require.Len(t, txs, 3)
	// más reciente primero
	assert.Equal(t, entity.TxTypePurchase, txs[0].Type)
	assert.True(t, txs[0].Quantity.Equal(d("16")))
	assert.Equal(t, entity.NoteManagerAdjustment, txs[0].Notes)
	assert.Equal(t, entity.TxTypeKitchen, txs[1].Type)
	assert.True(t, txs[1].Quantity.Equal(d("6")))
	assert.Equal(t, entity.NoteManagerAdjustment, txs[1].Notes)
}

func TestManagerUpdate_RenombrarYColision(t *testing.T) {
	uc, store := newLedger(t, nil)
	purchase(t, uc, "Tomato", "5")
	purchase(t, uc, "Onion", "5")

	_, err := uc.ManagerUpdate(context.Background(), actor, dto.ManagerUpdateRequest{OriginalName: "Tomato", NewName: sp("Onion")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	it, err := uc.ManagerUpdate(context.Background(), actor, dto.ManagerUpdateRequest{OriginalName: "Tomato", NewName: sp("Roma Tomato")})
	require.NoError(t, err)
	assert.Equal(t, "Roma Tomato", it.ItemName)

	old, err := store.InventoryItems().Get(context.Background(), "Tomato")
	require.NoError(t, err)
	assert.Nil(t, old)

	txs := history(t, store, "Roma Tomato")
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TxTypeManagerEdit, txs[0].Type)
	assert.True(t, txs[0].Quantity.IsZero())
	assert.Equal(t, entity.RenamedFromPrefix+"Tomato", txs[0].Notes)

	// el historial previo queda bajo el nombre anterior; sumando ambos se reconcilia
	all := append(history(t, store, "Tomato"), txs...)
	assert.True(t, it.Quantity.Equal(inventory.Reconcile(all)))
}

func TestManagerUpdate_SinCambiosNoRegistra(t *testing.T) {
	uc, store := newLedger(t, nil)
	purchase(t, uc, "Salt", "5")

	_, err := uc.ManagerUpdate(context.Background(), actor, dto.ManagerUpdateRequest{OriginalName: "Salt", Quantity: dp("5")})
	require.NoError(t, err)
	assert.Len(t, history(t, store, "Salt"), 1)
}

func TestManagerDelete(t *testing.T) {
	uc, store := newLedger(t, nil)
	purchase(t, uc, "Salt", "5")

	require.NoError(t, uc.ManagerDelete(context.Background(), actor, dto.ManagerDeleteRequest{ItemName: "Salt"}))

	it, err := store.InventoryItems().Get(context.Background(), "Salt")
	require.NoError(t, err)
	assert.Nil(t, it)

	txs := history(t, store, "Salt")
	require.Len(t, txs, 2)
	assert.Equal(t, entity.TxTypeManagerDelete, txs[0].Type)
	assert.True(t, txs[0].Quantity.Equal(d("5")))

	err = uc.ManagerDelete(context.Background(), actor, dto.ManagerDeleteRequest{ItemName: "Salt"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestManagerDelete_RechazosCuentanEnMetricas(t *testing.T) {
	m := &recordingMetrics{}
	uc := appinv.NewLedgerUseCase(memory.NewStore(), inventory.DefaultRules(), nil, m, nil)

	err := uc.ManagerDelete(context.Background(), actor, dto.ManagerDeleteRequest{ItemName: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.ManagerDelete(context.Background(), actor, dto.ManagerDeleteRequest{ItemName: "Salt"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []string{"invalid_input", "not_found"}, m.rejected)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría y eventos
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ReconciliaConElHistorial(t *testing.T) {
	uc, store := newLedger(t, nil)
	ctx := context.Background()

	purchase(t, uc, "Flour", "10")
	purchase(t, uc, "Flour", "7.5")
	_, _, err := uc.Issue(ctx, actor, dto.IssueRequest{ItemName: "Flour", Quantity: d("4.25")})
	require.NoError(t, err)
	_, _, err = uc.Issue(ctx, actor, dto.IssueRequest{ItemName: "Flour", Quantity: d("100")})
	require.Error(t, err)

	it, err := store.InventoryItems().Get(ctx, "Flour")
	require.NoError(t, err)
	assert.True(t, it.Quantity.Equal(inventory.Reconcile(history(t, store, "Flour"))),
		"la cantidad debe igualar la reconstrucción desde el log")
}

func TestLedger_OperacionesConcurrentes(t *testing.T) {
	uc, store := newLedger(t, nil)
	ctx := context.Background()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Purchase(ctx, actor, dto.PurchaseRequest{ItemName: "Rice", Quantity: d("2"), Unit: "KG"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var rejected atomic.Int32
	for i := 0; i < n*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := uc.Issue(ctx, actor, dto.IssueRequest{ItemName: "Rice", Quantity: d("1.5")})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	it, err := store.InventoryItems().Get(ctx, "Rice")
	require.NoError(t, err)
	assert.True(t, it.TotalPurchased.Equal(d("100")), "ninguna compra se pierde")
	// 100 / 1.5 = 66 salidas caben, quedan 1
	assert.Equal(t, int32(n*2-66), rejected.Load())
	assert.True(t, it.Quantity.Equal(d("1")))
	assert.True(t, it.Quantity.Equal(inventory.Reconcile(history(t, store, "Rice"))))
}

func TestLedger_PublicaEventos(t *testing.T) {
	pub := &recordingPublisher{}
	uc, _ := newLedger(t, pub)

	purchase(t, uc, "Rice", "10")
	_, _, err := uc.Issue(context.Background(), actor, dto.IssueRequest{ItemName: "Rice", Quantity: d("1")})
	require.NoError(t, err)

	require.Len(t, pub.txs, 2)
	assert.Equal(t, entity.TxTypeKitchen, pub.txs[1].Type)
}

func TestLedger_FalloDePublicacionNoRevierte(t *testing.T) {
	uc, store := newLedger(t, failingPublisher{})

	purchase(t, uc, "Rice", "10")
	it, err := store.InventoryItems().Get(context.Background(), "Rice")
	require.NoError(t, err)
	assert.True(t, it.Quantity.Equal(d("10")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación de planilla de compras
// ──────────────────────────────────────────────────────────────────────────────

type stubSheet struct{ sheet *ports.PurchaseSheet }

func (s stubSheet) ReadPurchaseSheet(io.Reader) (*ports.PurchaseSheet, error) { return s.sheet, nil }
func (s stubSheet) Template() ([]byte, error)                                 { return []byte("xlsx"), nil }

func TestPurchaseImport_PrioridadDeCategoria(t *testing.T) {
	uc, store := newLedger(t, nil)
	_, err := uc.ManagerAdd(context.Background(), actor, dto.ManagerAddRequest{ItemName: "Paneer", Category: "Dairy", Unit: "KG", Quantity: d("1")})
	require.NoError(t, err)

	sheet := &ports.PurchaseSheet{
		Headers: []string{"Item Name", "Qty", "Category", "Rate", "Vendor"},
		Rows: []ports.SheetRow{
			{"Item Name": "Coca Cola", "Qty": "12", "Category": "beverages", "Rate": "1.5", "Vendor": "Distribuidora"},
			{"Item Name": "paneer", "Qty": "3", "Category": "Desconocida"},
			{"Item Name": "Mango", "Qty": "x"},
			{"Item Name": "nan", "Qty": "1"},
			{"Item Name": "", "Qty": "1"},
		},
	}
	imp := appinv.NewPurchaseImportUseCase(stubSheet{sheet}, store.InventoryItems(), uc)

	out, err := imp.Preview(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 3, out.Count, "se omiten filas vacías y 'nan'")

	assert.Equal(t, "Beverages", out.Items[0].Category)
	assert.Equal(t, appinv.SourceSheet, out.Items[0].CategorySource)
	require.NotNil(t, out.Items[0].Amount)
	assert.True(t, out.Items[0].Amount.Equal(d("18")))
	assert.Equal(t, "Distribuidora", out.Items[0].Vendor)

	assert.Equal(t, "Dairy", out.Items[1].Category)
	assert.Equal(t, appinv.SourceInventory, out.Items[1].CategorySource)
	assert.Equal(t, "KG", out.Items[1].Unit)

	assert.Equal(t, "Fruits", out.Items[2].Category)
	assert.True(t, out.Items[2].AutoDetected)
	assert.True(t, out.Items[2].Quantity.IsZero(), "cantidad ilegible se toma como 0")
	assert.Equal(t, 1, out.WarningCount)
	assert.Equal(t, []string{"Mango"}, out.WarningItems)
}

func TestPurchaseImport_UploadAcumulaErrores(t *testing.T) {
	uc, store := newLedger(t, nil)
	imp := appinv.NewPurchaseImportUseCase(stubSheet{}, store.InventoryItems(), uc)

	out, err := imp.Upload(context.Background(), actor, dto.PurchaseUploadRequest{Items: []dto.PurchasePreviewItem{
		{ItemName: "Rice", Category: "Grocery", Unit: "KG", Quantity: d("10")},
		{ItemName: "Mango", Category: "Fruits", Unit: "KG", Quantity: d("0")},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.AddedCount)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "Mango")

	it, err := store.InventoryItems().Get(context.Background(), "Rice")
	require.NoError(t, err)
	require.NotNil(t, it)
}
