package telegram_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/telegram"
)

// fakeBotAPI responde getMe y sendMessage y guarda los textos enviados.
type fakeBotAPI struct {
	mu   sync.Mutex
	sent []url.Values
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"alerts","username":"alerts_bot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		_ = r.ParseForm()
		f.mu.Lock()
		f.sent = append(f.sent, r.PostForm)
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"message_id": 1, "date": 0, "chat": map[string]any{"id": 42, "type": "private"}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newNotifier(t *testing.T) (*telegram.Notifier, *fakeBotAPI) {
	t.Helper()
	api := &fakeBotAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	n, err := telegram.NewNotifierWithEndpoint("token", 42, srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)
	return n, api
}

func lowItem(name string, qty, threshold int64) entity.LowStockItem {
	return entity.LowStockItem{
		Item:      entity.InventoryItem{ItemName: name, Unit: "KG", Quantity: decimal.NewFromInt(qty)},
		Threshold: decimal.NewFromInt(threshold),
	}
}

func TestNotify_EnviaHTML(t *testing.T) {
	n, api := newNotifier(t)

	require.NoError(t, n.Notify(context.Background(), "<b>hola</b>"))

	require.Len(t, api.sent, 1)
	assert.Equal(t, "42", api.sent[0].Get("chat_id"))
	assert.Equal(t, "HTML", api.sent[0].Get("parse_mode"))
	assert.Equal(t, "<b>hola</b>", api.sent[0].Get("text"))
}

func TestNotifyLowStock_SinItemsNoEnvia(t *testing.T) {
	n, api := newNotifier(t)
	require.NoError(t, n.NotifyLowStock(context.Background(), nil))
	assert.Empty(t, api.sent)
}

func TestNotifyLowStock_UnSoloMensaje(t *testing.T) {
	n, api := newNotifier(t)
	items := []entity.LowStockItem{lowItem("Onion", 1, 5), lowItem("Salt & Pepper", 0, 2)}

	require.NoError(t, n.NotifyLowStock(context.Background(), items))

	require.Len(t, api.sent, 1)
	text := api.sent[0].Get("text")
	assert.Contains(t, text, "2 items are below 10% stock")
	assert.Contains(t, text, "<b>Onion</b>: 1.0 KG (min: 5.0)")
	assert.Contains(t, text, "Salt &amp; Pepper")
}

func TestNotify_ContextoCancelado(t *testing.T) {
	n, api := newNotifier(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, n.Notify(ctx, "x"))
	assert.Empty(t, api.sent)
}

func TestBulkMessage_Fecha(t *testing.T) {
	msg := telegram.BulkMessage([]entity.LowStockItem{lowItem("Rice", 1, 3)}, time.Date(2024, 5, 7, 14, 5, 0, 0, time.UTC))
	assert.True(t, strings.HasSuffix(msg, "07 May 2024, 02:05 PM"))
}
