// Package telegram envía las alertas de stock bajo a un chat de Telegram.
package telegram

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier implementa ports.Notifier con la Bot API.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	now    func() time.Time
}

// NewNotifier autentica el bot (getMe) contra la API pública.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, chatID, tgbotapi.APIEndpoint, &http.Client{Timeout: 10 * time.Second})
}

// NewNotifierWithEndpoint permite apuntar a otro endpoint (formato "…/bot%s/%s").
func NewNotifierWithEndpoint(token string, chatID int64, endpoint string, client *http.Client) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: iniciar bot: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID, now: time.Now}, nil
}

// Notify envía un mensaje HTML ya formateado.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, message)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: enviar mensaje: %w", err)
	}
	return nil
}

// NotifyLowStock una sola alerta con todos los ítems; sin ítems no envía nada.
func (n *Notifier) NotifyLowStock(ctx context.Context, items []entity.LowStockItem) error {
	if len(items) == 0 {
		return nil
	}
	return n.Notify(ctx, BulkMessage(items, n.now()))
}

// BulkMessage texto HTML de la alerta agrupada.
func BulkMessage(items []entity.LowStockItem, at time.Time) string {
	var b strings.Builder
	b.WriteString("🚨 <b>LOW STOCK ALERT</b> 🚨\n\n")
	fmt.Fprintf(&b, "%d items are below 10%% stock:\n\n", len(items))
	for _, it := range items {
		unit := html.EscapeString(it.Item.Unit)
		fmt.Fprintf(&b, "• <b>%s</b>: %s %s (min: %s)\n",
			html.EscapeString(it.Item.ItemName), it.Item.Quantity.StringFixed(1), unit, it.Threshold.StringFixed(1))
	}
	b.WriteString("\n⚠️ Please restock these items!\n")
	b.WriteString("📅 " + at.Format("02 Jan 2006, 03:04 PM"))
	return b.String()
}
