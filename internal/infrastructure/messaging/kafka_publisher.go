// Package messaging publica las transacciones del ledger en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// TransactionEvent payload JSON de cada mensaje.
type TransactionEvent struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	ItemName  string           `json:"item_name"`
	Category  string           `json:"category"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Unit      string           `json:"unit"`
	Username  string           `json:"username"`
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Vendor    string           `json:"vendor,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implementa ports.EventPublisher.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher crea el writer; la conexión se abre en la primera escritura.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	})
}

// NewKafkaPublisherWithWriter usa un writer ya construido.
func NewKafkaPublisherWithWriter(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, timeout: 5 * time.Second}
}

// PublishTransaction escribe un mensaje por transacción, con el ítem como key
// para conservar el orden por ítem dentro de la partición.
func (p *KafkaPublisher) PublishTransaction(ctx context.Context, tx *entity.Transaction) error {
	msg, err := Message(tx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: escribir evento %s: %w", tx.Type, err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Message arma el mensaje Kafka de una transacción.
func Message(tx *entity.Transaction) (kafka.Message, error) {
	payload, err := json.Marshal(TransactionEvent{
		ID:        tx.ID,
		Type:      tx.Type,
		ItemName:  tx.ItemName,
		Category:  tx.Category,
		Quantity:  tx.Quantity,
		Unit:      tx.Unit,
		Username:  tx.Username,
		Rate:      tx.Rate,
		Amount:    tx.Amount,
		Vendor:    tx.Vendor,
		Notes:     tx.Notes,
		Timestamp: tx.CreatedAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: serializar evento: %w", err)
	}
	return kafka.Message{
		Key:   []byte(tx.ItemName),
		Value: payload,
		Time:  tx.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(tx.Type)},
		},
	}, nil
}
