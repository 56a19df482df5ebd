package receipts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

const EventTypeReceiptIssued = "receipt.issued"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends each receipt to a Kafka topic keyed by receipt id.
type Publisher struct {
	writer messageWriter
}

var _ ports.ReceiptSink = (*Publisher)(nil)

// NewPublisher writes synchronously so Emit reports broker failures.
func NewPublisher(topic string, brokers ...string) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}}
}

func (p *Publisher) Name() string { return "kafka" }

func (p *Publisher) Emit(ctx context.Context, r domain.Receipt) error {
	payload, err := json.Marshal(NewReceiptEvent(r))
	if err != nil {
		return fmt.Errorf("kafka: encode %s: %w", r.ID, err)
	}
	msg := kafka.Message{
		Key:   []byte(r.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeReceiptIssued)},
			{Key: "terminal_id", Value: []byte(r.TerminalID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publish %s: %w", r.ID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// ReceiptEvent is the published shape: amounts are fixed two-decimal strings.
type ReceiptEvent struct {
	ReceiptID       string             `json:"receipt_id"`
	TerminalID      string             `json:"terminal_id"`
	Timestamp       time.Time          `json:"timestamp"`
	Items           []ReceiptEventItem `json:"items"`
	Subtotal        string             `json:"subtotal"`
	DiscountPercent string             `json:"discount_percent"`
	DiscountAmount  string             `json:"discount_amount"`
	TaxRate         string             `json:"tax_rate"`
	TaxAmount       string             `json:"tax_amount"`
	Total           string             `json:"total"`
	PaymentMethod   string             `json:"payment_method"`
	AmountPaid      string             `json:"amount_paid"`
	ChangeDue       string             `json:"change_due"`
	CustomerName    string             `json:"customer_name,omitempty"`
}

type ReceiptEventItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

func NewReceiptEvent(r domain.Receipt) ReceiptEvent {
	items := make([]ReceiptEventItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ReceiptEventItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: money.Format(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: money.Format(it.LineTotal()),
		})
	}
	return ReceiptEvent{
		ReceiptID:       r.ID,
		TerminalID:      r.TerminalID,
		Timestamp:       r.IssuedAt,
		Items:           items,
		Subtotal:        money.Format(r.Subtotal),
		DiscountPercent: r.DiscountPercent.String(),
		DiscountAmount:  money.Format(r.DiscountAmount),
		TaxRate:         r.TaxRate.String(),
		TaxAmount:       money.Format(r.TaxAmount),
		Total:           money.Format(r.Total),
		PaymentMethod:   r.PaymentMethod.String(),
		AmountPaid:      money.Format(r.AmountPaid),
		ChangeDue:       money.Format(r.ChangeDue),
		CustomerName:    r.CustomerName,
	}
}
