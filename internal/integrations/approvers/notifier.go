package approvers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultRoutingKey ключ маршрутизации уведомлений о новых заявках
const DefaultRoutingKey = "booking.pending"

// RabbitNotifier публикует уведомления для администраторов площадок в topic exchange
type RabbitNotifier struct {
	conn       *amqp.Connection
	ch         Channel
	exchange   string
	routingKey string
	timeout    time.Duration
	now        func() time.Time
	log        Logger
}

// Dial подключается к брокеру и объявляет durable topic exchange
func Dial(url, exchange, routingKey string, timeout time.Duration, log Logger) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	n := NewRabbitNotifier(ch, exchange, routingKey, timeout, log)
	n.conn = conn
	return n, nil
}

// NewRabbitNotifier создает notifier поверх уже открытого канала
func NewRabbitNotifier(ch Channel, exchange, routingKey string, timeout time.Duration, log Logger) *RabbitNotifier {
	if routingKey == "" {
		routingKey = DefaultRoutingKey
	}
	return &RabbitNotifier{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
		timeout:    timeout,
		now:        time.Now,
		log:        log,
	}
}

// NotifyPending отправляет одно сообщение со всеми ожидающими строками заявки
func (n *RabbitNotifier) NotifyPending(ctx context.Context, batchID string, items []PendingItem) error {
	if len(items) == 0 {
		return nil
	}

	body, err := json.Marshal(PendingMessage{
		BatchID: batchID,
		Items:   items,
		SentAt:  n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	err = n.ch.PublishWithContext(ctx, n.exchange, n.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    batchID,
		Timestamp:    n.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: exchange=%s, key=%s: %v", ErrPublish, n.exchange, n.routingKey, err)
	}

	n.log.Info("NotifyPending: published batch_id=%s, items=%d", batchID, len(items))
	return nil
}

// Close закрывает канал и соединение, если они были открыты через Dial
func (n *RabbitNotifier) Close() error {
	if c, ok := n.ch.(*amqp.Channel); ok && c != nil {
		_ = c.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// LogNotifier пишет уведомления в лог, когда брокер выключен
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyPending(_ context.Context, batchID string, items []PendingItem) error {
	for _, item := range items {
		n.log.Info("NotifyPending: batch_id=%s, venue=%q, event=%q, club=%q, start=%s, end=%s",
			batchID, item.VenueName, item.EventName, item.ClubName,
			item.StartTime.Format(time.RFC3339), item.EndTime.Format(time.RFC3339))
	}
	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
