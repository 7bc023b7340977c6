package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// message adapts an amqp.Delivery to core.Message.
type message struct {
	delivery amqp.Delivery
}

func (m *message) Exchange() string    { return m.delivery.Exchange }
func (m *message) RoutingKey() string  { return m.delivery.RoutingKey }
func (m *message) Redelivered() bool   { return m.delivery.Redelivered }
func (m *message) Body() []byte        { return m.delivery.Body }

// Ack acknowledges the delivery, removing it from the queue.
func (m *message) Ack() error {
	if err := m.delivery.Ack(false); err != nil {
		return fmt.Errorf("brokermux/rabbitmq: ack: %w", err)
	}
	return nil
}

// Reject negatively acknowledges the delivery. If requeue is true the
// broker returns it to the queue for redelivery.
func (m *message) Reject(requeue bool) error {
	if err := m.delivery.Reject(requeue); err != nil {
		return fmt.Errorf("brokermux/rabbitmq: reject: %w", err)
	}
	return nil
}
