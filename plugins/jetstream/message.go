package jetstream

import (
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// message adapts a JetStream message to core.Message.
type message struct {
	msg        jetstream.Msg
	exchange   string
	routingKey string
}

func newMessage(msg jetstream.Msg) *message {
	exchange, routingKey := splitSubject(msg.Subject())
	return &message{msg: msg, exchange: exchange, routingKey: routingKey}
}

func (m *message) Exchange() string   { return m.exchange }
func (m *message) RoutingKey() string { return m.routingKey }
func (m *message) Body() []byte       { return m.msg.Data() }

// Redelivered reports whether the server has delivered this message before.
func (m *message) Redelivered() bool {
	meta, err := m.msg.Metadata()
	if err != nil {
		return false
	}
	return meta.NumDelivered > 1
}

// Ack acknowledges the message, marking it as processed.
func (m *message) Ack() error {
	if err := m.msg.Ack(); err != nil {
		return fmt.Errorf("brokermux/jetstream: ack: %w", err)
	}
	return nil
}

// Reject maps the requeue flag onto JetStream semantics: Nak asks the
// server to redeliver, Term drops the message for good.
func (m *message) Reject(requeue bool) error {
	if requeue {
		if err := m.msg.Nak(); err != nil {
			return fmt.Errorf("brokermux/jetstream: nak: %w", err)
		}
		return nil
	}
	if err := m.msg.Term(); err != nil {
		return fmt.Errorf("brokermux/jetstream: term: %w", err)
	}
	return nil
}
