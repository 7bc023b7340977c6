package mock

import "sync"

// Message is a core.Message implementation for testing. It counts Ack
// and Reject calls so tests can assert exactly-once acknowledgement.
type Message struct {
	Exch    string
	Key     string
	Redeliv bool
	Payload []byte

	// AckErr / RejectErr are returned by Ack / Reject when set.
	AckErr    error
	RejectErr error

	// BlockAck, when non-nil, makes Ack wait until the channel is closed.
	// Used to observe state while acknowledgement I/O is in flight.
	BlockAck chan struct{}

	mu      sync.Mutex
	acks    int
	rejects []bool
}

func (m *Message) Exchange() string   { return m.Exch }
func (m *Message) RoutingKey() string { return m.Key }
func (m *Message) Redelivered() bool  { return m.Redeliv }
func (m *Message) Body() []byte       { return m.Payload }

func (m *Message) Ack() error {
	if m.BlockAck != nil {
		<-m.BlockAck
	}
	m.mu.Lock()
	m.acks++
	m.mu.Unlock()
	return m.AckErr
}

func (m *Message) Reject(requeue bool) error {
	m.mu.Lock()
	m.rejects = append(m.rejects, requeue)
	m.mu.Unlock()
	return m.RejectErr
}

// AckCalls returns how many times Ack was called.
func (m *Message) AckCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acks
}

// RejectCalls returns the requeue flag of every Reject call, in order.
func (m *Message) RejectCalls() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]bool, len(m.rejects))
	copy(out, m.rejects)
	return out
}
