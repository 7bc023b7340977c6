package mock

import (
	"context"

	"github.com/brokermux/brokermux/core"
)

type streamItem struct {
	msg core.Message
	err error
}

// Stream is a core.Stream fed by the test.
type Stream struct {
	items chan streamItem
}

func NewStream() *Stream {
	return &Stream{items: make(chan streamItem, 64)}
}

// Push enqueues a delivery.
func (s *Stream) Push(msg core.Message) {
	s.items <- streamItem{msg: msg}
}

// Fail enqueues a transport fault.
func (s *Stream) Fail(err error) {
	s.items <- streamItem{err: err}
}

// End enqueues a normal end of stream.
func (s *Stream) End() {
	s.items <- streamItem{err: core.ErrStreamClosed}
}

func (s *Stream) Next(ctx context.Context) (core.Message, error) {
	select {
	case <-ctx.Done():
		return nil, core.ErrStreamClosed
	case it := <-s.items:
		return it.msg, it.err
	}
}
