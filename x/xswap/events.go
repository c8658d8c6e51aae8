package xswap

import (
	"context"
	"sync"

	"github.com/iov-one/xswap/orm"
)

// Listener is notified about every committed event. Events of a single
// swap are delivered in their journal order. OnEvent is called while the
// swap is locked and must not block.
type Listener interface {
	OnEvent(ctx context.Context, e *Event)
}

// ListenerFunc is an adapter to use an ordinary function as a Listener.
type ListenerFunc func(ctx context.Context, e *Event)

// OnEvent calls f(ctx, e).
func (f ListenerFunc) OnEvent(ctx context.Context, e *Event) {
	f(ctx, e)
}

type listeners struct {
	mu sync.RWMutex
	ls []Listener
}

func (l *listeners) add(ln Listener) {
	l.mu.Lock()
	l.ls = append(l.ls, ln)
	l.mu.Unlock()
}

func (l *listeners) notify(ctx context.Context, events []*Event) {
	if len(events) == 0 {
		return
	}
	l.mu.RLock()
	ls := l.ls
	l.mu.RUnlock()

	for _, e := range events {
		for _, ln := range ls {
			ln.OnEvent(ctx, e)
		}
	}
}

// eventSequence numbers the journal of a single swap. It is incremented
// only under the lock of that swap.
func eventSequence(id SwapID) orm.Sequence {
	return orm.NewSequence(bucketEvents, id[:])
}

// eventKey orders the journal by swap and then by sequence.
func eventKey(id SwapID, seq int64) []byte {
	return append(id[:], orm.EncodeSequence(seq)...)
}
