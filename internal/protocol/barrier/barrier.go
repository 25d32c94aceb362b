package barrier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sigquery/internal/domain"
)

var (
	// ErrOutOfOrder is returned by Signal when the preceding gate is still closed.
	ErrOutOfOrder = errors.New("gate signalled out of order")
	// ErrUnknownGate is returned for a gate outside the three protocol gates.
	ErrUnknownGate = errors.New("unknown gate")
)

// latch is one gate: a boolean guarded by its own lock and condition variable.
type latch struct {
	mu      sync.Mutex
	cond    *sync.Cond
	open    bool
	aborted error
}

func newLatch() *latch {
	l := &latch{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *latch) isOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Barrier is the shared three-gate phase object of one protocol run.
type Barrier struct {
	latches [domain.NumGates]*latch
}

// New returns a barrier with every gate closed.
func New() *Barrier {
	b := &Barrier{}
	for i := range b.latches {
		b.latches[i] = newLatch()
	}
	return b
}

func (b *Barrier) latch(g domain.Gate) (*latch, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGate, int(g))
	}
	return b.latches[g], nil
}

// Signal opens g and wakes all of its waiters. Signalling an open gate is a
// no-op. The preceding gate must already be open.
func (b *Barrier) Signal(g domain.Gate) error {
	l, err := b.latch(g)
	if err != nil {
		return err
	}
	if g > domain.KeysExchanged && !b.latches[g-1].isOpen() {
		return fmt.Errorf("%w: %s before %s", ErrOutOfOrder, g, g-1)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open {
		return nil
	}
	if l.aborted != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrBarrierWaitAborted, g, l.aborted)
	}
	l.open = true
	l.cond.Broadcast()
	return nil
}

// Await blocks until g is open. It returns immediately when g is already
// open, and fails with domain.ErrBarrierWaitAborted when ctx ends or the
// barrier is aborted first.
func (b *Barrier) Await(ctx context.Context, g domain.Gate) error {
	l, err := b.latch(g)
	if err != nil {
		return err
	}

	// Wake the waiter when ctx ends. The callback takes the lock, so it cannot
	// fire between the predicate check and cond.Wait below.
	stop := context.AfterFunc(ctx, func() {
		l.mu.Lock()
		l.cond.Broadcast()
		l.mu.Unlock()
	})
	defer stop()

	l.mu.Lock()
	defer l.mu.Unlock()
	for !l.open {
		if l.aborted != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrBarrierWaitAborted, g, l.aborted)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrBarrierWaitAborted, g, err)
		}
		l.cond.Wait()
	}
	return nil
}

// Abort fails every pending and future wait on the gates that are still
// closed. Open gates stay open. The first cause wins.
func (b *Barrier) Abort(cause error) {
	if cause == nil {
		cause = errors.New("run aborted")
	}
	for _, l := range b.latches {
		l.mu.Lock()
		if !l.open && l.aborted == nil {
			l.aborted = cause
			l.cond.Broadcast()
		}
		l.mu.Unlock()
	}
}

// IsOpen reports whether g has been signalled.
func (b *Barrier) IsOpen(g domain.Gate) bool {
	l, err := b.latch(g)
	if err != nil {
		return false
	}
	return l.isOpen()
}

// Phase returns the furthest phase reached. Gates open in order, so the
// phase is the count of open gates.
func (b *Barrier) Phase() domain.Phase {
	phase := domain.PhaseInit
	for _, l := range b.latches {
		if !l.isOpen() {
			break
		}
		phase++
	}
	return phase
}
