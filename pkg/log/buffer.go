package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Buffer delivers entries to transporters from a single background worker.
// When the queue is full the oldest queued entry is dropped.
type Buffer struct {
	entries      chan Entry
	transporters []Transporter
	fallback     io.Writer
	dropped      atomic.Int64
	closed       atomic.Bool
	done         chan struct{}
	wg           sync.WaitGroup
}

// NewBuffer creates a buffer with the given capacity and starts its worker.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		entries:      make(chan Entry, capacity),
		transporters: transporters,
		fallback:     os.Stderr,
		done:         make(chan struct{}),
	}

	b.wg.Add(1)
	go b.worker()

	return b
}

// Send queues an entry for delivery. Safe for concurrent use; a no-op after Close.
func (b *Buffer) Send(entry Entry) {
	if b.closed.Load() {
		return
	}

	select {
	case b.entries <- entry:
		return
	default:
	}

	// Full: make room by discarding the oldest entry, then retry once.
	select {
	case <-b.entries:
		b.dropped.Add(1)
	default:
	}
	select {
	case b.entries <- entry:
	default:
		b.dropped.Add(1)
	}
}

// DroppedCount returns the number of entries dropped due to overflow.
func (b *Buffer) DroppedCount() int64 {
	return b.dropped.Load()
}

// Close stops the worker, flushes queued entries and closes the transporters.
// Safe to call multiple times.
func (b *Buffer) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}

	close(b.done)
	b.wg.Wait()

	for {
		select {
		case entry := <-b.entries:
			b.deliver(entry)
		default:
			for _, t := range b.transporters {
				if err := t.Close(); err != nil {
					fmt.Fprintf(b.fallback, "log transporter %q close failed: %v\n", t.Name(), err)
				}
			}
			return
		}
	}
}

func (b *Buffer) worker() {
	defer b.wg.Done()

	for {
		select {
		case entry := <-b.entries:
			b.deliver(entry)
		case <-b.done:
			return
		}
	}
}

// deliver fans an entry out to every transporter; failures go to stderr.
func (b *Buffer) deliver(entry Entry) {
	for _, t := range b.transporters {
		if err := t.Write(entry); err != nil {
			fmt.Fprintf(b.fallback, "log transporter %q failed: %v\n", t.Name(), err)
		}
	}
}
