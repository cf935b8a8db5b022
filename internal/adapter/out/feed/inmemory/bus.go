package inmemory

import (
	"context"
	"sync"

	"bulletin/internal/service"
)

const DefaultBuffer = 16

// Bus fans listing state snapshots out to subscribers of a topic. A slow
// subscriber loses its oldest buffered snapshots, never the newest one.
type Bus[T any] struct {
	mu sync.RWMutex
	// topic -> subscriber channels
	subs map[string]map[chan service.ListingState[T]]struct{}
	buf  int
}

func New[T any](buf int) *Bus[T] {
	if buf <= 0 {
		buf = DefaultBuffer
	}
	return &Bus[T]{
		subs: make(map[string]map[chan service.ListingState[T]]struct{}),
		buf:  buf,
	}
}

var _ service.StatePublisher[struct{}] = (*Bus[struct{}])(nil)

// Subscribe registers a channel for topic. The channel is closed once ctx
// is done.
func (b *Bus[T]) Subscribe(ctx context.Context, topic string) (<-chan service.ListingState[T], error) {
	ch := make(chan service.ListingState[T], b.buf)

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[chan service.ListingState[T]]struct{})
	}
	b.subs[topic][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if set := b.subs[topic]; set != nil {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(b.subs, topic)
				}
			}
		}
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

func (b *Bus[T]) Publish(_ context.Context, topic string, state service.ListingState[T]) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[topic] {
		select {
		case ch <- state:
			continue
		default:
		}
		// full: drop the oldest snapshot and retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
	return nil
}

// Subscribers reports how many channels listen on topic.
func (b *Bus[T]) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
