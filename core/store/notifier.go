package store

import "sync"

// subscriber buffer size. Consumers re-fetch everything on any event, so a
// dropped event during a full buffer costs nothing.
const eventBuffer = 16

// notifier fans change events out to table-scoped subscribers. It models the
// hosted store's realtime feed for in-process consumers: one subscription per
// consumer lifetime, events keyed by table and change kind.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscription
}

type subscription struct {
	tables map[string]struct{}
	ch     chan Event
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]*subscription)}
}

// Subscribe registers a consumer for the given tables (all tables when none
// are named). The returned cancel is idempotent.
func (n *notifier) Subscribe(tables ...string) (<-chan Event, func()) {
	sub := &subscription{ch: make(chan Event, eventBuffer)}
	if len(tables) > 0 {
		sub.tables = make(map[string]struct{}, len(tables))
		for _, t := range tables {
			sub.tables[t] = struct{}{}
		}
	}

	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = sub
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// publish delivers an event to every matching subscriber without blocking.
func (n *notifier) publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		if sub.tables != nil {
			if _, ok := sub.tables[ev.Table]; !ok {
				continue
			}
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
