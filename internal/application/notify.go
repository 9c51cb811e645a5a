package application

import "sync"

// MessageKind tags the two notification variants the core and its external
// collaborators exchange across the thread boundary described in §5.
type MessageKind int

const (
	// DataChanged reports that an ingest commit persisted new rows.
	DataChanged MessageKind = iota
	// WindowTick reports that an external ticker completed a window-scan
	// cycle. The core never publishes this itself — see PublishWindowTick.
	WindowTick
)

// Message is the single payload type carried on the notification channel.
// Text is only meaningful for DataChanged.
type Message struct {
	Kind MessageKind
	Text string
}

// Notifier is a single-producer, multi-consumer fan-out of Messages. The
// ingestion pipeline is the one producer; any number of external consumers
// (UI, HUD) subscribe independently and each receives every message.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Message
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Message)}
}

// Subscribe registers a new consumer and returns its channel plus an
// unsubscribe function. The channel is buffered so a slow consumer never
// blocks the producer; Publish drops the message for that consumer instead.
func (n *Notifier) Subscribe() (<-chan Message, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Message, 16)
	n.subs[id] = ch

	unsubscribe := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish fans a message out to every current subscriber without blocking.
func (n *Notifier) Publish(msg Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// PublishDataChanged is the producer-side call the ingestion pipeline makes
// after a commit that persisted new rows.
func (n *Notifier) PublishDataChanged(message string) {
	n.Publish(Message{Kind: DataChanged, Text: message})
}

// PublishWindowTick lets an external ticker publish onto the shared channel;
// the core itself never calls this.
func (n *Notifier) PublishWindowTick() {
	n.Publish(Message{Kind: WindowTick})
}
