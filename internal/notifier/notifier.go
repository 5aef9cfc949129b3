// Package notifier implements the in-process fan-out of draft state changes
// to live subscribers. Delivery is at-most-once per currently-connected
// subscriber: events published while an owner has no subscribers are dropped,
// and a subscriber whose channel is full is skipped rather than blocked on.
package notifier

import (
	"sync"

	"go.uber.org/zap"

	"meal-server/internal/models"
)

const subscriberBufferSize = 16

// Notifier broadcasts draft events to all live subscribers of the owning
// user. Safe for concurrent use from request handlers and background tasks.
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan models.DraftEvent]struct{}
	maxPerUser  int
	logger      *zap.Logger
}

// New creates a Notifier. maxPerUser bounds the number of simultaneous
// subscriptions per owner; zero or negative means unbounded.
func New(maxPerUser int, logger *zap.Logger) *Notifier {
	return &Notifier{
		subscribers: make(map[string]map[chan models.DraftEvent]struct{}),
		maxPerUser:  maxPerUser,
		logger:      logger.Named("Notifier"),
	}
}

// Subscribe registers a new private receive channel for the given owner.
// Returns false when the owner already holds the maximum number of
// subscriptions.
func (n *Notifier) Subscribe(userID string) (chan models.DraftEvent, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	set := n.subscribers[userID]
	if n.maxPerUser > 0 && len(set) >= n.maxPerUser {
		n.logger.Warn("Subscription limit reached",
			zap.String("userID", userID),
			zap.Int("limit", n.maxPerUser))
		return nil, false
	}

	if set == nil {
		set = make(map[chan models.DraftEvent]struct{})
		n.subscribers[userID] = set
	}
	ch := make(chan models.DraftEvent, subscriberBufferSize)
	set[ch] = struct{}{}

	n.logger.Debug("Subscriber registered", zap.String("userID", userID), zap.Int("active", len(set)))
	return ch, true
}

// Unsubscribe removes and closes the channel. No-op if it was already
// removed, so deferred cleanup on stream termination is always safe.
func (n *Notifier) Unsubscribe(userID string, ch chan models.DraftEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()

	set := n.subscribers[userID]
	if set == nil {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(n.subscribers, userID)
	}
	n.logger.Debug("Subscriber removed", zap.String("userID", userID), zap.Int("active", len(set)))
}

// Publish delivers the event to every currently subscribed channel for the
// owner. Events for owners with no subscribers are dropped silently; a full
// subscriber channel drops the event for that subscriber only.
func (n *Notifier) Publish(userID string, event models.DraftEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.subscribers[userID] {
		select {
		case ch <- event:
		default:
			n.logger.Warn("Subscriber queue full, dropping event",
				zap.String("userID", userID),
				zap.String("eventType", event.Type))
		}
	}
}

// SubscriberCount reports the number of live subscriptions for an owner.
func (n *Notifier) SubscriberCount(userID string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers[userID])
}
