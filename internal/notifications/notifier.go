package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	"socialnet/internal/middleware"
	"socialnet/internal/observability"

	"github.com/redis/go-redis/v9"
)

// EventsChannel is the Redis channel carrying encoded events between instances.
const EventsChannel = "socialnet:events"

// Notifier publishes events. With Redis it publishes to EventsChannel and every
// instance relays the message into its hub; without Redis it delivers locally.
type Notifier struct {
	rdb *redis.Client
	hub *Hub
}

// NewNotifier creates a Notifier. rdb may be nil.
func NewNotifier(rdb *redis.Client, hub *Hub) *Notifier {
	return &Notifier{rdb: rdb, hub: hub}
}

// Publish encodes ev and sends it toward subscribers.
func (n *Notifier) Publish(ctx context.Context, ev Event) error {
	if n == nil {
		return nil
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if n.rdb == nil {
		n.deliverLocal(ev.Type, data)
		return nil
	}

	if err := n.rdb.Publish(ctx, EventsChannel, data).Err(); err != nil {
		// Local clients still get the event even though other instances will not.
		n.deliverLocal(ev.Type, data)
		return fmt.Errorf("publish event: %w", err)
	}
	observability.WebSocketEventsTotal.WithLabelValues(ev.Type, "redis").Inc()
	return nil
}

func (n *Notifier) deliverLocal(eventType string, data []byte) {
	if n.hub == nil {
		return
	}
	n.hub.Deliver(data)
	observability.WebSocketEventsTotal.WithLabelValues(eventType, "local").Inc()
}

// Start subscribes to EventsChannel and relays every message into the hub
// until ctx is cancelled. It is a no-op without Redis.
func (n *Notifier) Start(ctx context.Context) error {
	if n.rdb == nil || n.hub == nil {
		return nil
	}

	sub := n.rdb.Subscribe(ctx, EventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", EventsChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in event subscriber", "panic", r, "stack", string(debug.Stack()))
						}
					}()
					n.hub.Deliver([]byte(msg.Payload))
				}()
			}
		}
	}()

	return nil
}
