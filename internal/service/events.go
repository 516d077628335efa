package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/wingedflyer/portal/internal/domain"
)

const eventChannelPrefix = "portal:events:"

// EventService fans participant activity out over redis pub/sub so
// institution dashboards can follow it live.
type EventService struct {
	rdb *redis.Client
}

func NewEventService(rdb *redis.Client) *EventService {
	return &EventService{rdb: rdb}
}

func eventChannel(responsibleID int64) string {
	return fmt.Sprintf("%s%d", eventChannelPrefix, responsibleID)
}

func (s *EventService) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	return s.rdb.Publish(ctx, eventChannel(event.ResponsibleID), payload).Err()
}

// Subscribe delivers events for one institution until ctx is done. The
// returned channel is closed on exit.
func (s *EventService) Subscribe(ctx context.Context, responsibleID int64) (<-chan domain.Event, error) {
	pubsub := s.rdb.Subscribe(ctx, eventChannel(responsibleID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, errors.Wrap(err, "subscribe events")
	}

	out := make(chan domain.Event)
	go func() {
		defer close(out)
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event domain.Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
