package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

// engagement events fan out on one channel per work plus a firehose.
const (
	EventChannelPrefix = "engagement:"
	EventChannelAll    = "engagement:*"
)

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

// Publish fans an engagement event out to subscribers of the work's channel.
func (s *SignalService) Publish(ctx context.Context, event domain.EngagementEvent) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, EventChannelPrefix+event.ContentID, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime pumps engagement events for the works requested on input into
// output until ctx is done. Each message on input replaces the whole
// subscription set; an empty set means the firehose.
func (s *SignalService) Realtime(ctx context.Context, input chan []string, output chan domain.EngagementEvent) {

	pubsub := s.rdb.PSubscribe(ctx, EventChannelAll)
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case contentIDs, ok := <-input:
			if !ok {
				return
			}
			patterns := []string{EventChannelAll}
			if len(contentIDs) > 0 {
				patterns = patterns[:0]
				for _, id := range contentIDs {
					patterns = append(patterns, EventChannelPrefix+id)
				}
			}
			if err := pubsub.PUnsubscribe(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to reset subscription",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				return
			}
			if err := pubsub.PSubscribe(ctx, patterns...); err != nil {
				slog.ErrorContext(ctx, "failed to subscribe",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				return
			}
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var event domain.EngagementEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(ctx, "dropping malformed event",
					slog.String("channel", msg.Channel),
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
