package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/model"
)

const changeFeedPrefix = "changefeed:"

// TableLaboratories is the change feed scope for the laboratories table.
const TableLaboratories = "laboratories"

// publishChange emits a row-level mutation notification. Publishing is
// best-effort: a feed failure never fails the originating write.
func (s *Store) publishChange(ctx context.Context, ev model.ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("table", ev.Table).Msg("Failed to encode change event")
		return
	}
	if err := s.redis.Publish(ctx, changeFeedPrefix+ev.Table, payload).Err(); err != nil {
		log.Error().Err(err).Str("table", ev.Table).Msg("Failed to publish change event")
	}
}

// ChangeSubscription is one live change feed subscription. Events arrive on
// Events() in delivery order until Close is called.
type ChangeSubscription struct {
	pubsub *redis.PubSub
	events chan model.ChangeEvent
}

// SubscribeChanges opens a change feed subscription for the named table.
func (s *Store) SubscribeChanges(ctx context.Context, table string) *ChangeSubscription {
	pubsub := s.redis.Subscribe(ctx, changeFeedPrefix+table)
	sub := &ChangeSubscription{
		pubsub: pubsub,
		events: make(chan model.ChangeEvent, 64),
	}
	go sub.run()
	return sub
}

func (sub *ChangeSubscription) run() {
	defer close(sub.events)
	for msg := range sub.pubsub.Channel() {
		var ev model.ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Warn().Err(err).Msg("Discarding undecodable change event")
			continue
		}
		sub.events <- ev
	}
}

// Events returns the ordered event stream. The channel closes after Close.
func (sub *ChangeSubscription) Events() <-chan model.ChangeEvent {
	return sub.events
}

func (sub *ChangeSubscription) Close() error {
	return sub.pubsub.Close()
}
