package notifier

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisBridge ретранслирует события изменения бронирований через
// redis pub/sub, чтобы подписчики на любой реплике сервиса получали
// события, опубликованные другими репликами.
//
// Канал остается best-effort: redis pub/sub не хранит backlog,
// подключившийся позже наблюдатель перечитывает состояние сам.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
	log     Logger
}

// NewRedisBridge создает мост между hub и redis-каналом
func NewRedisBridge(client *redis.Client, channel string, hub *Hub, log Logger) *RedisBridge {
	return &RedisBridge{
		client:  client,
		channel: channel,
		hub:     hub,
		log:     log,
	}
}

// BookingChanged публикует событие в redis-канал. Локальная доставка
// происходит при получении события обратно из подписки Run - включая
// собственные публикации. При недоступности redis событие доставляется
// локальным подписчикам напрямую.
func (b *RedisBridge) BookingChanged(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		b.log.Error("notifier: failed to marshal event: %v", err)
		return
	}

	if err := b.client.Publish(context.Background(), b.channel, payload).Err(); err != nil {
		b.log.Warn("notifier: redis publish failed, delivering locally only: %v", err)
		b.hub.Publish(ev)
	}
}

// Run слушает redis-канал и транслирует события в локальный hub.
// Блокируется до отмены контекста.
func (b *RedisBridge) Run(ctx context.Context) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	b.log.Info("notifier: redis bridge subscribed to channel %q", b.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.log.Info("notifier: redis bridge stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				b.log.Warn("notifier: redis subscription closed")
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Warn("notifier: ignoring malformed event payload: %v", err)
				continue
			}
			b.hub.Publish(ev)
		}
	}
}
