// Package relay 將工作區事件轉送到程序外
package relay

import (
	"context"
	"fmt"

	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/codec"
	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/observability"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// DefaultChannelPrefix 預設頻道前綴；頻道名稱為 prefix + workspaceID
const DefaultChannelPrefix = "workspace-events:"

// RedisRelay 以全域訂閱者身分將事件信封發布到 Redis pub/sub
//
// 發布失敗只記錄並返回錯誤，由匯流排隔離，不影響其他處理器。
type RedisRelay struct {
	client *redis.Client
	prefix string
	logger log.FieldLogger
}

// NewRedisRelay 建立轉送器；prefix 為空時使用 DefaultChannelPrefix
func NewRedisRelay(client *redis.Client, prefix string, logger log.FieldLogger) *RedisRelay {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisRelay{
		client: client,
		prefix: prefix,
		logger: observability.OrDefault(logger),
	}
}

var _ shared.EventHandler = (*RedisRelay)(nil)

// Channel 工作區對應的頻道
func (r *RedisRelay) Channel(workspaceID string) string {
	return r.prefix + workspaceID
}

// Attach 以全域訂閱掛上匯流排
func (r *RedisRelay) Attach(bus shared.EventSubscriber) shared.Subscription {
	return bus.SubscribeAll(r)
}

// Handle 編碼並發布事件
func (r *RedisRelay) Handle(ctx context.Context, event shared.DomainEvent) error {
	body, err := codec.Encode(event)
	if err != nil {
		return err
	}

	channel := r.Channel(event.WorkspaceID())
	if err := r.client.Publish(ctx, channel, body).Err(); err != nil {
		r.logger.WithFields(observability.EventFields(event)).
			WithField("channel", channel).
			WithError(err).
			Error("unable to relay event")
		return fmt.Errorf("relay %s to %s: %w", event.EventID(), channel, err)
	}
	return nil
}

// Subscribe 訂閱工作區頻道並將收到的信封交給 handler，直到 ctx 結束
//
// 無法解碼的訊息記錄後略過。
func (r *RedisRelay) Subscribe(ctx context.Context, workspaceID string, handler shared.EventHandler) error {
	sub := r.client.Subscribe(ctx, r.Channel(workspaceID))
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.Channel(workspaceID), err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			env, err := codec.Decode([]byte(msg.Payload))
			if err != nil {
				r.logger.WithField("channel", msg.Channel).WithError(err).Warn("dropping undecodable relay message")
				continue
			}
			if err := handler.Handle(ctx, env); err != nil {
				r.logger.WithFields(observability.EventFields(env)).WithError(err).Error("relay handler failed")
			}
		}
	}
}
