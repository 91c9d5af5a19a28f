// Package codec 領域事件的線上格式
//
// 事件歸檔與跨程序轉送共用同一份 JSON 信封。
package codec

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackyeh168/workspace_hub/src/internal/domain/shared"
)

// Envelope 事件信封
//
// 解碼後的信封本身實作 shared.DomainEvent，Data() 返回原始 JSON 負載；
// 需要具體類型時使用 PayloadAs。
type Envelope struct {
	ID          string                 `json:"event_id"`
	Type        string                 `json:"event_type"`
	Aggregate   string                 `json:"aggregate_id"`
	Workspace   string                 `json:"workspace_id,omitempty"`
	Correlation string                 `json:"correlation_id"`
	Causation   string                 `json:"causation_id,omitempty"`
	At          time.Time              `json:"occurred_at"`
	Payload     sonic.NoCopyRawMessage `json:"payload,omitempty"`
}

var _ shared.DomainEvent = (*Envelope)(nil)

// Wrap 將事件轉為信封並編碼負載
func Wrap(event shared.DomainEvent) (*Envelope, error) {
	if event == nil {
		return nil, shared.ErrNilEvent
	}

	payload, err := sonic.Marshal(event.Data())
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.EventType(), err)
	}

	return &Envelope{
		ID:          event.EventID(),
		Type:        event.EventType(),
		Aggregate:   event.AggregateID(),
		Workspace:   event.WorkspaceID(),
		Correlation: event.CorrelationID(),
		Causation:   event.CausationID(),
		At:          event.OccurredAt().UTC(),
		Payload:     payload,
	}, nil
}

// Encode 事件 → JSON
func Encode(event shared.DomainEvent) ([]byte, error) {
	env, err := Wrap(event)
	if err != nil {
		return nil, err
	}
	return sonic.Marshal(env)
}

// Decode JSON → 信封
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}
	if env.ID == "" || env.Type == "" {
		return nil, fmt.Errorf("decode event envelope: missing event_id or event_type")
	}
	return &env, nil
}

// PayloadAs 將信封負載解碼為具體類型
func PayloadAs[P any](env *Envelope) (P, error) {
	var out P
	if len(env.Payload) == 0 {
		return out, nil
	}
	if err := sonic.Unmarshal(env.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return out, nil
}

func (e *Envelope) EventID() string       { return e.ID }
func (e *Envelope) EventType() string     { return e.Type }
func (e *Envelope) AggregateID() string   { return e.Aggregate }
func (e *Envelope) WorkspaceID() string   { return e.Workspace }
func (e *Envelope) CorrelationID() string { return e.Correlation }
func (e *Envelope) CausationID() string   { return e.Causation }
func (e *Envelope) OccurredAt() time.Time { return e.At }
func (e *Envelope) Timestamp() int64      { return e.At.UnixMilli() }
func (e *Envelope) Data() any             { return e.Payload }
