package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the broker representation of an event.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	UserID     string          `json:"user_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func NewEnvelope(event Event) (Envelope, error) {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", event.EventType(), err)
	}
	return Envelope{
		ID:         event.EventID(),
		Type:       event.EventType(),
		UserID:     OwnerOf(event),
		OccurredAt: event.OccurredAt().UTC(),
		Payload:    payload,
	}, nil
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	return env, nil
}
