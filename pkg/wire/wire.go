// Package wire defines the JSON messages exchanged with the authoritative
// server: client requests (fire-and-forget) and server push events. The
// transport is assumed reliable and ordered; framing is a {type, data}
// envelope.
//
// Slot indices on the wire are 1-based. Dense snapshot arrays are positional
// (array slot 0 describes wire index 1); sparse delta maps key by the wire
// index, encoded as a JSON string of the integer.
package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Message is any client-to-server request.
type Message interface {
	// MessageType returns the envelope type tag.
	MessageType() string
}

// Push is a decoded server push event. Data stays raw until a module claims
// the type and parses it.
type Push struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ReadInto unmarshals the push payload into v.
func (p *Push) ReadInto(v any) error {
	if err := json.Unmarshal(p.Data, v); err != nil {
		return fmt.Errorf("decode %s push: %w", p.Type, err)
	}
	return nil
}

// Envelope frames a request for transmission.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Seal wraps a request message in its envelope.
func Seal(msg Message) (*Envelope, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", msg.MessageType(), err)
	}
	return &Envelope{Type: msg.MessageType(), Data: data}, nil
}

// Slot is the serialized form of one item stack. A nil *Slot (JSON null or
// an absent array entry) means the slot is empty.
type Slot struct {
	ItemID int32 `json:"itemId"`
	Count  int   `json:"count"`
}

// DeltaMap is a sparse update: wire index -> new slot value (nil = cleared).
type DeltaMap map[string]*Slot

// Index parses a delta key into its 1-based wire index. ok is false for
// keys that are not positive integers; such entries are skipped.
func (DeltaMap) Index(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
