package envelope

import (
	"encoding/json"
	"fmt"
)

const (
	keyRequestID  = "requestId"
	keyTimestamp  = "timestamp"
	keyDurationMs = "durationMs"
	keyPath       = "path"
	keyMethod     = "method"
)

// Metadata is serialized as a single flat object: the well-known keys plus
// every Extra entry. Well-known keys take precedence over Extra.
type Metadata struct {
	RequestID  string
	Timestamp  string
	DurationMs *int64
	Path       string
	Method     string
	Extra      map[string]any
}

// Get returns an Extra value.
func (m Metadata) Get(key string) (any, bool) {
	v, ok := m.Extra[key]
	return v, ok
}

// MarshalJSON writes the well-known keys and the extras as one flat object.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+5)
	for k, v := range m.Extra {
		out[k] = v
	}
	out[keyRequestID] = m.RequestID
	out[keyTimestamp] = m.Timestamp
	if m.DurationMs != nil {
		out[keyDurationMs] = *m.DurationMs
	}
	if m.Path != "" {
		out[keyPath] = m.Path
	}
	if m.Method != "" {
		out[keyMethod] = m.Method
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat object back into well-known keys and extras.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Metadata{}
	take := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("metadata %s: %w", key, err)
		}
		return nil
	}
	var ms int64
	_, hasDuration := raw[keyDurationMs]
	for key, dst := range map[string]any{
		keyRequestID:  &m.RequestID,
		keyTimestamp:  &m.Timestamp,
		keyPath:       &m.Path,
		keyMethod:     &m.Method,
		keyDurationMs: &ms,
	} {
		if err := take(key, dst); err != nil {
			return err
		}
	}
	if hasDuration {
		m.DurationMs = &ms
	}
	if len(raw) == 0 {
		return nil
	}
	m.Extra = make(map[string]any, len(raw))
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("metadata %s: %w", k, err)
		}
		m.Extra[k] = val
	}
	return nil
}
