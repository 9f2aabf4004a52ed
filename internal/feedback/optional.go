package feedback

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Optional is the record's feedback field. It marshals as the empty string
// until populated and as the full object afterwards; the transition happens
// exactly once and is never rolled back.
type Optional struct {
	Value *Feedback
}

// Populated reports whether feedback has been set.
func (o Optional) Populated() bool {
	return o.Value != nil
}

// MarshalJSON renders "" for the placeholder state.
func (o Optional) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte(`""`), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON accepts "" or a full feedback object.
func (o *Optional) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte(`""`)) || bytes.Equal(trimmed, []byte(`null`)) {
		o.Value = nil
		return nil
	}
	var parsed Feedback
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return fmt.Errorf("feedback field: %w", err)
	}
	o.Value = &parsed
	return nil
}
