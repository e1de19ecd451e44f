package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Ref is a reference to another entity. The backend returns these either as
// a raw id string or as the embedded object, depending on whether the query
// populated the relation. Both shapes decode into the same struct so callers
// never have to sniff which one they got.
type Ref struct {
	ID string
	// Populated holds the embedded object when the backend expanded the
	// relation, nil otherwise.
	Populated json.RawMessage
}

type refIDProbe struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if b[0] == '"' {
		id, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	var probe refIDProbe
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	id := probe.ID
	if id == "" {
		id = probe.AltID
	}
	raw := make(json.RawMessage, len(b))
	copy(raw, b)
	*r = Ref{ID: id, Populated: raw}
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Populated != nil {
		return r.Populated, nil
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// IsZero reports whether the reference points at nothing.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Populated == nil
}

// Decode unmarshals the embedded object into v. It reports false when the
// relation was not populated.
func (r Ref) Decode(v interface{}) (bool, error) {
	if r.Populated == nil {
		return false, nil
	}
	if err := json.Unmarshal(r.Populated, v); err != nil {
		return false, err
	}
	return true, nil
}
