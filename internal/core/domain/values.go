package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is one user-supplied value for a named placeholder.
type Field struct {
	Name  string
	Value string
}

// Values is an ordered name to value mapping. Order matters: the fill
// engine applies fields in sequence against the evolving text, so the
// order a client sent its answers in is kept when decoding JSON.
type Values []Field

// NewValues builds Values from alternating name, value arguments.
// A trailing name without a value is ignored.
func NewValues(pairs ...string) Values {
	v := make(Values, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

// Get returns the value stored for name (exact match).
func (v Values) Get(name string) (string, bool) {
	for _, f := range v {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value for name in place, or appends it.
func (v *Values) Set(name, value string) {
	for i := range *v {
		if (*v)[i].Name == name {
			(*v)[i].Value = value
			return
		}
	}
	*v = append(*v, Field{Name: name, Value: value})
}

// Present returns the fields whose value is not blank.
func (v Values) Present() Values {
	out := make(Values, 0, len(v))
	for _, f := range v {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}

// Filled reports whether name has a non-blank value.
func (v Values) Filled(name string) bool {
	val, ok := v.Get(name)
	return ok && strings.TrimSpace(val) != ""
}

// Map returns the values as a plain map.
func (v Values) Map() map[string]string {
	m := make(map[string]string, len(v))
	for _, f := range v {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON encodes Values as a JSON object in field order.
func (v Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order. Non-string
// scalars keep their literal text (42 becomes "42"); null members are
// dropped.
func (v *Values) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*v = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("values must be a JSON object: %w", ErrInvalidInput)
	}

	out := Values{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v: %w", keyTok, ErrInvalidInput)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if val, ok := rawValue(raw); ok {
			out.Set(key, val)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*v = out
	return nil
}

func rawValue(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	}
	return string(trimmed), true
}
