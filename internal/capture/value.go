package capture

import (
	"encoding/json"

	"github.com/andreadev-it/norgcap/internal/errors"
)

// StringValue is a capture field that is either a literal string or a
// function computing one. Configuration files always yield literals;
// programmatic registration may supply computed values. A value is
// resolved exactly once per capture invocation.
type StringValue struct {
	literal string
	fn      func() (string, error)
	present bool
}

// String returns a literal StringValue.
func String(s string) StringValue {
	return StringValue{literal: s, present: true}
}

// StringFunc returns a computed StringValue.
func StringFunc(fn func() (string, error)) StringValue {
	return StringValue{fn: fn, present: true}
}

// IsSet reports whether the value was provided at all.
func (v StringValue) IsSet() bool {
	return v.present
}

// Resolve produces the value. The zero value resolves to "".
func (v StringValue) Resolve() (string, error) {
	if v.fn == nil {
		return v.literal, nil
	}
	s, err := v.fn()
	if err != nil {
		return "", errors.NewConfiguration("computed field failed: " + err.Error())
	}
	return s, nil
}

// UnmarshalJSON accepts a plain JSON string as a literal value.
func (v *StringValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*v = String(s)
	return nil
}

// MarshalJSON emits the literal; computed values marshal as null.
func (v StringValue) MarshalJSON() ([]byte, error) {
	if !v.present || v.fn != nil {
		return []byte("null"), nil
	}
	return json.Marshal(v.literal)
}

// DataValue is the data mapping counterpart of StringValue.
type DataValue struct {
	literal map[string]string
	fn      func() (map[string]string, error)
}

// Data returns a literal DataValue.
func Data(m map[string]string) DataValue {
	return DataValue{literal: m}
}

// DataFunc returns a computed DataValue.
func DataFunc(fn func() (map[string]string, error)) DataValue {
	return DataValue{fn: fn}
}

// Resolve produces the mapping. The zero value resolves to an empty map.
func (v DataValue) Resolve() (map[string]string, error) {
	if v.fn == nil {
		if v.literal == nil {
			return map[string]string{}, nil
		}
		return v.literal, nil
	}
	m, err := v.fn()
	if err != nil {
		return nil, errors.NewConfiguration("computed data failed: " + err.Error())
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

// UnmarshalJSON accepts a plain JSON object as a literal mapping.
func (v *DataValue) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*v = Data(m)
	return nil
}

// MarshalJSON emits the literal mapping; computed values marshal as null.
func (v DataValue) MarshalJSON() ([]byte, error) {
	if v.fn != nil {
		return []byte("null"), nil
	}
	return json.Marshal(v.literal)
}
