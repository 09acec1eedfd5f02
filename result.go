package sitescrape

import (
	"bytes"
	"encoding/json"
)

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindText
	kindList
)

// Value is the extracted value of a single field: a string, a list of
// strings, or absent. The zero Value is absent.
type Value struct {
	kind valueKind
	text string
	list []string
}

// Text returns a string value.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// ListOf returns a list value. A nil list is stored as an empty list so it
// stays distinguishable from an absent value.
func ListOf(items []string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{kind: kindList, list: items}
}

// Absent returns the absent value.
func Absent() Value {
	return Value{}
}

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

// IsList reports whether the value is a list.
func (v Value) IsList() bool { return v.kind == kindList }

// String returns the string value, or "" for lists and absent values.
func (v Value) String() string { return v.text }

// Strings returns the list value, or nil for strings and absent values.
func (v Value) Strings() []string { return v.list }

// MarshalJSON encodes the value as a JSON string, array, or null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindText:
		return json.Marshal(v.text)
	case kindList:
		return json.Marshal(v.list)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes a JSON string, array of strings, or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = Absent()
		return nil
	case len(data) > 0 && data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = ListOf(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Text(s)
	return nil
}

// Result maps field names to extracted values.
type Result map[string]Value

// Get returns the value for name, or an absent value if the field is unknown.
func (r Result) Get(name string) Value {
	return r[name]
}
