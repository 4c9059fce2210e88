package models

import "encoding/json"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value.
// Exactly one variant is populated, selected by Kind. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // number literal or string contents
	items   []Value
	members []Member
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the JSON null value
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a JSON boolean
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number returns a JSON number holding the literal text n.
// The literal is kept as written so output is byte-faithful to input.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, text: string(n)}
}

// String returns a JSON string
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Array returns a JSON array of the given elements
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns a JSON object with members in the given order
func Object(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{kind: KindObject, members: members}
}

// Kind reports the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is JSON null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// BoolValue returns the boolean held by v, false for any other kind
func (v Value) BoolValue() bool {
	return v.boolean
}

// NumberValue returns the number literal held by v
func (v Value) NumberValue() json.Number {
	if v.kind != KindNumber {
		return ""
	}
	return json.Number(v.text)
}

// StringValue returns the string held by v
func (v Value) StringValue() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// Items returns the elements of an array. The slice must not be modified.
func (v Value) Items() []Value {
	return v.items
}

// Members returns the members of an object in insertion order. The slice must not be modified.
func (v Value) Members() []Member {
	return v.members
}

// Len returns the number of elements or members of a container, 0 otherwise
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get returns the first member named key
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the member names of an object in insertion order
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.members))
	for _, m := range v.members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Equal reports whether v and other are the same JSON value.
// Object members are compared in order, so two objects with the same
// members in a different order are not equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber, KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != other.members[i].Key || !v.members[i].Value.Equal(other.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
