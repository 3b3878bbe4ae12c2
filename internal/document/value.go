// Package document models a resume as a tree of tagged values.
//
// A Value is one of a closed set of kinds: Null, Bool, Number, String,
// Sequence, or Mapping. Mappings keep their entries in document order so
// that a load/substitute/render round trip never reorders keys.
package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable node of a resume document.
// The zero Value is Null.
type Value struct {
	kind    Kind
	b       bool
	text    string // string content or number literal
	items   []Value
	entries []Entry
}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number value from its literal text (e.g. "42", "3.5").
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

// Int returns a number value for an integer.
func Int(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

// Float returns a number value for a float, formatted by FormatFloat.
func Float(f float64) Value { return Number(FormatFloat(f)) }

// FormatFloat formats f with the fewest digits that round-trip. Values with
// a decimal exponent in [-4, 16) use plain notation and keep at least one
// fractional digit (3.0, 1500000.0); others use exponent form (1e+16, 1e-05).
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	_, exp, _ := strings.Cut(s, "e")
	if n, err := strconv.Atoi(exp); err == nil && (n < -4 || n >= 16) {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Sequence returns a sequence holding items in order.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

// Mapping returns a mapping holding entries in order.
func Mapping(entries ...Entry) Value {
	return Value{kind: KindMapping, entries: entries}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean content. It is false for non-bool values.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsString returns the string content. It is empty for non-string values.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// Literal returns the number literal. It is empty for non-number values.
func (v Value) Literal() string {
	if v.kind != KindNumber {
		return ""
	}
	return v.text
}

// Items returns the elements of a sequence, or nil for other kinds.
// The returned slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.items
}

// Entries returns the entries of a mapping in document order, or nil for
// other kinds. The returned slice must not be modified.
func (v Value) Entries() []Entry {
	if v.kind != KindMapping {
		return nil
	}
	return v.entries
}

// Len returns the number of items or entries for containers, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.entries)
	default:
		return 0
	}
}

// Get returns the value stored under key in a mapping.
// When a key appears more than once, the last occurrence wins.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	for i := len(v.entries) - 1; i >= 0; i-- {
		if v.entries[i].Key == key {
			return v.entries[i].Value, true
		}
	}
	return Value{}, false
}

// Keys returns mapping keys in document order.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.Key
	}
	return keys
}

// Equal reports whether v and w have the same kind and content.
// Mapping equality is order sensitive.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindNumber, KindString:
		return v.text == w.text
	case KindSequence:
		if len(v.items) != len(w.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(w.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.entries) != len(w.entries) {
			return false
		}
		for i := range v.entries {
			if v.entries[i].Key != w.entries[i].Key || !v.entries[i].Value.Equal(w.entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// GoString renders v in a compact debug form, used by test diffs.
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return v.text
	case KindString:
		return strconv.Quote(v.text)
	case KindSequence:
		s := "["
		for i, item := range v.items {
			if i > 0 {
				s += ", "
			}
			s += item.GoString()
		}
		return s + "]"
	case KindMapping:
		s := "{"
		for i, e := range v.entries {
			if i > 0 {
				s += ", "
			}
			s += strconv.Quote(e.Key) + ": " + e.Value.GoString()
		}
		return s + "}"
	}
	return "?"
}
