package document

import (
	"math/big"
	"strconv"
	"strings"
)

// Native converts v into plain Go values for template engines:
// map[string]any, []any, string, bool, int64, float64, and nil.
//
// Integer literals become int64, or *big.Int when they do not fit. Literals
// with a fraction or exponent become float64. A literal that parses as
// neither is passed through as a string.
// Mapping order is lost in the result; duplicate keys keep the last value.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		if !strings.ContainsAny(v.text, ".eE") {
			if n, err := strconv.ParseInt(v.text, 10, 64); err == nil {
				return n
			}
			if n, ok := new(big.Int).SetString(v.text, 10); ok {
				return n
			}
		}
		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return f
		}
		return v.text
	case KindString:
		return v.text
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Native()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			out[e.Key] = e.Value.Native()
		}
		return out
	}
	return nil
}
