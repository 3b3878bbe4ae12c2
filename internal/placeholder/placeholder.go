// Package placeholder replaces ${NAME} tokens in resume documents.
//
// Substitution is a pure tree walk: mappings and sequences keep their shape,
// only string leaves are rewritten. A token whose name has no binding is
// left in place verbatim.
package placeholder

import (
	"regexp"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/document"
)

// tokenPattern matches ${NAME} where NAME is one or more Unicode letters,
// digits, or underscores.
var tokenPattern = regexp.MustCompile(`\$\{([\p{L}\p{N}_]+)\}`)

// Bindings maps variable names to replacement values.
// Treat a Bindings value as read-only once built.
type Bindings map[string]string

// FromEnviron builds Bindings from "KEY=value" pairs such as os.Environ().
// Entries without '=' are ignored. When a key repeats, the first one wins,
// matching os.Getenv.
func FromEnviron(environ []string) Bindings {
	b := make(Bindings, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if _, seen := b[key]; !seen {
			b[key] = value
		}
	}
	return b
}

// Lookup returns the value bound to name.
func (b Bindings) Lookup(name string) (string, bool) {
	v, ok := b[name]
	return v, ok
}

// Substitute returns a copy of v with placeholders expanded in every string.
// Non-string scalars are returned as is.
func Substitute(v document.Value, b Bindings) document.Value {
	switch v.Kind() {
	case document.KindMapping:
		entries := v.Entries()
		out := make([]document.Entry, len(entries))
		for i, e := range entries {
			out[i] = document.Entry{Key: e.Key, Value: Substitute(e.Value, b)}
		}
		return document.Mapping(out...)
	case document.KindSequence:
		items := v.Items()
		out := make([]document.Value, len(items))
		for i, item := range items {
			out[i] = Substitute(item, b)
		}
		return document.Sequence(out...)
	case document.KindString:
		return document.String(Expand(v.AsString(), b))
	case document.KindNull, document.KindBool, document.KindNumber:
		return v
	}
	return v
}

// Expand replaces each ${NAME} in s with its binding in a single
// left-to-right pass. Replacement text is not rescanned.
func Expand(s string, b Bindings) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return tokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		name := token[2 : len(token)-1]
		if value, ok := b.Lookup(name); ok {
			return value
		}
		return token
	})
}

// Unresolved lists the distinct placeholder names in v that have no
// binding, in document order.
func Unresolved(v document.Value, b Bindings) []string {
	var names []string
	seen := make(map[string]bool)
	walkStrings(v, func(s string) {
		for _, m := range tokenPattern.FindAllStringSubmatch(s, -1) {
			name := m[1]
			if _, ok := b.Lookup(name); ok || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	})
	return names
}

func walkStrings(v document.Value, fn func(string)) {
	switch v.Kind() {
	case document.KindMapping:
		for _, e := range v.Entries() {
			walkStrings(e.Value, fn)
		}
	case document.KindSequence:
		for _, item := range v.Items() {
			walkStrings(item, fn)
		}
	case document.KindString:
		fn(v.AsString())
	}
}
