package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-resume2pdf/internal/yamlutil"
)

// Sentinel errors for decoding.
var (
	ErrSyntax      = errors.New("document is not valid JSON or YAML")
	ErrUnsupported = errors.New("unsupported value in document")
)

// Decode parses a JSON or YAML document into a Value. Input whose first
// non-blank byte is '{' or '[' is read as JSON, anything else as YAML.
// Mapping order follows the source text.
func Decode(data []byte) (Value, error) {
	if looksLikeJSON(data) {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// DecodeJSON parses a JSON document. Number literals are kept as written.
// A repeated object key keeps its first position and its last value.
func DecodeJSON(data []byte) (Value, error) {
	if err := yamlutil.CheckInput(data); err != nil {
		return Value{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSON(dec)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected %v after top-level value", tok)
		}
		return Value{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return v, nil
}

// DecodeYAML parses a YAML document.
func DecodeYAML(data []byte) (Value, error) {
	var raw any
	if err := yamlutil.UnmarshalOrdered(data, &raw); err != nil {
		if errors.Is(err, yamlutil.ErrNilData) || errors.Is(err, yamlutil.ErrInputTooLarge) {
			return Value{}, err
		}
		return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return FromNative(raw)
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func readJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if t == '[' {
			items := []Value{}
			for dec.More() {
				item, err := readJSON(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			_, err := dec.Token()
			return Sequence(items...), err
		}

		entries := []Entry{}
		index := map[string]int{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return Value{}, err
			}
			key, _ := keyTok.(string)
			v, err := readJSON(dec)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			if i, seen := index[key]; seen {
				entries[i].Value = v
				continue
			}
			index[key] = len(entries)
			entries = append(entries, Entry{Key: key, Value: v})
		}
		_, err := dec.Token()
		return Mapping(entries...), err
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, tok)
}

// FromNative converts decoder output into a Value.
// It accepts the shapes produced by goccy/go-yaml with ordered maps
// (yaml.MapSlice) as well as plain map[string]any and []any.
// Plain maps have no order and are emitted with sorted keys.
func FromNative(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint64:
		return Number(strconv.FormatUint(x, 10)), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return Value{}, fmt.Errorf("%w: non-finite number %v", ErrUnsupported, x)
		}
		return Float(x), nil
	case time.Time:
		return String(x.Format(time.RFC3339)), nil
	case []any:
		items := make([]Value, len(x))
		for i, elem := range x {
			v, err := FromNative(elem)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return Sequence(items...), nil
	case yaml.MapSlice:
		entries := make([]Entry, len(x))
		for i, item := range x {
			key := fmt.Sprint(item.Key)
			v, err := FromNative(item.Value)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			entries[i] = Entry{Key: key, Value: v}
		}
		return Mapping(entries...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(x))
		for _, key := range keys {
			v, err := FromNative(x[key])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			entries = append(entries, Entry{Key: key, Value: v})
		}
		return Mapping(entries...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, raw)
	}
}
