package patch

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// shape tries to read one raw suggestion as a canonical edit. ok is false
// when the value does not have this shape or fails validation.
type shape func(item any) (Edit, bool)

// shapes are tried in order; the first success wins.
var shapes = []shape{
	fromEdit,
	fromMapping,
	fromPositional,
	fromTextPair,
}

// Normalize converts loosely typed suggestions into canonical edits.
// Entries that cannot be read are dropped; Normalize never fails.
func Normalize(raw []any) []Edit {
	edits := make([]Edit, 0, len(raw))
	for _, item := range raw {
		if edit, ok := NormalizeOne(item); ok {
			edits = append(edits, edit)
		}
	}
	return edits
}

// NormalizeOne converts a single suggestion. ok is false when the entry
// must be dropped.
func NormalizeOne(item any) (Edit, bool) {
	if item == nil {
		return Edit{}, false
	}
	for _, try := range shapes {
		if edit, ok := try(item); ok {
			return edit, true
		}
	}
	return Edit{}, false
}

func fromEdit(item any) (Edit, bool) {
	var e Edit
	switch v := item.(type) {
	case Edit:
		e = v
	case *Edit:
		if v == nil {
			return Edit{}, false
		}
		e = *v
	default:
		return Edit{}, false
	}
	return build(e.Paragraph, e.Run, e.Text, int(e.Placement))
}

// fromMapping reads {"paragraph", "run", "text", "new_paragraph"}.
func fromMapping(item any) (Edit, bool) {
	m, ok := asMapping(item)
	if !ok {
		return Edit{}, false
	}
	placement, present := m["new_paragraph"]
	if !present {
		placement = 0
	}
	return build(m["paragraph"], m["run"], m["text"], placement)
}

// fromPositional reads (paragraph, run, text, new_paragraph).
func fromPositional(item any) (Edit, bool) {
	seq, ok := asSequence(item)
	if !ok || len(seq) < 4 {
		return Edit{}, false
	}
	return build(seq[0], seq[1], seq[2], seq[3])
}

// fromTextPair reads (paragraph, original text, replacement), a shape some
// generators emit when they leave out the run index. The run is forced to
// 0 and the edit always replaces in place.
func fromTextPair(item any) (Edit, bool) {
	seq, ok := asSequence(item)
	if !ok || len(seq) < 3 {
		return Edit{}, false
	}
	if _, isString := seq[1].(string); !isString || seq[2] == nil {
		return Edit{}, false
	}
	return build(seq[0], 0, seq[2], 0)
}

func build(paragraph, run, text, placement any) (Edit, bool) {
	p, ok := toInt(paragraph)
	if !ok || p < 0 {
		return Edit{}, false
	}
	r, ok := toInt(run)
	if !ok {
		return Edit{}, false
	}
	if r < 0 {
		r = 0
	}
	s, ok := toText(text)
	if !ok {
		return Edit{}, false
	}
	return Edit{Paragraph: p, Run: r, Text: s, Placement: toPlacement(placement)}, true
}

func toPlacement(v any) Placement {
	n, ok := toInt(v)
	if !ok {
		return ReplaceInPlace
	}
	if pl := Placement(n); pl.Valid() {
		return pl
	}
	return ReplaceInPlace
}

// toInt coerces integer kinds, finite floats (truncated toward zero),
// json.Number and decimal strings. Booleans never coerce.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case nil, bool:
		return 0, false
	case int:
		return n, true
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int64ToInt(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return int64ToInt(i)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int64ToInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	}
	return 0, false
}

func int64ToInt(i int64) (int, bool) {
	if i > math.MaxInt || i < math.MinInt {
		return 0, false
	}
	return int(i), true
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	if t >= math.MaxInt || t < math.MinInt {
		return 0, false
	}
	return int(t), true
}

// toText stringifies any non-nil value.
func toText(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case []byte:
		return string(s), true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case fmt.Stringer:
		return s.String(), true
	}
	return fmt.Sprint(v), true
}

// asMapping accepts map[string]any and any other map keyed by strings.
func asMapping(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

// asSequence accepts []any and any other slice or array, except strings
// and byte slices.
func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	seq := make([]any, rv.Len())
	for i := range seq {
		seq[i] = rv.Index(i).Interface()
	}
	return seq, true
}
