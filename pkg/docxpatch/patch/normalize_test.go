package patch

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestNormalize_MalformedInputTolerance(t *testing.T) {
	raw := []any{
		map[string]any{"paragraph": 0, "run": 0, "text": "ok"},
		map[string]any{"bogus": 1},
		nil,
		[]any{"x"},
	}

	got := Normalize(raw)
	want := []Edit{{Paragraph: 0, Run: 0, Text: "ok", Placement: ReplaceInPlace}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeOne(t *testing.T) {
	tests := []struct {
		name string
		item any
		want Edit
		ok   bool
	}{
		{
			name: "mapping with placement",
			item: map[string]any{"paragraph": 2, "run": 1, "text": "{{ x }}", "new_paragraph": -1},
			want: Edit{2, 1, "{{ x }}", InsertBefore},
			ok:   true,
		},
		{
			name: "mapping from decoded JSON",
			item: map[string]any{"paragraph": 2.0, "run": 1.0, "text": "t", "new_paragraph": 1.0},
			want: Edit{2, 1, "t", InsertAfter},
			ok:   true,
		},
		{
			name: "mapping with typed values",
			item: map[string]string{"paragraph": "4", "run": "0", "text": "typed"},
			want: Edit{4, 0, "typed", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "mapping without run",
			item: map[string]any{"paragraph": 1, "text": "t"},
			ok:   false,
		},
		{
			name: "mapping without text",
			item: map[string]any{"paragraph": 1, "run": 0},
			ok:   false,
		},
		{
			name: "mapping with null text",
			item: map[string]any{"paragraph": 1, "run": 0, "text": nil},
			ok:   false,
		},
		{
			name: "positional",
			item: []any{3, 0, "{%p if x %}", -1},
			want: Edit{3, 0, "{%p if x %}", InsertBefore},
			ok:   true,
		},
		{
			name: "positional with extra trailing elements",
			item: []any{3, 0, "{%p endif %}", 1, "", "ignored"},
			want: Edit{3, 0, "{%p endif %}", InsertAfter},
			ok:   true,
		},
		{
			name: "positional typed slice",
			item: []string{"5", "2", "txt", "0"},
			want: Edit{5, 2, "txt", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "positional array",
			item: [4]any{1, 1, "arr", 0},
			want: Edit{1, 1, "arr", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "original text instead of run",
			item: []any{4, "Name: ____", "Name: {{ users[0] }}"},
			want: Edit{4, 0, "Name: {{ users[0] }}", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "original text instead of run, placement ignored",
			item: []any{4, "old", "new", 1},
			want: Edit{4, 0, "new", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "original text with null replacement",
			item: []any{4, "old", nil},
			ok:   false,
		},
		{
			name: "three elements with integer run",
			item: []any{4, 0, "new"},
			ok:   false,
		},
		{
			name: "negative paragraph",
			item: []any{-1, 0, "t", 0},
			ok:   false,
		},
		{
			name: "negative run clamps to zero",
			item: []any{1, -3, "t", 0},
			want: Edit{1, 0, "t", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "float indices truncate",
			item: []any{2.9, 1.2, "t", 1.0},
			want: Edit{2, 1, "t", InsertAfter},
			ok:   true,
		},
		{
			name: "float beyond int range rejected",
			item: []any{0, 9.3e18, "t", 0},
			ok:   false,
		},
		{
			name: "float at 2^63 rejected",
			item: []any{float64(1 << 62) * 2, 0, "t", 0},
			ok:   false,
		},
		{
			name: "numeric strings",
			item: []any{" 7 ", "+1", "t", "-1"},
			want: Edit{7, 1, "t", InsertBefore},
			ok:   true,
		},
		{
			name: "json.Number",
			item: []any{json.Number("8"), json.Number("0"), "t", json.Number("1")},
			want: Edit{8, 0, "t", InsertAfter},
			ok:   true,
		},
		{
			name: "NaN paragraph",
			item: []any{math.NaN(), 0, "t", 0},
			ok:   false,
		},
		{
			name: "boolean paragraph",
			item: []any{true, 0, "t", 0},
			ok:   false,
		},
		{
			name: "boolean placement is not an integer",
			item: []any{1, 0, "t", true},
			want: Edit{1, 0, "t", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "out of range placement",
			item: []any{1, 0, "t", 2},
			want: Edit{1, 0, "t", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "unparseable placement",
			item: map[string]any{"paragraph": 1, "run": 0, "text": "t", "new_paragraph": "after"},
			want: Edit{1, 0, "t", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "numeric text is stringified",
			item: []any{1, 0, 42.0, 0},
			want: Edit{1, 0, "42", ReplaceInPlace},
			ok:   true,
		},
		{
			name: "canonical edit passes through",
			item: Edit{Paragraph: 6, Run: 2, Text: "e", Placement: InsertAfter},
			want: Edit{6, 2, "e", InsertAfter},
			ok:   true,
		},
		{
			name: "canonical edit is revalidated",
			item: &Edit{Paragraph: 6, Run: -2, Text: "e", Placement: Placement(7)},
			want: Edit{6, 0, "e", ReplaceInPlace},
			ok:   true,
		},
		{name: "nil", item: nil, ok: false},
		{name: "string", item: "0,0,text", ok: false},
		{name: "number", item: 12, ok: false},
		{name: "short list", item: []any{1, 0}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeOne(tt.item)
			if ok != tt.ok {
				t.Fatalf("NormalizeOne() ok = %v, want %v (edit %v)", ok, tt.ok, got)
			}
			if ok && got != tt.want {
				t.Errorf("NormalizeOne() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize_NeverNil(t *testing.T) {
	if got := Normalize(nil); got == nil || len(got) != 0 {
		t.Errorf("Normalize(nil) = %#v, want empty slice", got)
	}
}
