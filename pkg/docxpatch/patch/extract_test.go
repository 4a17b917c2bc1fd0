package patch

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		response any
		want     []any
	}{
		{
			name:     "bare list",
			response: []any{[]any{0.0, 0.0, "a", 0.0}},
			want:     []any{[]any{0.0, 0.0, "a", 0.0}},
		},
		{
			name: "results key",
			response: map[string]any{
				"results": []any{[]any{1.0, 0.0, "r", 0.0}},
				"items":   []any{"not used"},
			},
			want: []any{[]any{1.0, 0.0, "r", 0.0}},
		},
		{
			name: "results not a list falls through to alternate key",
			response: map[string]any{
				"results": "none",
				"changes": []any{"c"},
			},
			want: []any{"c"},
		},
		{
			name: "alternate keys in priority order",
			response: map[string]any{
				"labels":      []any{"l"},
				"suggestions": []any{"s"},
			},
			want: []any{"s"},
		},
		{
			name: "paragraph,run keyed map",
			response: map[string]any{
				"2,0":    "two",
				" 1 , 3": map[string]any{"text": "one", "new_paragraph": 1.0},
				"notes":  "ignored",
				"3,0":    nil,
			},
			want: []any{
				[]any{1, 3, "one", 1.0},
				[]any{2, 0, "two", 0},
			},
		},
		{
			name:     "keyed object without placement",
			response: map[string]any{"0,0": map[string]any{"text": "x"}},
			want:     []any{[]any{0, 0, "x", 0}},
		},
		{
			name:     "unrecognized object",
			response: map[string]any{"message": "sorry"},
			want:     []any{},
		},
		{name: "string", response: "nothing", want: []any{}},
		{name: "nil", response: nil, want: []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.response)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []Edit
	}{
		{
			name: "results object",
			data: `{"results": [[0, 1, "Dear {{ other_parties[0] }}:", 0], [2, 0, "{%p if is_tenant %}", -1]]}`,
			want: []Edit{
				{0, 1, "Dear {{ other_parties[0] }}:", ReplaceInPlace},
				{2, 0, "{%p if is_tenant %}", InsertBefore},
			},
		},
		{
			name: "bare list of objects",
			data: `[{"paragraph": 3, "run": 0, "text": "{%p endif %}", "new_paragraph": 1}]`,
			want: []Edit{{3, 0, "{%p endif %}", InsertAfter}},
		},
		{
			name: "keyed map keeps written order",
			data: `{"5,0": "five", "1,2": {"text": "one", "new_paragraph": -1}}`,
			want: []Edit{
				{5, 0, "five", ReplaceInPlace},
				{1, 2, "one", InsertBefore},
			},
		},
		{
			name: "code fence",
			data: "```json\n{\"items\": [[1, 0, \"x\", 0]]}\n```",
			want: []Edit{{1, 0, "x", ReplaceInPlace}},
		},
		{
			name: "JSON encoded as a string",
			data: `"{\"changes\": [[4, 0, \"y\", 0]]}"`,
			want: []Edit{{4, 0, "y", ReplaceInPlace}},
		},
		{name: "not JSON", data: "I could not find any placeholders.", want: []Edit{}},
		{name: "empty", data: "", want: []Edit{}},
		{name: "scalar", data: "42", want: []Edit{}},
		{name: "object without edits", data: `{"error": "rate limited"}`, want: []Edit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(ExtractJSON([]byte(tt.data)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(ExtractJSON()) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractJSON_MatchesExtract(t *testing.T) {
	data := []byte(`{"suggestions": [[0, 0, "a", 0], {"paragraph": 1, "run": 0, "text": "b"}]}`)

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	fromJSON := Normalize(ExtractJSON(data))
	fromValue := Normalize(Extract(decoded))
	if !reflect.DeepEqual(fromJSON, fromValue) {
		t.Errorf("ExtractJSON and Extract disagree:\n%v\n%v", fromJSON, fromValue)
	}
	if len(fromJSON) != 2 {
		t.Errorf("got %d edits, want 2", len(fromJSON))
	}
}
