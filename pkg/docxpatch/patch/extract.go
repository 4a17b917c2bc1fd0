package patch

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// listKeys are the response keys that may hold the list of suggestions,
// in priority order.
var listKeys = []string{"results", "suggestions", "items", "changes", "labels"}

// addressKey matches "paragraph,run" map keys such as "3, 0".
var addressKey = regexp.MustCompile(`^\s*(\d+)\s*,\s*(\d+)\s*$`)

// Extract finds the list of suggestions inside a decoded generator
// response. A list is returned as-is. An object yields its "results" list,
// or the first list under one of the alternate keys, or one entry per
// "paragraph,run" key. Anything else yields an empty list.
func Extract(response any) []any {
	if list, ok := asSequence(response); ok {
		return list
	}
	m, ok := asMapping(response)
	if !ok {
		return []any{}
	}

	for _, key := range listKeys {
		if list, ok := asSequence(m[key]); ok {
			return list
		}
	}

	type keyed struct {
		paragraph, run int
		entry          []any
	}
	var found []keyed
	for key, value := range m {
		p, r, ok := parseAddressKey(key)
		if !ok || value == nil {
			continue
		}
		found = append(found, keyed{p, r, addressEntry(p, r, value)})
	}
	// Go maps are unordered; keep the output deterministic.
	sort.Slice(found, func(i, j int) bool {
		if found[i].paragraph != found[j].paragraph {
			return found[i].paragraph < found[j].paragraph
		}
		return found[i].run < found[j].run
	})

	results := make([]any, 0, len(found))
	for _, f := range found {
		results = append(results, f.entry)
	}
	return results
}

// ExtractJSON is Extract for raw generator output. It strips a Markdown
// code fence, unwraps a JSON document that was encoded as a JSON string,
// and preserves the written order of "paragraph,run" keys. Output that is
// not JSON yields an empty list.
func ExtractJSON(data []byte) []any {
	text := stripCodeFence(strings.TrimSpace(string(data)))
	if !gjson.Valid(text) {
		return []any{}
	}

	result := gjson.Parse(text)
	if result.Type == gjson.String && gjson.Valid(result.Str) {
		result = gjson.Parse(result.Str)
	}

	if result.IsArray() {
		return values(result.Array())
	}
	if !result.IsObject() {
		return []any{}
	}

	for _, key := range listKeys {
		if list := result.Get(gjsonKey(key)); list.IsArray() {
			return values(list.Array())
		}
	}

	results := make([]any, 0)
	result.ForEach(func(key, value gjson.Result) bool {
		p, r, ok := parseAddressKey(key.String())
		if !ok || value.Type == gjson.Null {
			return true
		}
		results = append(results, addressEntry(p, r, value.Value()))
		return true
	})
	return results
}

// addressEntry builds a positional suggestion from a "paragraph,run" map
// value, which is either the replacement itself or an object carrying
// "text" and "new_paragraph".
func addressEntry(paragraph, run int, value any) []any {
	if m, ok := asMapping(value); ok {
		placement, present := m["new_paragraph"]
		if !present {
			placement = 0
		}
		return []any{paragraph, run, m["text"], placement}
	}
	return []any{paragraph, run, value, 0}
}

func parseAddressKey(key string) (int, int, bool) {
	match := addressKey.FindStringSubmatch(key)
	if match == nil {
		return 0, 0, false
	}
	p, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, false
	}
	r, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, false
	}
	return p, r, true
}

func values(results []gjson.Result) []any {
	out := make([]any, len(results))
	for i, r := range results {
		out[i] = r.Value()
	}
	return out
}

// gjsonKey escapes characters that gjson treats as path syntax.
func gjsonKey(key string) string {
	var b strings.Builder
	for _, ch := range key {
		switch ch {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// stripCodeFence removes a surrounding ```json ... ``` block.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		return text
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
