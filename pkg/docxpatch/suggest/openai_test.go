package suggest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/patch"
)

const completionReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-test",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "{\"results\": [[0, 0, \"{{ users[0] }}\", 0]]}"}
  }],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestOpenAI_Generate(t *testing.T) {
	var body []byte
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionReply)
	}))
	defer server.Close()

	gen := NewOpenAI(OpenAIConfig{
		Model:           "gpt-test",
		APIKey:          "sk-test",
		BaseURL:         server.URL + "/v1/",
		Temperature:     0.5,
		MaxOutputTokens: 512,
		MaxRetries:      -1,
	})

	units := []patch.Unit{{Paragraph: 0, Run: 0, Text: "John Smith"}}
	out, err := gen.Generate(context.Background(), units, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(out) != `{"results": [[0, 0, "{{ users[0] }}", 0]]}` {
		t.Errorf("Generate() = %s", out)
	}

	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
	req := gjson.ParseBytes(body)
	checks := map[string]string{
		"model":                 "gpt-test",
		"response_format.type":  "json_object",
		"messages.0.role":       "system",
		"messages.1.role":       "user",
		"messages.1.content":    `[[0,0,"John Smith"]]`,
		"temperature":           "0.5",
		"max_completion_tokens": "512",
	}
	for path, want := range checks {
		if got := req.Get(path).String(); got != want {
			t.Errorf("request %s = %q, want %q", path, got, want)
		}
	}
}

func TestOpenAI_InputTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("model was called despite oversized input")
	}))
	defer server.Close()

	gen := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL, MaxRetries: -1})
	units := []patch.Unit{{Text: strings.Repeat("x", 4000)}}

	_, err := gen.Generate(context.Background(), units, Options{MaxInputTokens: 100})
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("Generate() error = %v, want ErrInputTooLarge", err)
	}
}

func TestOpenAI_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`)
	}))
	defer server.Close()

	gen := NewOpenAI(OpenAIConfig{APIKey: "sk-bad", BaseURL: server.URL, MaxRetries: -1})
	if _, err := gen.Generate(context.Background(), nil, Options{}); err == nil {
		t.Error("expected error for 401 response")
	}
}
