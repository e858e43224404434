package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatCompletion(t *testing.T) {
	var gotAuth string
	var gotReq ChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`))
	}))
	defer server.Close()

	client := &OpenAIClient{
		apiKey:  "test-key",
		baseURL: server.URL,
		client:  server.Client(),
	}

	content, err := client.ChatCompletion(context.Background(), ChatRequest{
		Model:       "gpt-4o-mini",
		Messages:    []ChatMessage{{Role: "user", Content: "hi"}},
		Temperature: 0.2,
		MaxTokens:   200,
	})
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if content != "hello there" {
		t.Errorf("expected 'hello there', got %q", content)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 200 {
		t.Errorf("expected max_tokens 200, got %d", gotReq.MaxTokens)
	}
	if gotReq.N != 1 {
		t.Errorf("expected n defaulted to 1, got %d", gotReq.N)
	}
}

func TestChatCompletionErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := &OpenAIClient{baseURL: server.URL, client: server.Client()}

	_, err := client.ChatCompletion(context.Background(), ChatRequest{Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestChatCompletionEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := &OpenAIClient{baseURL: server.URL, client: server.Client()}

	_, err := client.ChatCompletion(context.Background(), ChatRequest{Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}
