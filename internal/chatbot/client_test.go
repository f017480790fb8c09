package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voicebook/internal/domain/chat"
)

func TestExtractThinking(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantReply    string
		wantThinking string
	}{
		{
			name:         "no thinking section",
			content:      "你好！很高兴见到你。",
			wantReply:    "你好！很高兴见到你。",
			wantThinking: "",
		},
		{
			name:         "single section",
			content:      "<think>用户在打招呼</think>你好！",
			wantReply:    "你好！",
			wantThinking: "用户在打招呼",
		},
		{
			name:         "multiple sections joined",
			content:      "<think>第一步</think>回答<think>第二步</think>继续",
			wantReply:    "回答继续",
			wantThinking: "第一步\n第二步",
		},
		{
			name:         "empty section dropped",
			content:      "<think>  </think>回答",
			wantReply:    "回答",
			wantThinking: "",
		},
		{
			name:         "multiline section",
			content:      "<think>line one\nline two</think>done",
			wantReply:    "done",
			wantThinking: "line one\nline two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, thinking := ExtractThinking(tt.content)
			if reply != tt.wantReply {
				t.Errorf("reply = %q, want %q", reply, tt.wantReply)
			}
			if thinking != tt.wantThinking {
				t.Errorf("thinking = %q, want %q", thinking, tt.wantThinking)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	var req completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"<think>想一想</think>你好！"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "deepseek-r1:8b")
	reply, thinking, err := client.Complete(context.Background(), []chat.Message{
		{Role: chat.RoleSystem, Content: "你是一位耐心的教师。"},
		{Role: chat.RoleUser, Content: "你好", Thinking: "must not go on the wire"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "你好！" || thinking != "想一想" {
		t.Errorf("reply = %q, thinking = %q", reply, thinking)
	}

	if req.Model != "deepseek-r1:8b" {
		t.Errorf("model = %q", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != chat.RoleSystem {
		t.Fatalf("unexpected wire messages: %+v", req.Messages)
	}
	// wire messages carry role and content only
	if req.Messages[1].Content != "你好" {
		t.Errorf("wire content = %q", req.Messages[1].Content)
	}
}

func TestCompleteInvalidResponse(t *testing.T) {
	for _, payload := range []string{`{}`, `{"choices":[]}`, `{"choices":[{"message":{}}]}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payload))
		}))
		client := NewClient(server.URL, "", "m")
		_, _, err := client.Complete(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
		if !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("payload %s: expected ErrInvalidResponse, got %v", payload, err)
		}
		server.Close()
	}
}

func TestCompleteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "m")
	_, _, err := client.Complete(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
	if !errors.Is(err, ErrFetchFailure) {
		t.Errorf("expected ErrFetchFailure, got %v", err)
	}
}
