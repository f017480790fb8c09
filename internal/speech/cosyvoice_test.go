package speech

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCosyVoiceSynthesize(t *testing.T) {
	var body synthesisRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewCosyVoiceClient(server.URL, "test-key", "FunAudioLLM/CosyVoice2-0.5B", "FunAudioLLM/CosyVoice2-0.5B:anna")
	audio, err := client.Synthesize(context.Background(), Request{Text: "你好。", Emotion: "开心"})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("audio = %q", audio)
	}

	if body.Model != "FunAudioLLM/CosyVoice2-0.5B" {
		t.Errorf("model = %q", body.Model)
	}
	if body.Voice != "FunAudioLLM/CosyVoice2-0.5B:anna" {
		t.Errorf("default voice not applied, voice = %q", body.Voice)
	}
	if body.ResponseFormat != "mp3" || body.Stream || body.Gain != 0 {
		t.Errorf("unexpected request shape: %+v", body)
	}
	want := "请用开心的情感朗读这段话" + ControlToken + "你好。"
	if body.Input != want {
		t.Errorf("input = %q, want %q", body.Input, want)
	}
}

func TestCosyVoiceSynthesizeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewCosyVoiceClient(server.URL, "", "m", "v")
	_, err := client.Synthesize(context.Background(), Request{Text: "你好。"})
	if !errors.Is(err, ErrFetchFailure) {
		t.Errorf("expected ErrFetchFailure, got %v", err)
	}
}

func TestCosyVoiceSynthesizeEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := NewCosyVoiceClient(server.URL, "", "m", "v")
	_, err := client.Synthesize(context.Background(), Request{Text: "你好。"})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("expected multipart form: %v", err)
		}
		if model := r.FormValue("model"); model != "FunAudioLLM/SenseVoiceSmall" {
			t.Errorf("model = %q", model)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file field: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "你好，世界"})
	}))
	defer server.Close()

	path := writeTempWav(t)
	client := NewTranscriptionClient(server.URL, "k", "FunAudioLLM/SenseVoiceSmall")
	text, err := client.Transcribe(context.Background(), path)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "你好，世界" {
		t.Errorf("text = %q", text)
	}
}

func TestTranscribeMissingText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewTranscriptionClient(server.URL, "", "m")
	_, err := client.Transcribe(context.Background(), writeTempWav(t))
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}
