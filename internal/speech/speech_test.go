package speech

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempWav(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recording.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0644); err != nil {
		t.Fatalf("failed to write temp wav: %v", err)
	}
	return path
}

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		voice string
		want  string
	}{
		{"cmn-CN-Wavenet-A", "cmn-CN"},
		{"en-US-Chirp3-HD-Charon", "en-US"},
		{"weird", "cmn-CN"},
	}
	for _, tt := range tests {
		if got := languageCode(tt.voice); got != tt.want {
			t.Errorf("languageCode(%q) = %q, want %q", tt.voice, got, tt.want)
		}
	}
}
