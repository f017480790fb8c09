package speech

import (
	"context"
	"fmt"
	"os"
)

type BackendType string

const (
	BackendMock      BackendType = "mock"
	BackendCosyVoice BackendType = "cosyvoice"
	BackendGoogle    BackendType = "google"
	BackendAuto      BackendType = "auto" // pick the best available backend
)

func (b BackendType) String() string {
	return string(b)
}

// NewSynthesizer creates a synthesis backend from the provided config.
func NewSynthesizer(ctx context.Context, config Config) (Synthesizer, error) {
	if config.Type == BackendAuto.String() {
		config.Type = bestAvailableBackend(config).String()
	}

	switch config.Type {
	case BackendMock.String():
		return NewMockSynthesizer(), nil

	case BackendCosyVoice.String():
		return NewCosyVoiceClient(config.BaseURL, config.APIKey, config.Model, config.Voice), nil

	case BackendGoogle.String():
		return NewGoogleSynthesizer(ctx, config.Voice)

	default:
		return nil, fmt.Errorf("unsupported synthesis backend: %s", config.Type)
	}
}

// bestAvailableBackend prefers the CosyVoice API when a key is configured,
// then Google when credentials are present.
func bestAvailableBackend(config Config) BackendType {
	if config.APIKey != "" {
		return BackendCosyVoice
	}
	if hasGoogleCredentials() {
		return BackendGoogle
	}
	return BackendCosyVoice
}

// hasGoogleCredentials checks if Google Cloud credentials are available
func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}
