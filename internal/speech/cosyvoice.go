package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// CosyVoiceClient talks to a CosyVoice-compatible speech API over HTTP.
type CosyVoiceClient struct {
	http         *resty.Client
	model        string
	defaultVoice string
}

type synthesisRequest struct {
	Model          string  `json:"model"`
	Voice          string  `json:"voice,omitempty"`
	ResponseFormat string  `json:"response_format"`
	Gain           float64 `json:"gain"`
	Stream         bool    `json:"stream"`
	Input          string  `json:"input"`
}

func NewCosyVoiceClient(baseURL, apiKey, model, defaultVoice string) *CosyVoiceClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}

	return &CosyVoiceClient{
		http:         client,
		model:        model,
		defaultVoice: defaultVoice,
	}
}

// Synthesize requests one MP3 clip for the given sentence. No retries are
// performed; a failed synthesis is reported to the caller as is.
func (c *CosyVoiceClient) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	voice := req.Voice
	if voice == "" {
		voice = c.defaultVoice
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(synthesisRequest{
			Model:          c.model,
			Voice:          voice,
			ResponseFormat: "mp3",
			Gain:           0,
			Stream:         false,
			Input:          BuildInput(req),
		}).
		Post("/audio/speech")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrFetchFailure, resp.StatusCode(), resp.Request.URL)
	}

	audio := resp.Body()
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty audio payload", ErrInvalidResponse)
	}
	return audio, nil
}
