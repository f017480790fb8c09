package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// TranscriptionClient sends recorded audio to the transcription endpoint.
type TranscriptionClient struct {
	http  *resty.Client
	model string
}

func NewTranscriptionClient(baseURL, apiKey, model string) *TranscriptionClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second)
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}

	return &TranscriptionClient{http: client, model: model}
}

func (c *TranscriptionClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"model": c.model}).
		SetFile("file", audioPath).
		Post("/audio/transcriptions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: HTTP %d from %s", ErrFetchFailure, resp.StatusCode(), resp.Request.URL)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if result.Text == "" {
		return "", fmt.Errorf("%w: missing text field", ErrInvalidResponse)
	}
	return result.Text, nil
}
