package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"voicebook/internal/domain/chat"
)

var (
	// ErrFetchFailure covers network and HTTP errors from the chat service.
	ErrFetchFailure = errors.New("chat service request failed")
	// ErrInvalidResponse covers HTTP success with a payload missing
	// choices[0].message.content.
	ErrInvalidResponse = errors.New("unexpected chat service response")
)

var thinkSection = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	http  *resty.Client
	model string
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewClient(baseURL, apiKey, model string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(120 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &Client{http: client, model: model}
}

// Complete sends the conversation history and returns the assistant's reply
// with any embedded thinking sections extracted and stripped.
func (c *Client) Complete(ctx context.Context, messages []chat.Message) (reply, thinking string, err error) {
	req := completionRequest{Model: c.model, Messages: make([]wireMessage, 0, len(messages))}
	for _, m := range messages {
		req.Messages = append(req.Messages, wireMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("%w: HTTP %d from %s", ErrFetchFailure, resp.StatusCode(), resp.Request.URL)
	}

	var result completionResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", "", fmt.Errorf("%w: missing choices[0].message.content", ErrInvalidResponse)
	}

	reply, thinking = ExtractThinking(result.Choices[0].Message.Content)
	return reply, thinking, nil
}

// ExtractThinking pulls <think>...</think> sections out of a reply. The
// returned reply has all sections removed; the thinking string joins the
// trimmed non-empty sections with newlines.
func ExtractThinking(content string) (reply, thinking string) {
	matches := thinkSection.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(content), ""
	}

	sections := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m[1]); s != "" {
			sections = append(sections, s)
		}
	}

	reply = strings.TrimSpace(thinkSection.ReplaceAllString(content, ""))
	return reply, strings.Join(sections, "\n")
}
