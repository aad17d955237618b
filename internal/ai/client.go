package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
)

// RequestTimeout bounds a single model call. Vision extraction and meal-plan
// generation regularly take tens of seconds; the HTTP server's write timeout
// must stay above this so a slow-but-successful completion can still be
// written to the client.
const RequestTimeout = 60 * time.Second

// Client calls the chat-completions API with a JSON-object response format.
// Every call is single-shot: no retry, no backoff, no streaming.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithBaseURL(url string) Option {
	return func(cl *Client) {
		cl.baseURL = url
	}
}

func WithModel(model string) Option {
	return func(cl *Client) {
		cl.model = model
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: RequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// contentPart is one element of a multimodal user message.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type completionRequest struct {
	Model          string         `json:"model"`
	Messages       []message      `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	MaxTokens      int            `json:"max_tokens"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete issues one chat completion and returns the model's raw content.
func (c *Client) complete(ctx context.Context, messages []message, maxTokens int) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("ai client not configured: missing API key")
	}

	body, err := json.Marshal(completionRequest{
		Model:          c.model,
		Messages:       messages,
		ResponseFormat: responseFormat{Type: "json_object"},
		MaxTokens:      maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if cr.Error != nil {
			return "", fmt.Errorf("completion API: %s", cr.Error.Message)
		}
		return "", fmt.Errorf("completion API: status %d", resp.StatusCode)
	}

	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content returned from model")
	}
	return cr.Choices[0].Message.Content, nil
}
