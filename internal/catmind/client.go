package catmind

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Generator is the capability the pipeline needs from a language model:
// submit a prompt plus optional inline images, receive generated text.
// Provider SDK types never leak past this boundary; swapping models means
// swapping the implementation only.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, parts []Part) (string, error)
}

// Part is one content block of a multi-modal prompt: either text or an
// inline base64 image.
type Part struct {
	Text        string
	ImageBase64 string
	MIMEType    string
}

// TextPart builds a text content block.
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart builds an inline image content block. An empty mimeType
// defaults to JPEG, the format the upload path produces.
func ImagePart(base64Data, mimeType string) Part {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return Part{ImageBase64: base64Data, MIMEType: mimeType}
}

// IsImage reports whether the part is an image block.
func (p Part) IsImage() bool {
	return p.ImageBase64 != ""
}

// ClientConfig holds configuration for the model client.
type ClientConfig struct {
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// Client calls a vision-capable chat completion API (OpenAI-compatible).
// It is stateless apart from static configuration and safe for concurrent
// use; every Generate call is independent and performs no retries.
type Client struct {
	client    *resty.Client
	model     string
	endpoint  string
	maxTokens int
}

// NewClient creates a model client from configuration.
func NewClient(cfg *ClientConfig) *Client {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client.SetTimeout(timeout)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Client{
		client:    client,
		model:     cfg.Model,
		endpoint:  baseURL + "/chat/completions",
		maxTokens: maxTokens,
	}
}

// Model returns the model identifier in use.
func (c *Client) Model() string {
	return c.model
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string for system, []interface{} for user content blocks
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imageContent struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends one chat completion request assembled from the given
// system prompt and ordered content parts, and returns the raw model text.
// Part order is preserved exactly; video frame batches rely on this.
func (c *Client) Generate(ctx context.Context, systemPrompt string, parts []Part) (string, error) {
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no content parts", ErrGenerationFailed)
	}

	blocks := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		if p.IsImage() {
			blocks = append(blocks, imageContent{
				Type: "image_url",
				ImageURL: imageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", p.MIMEType, p.ImageBase64),
				},
			})
		} else {
			blocks = append(blocks, textContent{Type: "text", Text: p.Text})
		}
	}

	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: blocks})

	req := chatRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: c.maxTokens,
	}

	var resp chatResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(c.endpoint)

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return "", fmt.Errorf("%w: HTTP %d: %s", ErrGenerationFailed, httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("%w: HTTP %d", ErrGenerationFailed, httpResp.StatusCode())
	}

	if resp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, resp.Error.Message)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	return resp.Choices[0].Message.Content, nil
}
