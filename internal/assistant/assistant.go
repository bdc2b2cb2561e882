// Package assistant is the client side of the external writing-assistant
// contract: a configured credential enables a chat-style request/response
// channel keyed by a system instruction and a model identifier. The engine
// never inspects the assistant's payloads; an absent credential degrades the
// feature to "unavailable" without touching anything else.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inkweld/inkweld/backend/go-services/internal/config"
)

// ErrUnavailable reports that no credential is configured.
var ErrUnavailable = errors.New("assistant: not configured")

// Message is one turn of a conversation. Role is "user" or "model".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Client talks to a Gemini-style generateContent endpoint.
type Client struct {
	cfg  config.AssistantConfig
	http *http.Client
}

func NewClient(cfg config.AssistantConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// Available reports whether a credential is configured.
func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

type apiPart struct {
	Text string `json:"text"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiRequest struct {
	SystemInstruction *apiContent  `json:"system_instruction,omitempty"`
	Contents          []apiContent `json:"contents"`
}

type apiResponse struct {
	Candidates []struct {
		Content apiContent `json:"content"`
	} `json:"candidates"`
}

// Chat sends the conversation history plus the new message and returns the
// model's reply text.
func (c *Client) Chat(ctx context.Context, history []Message, message string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	req := apiRequest{
		Contents: make([]apiContent, 0, len(history)+1),
	}
	if c.cfg.SystemInstruction != "" {
		req.SystemInstruction = &apiContent{Parts: []apiPart{{Text: c.cfg.SystemInstruction}}}
	}
	for _, m := range history {
		req.Contents = append(req.Contents, apiContent{Role: m.Role, Parts: []apiPart{{Text: m.Text}}})
	}
	req.Contents = append(req.Contents, apiContent{Role: "user", Parts: []apiPart{{Text: message}}})

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("assistant: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("assistant: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("assistant: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("assistant: status %d: %s", resp.StatusCode, string(b))
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("assistant: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assistant: empty response")
	}

	var reply bytes.Buffer
	for _, p := range out.Candidates[0].Content.Parts {
		reply.WriteString(p.Text)
	}
	return reply.String(), nil
}
