// Package advice generates free-text health guidance through an
// OpenAI-compatible chat-completion API.
package advice

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Default configuration values for the Groq chat endpoint.
const (
	DefaultEndpoint    = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama-3.1-8b-instant"
	DefaultMaxTokens   = 400
	DefaultTemperature = 0.6
	DefaultTimeout     = 30 * time.Second
)

// SystemInstructions is the fixed system turn sent with every request.
const SystemInstructions = "You are a helpful health assistant. " +
	"Always answer in very simple English with 4 parts:\n" +
	"1. Cause explanation\n2. Home remedies\n3. Safe OTC medicines\n" +
	"4. Advice to see a doctor if it worsens."

// FallbackAdvice is returned whenever the chat API cannot produce a reply.
const FallbackAdvice = "⚠️ The AI assistant is currently unavailable.\n\n" +
	"General suggestions:\n" +
	"1. Rest and drink plenty of water.\n" +
	"2. Use paracetamol for fever.\n" +
	"3. Try simple home remedies like honey with warm water for cough.\n" +
	"4. See a doctor if severe symptoms appear.\n\n" +
	"⚠️ This is not medical advice. Please consult a doctor."

var (
	// ErrMissingCredentials is reported when no API key is configured.
	ErrMissingCredentials = errors.New("chat API key not configured")
	// ErrUpstreamUnavailable covers transport errors, timeouts, non-2xx statuses and undecodable bodies.
	ErrUpstreamUnavailable = errors.New("chat API unavailable")
	// ErrEmptyReply is reported when the response carries no usable choice.
	ErrEmptyReply = errors.New("chat API returned no reply")
)

// Input is the user's side of a consultation. Image takes precedence over Text.
type Input struct {
	Text  string
	Image []byte
}

// Result always carries usable advice text. Err is non-nil when Text is the fallback.
type Result struct {
	Text string
	Err  error
}

// FellBack reports whether the fallback advice was served.
func (r Result) FellBack() bool {
	return r.Err != nil
}

// Generator produces advice for a consultation.
type Generator interface {
	Generate(ctx context.Context, in Input) Result
}

// Config contains configuration for the chat client.
type Config struct {
	APIKey      string
	Endpoint    string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// ChatClient calls an OpenAI-compatible /chat/completions endpoint.
type ChatClient struct {
	config Config
	client *http.Client
}

// NewChatClient creates a chat client, filling unset fields with defaults.
// An empty APIKey is allowed; every call then serves the fallback.
func NewChatClient(config Config) *ChatClient {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &ChatClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
}

// buildMessages returns the system turn followed by one user turn. An image is
// embedded as base64 text; its content is not inspected.
func buildMessages(in Input) []chatMessage {
	user := "My symptoms: " + in.Text
	if len(in.Image) > 0 {
		user = "Skin image (base64): " + base64.StdEncoding.EncodeToString(in.Image)
	}
	return []chatMessage{
		{Role: "system", Content: SystemInstructions},
		{Role: "user", Content: user},
	}
}

// Generate makes exactly one chat call. It never returns without advice text.
func (g *ChatClient) Generate(ctx context.Context, in Input) Result {
	if g.config.APIKey == "" {
		return Result{Text: FallbackAdvice, Err: ErrMissingCredentials}
	}
	text, err := g.complete(ctx, buildMessages(in))
	if err != nil {
		return Result{Text: FallbackAdvice, Err: err}
	}
	return Result{Text: text}
}

func (g *ChatClient) complete(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       g.config.Model,
		Messages:    messages,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrUpstreamUnavailable, err)
	}

	url := strings.TrimRight(g.config.Endpoint, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return "", fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstreamUnavailable, err)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message == nil {
		return "", ErrEmptyReply
	}
	text := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
