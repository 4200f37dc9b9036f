// Package recommend asks a chat-completion model which template suits an
// event and maps its free-text answer to a template id.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/youruser/posterapp/internal/poster"
	"github.com/youruser/posterapp/internal/util"
)

var (
	ErrMissingEventName = errors.New("event name is required")
	ErrNotConfigured    = errors.New("recommendation API key is not configured")
	ErrNoChoice         = errors.New("recommendation response has no choices")
)

// APIError is an error reported by the upstream API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("recommendation api: status %d: %s", e.Status, e.Message)
}

const systemPrompt = "You are a professional graphic designer helping choose poster templates. Be brief and confident."

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Breaker     util.BreakerConfig
}

// Client relays recommendation requests to an OpenAI compatible API.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[Recommendation]
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 50
	}
	return &Client{
		cfg:     cfg,
		http:    util.NewClient(cfg.Timeout),
		breaker: util.NewBreaker[Recommendation]("openai", cfg.Breaker),
	}
}

type Request struct {
	EventName    string `json:"eventName"`
	EventDetails string `json:"eventDetails"`
}

type Recommendation struct {
	Template poster.TemplateID `json:"template"`
	Text     string            `json:"recommendation"`
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
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Prompt is the user message sent for an event.
func Prompt(name, details string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event: %q\n", name)
	if details != "" {
		fmt.Fprintf(&b, "Details: %q\n", details)
	}
	b.WriteString(`
Choose ONE template and explain why in 10 words max:

Templates:
- modern: Clean, professional, corporate events, elegant
- bold: Energetic, fun, parties, celebrations, youth events
- minimal: Sophisticated, elegant, formal, high-end
- retro: Vintage, nostalgic, throwback, groovy, 70s vibes

Format: "[template] - [reason]"`)
	return b.String()
}

// Recommend asks the model for a template. Failures leave the choice to
// the caller; nothing is retried.
func (c *Client) Recommend(ctx context.Context, req Request) (Recommendation, error) {
	name := strings.TrimSpace(req.EventName)
	if name == "" {
		return Recommendation{}, ErrMissingEventName
	}
	if c.cfg.APIKey == "" {
		return Recommendation{}, ErrNotConfigured
	}

	rec, err := c.breaker.Execute(func() (Recommendation, error) {
		return c.complete(ctx, name, strings.TrimSpace(req.EventDetails))
	})
	if err != nil {
		return Recommendation{}, err
	}
	logrus.WithFields(logrus.Fields{
		"event":    name,
		"template": rec.Template,
	}).Info("template recommended")
	return rec, nil
}

func (c *Client) complete(ctx context.Context, name, details string) (Recommendation, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: Prompt(name, details)},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return Recommendation{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Recommendation{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Recommendation{}, fmt.Errorf("call recommendation api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Recommendation{}, fmt.Errorf("read response: %w", err)
	}
	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Recommendation{}, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return Recommendation{}, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return Recommendation{}, &APIError{Status: resp.StatusCode, Message: out.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return Recommendation{}, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if len(out.Choices) == 0 {
		return Recommendation{}, ErrNoChoice
	}

	text := strings.TrimSpace(out.Choices[0].Message.Content)
	return Recommendation{Template: Parse(text), Text: text}, nil
}

// parseOrder is the priority in which template names are looked for.
var parseOrder = []poster.TemplateID{poster.Bold, poster.Minimal, poster.Retro, poster.Modern}

// Parse picks the first template, in priority order, whose name appears
// anywhere in text (case-insensitive). No match means modern.
func Parse(text string) poster.TemplateID {
	lower := strings.ToLower(text)
	for _, id := range parseOrder {
		if strings.Contains(lower, string(id)) {
			return id
		}
	}
	return poster.Modern
}
