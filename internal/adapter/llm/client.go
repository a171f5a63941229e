// Package llm adapts the Anthropic Messages API to the text-completion
// port used by the generation and tutor services.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/flashcard-tutor/internal/config"
	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// jsonDirective is appended to the system prompt for JSON-mode requests.
const jsonDirective = "Respond with a single JSON object only. No markdown, no code fences, no text before or after the object."

// Client sends single-turn completions to Claude.
type Client struct {
	api       anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewClient creates a Client from the LLM configuration.
func NewClient(cfg config.LLMConfig, log *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Client{
		api:       anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       log.With("adapter", "llm"),
	}
}

// Complete sends one request and returns the reply text.
// In JSON mode the reply is narrowed to the outermost JSON object when one
// is present; otherwise the raw text is returned for the caller to sanitize.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	system := req.System
	if req.JSON {
		system = strings.TrimSpace(system + "\n\n" + jsonDirective)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	start := time.Now()
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()

	c.log.DebugContext(ctx, "completion received",
		slog.String("model", c.model),
		slog.Bool("json", req.JSON),
		slog.String("stop_reason", string(msg.StopReason)),
		slog.Int("chars", len(text)),
		slog.Duration("duration", time.Since(start)),
	)

	if req.JSON {
		if obj, ok := extractJSON(text); ok {
			return obj, nil
		}
	}
	return text, nil
}

// extractJSON returns the text between the first "{" and the last "}".
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
