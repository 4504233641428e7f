// Package completion calls an external text-completion API.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"
)

// ErrUpstream wraps every failure reported by the provider.
var ErrUpstream = errors.New("completion provider error")

const requestTimeout = 60 * time.Second

// Request is a single-turn prompt.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Result is the provider's reply and token usage.
type Result struct {
	Text         string
	Model        string
	InputTokens  int64
	OutputTokens int64
}

// Provider produces completions.
type Provider interface {
	Complete(ctx context.Context, req Request) (Result, error)
}

// Config selects the model and credentials for the Anthropic provider.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	MaxRetries int
}

// Anthropic talks to the Anthropic Messages API.
type Anthropic struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropic builds a provider from cfg.
func NewAnthropic(cfg Config) *Anthropic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Anthropic{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Complete sends req as one user message and joins the text blocks of the reply.
func (a *Anthropic) Complete(ctx context.Context, req Request) (Result, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = a.maxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return Result{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, apiErr.StatusCode, upstreamMessage(apiErr))
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return Result{
		Text:         b.String(),
		Model:        string(msg.Model),
		InputTokens:  msg.Usage.InputTokens,
		OutputTokens: msg.Usage.OutputTokens,
	}, nil
}

// upstreamMessage pulls the human-readable message out of an API error body.
func upstreamMessage(err *anthropic.Error) string {
	if msg := gjson.Get(err.RawJSON(), "error.message").String(); msg != "" {
		return msg
	}
	return http.StatusText(err.StatusCode)
}
