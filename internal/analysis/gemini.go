package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"

	"documind/internal/model"
)

var ErrEmptyResponse = errors.New("no response from analysis model")

// Generator produces a raw completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig holds the Gemini client settings.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiGenerator calls the Gemini API through the genai SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiGenerator creates a genai client for the Gemini API backend.
// Outgoing calls are traced through an otelhttp transport.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(0.1)),
			TopK:            genai.Ptr(float32(40)),
			TopP:            genai.Ptr(float32(0.95)),
			MaxOutputTokens: 1024,
		},
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		},
	}, g.config)
	if err != nil {
		return "", fmt.Errorf("generate content (model: %s): %w", g.model, err)
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// ModelAnalyzer builds the prompt, asks the generator and parses the reply.
// Failures are returned as-is; the caller decides whether to retry.
type ModelAnalyzer struct {
	gen     Generator
	timeout time.Duration
	now     func() time.Time
}

var _ Analyzer = (*ModelAnalyzer)(nil)

// NewModelAnalyzer wraps gen. A zero timeout means no per-call deadline.
func NewModelAnalyzer(gen Generator, timeout time.Duration, now func() time.Time) *ModelAnalyzer {
	if now == nil {
		now = time.Now
	}
	return &ModelAnalyzer{gen: gen, timeout: timeout, now: now}
}

func (a *ModelAnalyzer) Analyze(ctx context.Context, fileName, text string) (model.Analysis, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	raw, err := a.gen.Generate(ctx, BuildPrompt(fileName, text))
	if err != nil {
		return model.Analysis{}, fmt.Errorf("analyze %s: %w", fileName, err)
	}
	out, err := Parse(raw, fileName, a.now())
	if err != nil {
		return model.Analysis{}, fmt.Errorf("analyze %s: %w", fileName, err)
	}
	return out, nil
}
