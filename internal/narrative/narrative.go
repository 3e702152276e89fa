// Package narrative turns computed analytics into a natural-language
// performance review via an external text-generation service.
package narrative

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/quota"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/report"
)

// LLMClient is the completion interface the generator depends on.
type LLMClient interface {
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIClient implements LLMClient using the OpenAI API. Transient API
// failures are retried with exponential backoff before the error is
// surfaced to the quota gate.
type OpenAIClient struct {
	client       *openai.Client
	model        string
	maxAttempts  int
	initialDelay time.Duration
}

// NewOpenAIClient creates a new OpenAI LLM client.
func NewOpenAIClient(apiKey string, model string) *OpenAIClient {
	return &OpenAIClient{
		client:       openai.NewClient(apiKey),
		model:        model,
		maxAttempts:  3,
		initialDelay: 500 * time.Millisecond,
	}
}

// CompleteWithSystem sends a prompt with system message to the LLM.
func (c *OpenAIClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	delay := c.initialDelay

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
		})
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("no response from openai")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("openai completion failed after %d attempts: %w", c.maxAttempts, lastErr)
}

const systemPrompt = `You are a trading coach reviewing a retail trader's
journal. You receive a structured performance summary. Write a concise,
direct review: what is working, what is costing money, and the top three
behavioral changes to make. Do not restate every number back; interpret
them.`

// Generator produces the narrative review. Every call is gated by the
// quota ledger: the credit is debited before the completion request and
// refunded if the request fails.
type Generator struct {
	client     LLMClient
	gate       *quota.Gate
	maxEntries int
}

// NewGenerator creates a narrative generator.
func NewGenerator(client LLMClient, gate *quota.Gate, maxEntries int) *Generator {
	return &Generator{client: client, gate: gate, maxEntries: maxEntries}
}

// Generate renders the report for the analysis result and requests the
// narrative. It returns the generated text, or the quota error when the
// user has no credits left.
func (g *Generator) Generate(ctx context.Context, userID string, res *models.AnalysisResult) (string, error) {
	if g.client == nil {
		return "", apperrors.ErrNoLLMClient
	}

	prompt, _ := report.Build(res, g.maxEntries)

	var text string
	err := g.gate.Spend(ctx, userID, func(ctx context.Context) error {
		var completeErr error
		text, completeErr = g.client.CompleteWithSystem(ctx, systemPrompt, prompt)
		if completeErr != nil {
			return apperrors.NewNarrativeError("complete", completeErr)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
