package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tagserve/tagserve/internal/artifacts"
	"go.uber.org/zap"
)

// Client predicts tags by prompting the Anthropic API, one call per text
// so results stay aligned with the inputs.
type Client struct {
	client anthropic.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a new Anthropic-backed predictor.
func NewClient(apiKey, model string, logger *zap.Logger) *Client {
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger,
	}
}

// Predict returns one prediction per input text, in input order.
func (c *Client) Predict(ctx context.Context, texts []string, bundle *artifacts.Bundle) ([]artifacts.Prediction, error) {
	predictions := make([]artifacts.Prediction, 0, len(texts))

	for _, text := range texts {
		tags, err := c.predictOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("prediction failed for text %q: %w", truncate(text, 60), err)
		}

		predictions = append(predictions, artifacts.Prediction{
			InputText:     text,
			PredictedTags: tags,
		})
	}

	return predictions, nil
}

func (c *Client) predictOne(ctx context.Context, text string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Return a comma-separated list of short lowercase topic tags for the following text. "+
			"Respond with the tags only, no explanation.\n\nText: %s", text)

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 256,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var reply strings.Builder
	for _, block := range message.Content {
		reply.WriteString(block.Text)
	}

	c.logger.Debug("anthropic prediction complete",
		zap.String("model", c.model),
		zap.Duration("duration", time.Since(start)))

	return parseTags(reply.String()), nil
}

// parseTags splits a comma-separated reply into clean tags.
func parseTags(reply string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(reply, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
