// Package suggest wraps the text-generation API used for menu ideas and
// feedback summarization. Without a configured credential every call
// degrades to an empty or placeholder result instead of failing.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"lunchlink/internal/models"
)

// Client calls an OpenAI-compatible completion endpoint
type Client struct {
	llm   *openai.LLM
	model string
}

// Options configures the client
type Options struct {
	APIKey  string
	BaseURL string // optional OpenAI-compatible endpoint
	Model   string
}

// New creates a suggestion client. An empty API key yields a degraded
// client whose calls return empty results; callers never need to check.
func New(opts Options) (*Client, error) {
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.APIKey == "" {
		return &Client{model: opts.Model}, nil
	}

	llmOpts := []openai.Option{
		openai.WithToken(opts.APIKey),
		openai.WithModel(opts.Model),
	}
	if opts.BaseURL != "" {
		llmOpts = append(llmOpts, openai.WithBaseURL(opts.BaseURL))
	}

	llm, err := openai.New(llmOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	return &Client{llm: llm, model: opts.Model}, nil
}

// Enabled reports whether a credential is configured
func (c *Client) Enabled() bool {
	return c != nil && c.llm != nil
}

const ideasPromptFormat = `You are a corporate cafeteria chef planning a daily lunch menu.
Suggest %d dishes for the theme "%s".
Respond with ONLY a JSON array, no prose. Each element must have exactly these fields:
  "name" (string), "description" (string), "category" (one of "main", "soup", "salad", "dessert", "drink", "side"),
  "calories" (integer), "dietaryTags" (array of strings, e.g. "vegetarian", "vegan", "gluten-free").`

// MenuIdeas asks for menu item suggestions for a cuisine theme. It
// returns an empty slice when no credential is configured or the model
// output cannot be parsed.
func (c *Client) MenuIdeas(ctx context.Context, theme string, count int) ([]models.MenuItem, error) {
	if !c.Enabled() {
		return []models.MenuItem{}, nil
	}
	if count <= 0 {
		count = 5
	}

	prompt := fmt.Sprintf(ideasPromptFormat, count, theme)
	response, err := c.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	},
		llms.WithTemperature(0.8),
		llms.WithModel(c.model),
	)
	if err != nil {
		return []models.MenuItem{}, fmt.Errorf("failed to generate menu ideas: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return []models.MenuItem{}, fmt.Errorf("empty response from completion endpoint")
	}

	items, err := parseIdeas(response.Choices[0].Content)
	if err != nil {
		return []models.MenuItem{}, err
	}
	return items, nil
}

// parseIdeas decodes the model output, tolerating markdown code fences
// and dropping elements with unknown categories
func parseIdeas(raw string) ([]models.MenuItem, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var ideas []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Calories    int      `json:"calories"`
		DietaryTags []string `json:"dietaryTags"`
	}
	if err := json.Unmarshal([]byte(cleaned), &ideas); err != nil {
		return nil, fmt.Errorf("failed to parse menu ideas: %w", err)
	}

	items := make([]models.MenuItem, 0, len(ideas))
	for i, idea := range ideas {
		category := models.FoodCategory(idea.Category)
		if !category.IsValid() {
			continue
		}
		items = append(items, models.MenuItem{
			ID:          fmt.Sprintf("idea-%d", i+1),
			Name:        idea.Name,
			Description: idea.Description,
			Category:    category,
			Calories:    idea.Calories,
			DietaryTags: idea.DietaryTags,
		})
	}
	return items, nil
}

const summaryPlaceholder = "Feedback summarization is unavailable: no AI credential is configured."

// SummarizeFeedback condenses freeform comment text into a short prose
// summary for the kitchen team
func (c *Client) SummarizeFeedback(ctx context.Context, comments []string) (string, error) {
	if !c.Enabled() {
		return summaryPlaceholder, nil
	}
	if len(comments) == 0 {
		return "No feedback has been submitted yet.", nil
	}

	prompt := "Summarize the following cafeteria feedback in a short paragraph, " +
		"highlighting recurring themes and concrete requests:\n\n- " +
		strings.Join(comments, "\n- ")

	response, err := c.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	},
		llms.WithTemperature(0.3),
		llms.WithModel(c.model),
	)
	if err != nil {
		return "", fmt.Errorf("failed to summarize feedback: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from completion endpoint")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
