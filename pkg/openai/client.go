package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultGenerateTimeout = 60 * time.Second
	defaultDetectTimeout   = 30 * time.Second
)

// ErrEmptyResponse is returned when the API answers without any choice
var ErrEmptyResponse = errors.New("no response from OpenAI API")

// Client represents an OpenAI API client
type Client struct {
	client          *openai.Client
	model           string
	visionModel     string
	generateTimeout time.Duration
	detectTimeout   time.Duration
	logger          *logger.Logger
}

// Option customises a Client
type Option func(*Client)

// WithVisionModel sets the model used for photo detection
func WithVisionModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.visionModel = model
		}
	}
}

// WithTimeouts overrides the per-call timeouts. Zero values keep the defaults.
func WithTimeouts(generate, detect time.Duration) Option {
	return func(c *Client) {
		if generate > 0 {
			c.generateTimeout = generate
		}
		if detect > 0 {
			c.detectTimeout = detect
		}
	}
}

// New creates a new OpenAI client. The key is passed in explicitly; nothing
// is read from the environment here.
func New(apiKey, apiBase, model string, opts ...Option) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	c := &Client{
		client:          openai.NewClientWithConfig(config),
		model:           model,
		visionModel:     model,
		generateTimeout: defaultGenerateTimeout,
		detectTimeout:   defaultDetectTimeout,
		logger:          logger.New("openai"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the generation model name
func (c *Client) Model() string {
	return c.model
}

// RecipePrompt builds the fixed instruction sent with the ingredient list
func RecipePrompt(ingredients []string) string {
	return fmt.Sprintf(
		"I have these ingredients in my fridge: %s. "+
			"Create a simple, creative recipe I can cook right now. "+
			"Assume I have basic pantry items like oil, salt, and pepper. "+
			"Format the output clearly with Title, Ingredients, and Instructions.",
		strings.Join(ingredients, ", "),
	)
}

// GenerateRecipe asks the model for a recipe using the given ingredients and
// returns its freeform text unchanged
func (c *Client) GenerateRecipe(ctx context.Context, ingredients []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	prompt := RecipePrompt(ingredients)
	c.logger.Info("Requesting generated recipe for %d ingredients", len(ingredients))
	c.logger.Debug("OpenAI prompt (first 100 chars): %s", truncateString(prompt, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "OpenAI API error")
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))
	return content, nil
}

// DetectIngredients lists the food items visible in a fridge photo
func (c *Client) DetectIngredients(ctx context.Context, photoURL string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.detectTimeout)
	defer cancel()

	prompt := `You are a computer vision expert. Look at the image of a fridge or pantry and list all visible food ingredients.
Use short, singular, lowercase names.
Return only a JSON array of ingredient names, no other text.
For example: ["egg", "milk", "tomato", "chicken"]
`

	c.logger.Info("Extracting ingredients from photo")
	c.logger.Debug("Photo URL (truncated): %s", truncateString(photoURL, 50))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.visionModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: prompt,
				},
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: "What food ingredients do you see in this image? List all of them in a JSON array.",
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: photoURL,
							},
						},
					},
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		c.logger.Error("OpenAI API error: %v", err)
		return nil, errors.Wrap(err, "OpenAI API error")
	}

	if len(resp.Choices) == 0 {
		c.logger.Error("No response from OpenAI API")
		return nil, ErrEmptyResponse
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))

	var labels []string
	if err := json.Unmarshal([]byte(content), &labels); err != nil {
		c.logger.Warn("Failed to parse response as JSON: %v", err)

		// the model sometimes answers with a loose list instead of JSON
		if extracted := extractIngredientsFromText(content); len(extracted) > 0 {
			c.logger.Info("Extracted %d ingredients using fallback method", len(extracted))
			return extracted, nil
		}
		return nil, errors.Wrap(err, "failed to parse OpenAI response")
	}

	c.logger.Info("Successfully extracted %d ingredients from photo", len(labels))
	return labels, nil
}

// truncateString truncates a string to maxLen runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// cleanJSONResponse strips a surrounding markdown code fence, if any
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// first line may carry a language tag such as ```json
	if firstLineEnd := strings.Index(s, "\n"); firstLineEnd != -1 {
		s = s[firstLineEnd+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractIngredientsFromText splits a non-JSON answer into item names
func extractIngredientsFromText(s string) []string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '"' || r == '[' || r == ']' || r == '\t'
	})

	var ingredients []string
	for _, word := range words {
		word = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(word), "-*•"))
		word = strings.TrimSpace(word)
		if len(word) <= 1 {
			continue
		}
		if word == "null" || word == "true" || word == "false" {
			continue
		}
		if word[0] >= '0' && word[0] <= '9' {
			continue
		}
		ingredients = append(ingredients, word)
	}
	return ingredients
}
