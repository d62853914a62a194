package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dailyvocab/internal/domain"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const wordsPerCall = 5

// ErrNotConfigured is returned when no API key was provided
var ErrNotConfigured = errors.New("word generator API key not configured")

// Generator produces vocabulary through a chat-completion API
type Generator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// New creates a generator; a nil client makes every call use the fallback path
func New(client *openai.Client, model string, logger *zap.Logger) *Generator {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &Generator{
		client: client,
		model:  model,
		logger: logger,
	}
}

// GenerateDailyWords asks the API for new words of the given level.
// It never fails: any error yields FallbackWords.
func (g *Generator) GenerateDailyWords(ctx context.Context, level domain.DifficultyLevel) []domain.Word {
	if !level.Valid() {
		level = domain.DefaultDifficulty
	}

	if g.client == nil {
		g.logger.Warn("Generator not configured, using fallback words")
		return FallbackWords()
	}

	content, err := g.complete(ctx, wordsSystemPrompt, wordsPrompt(level), 1500, 0.8)
	if err != nil {
		g.logger.Warn("Failed to generate words, using fallback words",
			zap.String("level", string(level)),
			zap.Error(err),
		)
		return FallbackWords()
	}

	words, err := ExtractWords(content)
	if err != nil {
		g.logger.Warn("Failed to parse generated words, using fallback words",
			zap.String("level", string(level)),
			zap.Error(err),
		)
		return FallbackWords()
	}

	if len(words) == 0 {
		g.logger.Warn("Generated response had no words, using fallback words",
			zap.String("level", string(level)),
		)
		return FallbackWords()
	}

	g.logger.Debug("Generated words",
		zap.String("level", string(level)),
		zap.Int("count", len(words)),
	)

	return words
}

// WordDetails asks the API for the dictionary entry of a single word
func (g *Generator) WordDetails(ctx context.Context, text string) (*domain.Word, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("word text is required")
	}

	if g.client == nil {
		return nil, ErrNotConfigured
	}

	content, err := g.complete(ctx, detailsSystemPrompt, detailsPrompt(text), 800, 0.3)
	if err != nil {
		return nil, err
	}

	words, err := ExtractWords(content)
	if err != nil {
		return nil, err
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no details returned for %q", text)
	}

	return &words[0], nil
}

func (g *Generator) complete(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}

	return content, nil
}
