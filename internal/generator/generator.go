package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
)

var ErrMalformedOutput = errors.New("malformed generator output")

// Client is the external content generator: free text in, free text out.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Adapter turns the generator's free text into validated questions. Any
// failure (timeout, transport error, missing delimiters) falls back to the
// built-in bank, so the quiz flow never stalls on the generator.
type Adapter struct {
	logger  *slog.Logger
	client  Client
	timeout time.Duration
}

func NewAdapter(logger *slog.Logger, client Client, timeout time.Duration) *Adapter {
	return &Adapter{
		logger:  logger.With("component", "generator"),
		client:  client,
		timeout: timeout,
	}
}

// NextQuestion produces one question for the category. The index picks the
// fallback question when the generator cannot serve.
func (that *Adapter) NextQuestion(ctx context.Context, category string, index int) *entity.Question {
	question, err := that.generate(ctx, category)
	if err != nil {
		that.logger.Warn("falling back to built-in bank",
			"category", category, "error", fmt.Errorf("%w: %w", apperror.ErrGeneratorUnavailable, err))

		return fallbackQuestion(category, index)
	}

	return question
}

func (that *Adapter) generate(ctx context.Context, category string) (*entity.Question, error) {
	if that.client == nil {
		return nil, errors.New("no generator client configured")
	}

	ctx, cancel := context.WithTimeout(ctx, that.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write one trivia question about %s. Reply with exactly two lines, 'Question: ...' and 'Answer: ...'.",
		category,
	)

	raw, err := that.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	question, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	return question, nil
}

// Parse extracts the prompt and canonical answer from generator output. It
// accepts "Question:"/"Q:" and "Answer:"/"A:" line prefixes; anything else is
// a parse failure.
func Parse(raw string) (*entity.Question, error) {
	var prompt, answer string

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case hasPrefixFold(line, "Question:"):
			prompt = strings.TrimSpace(line[len("Question:"):])
		case hasPrefixFold(line, "Q:"):
			prompt = strings.TrimSpace(line[len("Q:"):])
		case hasPrefixFold(line, "Answer:"):
			answer = strings.TrimSpace(line[len("Answer:"):])
		case hasPrefixFold(line, "A:"):
			answer = strings.TrimSpace(line[len("A:"):])
		}
	}

	if prompt == "" || answer == "" {
		return nil, fmt.Errorf("%w: missing question or answer line", ErrMalformedOutput)
	}

	return &entity.Question{
		ID:     uuid.NewString(),
		Prompt: prompt,
		Answer: answer,
	}, nil
}

func hasPrefixFold(line, prefix string) bool {
	return len(line) >= len(prefix) && strings.EqualFold(line[:len(prefix)], prefix)
}
