package llm

import (
	"context"
	"errors"
	"fmt"
)

var ErrEmptyResponse = errors.New("empty response from model")

type StanceInput struct {
	Text       string
	Target     string
	TargetType string
}

type StanceResult struct {
	Stance        string
	Justification string
	ModelUsed     string
}

type StanceClassifier interface {
	Classify(ctx context.Context, input StanceInput) (*StanceResult, error)
}

// NewClassifier picks the backing model by provider name.
func NewClassifier(provider, openAIKey, anthropicKey string) (StanceClassifier, error) {
	switch provider {
	case "", "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return NewOpenAIClient(openAIKey), nil
	case "anthropic":
		if anthropicKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		return NewAnthropicClient(anthropicKey), nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", provider)
}
