package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_openai_client.go . OpenAIClient

// OpenAIClient is interface for OpenAI client with the possibility to mock it
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatGPTParams defines parameters for the ChatGPT client.
type ChatGPTParams struct {
	Token             string
	Model             string
	MaxResponseTokens int
	Timeout           time.Duration
}

// ChatGPT is a client to make requests to OpenAI chatgpt service.
type ChatGPT struct {
	log               *slog.Logger
	cl                OpenAIClient
	model             string
	maxResponseTokens int
	timeout           time.Duration
}

// NewChatGPT creates new ChatGPT client.
func NewChatGPT(lg *slog.Logger, cl *http.Client, params ChatGPTParams) (*ChatGPT, error) {
	if params.Token == "" {
		return nil, errors.New("openai token is required")
	}

	if params.Model == "" {
		params.Model = openai.GPT3Dot5Turbo
	}

	config := openai.DefaultConfig(params.Token)
	config.HTTPClient = cl

	return &ChatGPT{
		log:               lg,
		cl:                &loggingClient{log: lg, cl: openai.NewClientWithConfig(config)},
		model:             params.Model,
		maxResponseTokens: params.MaxResponseTokens,
		timeout:           params.Timeout,
	}, nil
}

// maxRequestTokens is a maximum number of tokens that can be sent to OpenAI.
const maxRequestTokens = 4097

// Generate sends the prompt as a single user message and returns the answer.
func (s *ChatGPT) Generate(ctx context.Context, prompt string) (string, error) {
	totalTokens := strings.Count(prompt, " ") + 1
	if totalTokens > maxRequestTokens {
		return "", s.fail(ctx, fmt.Errorf("too many tokens in prompt: %d", totalTokens))
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: s.maxResponseTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := s.cl.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", s.fail(ctx, fmt.Errorf("create chat completion: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", s.fail(ctx, errors.New("no choices in response"))
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", s.fail(ctx, errors.New("no text in response"))
	}

	return text, nil
}

func (s *ChatGPT) fail(ctx context.Context, err error) error {
	s.log.WarnContext(ctx, "chatgpt request failed", slog.Any("err", err))
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}

type loggingClient struct {
	log *slog.Logger
	cl  OpenAIClient
}

func (l *loggingClient) CreateChatCompletion(
	ctx context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	l.log.DebugContext(ctx, "sending request to chatGPT", slog.String("model", req.Model))
	resp, err := l.cl.CreateChatCompletion(ctx, req)
	l.log.DebugContext(ctx, "response received from chatGPT")
	return resp, err
}
