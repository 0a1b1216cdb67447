package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"google.golang.org/genai"
)

// DefaultGeminiModel is a model used when none is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

//go:generate moq -out mock_gemini_client.go . GeminiClient

// GeminiClient is an interface for the genai models service with the possibility to mock it.
type GeminiClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiParams defines parameters for the Gemini client.
type GeminiParams struct {
	Token      string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Gemini makes requests to the Google Gemini API.
type Gemini struct {
	log     *slog.Logger
	cl      GeminiClient
	model   string
	timeout time.Duration
}

// NewGemini creates new Gemini client.
func NewGemini(ctx context.Context, lg *slog.Logger, params GeminiParams) (*Gemini, error) {
	if params.Token == "" {
		return nil, errors.New("gemini token is required")
	}

	if params.Model == "" {
		params.Model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     params.Token,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: params.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("make genai client: %w", err)
	}

	return &Gemini{
		log:     lg,
		cl:      client.Models,
		model:   params.Model,
		timeout: params.Timeout,
	}, nil
}

// Model returns the name of the model the requests are sent to.
func (g *Gemini) Model() string { return g.model }

// Generate sends the prompt to the model and returns the generated text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, genai.Text(prompt))
}

const transcribePrompt = "Transcribe all text in this image exactly as written. " +
	"Keep the original line breaks, do not summarize, do not add any comments."

// Transcribe extracts the text from the image.
func (g *Gemini) Transcribe(ctx context.Context, img []byte, mimeType string) (string, error) {
	return g.generate(ctx, []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: transcribePrompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: img}},
		},
	}})
}

func (g *Gemini) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.log.DebugContext(ctx, "sending request to gemini", slog.String("model", g.model))

	resp, err := g.cl.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", g.fail(ctx, fmt.Errorf("generate content: %w", err))
	}

	text, err := responseText(resp)
	if err != nil {
		return "", g.fail(ctx, err)
	}

	g.log.DebugContext(ctx, "response received from gemini", slog.Int("length", len(text)))
	return text, nil
}

func (g *Gemini) fail(ctx context.Context, err error) error {
	g.log.WarnContext(ctx, "gemini request failed", slog.Any("err", err))
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", errors.New("nil response")
	case len(resp.Candidates) == 0:
		return "", errors.New("no candidates in response")
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return "", errors.New("content blocked by safety filters")
	case resp.Candidates[0].Content == nil:
		return "", errors.New("empty content in response")
	}

	sb := &strings.Builder{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("no text in response")
	}

	return sb.String(), nil
}
