package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
	"google.golang.org/genai"
)

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content, FinishReason: genai.FinishReasonStop}},
	}
}

func TestGemini_Generate(t *testing.T) {
	mock := &GeminiClientMock{
		GenerateContentFunc: func(
			ctx context.Context,
			model string,
			contents []*genai.Content,
			_ *genai.GenerateContentConfig,
		) (*genai.GenerateContentResponse, error) {
			assert.Equal(t, DefaultGeminiModel, model)
			require.Len(t, contents, 1)
			require.Len(t, contents[0].Parts, 1)
			assert.Equal(t, "suggest books about go", contents[0].Parts[0].Text)

			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)

			return textResponse("**Books:** ", "1. Learning Go"), nil
		},
	}

	g := &Gemini{log: slog.Default(), cl: mock, model: DefaultGeminiModel, timeout: time.Minute}

	resp, err := g.Generate(context.Background(), "suggest books about go")
	require.NoError(t, err)
	assert.Equal(t, "**Books:** 1. Learning Go", resp)
	assert.Len(t, mock.GenerateContentCalls(), 1)
}

func TestGemini_Transcribe(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}

	mock := &GeminiClientMock{
		GenerateContentFunc: func(
			_ context.Context,
			_ string,
			contents []*genai.Content,
			_ *genai.GenerateContentConfig,
		) (*genai.GenerateContentResponse, error) {
			require.Len(t, contents, 1)
			require.Len(t, contents[0].Parts, 2)
			assert.Equal(t, transcribePrompt, contents[0].Parts[0].Text)
			require.NotNil(t, contents[0].Parts[1].InlineData)
			assert.Equal(t, "image/png", contents[0].Parts[1].InlineData.MIMEType)
			assert.Equal(t, img, contents[0].Parts[1].InlineData.Data)
			return textResponse("John Doe\nGo developer"), nil
		},
	}

	g := &Gemini{log: slog.Default(), cl: mock, model: DefaultGeminiModel}

	text, err := g.Transcribe(context.Background(), img, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "John Doe\nGo developer", text)
}

func TestGemini_GenerateFailures(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		err  error
	}{
		{name: "service error", err: errors.New("quota exceeded")},
		{name: "nil response"},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}},
		{
			name: "blocked",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				FinishReason: genai.FinishReasonSafety,
			}}},
		},
		{name: "empty text", resp: textResponse("  ", "\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Gemini{log: slog.Default(), model: DefaultGeminiModel, cl: &GeminiClientMock{
				GenerateContentFunc: func(
					context.Context,
					string,
					[]*genai.Content,
					*genai.GenerateContentConfig,
				) (*genai.GenerateContentResponse, error) {
					return tt.resp, tt.err
				},
			}}

			_, err := g.Generate(context.Background(), "hello")
			assert.ErrorIs(t, err, ErrGenerationFailed)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestNewGemini_NoToken(t *testing.T) {
	_, err := NewGemini(context.Background(), slog.Default(), GeminiParams{})
	assert.Error(t, err)
}
