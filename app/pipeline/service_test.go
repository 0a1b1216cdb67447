package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jobnest/jobnest/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var pngHeader = []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")

func TestService_SuggestBooks(t *testing.T) {
	gen := &GeneratorMock{
		GenerateFunc: func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, `"Machine Learning"`)
			assert.Contains(t, prompt, LabelBooks)
			return booksResponse, nil
		},
	}

	links := map[string]string{
		mlBooks[0]: "https://openlibrary.org/works/OL17801179W",
		mlBooks[2]: "https://openlibrary.org/works/OL19546227W",
		mlBooks[4]: "https://openlibrary.org/works/OL20036425W",
	}
	catalog := &CatalogMock{
		LookupFunc: func(_ context.Context, title string) (string, bool, error) {
			link, ok := links[title]
			return link, ok, nil
		},
	}

	svc := NewService(slog.Default(), ServiceParams{Generator: gen, Catalog: catalog})

	books, err := svc.SuggestBooks(context.Background(), "  Machine Learning ")
	require.NoError(t, err)
	assert.Equal(t, []store.Book{
		{Title: mlBooks[0], Link: links[mlBooks[0]]},
		{Title: mlBooks[1]},
		{Title: mlBooks[2], Link: links[mlBooks[2]]},
		{Title: mlBooks[3]},
		{Title: mlBooks[4], Link: links[mlBooks[4]]},
	}, books)
	assert.Len(t, gen.GenerateCalls(), 1)
	assert.Len(t, catalog.LookupCalls(), 5)
}

func TestService_SuggestBooks_Errors(t *testing.T) {
	gen := &GeneratorMock{GenerateFunc: func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	svc := NewService(slog.Default(), ServiceParams{Generator: gen, Catalog: &CatalogMock{}})

	_, err := svc.SuggestBooks(context.Background(), "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgEmptySkill, verr.Msg)
	assert.Empty(t, gen.GenerateCalls())

	_, err = svc.SuggestBooks(context.Background(), "Go")
	var eerr *ExternalCallError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, MsgSuggestFailed, eerr.Msg)
}

func TestService_AnalyzeResume(t *testing.T) {
	rec := &RecognizerMock{
		TranscribeFunc: func(_ context.Context, img []byte, mimeType string) (string, error) {
			assert.Equal(t, pngHeader, img)
			assert.Equal(t, "image/png", mimeType)
			return "John Doe\nGo developer", nil
		},
	}
	gen := &GeneratorMock{
		GenerateFunc: func(_ context.Context, prompt string) (string, error) {
			assert.True(t, strings.HasSuffix(prompt, "John Doe\nGo developer\n"))
			return resumeFull, nil
		},
	}

	svc := NewService(slog.Default(), ServiceParams{Generator: gen, Recognizer: rec})

	res, err := svc.AnalyzeResume(context.Background(), store.Image{Name: "cv.png", Data: pngHeader})
	require.NoError(t, err)
	assert.Equal(t, "Good", res.Rating)
	assert.Len(t, res.KeyPoints, 3)
	assert.Empty(t, res.Degraded)
}

func TestService_AnalyzeResume_Validation(t *testing.T) {
	rec := &RecognizerMock{}
	gen := &GeneratorMock{}
	svc := NewService(slog.Default(), ServiceParams{Generator: gen, Recognizer: rec})

	_, err := svc.AnalyzeResume(context.Background(), store.Image{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgNoResume, verr.Msg)

	_, err = svc.AnalyzeResume(context.Background(), store.Image{
		Name:     "cv.pdf",
		MIMEType: "image/png",
		Data:     []byte("%PDF-1.4 resume"),
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgInvalidFileType, verr.Msg)

	_, err = svc.AnalyzeResumeText(context.Background(), "\n\t")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgEmptyResumeText, verr.Msg)

	assert.Empty(t, rec.TranscribeCalls())
	assert.Empty(t, gen.GenerateCalls())
}

func TestService_AnalyzeResume_RecognizerFailed(t *testing.T) {
	rec := &RecognizerMock{TranscribeFunc: func(context.Context, []byte, string) (string, error) {
		return "", errors.New("ocr failed")
	}}
	gen := &GeneratorMock{}
	svc := NewService(slog.Default(), ServiceParams{Generator: gen, Recognizer: rec})

	_, err := svc.AnalyzeResume(context.Background(), store.Image{Data: pngHeader})
	var eerr *ExternalCallError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, MsgAnalyzeFailed, eerr.Msg)
	assert.Empty(t, gen.GenerateCalls())
}

func TestService_AnalyzeResume_NoRecognizer(t *testing.T) {
	gen := &GeneratorMock{}
	svc := NewService(slog.Default(), ServiceParams{Generator: gen})

	_, err := svc.AnalyzeResume(context.Background(), store.Image{Data: pngHeader})
	var eerr *ExternalCallError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, MsgAnalyzeFailed, eerr.Msg)
	assert.ErrorIs(t, err, ErrNoRecognizer)
	assert.Empty(t, gen.GenerateCalls())
}

func TestService_AnalyzeResumeText_Degraded(t *testing.T) {
	gen := &GeneratorMock{GenerateFunc: func(context.Context, string) (string, error) {
		return resumeNoRating, nil
	}}
	svc := NewService(slog.Default(), ServiceParams{Generator: gen})

	res, err := svc.AnalyzeResumeText(context.Background(), "Jane Doe, frontend developer")
	require.NoError(t, err)
	assert.Equal(t, NotRated, res.Rating)
	assert.Equal(t, "Junior frontend developer with a strong portfolio of React projects.", res.Summary)
	assert.Equal(t, []string{"Built a job board from scratch.", "Contributes to design systems."}, res.KeyPoints)
	assert.Equal(t, []string{FieldRating}, res.Degraded)
}

func TestService_TechTalks(t *testing.T) {
	articles := []store.Article{
		{Title: "Go 1.23 is released", URL: "https://go.dev/blog/go1.23"},
		{Title: "Celebrity wedding of the year", URL: "https://example.com/gossip"},
		{Title: "", URL: "https://example.com/untitled"},
		{Title: "Tech layoffs slow down", URL: "https://example.com/jobs"},
	}

	news := &NewsSourceMock{SearchFunc: func(_ context.Context, topic string) ([]store.Article, error) {
		assert.Equal(t, DefaultNewsTopic, topic)
		return articles, nil
	}}
	gen := &GeneratorMock{GenerateFunc: func(_ context.Context, prompt string) (string, error) {
		assert.Contains(t, prompt, "3.  - https://example.com/untitled")
		return "1. Go 1.23 is released - https://go.dev/blog/go1.23\n" +
			"4. Tech layoffs slow down - https://example.com/jobs", nil
	}}

	svc := NewService(slog.Default(), ServiceParams{Generator: gen, News: news})

	res, err := svc.TechTalks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.Article{articles[0], articles[3]}, res)
}

func TestService_TechTalks_Failures(t *testing.T) {
	t.Run("news failed", func(t *testing.T) {
		gen := &GeneratorMock{}
		svc := NewService(slog.Default(), ServiceParams{
			Generator: gen,
			News: &NewsSourceMock{SearchFunc: func(context.Context, string) ([]store.Article, error) {
				return nil, errors.New("unauthorized")
			}},
		})

		_, err := svc.TechTalks(context.Background())
		var eerr *ExternalCallError
		require.ErrorAs(t, err, &eerr)
		assert.Equal(t, MsgTechTalksFailed, eerr.Msg)
		assert.Empty(t, gen.GenerateCalls())
	})

	t.Run("no articles", func(t *testing.T) {
		gen := &GeneratorMock{}
		svc := NewService(slog.Default(), ServiceParams{
			Generator: gen,
			News: &NewsSourceMock{SearchFunc: func(context.Context, string) ([]store.Article, error) {
				return nil, nil
			}},
		})

		res, err := svc.TechTalks(context.Background())
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.Empty(t, gen.GenerateCalls())
	})

	t.Run("generation failed", func(t *testing.T) {
		svc := NewService(slog.Default(), ServiceParams{
			Generator: &GeneratorMock{GenerateFunc: func(context.Context, string) (string, error) {
				return "", errors.New("blocked")
			}},
			News: &NewsSourceMock{SearchFunc: func(context.Context, string) ([]store.Article, error) {
				return []store.Article{{Title: "X"}}, nil
			}},
		})

		_, err := svc.TechTalks(context.Background())
		var eerr *ExternalCallError
		require.ErrorAs(t, err, &eerr)
		assert.Equal(t, MsgTechTalksFailed, eerr.Msg)
	})
}
