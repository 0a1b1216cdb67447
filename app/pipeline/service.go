// Package pipeline builds prompts for the generation service, parses its
// free-form answers into structured results and cross-references them
// with other services. Each page of the job board is a method of Service.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jobnest/jobnest/app/store"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_generator.go . Generator
//go:generate moq -out mock_recognizer.go . Recognizer
//go:generate moq -out mock_catalog.go . Catalog
//go:generate moq -out mock_news_source.go . NewsSource

// Generator generates text by the prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Recognizer extracts text from images.
type Recognizer interface {
	Transcribe(ctx context.Context, img []byte, mimeType string) (string, error)
}

// Catalog looks up books by title.
type Catalog interface {
	Lookup(ctx context.Context, title string) (link string, found bool, err error)
}

// NewsSource searches news articles by topic.
type NewsSource interface {
	Search(ctx context.Context, topic string) ([]store.Article, error)
}

// ServiceParams defines dependencies and settings of the Service.
type ServiceParams struct {
	Generator   Generator
	Recognizer  Recognizer
	Catalog     Catalog
	News        NewsSource
	NewsTopic   string
	LookupLimit int
}

// DefaultNewsTopic is searched for the tech talks page, unless configured.
const DefaultNewsTopic = "technology"

// Service runs the pipelines of the learn, resume analyzer and tech talks pages.
type Service struct {
	log *slog.Logger
	ServiceParams
}

// NewService makes new Service.
func NewService(lg *slog.Logger, params ServiceParams) *Service {
	if params.NewsTopic == "" {
		params.NewsTopic = DefaultNewsTopic
	}
	if params.LookupLimit <= 0 {
		params.LookupLimit = DefaultLookupLimit
	}
	return &Service{log: lg, ServiceParams: params}
}

// SuggestBooks suggests books to learn the skill, with catalog links
// for the books the catalog knows about.
func (s *Service) SuggestBooks(ctx context.Context, skill string) ([]store.Book, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, &ValidationError{Msg: MsgEmptySkill}
	}

	prompt, err := LearnPrompt(skill)
	if err != nil {
		return nil, fmt.Errorf("build learn prompt: %w", err)
	}

	resp, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &ExternalCallError{Msg: MsgSuggestFailed, Err: err}
	}

	titles := ParseBooks(resp)
	s.log.DebugContext(ctx, "books suggested", slog.String("skill", skill), slog.Int("count", len(titles)))

	return CrossReference(ctx, s.log, s.Catalog, titles, s.LookupLimit), nil
}

// ErrNoRecognizer is returned when a resume image is sent, but no recognizer
// is configured to transcribe it.
var ErrNoRecognizer = errors.New("no text recognizer configured")

var resumeMIMETypes = []string{"image/png", "image/jpeg"}

// AnalyzeResume transcribes the resume image and reviews its text.
func (s *Service) AnalyzeResume(ctx context.Context, img store.Image) (store.ResumeAnalysis, error) {
	if len(img.Data) == 0 {
		return store.ResumeAnalysis{}, &ValidationError{Msg: MsgNoResume}
	}

	mimeType := http.DetectContentType(img.Data)
	if !lo.Contains(resumeMIMETypes, mimeType) {
		s.log.DebugContext(ctx, "unsupported resume file",
			slog.String("name", img.Name),
			slog.String("declared_type", img.MIMEType),
			slog.String("detected_type", mimeType))
		return store.ResumeAnalysis{}, &ValidationError{Msg: MsgInvalidFileType}
	}

	if s.Recognizer == nil {
		return store.ResumeAnalysis{}, &ExternalCallError{Msg: MsgAnalyzeFailed, Err: ErrNoRecognizer}
	}

	text, err := s.Recognizer.Transcribe(ctx, img.Data, mimeType)
	if err != nil {
		return store.ResumeAnalysis{}, &ExternalCallError{Msg: MsgAnalyzeFailed, Err: fmt.Errorf("transcribe: %w", err)}
	}

	return s.review(ctx, text)
}

// AnalyzeResumeText reviews the plain resume text.
func (s *Service) AnalyzeResumeText(ctx context.Context, text string) (store.ResumeAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return store.ResumeAnalysis{}, &ValidationError{Msg: MsgEmptyResumeText}
	}
	return s.review(ctx, text)
}

func (s *Service) review(ctx context.Context, text string) (store.ResumeAnalysis, error) {
	prompt, err := ResumePrompt(text)
	if err != nil {
		return store.ResumeAnalysis{}, fmt.Errorf("build resume prompt: %w", err)
	}

	resp, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return store.ResumeAnalysis{}, &ExternalCallError{Msg: MsgAnalyzeFailed, Err: err}
	}

	res, err := ParseResumeAnalysis(resp)
	if err != nil {
		s.log.WarnContext(ctx, "failed to parse resume analysis", slog.Any("err", err))
	}

	if len(res.Degraded) > 0 {
		s.log.InfoContext(ctx, "resume analysis degraded", slog.Any("fields", res.Degraded))
	}

	return res, nil
}

// TechTalks returns the recent news related to technology or jobs.
func (s *Service) TechTalks(ctx context.Context) ([]store.Article, error) {
	articles, err := s.News.Search(ctx, s.NewsTopic)
	if err != nil {
		return nil, &ExternalCallError{Msg: MsgTechTalksFailed, Err: fmt.Errorf("search news: %w", err)}
	}

	if len(articles) == 0 {
		return []store.Article{}, nil
	}

	prompt, err := TechTalksPrompt(articles)
	if err != nil {
		return nil, fmt.Errorf("build tech talks prompt: %w", err)
	}

	resp, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &ExternalCallError{Msg: MsgTechTalksFailed, Err: err}
	}

	filtered := FilterArticles(articles, resp)
	s.log.DebugContext(ctx, "articles filtered",
		slog.Int("fetched", len(articles)),
		slog.Int("kept", len(filtered)))

	return filtered, nil
}
