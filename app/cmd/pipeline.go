package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jobnest/jobnest/app/catalog"
	"github.com/jobnest/jobnest/app/generation"
	"github.com/jobnest/jobnest/app/news"
	"github.com/jobnest/jobnest/app/pipeline"
	"github.com/jobnest/jobnest/pkg/logx"
	"golang.org/x/exp/slog"
)

// PipelineOpts defines options of the services the pages are built with.
type PipelineOpts struct {
	Generation struct {
		Provider  string        `long:"provider" env:"PROVIDER" choice:"gemini" choice:"openai" default:"gemini" description:"generation service provider"`
		Token     string        `long:"token" env:"TOKEN" description:"generation service token"`
		Model     string        `long:"model" env:"MODEL" description:"model to use, provider's default if empty"`
		MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"1000" description:"max tokens in response, openai only"`
		Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"2m" description:"timeout for generation calls"`
		OCRToken  string        `long:"ocr-token" env:"OCR_TOKEN" description:"gemini token to transcribe resume images, generation token is used for gemini provider"`
		OCRModel  string        `long:"ocr-model" env:"OCR_MODEL" description:"gemini model to transcribe resume images, generation model is used for gemini provider"`

		Cache struct {
			Size int           `long:"size" env:"SIZE" default:"100" description:"max number of cached responses, 0 to disable"`
			TTL  time.Duration `long:"ttl" env:"TTL" default:"1h" description:"ttl of cached responses"`
		} `group:"cache" namespace:"cache" env-namespace:"CACHE"`
	} `group:"generation" namespace:"generation" env-namespace:"GENERATION"`

	Catalog struct {
		URL      string        `long:"url" env:"URL" default:"https://openlibrary.org" description:"open library url"`
		Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"timeout for catalog calls"`
		CacheTTL time.Duration `long:"cache-ttl" env:"CACHE_TTL" default:"24h" description:"ttl of cached lookups"`
	} `group:"catalog" namespace:"catalog" env-namespace:"CATALOG"`

	News struct {
		Token   string        `long:"token" env:"TOKEN" description:"gnews api token"`
		URL     string        `long:"url" env:"URL" default:"https://gnews.io" description:"gnews url"`
		Lang    string        `long:"lang" env:"LANG" default:"en" description:"language of the news"`
		Max     int           `long:"max" env:"MAX" default:"10" description:"max number of fetched articles"`
		Topic   string        `long:"topic" env:"TOPIC" default:"technology" description:"topic of the tech talks page"`
		Feeds   []string      `long:"feed" env:"FEEDS" env-delim:"," description:"rss feeds to search when no gnews token is set"`
		Enrich  bool          `long:"enrich" env:"ENRICH" description:"fetch pages of the articles without description"`
		Workers int           `long:"enrich-workers" env:"ENRICH_WORKERS" default:"4" description:"number of pages fetched concurrently"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"15s" description:"timeout for news calls"`
	} `group:"news" namespace:"news" env-namespace:"NEWS"`
}

// services are the built services of the pipeline.
type services struct {
	*pipeline.Service
	cache *generation.Cached
}

func (o PipelineOpts) build(ctx context.Context, lg *slog.Logger) (services, error) {
	gen, err := o.generator(ctx, lg)
	if err != nil {
		return services{}, err
	}

	res := services{}
	if o.Generation.Cache.Size > 0 {
		res.cache = generation.NewCached(gen, o.Generation.Cache.Size, o.Generation.Cache.TTL)
		gen = res.cache
	}

	rec, err := o.recognizer(ctx, lg)
	if err != nil {
		return services{}, err
	}

	params := pipeline.ServiceParams{
		Generator: gen,
		Catalog: catalog.NewOpenLibrary(
			lg.With(slog.String("prefix", "openlibrary")),
			http.Client{Timeout: o.Catalog.Timeout},
			catalog.OpenLibraryParams{BaseURL: o.Catalog.URL, CacheTTL: o.Catalog.CacheTTL},
		),
		News:      o.newsSource(lg),
		NewsTopic: o.News.Topic,
	}

	// typed nil must not get into the interface
	if rec != nil {
		params.Recognizer = rec
	}

	res.Service = pipeline.NewService(lg.With(slog.String("prefix", "pipeline")), params)
	return res, nil
}

func (o PipelineOpts) generator(ctx context.Context, lg *slog.Logger) (generation.Generator, error) {
	if o.Generation.Token == "" {
		return nil, errors.New("generation token is required")
	}

	switch o.Generation.Provider {
	case "openai":
		lg = lg.With(slog.String("prefix", "chatgpt"))
		gpt, err := generation.NewChatGPT(lg,
			loggingClient(lg, 0, []string{"Authorization"}, nil),
			generation.ChatGPTParams{
				Token:             o.Generation.Token,
				Model:             o.Generation.Model,
				MaxResponseTokens: o.Generation.MaxTokens,
				Timeout:           o.Generation.Timeout,
			},
		)
		if err != nil {
			return nil, fmt.Errorf("make chatgpt client: %w", err)
		}
		return gpt, nil
	default:
		gemini, err := o.gemini(ctx, lg, o.Generation.Token, o.Generation.Model)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	}
}

func (o PipelineOpts) recognizer(ctx context.Context, lg *slog.Logger) (*generation.Gemini, error) {
	token := o.Generation.OCRToken
	if token == "" && o.Generation.Provider == "gemini" {
		token = o.Generation.Token
	}

	if token == "" {
		lg.Warn("no gemini token to transcribe resume images, only text resumes are supported")
		return nil, nil
	}

	// the generation model belongs to another provider unless it's gemini
	model := o.Generation.OCRModel
	if model == "" && o.Generation.Provider == "gemini" {
		model = o.Generation.Model
	}

	return o.gemini(ctx, lg, token, model)
}

func (o PipelineOpts) gemini(ctx context.Context, lg *slog.Logger, token, model string) (*generation.Gemini, error) {
	lg = lg.With(slog.String("prefix", "gemini"))
	gemini, err := generation.NewGemini(ctx, lg, generation.GeminiParams{
		Token:      token,
		Model:      model,
		Timeout:    o.Generation.Timeout,
		HTTPClient: loggingClient(lg, 0, []string{"X-Goog-Api-Key"}, []string{"key"}),
	})
	if err != nil {
		return nil, fmt.Errorf("make gemini client: %w", err)
	}
	return gemini, nil
}

func (o PipelineOpts) newsSource(lg *slog.Logger) pipeline.NewsSource {
	var src news.Source
	switch {
	case o.News.Token != "":
		src = news.NewGNews(
			lg.With(slog.String("prefix", "gnews")),
			http.Client{Timeout: o.News.Timeout},
			news.GNewsParams{BaseURL: o.News.URL, Token: o.News.Token, Lang: o.News.Lang, Max: o.News.Max},
		)
	case len(o.News.Feeds) > 0:
		rssLog := lg.With(slog.String("prefix", "rss"))
		src = news.NewRSS(rssLog, loggingClient(rssLog, o.News.Timeout, nil, nil), o.News.Feeds)
	default:
		lg.Warn("neither news token nor rss feeds are set, tech talks page will fail")
		src = news.NewGNews(lg.With(slog.String("prefix", "gnews")), http.Client{Timeout: o.News.Timeout},
			news.GNewsParams{BaseURL: o.News.URL, Lang: o.News.Lang, Max: o.News.Max})
	}

	if !o.News.Enrich {
		return src
	}

	return news.NewEnricher(lg.With(slog.String("prefix", "enricher")), src,
		http.Client{Timeout: o.News.Timeout}, o.News.Workers)
}

// loggingClient makes an http client that logs requests at debug level.
func loggingClient(lg *slog.Logger, timeout time.Duration, secretHeaders, secretQuery []string) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{
			Level:         slog.LevelDebug,
			SecretHeaders: secretHeaders,
			SecretQuery:   secretQuery,
		})(http.DefaultTransport),
	}
}
