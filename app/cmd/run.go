// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobnest/jobnest/app/bot"
	"github.com/jobnest/jobnest/app/geo"
	"github.com/jobnest/jobnest/app/rest"
	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/botx"
	"github.com/jobnest/jobnest/pkg/botx/botapi"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Run is a command to run the HTTP API and the bot.
type Run struct {
	PipelineOpts

	Listen        string `long:"listen" env:"LISTEN" default:":8080" description:"address to listen on"`
	StorePath     string `long:"store-path" env:"STORE_PATH" default:"./var" description:"parent dir for bolt files"`
	MaxUploadSize int64  `long:"max-upload-size" env:"MAX_UPLOAD_SIZE" default:"10485760" description:"max size of the uploaded resume in bytes"`

	Geo struct {
		URL       string        `long:"url" env:"URL" default:"https://nominatim.openstreetmap.org" description:"nominatim url"`
		UserAgent string        `long:"user-agent" env:"USER_AGENT" default:"jobnest" description:"user agent for nominatim requests"`
		Limit     int           `long:"limit" env:"LIMIT" default:"5" description:"max number of suggested places"`
		Interval  time.Duration `long:"interval" env:"INTERVAL" default:"1s" description:"min interval between nominatim requests"`
		Debounce  time.Duration `long:"debounce" env:"DEBOUNCE" default:"300ms" description:"delay before searching the typed location"`
	} `group:"geo" namespace:"geo" env-namespace:"GEO"`

	Bot struct {
		Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"6m" description:"timeout for requests"`
		Workers  int           `long:"workers" env:"WORKERS" default:"10" description:"number of workers to handle updates"`
		AdminIDs []string      `long:"admin-ids" env:"ADMIN_IDS" env-delim:"," description:"admin chat IDs"`

		Telegram struct {
			Token string `long:"token" env:"TOKEN" description:"telegram token, bot is disabled if empty"`
		} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`
	} `group:"bot" namespace:"bot" env-namespace:"BOT"`

	Version string `no-flag:"true"`
}

// Execute runs the command.
func (r Run) Execute(_ []string) error {
	lg := slog.Default()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	svc, err := r.build(ctx, lg)
	if err != nil {
		return fmt.Errorf("make pipeline: %w", err)
	}

	s, err := store.NewBolt(r.StorePath)
	if err != nil {
		return fmt.Errorf("make store: %w", err)
	}

	defer func() {
		if err := s.Close(); err != nil {
			lg.Error("close bolt store", slog.Any("err", err))
		}
	}()

	places := geo.NewNominatim(
		lg.With(slog.String("prefix", "nominatim")),
		http.Client{Timeout: 10 * time.Second},
		geo.NominatimParams{
			BaseURL:   r.Geo.URL,
			UserAgent: r.Geo.UserAgent,
			Limit:     r.Geo.Limit,
			Interval:  r.Geo.Interval,
		},
	)

	srv := &rest.Server{
		Logger:        lg.With(slog.String("prefix", "rest")),
		Addr:          r.Listen,
		Version:       r.Version,
		Service:       svc,
		Places:        places,
		Store:         s,
		MaxUploadSize: r.MaxUploadSize,
	}

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case sig := <-sig:
			lg.Warn("caught signal, stopping", slog.String("signal", sig.String()))
			stop()
			return nil
		case <-ctx.Done():
			return nil
		}
	})
	ewg.Go(func() error { return srv.Run(ctx) })

	if r.Bot.Telegram.Token == "" {
		lg.Info("telegram token is not set, bot is disabled")
		return ewg.Wait()
	}

	return r.runBot(ctx, lg, ewg, svc, s, places)
}

func (r Run) runBot(
	ctx context.Context,
	lg *slog.Logger,
	ewg *errgroup.Group,
	svc services,
	s store.Interface,
	places geo.Searcher,
) error {
	// plain client, the request urls contain the token
	api, err := botapi.NewTelegram(
		lg.With(slog.String("prefix", "telegram")),
		&http.Client{Timeout: 90 * time.Second},
		r.Bot.Telegram.Token,
		100,
	)
	if err != nil {
		return fmt.Errorf("make telegram api: %w", err)
	}

	ctrl := &bot.Ctrl{
		Logger:         lg.With(slog.String("prefix", "bot")),
		Store:          s,
		Service:        svc,
		API:            api,
		Places:         places,
		AdminIDs:       r.Bot.AdminIDs,
		HandlerTimeout: r.Bot.Timeout,
		Debounce:       r.Geo.Debounce,
	}
	defer ctrl.Close()

	if svc.cache != nil {
		ctrl.CacheStat = svc.cache.Stat
	}

	b := botx.NewBot(
		ctrl.Routes().Handle,
		api,
		botx.WithLogger(lg.With(slog.String("prefix", "botx"))),
		botx.WithWorkers(r.Bot.Workers),
		botx.WithAsync(bot.AsyncCommands...),
	)

	if err := ctrl.NotifyAdmins(ctx, "bot started"); err != nil {
		lg.Warn("notify admins about started bot", slog.Any("err", err))
	}

	ewg.Go(func() error {
		lg.Info("starting bot")
		b.Run(ctx)
		lg.Warn("bot stopped")
		return nil
	})

	// api is run out of errgroup, because it lives longer than the context,
	// as we want to notify admins about bot stopping
	apiStopped := make(chan struct{})
	go func() {
		lg.Info("starting telegram api")
		api.Run()
		lg.Warn("telegram api stopped listening for updates")
		close(apiStopped)
	}()

	werr := ewg.Wait()

	msg := "bot stopped"
	if werr != nil {
		msg = fmt.Sprintf("bot stopped with error: %v", werr)
	}

	if err := ctrl.NotifyAdmins(context.Background(), msg); err != nil {
		lg.Warn("notify admins about stopped bot", slog.Any("err", err))
	}

	lg.Info("stopping telegram api")
	api.Stop()
	<-apiStopped
	lg.Info("telegram api stopped")

	if werr != nil && !errors.Is(werr, context.Canceled) {
		return werr
	}

	return nil
}
