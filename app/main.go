// Package main is an entrypoint for application
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/jessevdk/go-flags"
	"github.com/jobnest/jobnest/app/cmd"
	"github.com/jobnest/jobnest/pkg/logx"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

var opts struct {
	Run     cmd.Run     `command:"run" description:"run http api and telegram bot"`
	Learn   cmd.Learn   `command:"learn" description:"suggest books to learn the skill"`
	Analyze cmd.Analyze `command:"analyze" description:"analyze the resume"`
	News    cmd.News    `command:"news" description:"show tech talks"`

	JSONLogs bool `long:"json-logs" env:"JSON_LOGS" description:"turn on json logs"`
	Debug    bool `long:"dbg" env:"DEBUG" description:"turn on debug mode"`
}

var version = "unknown"

func getVersion() string {
	v, ok := debug.ReadBuildInfo()
	if !ok || v.Main.Version == "(devel)" {
		return version
	}
	return v.Main.Version
}

func main() {
	fmt.Fprintf(os.Stderr, "jobnest, version: %s\n", getVersion())

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	opts.Run.Version = getVersion()

	p := flags.NewParser(&opts, flags.Default)
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLog()

		if err := cmd.Execute(args); err != nil {
			slog.Error("failed to execute command", slog.Any("err", err))
			os.Exit(1)
		}

		return nil
	}

	// after failure command does not return non-zero code
	if _, err := p.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			slog.Error("failed to parse flags", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func setupLog() {
	handler := &slog.HandlerOptions{Level: slog.LevelInfo}

	if opts.Debug {
		handler.Level = slog.LevelDebug
		handler.AddSource = true
	}

	var h slog.Handler = slog.NewTextHandler(os.Stderr, handler)
	if opts.JSONLogs {
		h = slog.NewJSONHandler(os.Stderr, handler)
	}

	slog.SetDefault(slog.New(logx.NewChain(h, logx.RequestID)))
}
