package botx

import (
	"time"

	"golang.org/x/exp/slog"
)

// Options defines options for Bot.
type Options struct {
	// Workers is a number of goroutines handling requests,
	// requests of the same chat are always handled by the same worker.
	Workers int
	Logger  *slog.Logger
	// SendTimeout limits sending of a single response.
	SendTimeout time.Duration
	// Async lists the commands handled off the chat queue, concurrently
	// with the following requests of the same chat.
	Async []string
}

// Option defines a function that configures Bot.
type Option func(*Options)

// WithWorkers sets the number of workers to run, at least one.
func WithWorkers(workers int) Option {
	return func(o *Options) { o.Workers = max(workers, 1) }
}

// WithLogger sets the logger to use.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithAsync sets the commands to handle asynchronously.
func WithAsync(cmds ...string) Option {
	return func(o *Options) { o.Async = cmds }
}

// WithSendTimeout sets the timeout for sending a response.
func WithSendTimeout(d time.Duration) Option {
	return func(o *Options) { o.SendTimeout = d }
}
