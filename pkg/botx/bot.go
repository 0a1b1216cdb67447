// Package botx provides interfaces and types to handle chat bot updates
// with a chi-like router and a pool of workers.
package botx

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/jobnest/jobnest/pkg/logx"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// API defines methods for an API interface to receive and send chat messages.
type API interface {
	Updates() <-chan Request
	SendMessage(ctx context.Context, resp Response) error
}

// Bot dispatches the updates of the API to the handler.
type Bot struct {
	h   Handler
	api API
	Options
}

// NewBot creates a new Bot.
func NewBot(h Handler, api API, opts ...Option) *Bot {
	options := Options{
		Workers:     1,
		Logger:      slog.New(logx.NoOp()),
		SendTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &Bot{h: h, api: api, Options: options}
}

// Run handles updates until the context is canceled or the updates
// channel is closed.
func (b *Bot) Run(ctx context.Context) {
	queues := make([]chan Request, b.Workers)
	wg := &sync.WaitGroup{}

	for i := range queues {
		queues[i] = make(chan Request)
		wg.Add(1)
		go func(idx int, queue <-chan Request) {
			defer wg.Done()
			b.Logger.DebugContext(ctx, "worker started", slog.Int("worker", idx))
			for req := range queue {
				if !lo.Contains(b.Async, req.Command()) {
					b.handle(ctx, req)
					continue
				}

				wg.Add(1)
				go func(req Request) {
					defer wg.Done()
					b.handle(ctx, req)
				}(req)
			}
			b.Logger.DebugContext(ctx, "worker stopped", slog.Int("worker", idx))
		}(i, queues[i])
	}

	b.dispatch(ctx, queues)

	for _, q := range queues {
		close(q)
	}
	wg.Wait()
}

func (b *Bot) dispatch(ctx context.Context, queues []chan Request) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-b.api.Updates():
			if !ok {
				return
			}

			select {
			case queues[shard(req.Chat.ID, len(queues))] <- req:
			case <-ctx.Done():
				return
			}
		}
	}
}

func shard(chatID string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(chatID))
	return int(h.Sum32() % uint32(n))
}

func (b *Bot) handle(ctx context.Context, req Request) {
	resps, err := b.h(ctx, req)
	if err != nil {
		b.Logger.ErrorContext(ctx, "failed to handle request",
			slog.String("chat_id", req.Chat.ID), slog.Any("err", err))
	}

	for _, resp := range resps {
		sendCtx, cancel := context.WithTimeout(ctx, b.SendTimeout)
		if err := b.api.SendMessage(sendCtx, resp); err != nil {
			b.Logger.WarnContext(ctx, "failed to send message",
				slog.String("chat_id", resp.ChatID), slog.Any("err", err))
		}
		cancel()
	}
}
