// Package botmw provides middlewares for bot handler.
package botmw

import (
	"context"
	"fmt"
	"time"

	"github.com/jobnest/jobnest/pkg/botx"
	"golang.org/x/exp/slog"
)

// Logger logs requests and the time they took. Message texts may contain
// personal data, e.g. resumes, so they are logged only at debug level.
func Logger(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			debug := lg.Enabled(ctx, slog.LevelDebug)

			attrs := []any{
				slog.String("chat_id", req.Chat.ID),
				slog.String("chat_username", req.Chat.Username),
				slog.String("command", req.Command()),
				slog.Bool("has_attachment", req.Attachment != nil),
			}
			if debug {
				attrs = append(attrs, slog.String("text", req.Text))
			}

			start := time.Now()
			resps, err := next(ctx, req)

			attrs = append(attrs,
				slog.Int("responses", len(resps)),
				slog.Duration("elapsed", time.Since(start)),
			)
			if debug {
				attrs = append(attrs, slog.Any("response_texts", texts(resps)))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("err", err))
			}

			lg.InfoContext(ctx, "request handled", attrs...)
			return resps, err
		}
	}
}

func texts(resps []botx.Response) []string {
	res := make([]string, len(resps))
	for i, r := range resps {
		res[i] = r.Text
	}
	return res
}

// Recover turns panics of the handler into errors.
func Recover(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) (resps []botx.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					lg.ErrorContext(ctx, "panic recovered",
						slog.String("chat_id", req.Chat.ID), slog.Any("panic", r))
					resps, err = nil, fmt.Errorf("panic: %v", r)
				}
			}()

			return next(ctx, req)
		}
	}
}
