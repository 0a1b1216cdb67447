package botmw

import (
	"context"
	"errors"
	"time"

	"github.com/jobnest/jobnest/pkg/botx"
)

// ErrTimeout is returned by Timeout middleware when handler timed out.
var ErrTimeout = errors.New("timed out")

// Timeout cancels the context of the handler after the duration and
// returns ErrTimeout without waiting for the handler to stop.
func Timeout(dur time.Duration) botx.Middleware {
	type result struct {
		resps []botx.Response
		err   error
	}

	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, dur)
			defer cancel()

			done := make(chan result, 1)
			go func() {
				resps, err := next(ctx, req)
				done <- result{resps: resps, err: err}
			}()

			select {
			case res := <-done:
				return res.resps, res.err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return nil, ErrTimeout
				}
				return nil, ctx.Err()
			}
		}
	}
}
