package botmw

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobnest/jobnest/pkg/botx"
	"github.com/jobnest/jobnest/pkg/logx"
	"github.com/samber/lo"
)

// RequestID puts a new request id into the context of each request.
func RequestID() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			return next(logx.ContextWithRequestID(ctx, uuid.NewString()), req)
		}
	}
}

const failedMessage = "Something went wrong, please try again later."

// AppendRequestIDOnError appends the request id to the replies of the failed
// request, so that the user could report it. If the handler replied nothing
// to the requester, a generic failure message is added.
func AppendRequestIDOnError() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			resps, err := next(ctx, req)
			if err == nil {
				return resps, nil
			}

			replied := lo.ContainsBy(resps, func(r botx.Response) bool { return r.ChatID == req.Chat.ID })
			if !replied {
				resps = append(resps, botx.Response{ChatID: req.Chat.ID, Text: failedMessage})
			}

			reqID, _ := logx.RequestIDFromContext(ctx)
			suffix := fmt.Sprintf("\n\nRequest ID: `%s`", reqID)
			for i := range resps {
				if resps[i].ChatID == req.Chat.ID {
					resps[i].Text += suffix
				}
			}

			return resps, err
		}
	}
}
