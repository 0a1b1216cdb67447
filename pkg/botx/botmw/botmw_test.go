package botmw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobnest/jobnest/pkg/botx"
	"github.com/jobnest/jobnest/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var req = botx.Request{MessageID: "1", Chat: botx.Chat{ID: "42"}, Text: "/learn Go"}

func TestRecover(t *testing.T) {
	h := Recover(slog.New(logx.NoOp()))(func(context.Context, botx.Request) ([]botx.Response, error) {
		panic("boom")
	})

	resps, err := h(context.Background(), req)
	assert.EqualError(t, err, "panic: boom")
	assert.Empty(t, resps)
}

func TestRequestID_AppendRequestIDOnError(t *testing.T) {
	var reqID string
	h := RequestID()(AppendRequestIDOnError()(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
		reqID, _ = logx.RequestIDFromContext(ctx)
		return nil, errors.New("failed")
	}))

	resps, err := h(context.Background(), req)
	require.Error(t, err)
	require.NotEmpty(t, reqID)
	require.Len(t, resps, 1)
	assert.Equal(t, "42", resps[0].ChatID)
	assert.Contains(t, resps[0].Text, "Something went wrong")
	assert.Contains(t, resps[0].Text, reqID)

	t.Run("responses of the failed request get request id", func(t *testing.T) {
		h := AppendRequestIDOnError()(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "42", Text: "Failed to analyze the resume."}}, errors.New("failed")
		})

		resps, err := h(logx.ContextWithRequestID(context.Background(), "req-1"), req)
		require.Error(t, err)
		require.Len(t, resps, 1)
		assert.Equal(t, "Failed to analyze the resume.\n\nRequest ID: `req-1`", resps[0].Text)
	})

	t.Run("successful request is untouched", func(t *testing.T) {
		h := AppendRequestIDOnError()(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "42", Text: "ok"}}, nil
		})

		resps, err := h(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, []botx.Response{{ChatID: "42", Text: "ok"}}, resps)
	})
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	h := Timeout(10 * time.Millisecond)(func(context.Context, botx.Request) ([]botx.Response, error) {
		<-release
		return nil, nil
	})

	_, err := h(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeout)

	h = Timeout(time.Second)(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{ChatID: "42", Text: "ok"}}, nil
	})

	resps, err := h(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resps, 1)
}
