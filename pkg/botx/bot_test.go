package botx

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBot_Run(t *testing.T) {
	updates := make(chan Request, 3)
	updates <- Request{MessageID: "1", Chat: Chat{ID: "10"}, Text: "/learn Go"}
	updates <- Request{MessageID: "2", Chat: Chat{ID: "20"}, Text: "/fail"}
	updates <- Request{MessageID: "3", Chat: Chat{ID: "30"}, Text: "/learn Rust"}
	close(updates)

	api := &APIMock{
		UpdatesFunc: func() <-chan Request { return updates },
		SendMessageFunc: func(ctx context.Context, resp Response) error {
			if resp.ChatID == "30" {
				return errors.New("chat is unavailable")
			}
			return nil
		},
	}

	rtr := NewRouter()
	rtr.Add("/learn", func(_ context.Context, req Request) ([]Response, error) {
		return []Response{{ChatID: req.Chat.ID, ReplyToMessageID: req.MessageID, Text: req.Args()}}, nil
	})
	rtr.Add("/fail", func(context.Context, Request) ([]Response, error) {
		return nil, errors.New("handler failed")
	})

	done := make(chan struct{})
	go func() {
		NewBot(rtr.Handle, api, WithWorkers(2)).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot didn't stop after updates channel was closed")
	}

	calls := api.SendMessageCalls()
	require.Len(t, calls, 2)

	sent := map[string]Response{}
	for _, call := range calls {
		sent[call.Resp.ChatID] = call.Resp
	}
	assert.Equal(t, Response{ChatID: "10", ReplyToMessageID: "1", Text: "Go"}, sent["10"])
	assert.Equal(t, Response{ChatID: "30", ReplyToMessageID: "3", Text: "Rust"}, sent["30"])
}

func TestBot_RunStopsOnContextCancel(t *testing.T) {
	api := &APIMock{UpdatesFunc: func() <-chan Request { return make(chan Request) }}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewBot(NotFound, api).Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot didn't stop after context cancellation")
	}
}

func TestBot_RunKeepsChatOrder(t *testing.T) {
	updates := make(chan Request)
	api := &APIMock{
		UpdatesFunc:     func() <-chan Request { return updates },
		SendMessageFunc: func(context.Context, Response) error { return nil },
	}

	var mu sync.Mutex
	got := map[string][]string{}
	h := func(_ context.Context, req Request) ([]Response, error) {
		mu.Lock()
		defer mu.Unlock()
		got[req.Chat.ID] = append(got[req.Chat.ID], req.Text)
		return nil, nil
	}

	done := make(chan struct{})
	go func() {
		NewBot(h, api, WithWorkers(4)).Run(context.Background())
		close(done)
	}()

	want := map[string][]string{}
	for i := 0; i < 20; i++ {
		chatID := strconv.Itoa(i % 3)
		text := "/learn " + strconv.Itoa(i)
		want[chatID] = append(want[chatID], text)
		updates <- Request{Chat: Chat{ID: chatID}, Text: text}
	}
	close(updates)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot didn't stop after updates channel was closed")
	}

	assert.Equal(t, want, got)
}

func TestBot_RunAsyncCommands(t *testing.T) {
	updates := make(chan Request, 3)
	updates <- Request{MessageID: "1", Chat: Chat{ID: "10"}, Text: "/learn Go"}
	updates <- Request{MessageID: "2", Chat: Chat{ID: "10"}, Text: "/learn Rust"}
	updates <- Request{MessageID: "3", Chat: Chat{ID: "10"}, Text: "/ping"}
	close(updates)

	api := &APIMock{
		UpdatesFunc:     func() <-chan Request { return updates },
		SendMessageFunc: func(context.Context, Response) error { return nil },
	}

	// the first request completes only after the second one has started,
	// which never happens if the chat requests are handled one by one
	started := make(chan struct{})
	rtr := NewRouter()
	rtr.Add("/learn", func(ctx context.Context, req Request) ([]Response, error) {
		if req.Args() == "Rust" {
			close(started)
		} else {
			select {
			case <-started:
			case <-time.After(time.Second):
				return nil, errors.New("requests were not handled concurrently")
			}
		}
		return []Response{{ChatID: req.Chat.ID, Text: req.Args()}}, nil
	})
	rtr.Add("/ping", func(_ context.Context, req Request) ([]Response, error) {
		return []Response{{ChatID: req.Chat.ID, Text: "pong"}}, nil
	})

	done := make(chan struct{})
	go func() {
		NewBot(rtr.Handle, api, WithAsync("/learn")).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("bot didn't stop after updates channel was closed")
	}

	var texts []string
	for _, call := range api.SendMessageCalls() {
		texts = append(texts, call.Resp.Text)
	}
	assert.ElementsMatch(t, []string{"Go", "Rust", "pong"}, texts)
}

func TestShard(t *testing.T) {
	assert.Equal(t, shard("42", 5), shard("42", 5))
	for _, id := range []string{"", "1", "42", "-100123456789"} {
		n := shard(id, 3)
		assert.True(t, n >= 0 && n < 3, "shard %d of chat %q is out of range", n, id)
	}
	assert.Equal(t, 0, shard("42", 1))
}
