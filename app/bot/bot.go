// Package bot contains routers and controllers for the chat bot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/jobnest/jobnest/app/geo"
	"github.com/jobnest/jobnest/app/pipeline"
	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/botx"
	"github.com/jobnest/jobnest/pkg/botx/botmw"
	"github.com/jobnest/jobnest/pkg/seq"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_pipeline.go . Pipeline
//go:generate moq -out mock_api.go . API

// Pipeline prepares the content of the pages.
type Pipeline interface {
	SuggestBooks(ctx context.Context, skill string) ([]store.Book, error)
	AnalyzeResume(ctx context.Context, img store.Image) (store.ResumeAnalysis, error)
	AnalyzeResumeText(ctx context.Context, text string) (store.ResumeAnalysis, error)
	TechTalks(ctx context.Context) ([]store.Article, error)
}

// API sends messages to chats and downloads the files sent by users.
type API interface {
	Updates() <-chan botx.Request
	SendMessage(ctx context.Context, resp botx.Response) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// Ctrl provides routes and controllers for bot updates.
type Ctrl struct {
	Logger         *slog.Logger
	Store          store.Interface
	Service        Pipeline
	API            API
	Places         geo.Searcher
	AdminIDs       []string
	HandlerTimeout time.Duration
	// Debounce is a delay before searching places for the typed location.
	Debounce time.Duration
	// CacheStat reports the stats of the generation cache, nil if disabled.
	CacheStat func() cache.Stats

	seq           seq.Tracker
	mu            sync.Mutex
	autocompletes map[string]*geo.Autocomplete
}

// Routes returns a multiplexer for bot controllers.
func (c *Ctrl) Routes() *botx.Router {
	rtr := botx.NewRouter()

	rtr.Use(
		botmw.RequestID(),
		botmw.AppendRequestIDOnError(),
		botmw.Logger(c.Logger),
		botmw.Timeout(c.HandlerTimeout),
		botmw.Recover(c.Logger),
		c.ensureRegistered,
	)

	rtr.NotFound(c.help)
	rtr.Add("/start", c.help)
	rtr.Add("/learn", c.learn)
	rtr.Add("/resume", c.resume)
	rtr.Add("/news", c.news)
	rtr.Add("/jobs", c.jobs)
	rtr.Add("/apply", c.apply)
	rtr.Add("/location", c.location)
	rtr.Add("/pick", c.pick)

	rtr.Group(func(rtr *botx.Router) {
		rtr.Use(c.ensureAdmin)

		rtr.Add("/users", c.users)
		rtr.Add("/cache", c.cacheStats)
	})

	return rtr
}

const helpText = "Hi! I'm JobNest bot, here is what I can do:\n" +
	"/learn <skill> - suggest books to learn the skill\n" +
	"/resume <text> - analyze your resume, you can also send a photo of it with /resume caption\n" +
	"/news - latest tech talks\n" +
	"/jobs - open jobs\n" +
	"/apply <job id> - apply for the job\n" +
	"/location <query> - search for your location\n" +
	"/pick <number> - pick the suggested location"

func (c *Ctrl) help(_ context.Context, req botx.Request) ([]botx.Response, error) {
	return reply(req, helpText), nil
}

func (c *Ctrl) ensureAdmin(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		if !lo.Contains(c.AdminIDs, req.Chat.ID) {
			return nil, nil
		}

		return h(ctx, req)
	}
}

// ensureRegistered puts the user of the chat into the context,
// registering the chat as a jobseeker at first contact.
func (c *Ctrl) ensureRegistered(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		u, err := c.Store.GetUser(ctx, req.Chat.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if u, err = c.register(ctx, req); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, fmt.Errorf("get user: %w", err)
		}

		return h(contextWithUser(ctx, u), req)
	}
}

func (c *Ctrl) register(ctx context.Context, req botx.Request) (store.User, error) {
	u := store.User{
		ID:       req.Chat.ID,
		Username: req.Chat.Username,
		Role:     store.RoleJobseeker,
	}

	if err := c.Store.PutUser(ctx, u); err != nil {
		return store.User{}, fmt.Errorf("add user: %w", err)
	}

	if err := c.NotifyAdmins(ctx, fmt.Sprintf("new user: %s", escapeMarkdown(req.Chat.Username))); err != nil {
		c.Logger.WarnContext(ctx, "notify admins about registered user", slog.Any("err", err))
	}

	return u, nil
}

// NotifyAdmins sends a message to all admins.
func (c *Ctrl) NotifyAdmins(ctx context.Context, msg string) error {
	for _, adminID := range c.AdminIDs {
		if err := c.API.SendMessage(ctx, botx.Response{
			ChatID: adminID,
			Text:   msg,
		}); err != nil {
			return fmt.Errorf("send message to admin: %w", err)
		}
	}

	return nil
}

// Close stops location searches of all chats.
func (c *Ctrl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ac := range c.autocompletes {
		ac.Close()
	}
}

// AsyncCommands are the commands that wait for the pipeline. They should
// be handled concurrently with the following requests of the chat, so that
// a resubmitted command supersedes the one still in flight.
var AsyncCommands = []string{"/learn", "/resume", "/news"}

// loading notifies the user that the request takes a while and returns
// the sequence number of the request, so that the result of a request
// superseded by a newer one of the same chat and command can be dropped.
// Message ids grow within a chat and serve as the sequence numbers, as
// concurrent requests may reach this point in any order.
func (c *Ctrl) loading(ctx context.Context, req botx.Request) (uint64, error) {
	n, err := strconv.ParseUint(req.MessageID, 10, 64)
	if err != nil {
		n = c.seq.Next(seqKey(req))
	} else {
		c.seq.Observe(seqKey(req), n)
	}

	err = c.API.SendMessage(ctx, botx.Response{
		ChatID: req.Chat.ID,
		Text:   "I'm working on it, please wait...",
	})
	if err != nil {
		return 0, fmt.Errorf("send loading message: %w", err)
	}

	return n, nil
}

func (c *Ctrl) superseded(ctx context.Context, req botx.Request, n uint64) bool {
	if c.seq.IsLatest(seqKey(req), n) {
		return false
	}

	c.Logger.DebugContext(ctx, "dropped superseded result",
		slog.String("chat_id", req.Chat.ID),
		slog.String("command", req.Command()))
	return true
}

func seqKey(req botx.Request) string { return req.Chat.ID + req.Command() }

// fail turns the pipeline errors into messages for the user.
// Failures of external calls are returned along with the message,
// so that the request id gets appended to it.
func fail(req botx.Request, err error) ([]botx.Response, error) {
	var verr *pipeline.ValidationError
	if errors.As(err, &verr) {
		return reply(req, verr.Msg), nil
	}

	var eerr *pipeline.ExternalCallError
	if errors.As(err, &eerr) {
		return reply(req, eerr.Msg), err
	}

	return nil, err
}

func reply(req botx.Request, text string) []botx.Response {
	return []botx.Response{{
		ChatID:           req.Chat.ID,
		ReplyToMessageID: req.MessageID,
		Text:             text,
	}}
}

var mdEscaper = strings.NewReplacer(
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	"[", "\\[",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}
