package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jobnest/jobnest/app/geo"
	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/botx"
	"golang.org/x/exp/slog"
)

func (c *Ctrl) jobs(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	jobs, err := c.Store.ListJobs(ctx, store.ListJobsRequest{OnlyOpen: true})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	if len(jobs) == 0 {
		return reply(req, "There are no open jobs yet."), nil
	}

	sb := &strings.Builder{}
	for _, j := range jobs {
		_, _ = fmt.Fprintf(sb, "*%s* at %s\n", escapeMarkdown(j.Title), escapeMarkdown(j.Company))
		_, _ = fmt.Fprintf(sb, "%s, %s", escapeMarkdown(j.Location), j.ExperienceLabel())
		if j.Salary != "" {
			_, _ = fmt.Fprintf(sb, ", %s", escapeMarkdown(j.Salary))
		}
		_, _ = fmt.Fprintf(sb, "\n%s\n/apply %s\n\n", escapeMarkdown(j.Preview()), j.ID)
	}

	return reply(req, sb.String()), nil
}

func (c *Ctrl) apply(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	u := mustUser(ctx)
	if u.Role != store.RoleJobseeker {
		return reply(req, "Only jobseekers can apply for jobs."), nil
	}

	jobID := req.Args()
	if jobID == "" {
		return reply(req, "Please provide the job id, e.g. /apply 42."), nil
	}

	_, err := c.Store.Apply(ctx, jobID, u.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return reply(req, "Job not found."), nil
	case errors.Is(err, store.ErrJobClosed):
		return reply(req, "This job is not accepting applications anymore."), nil
	case errors.Is(err, store.ErrAlreadyApplied):
		return reply(req, "You have already applied for this job."), nil
	case err != nil:
		return nil, fmt.Errorf("apply for job %s: %w", jobID, err)
	}

	return reply(req, "Application submitted!"), nil
}

func (c *Ctrl) location(_ context.Context, req botx.Request) ([]botx.Response, error) {
	query := req.Args()
	ac := c.autocomplete(req.Chat.ID)

	if utf8.RuneCountInString(query) < geo.DefaultMinQueryLen {
		ac.Close()
		return reply(req, fmt.Sprintf("Please type at least %d characters of your location.",
			geo.DefaultMinQueryLen)), nil
	}

	// suggestions are sent once the search is settled
	ac.Type(query)
	return nil, nil
}

func (c *Ctrl) pick(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	idx, err := strconv.Atoi(req.Args())
	if err != nil {
		return reply(req, "Please provide the number of the suggested location, e.g. /pick 1."), nil
	}

	place, err := c.autocomplete(req.Chat.ID).Select(idx - 1)
	if errors.Is(err, geo.ErrNoSuggestion) {
		return reply(req, "No such location, search for it with /location first."), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select location: %w", err)
	}

	u := mustUser(ctx)
	u.Location = place.DisplayName
	if err = c.Store.PutUser(ctx, u); err != nil {
		return nil, fmt.Errorf("update user location: %w", err)
	}

	return reply(req, "Your location is set to "+escapeMarkdown(place.DisplayName)+"."), nil
}

// autocomplete returns the location input of the chat.
func (c *Ctrl) autocomplete(chatID string) *geo.Autocomplete {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.autocompletes == nil {
		c.autocompletes = make(map[string]*geo.Autocomplete)
	}

	if ac, ok := c.autocompletes[chatID]; ok {
		return ac
	}

	ac := geo.NewAutocomplete(c.Logger, c.Places, geo.AutocompleteParams{
		Debounce: c.Debounce,
		Tracker:  &c.seq,
		Key:      chatID + "/location",
		OnChange: func(state geo.State, places []store.Place) {
			c.sendSuggestions(chatID, state, places)
		},
	})

	c.autocompletes[chatID] = ac
	return ac
}

func (c *Ctrl) sendSuggestions(chatID string, state geo.State, places []store.Place) {
	text := "No places found, try another query."
	if state == geo.Suggesting {
		sb := &strings.Builder{}
		_, _ = sb.WriteString("Pick your location with /pick <number>:\n")
		for i, p := range places {
			_, _ = fmt.Fprintf(sb, "%d. %s\n", i+1, escapeMarkdown(p.DisplayName))
		}
		text = sb.String()
	}

	ctx := context.Background()
	if err := c.API.SendMessage(ctx, botx.Response{ChatID: chatID, Text: text}); err != nil {
		c.Logger.WarnContext(ctx, "failed to send location suggestions",
			slog.String("chat_id", chatID), slog.Any("err", err))
	}
}
