package geo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/seq"
	"golang.org/x/exp/slog"
)

// Defaults for the Autocomplete.
const (
	DefaultDebounce    = 300 * time.Millisecond
	DefaultMinQueryLen = 3
)

// ErrNoSuggestion is returned when the selected suggestion does not exist.
var ErrNoSuggestion = errors.New("no such suggestion")

// State is a state of the Autocomplete.
type State int

// Autocomplete states.
const (
	Idle State = iota
	Debouncing
	Querying
	Suggesting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Querying:
		return "querying"
	case Suggesting:
		return "suggesting"
	default:
		return "unknown"
	}
}

//go:generate moq -out mock_searcher.go . Searcher

// Searcher searches places by the query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]store.Place, error)
}

// AutocompleteParams defines parameters for the Autocomplete.
type AutocompleteParams struct {
	Debounce    time.Duration
	MinQueryLen int

	// Tracker and Key identify the dispatched searches,
	// the tracker may be shared between several inputs with different keys.
	Tracker *seq.Tracker
	Key     string

	// OnChange is called after suggestions were updated by a search.
	OnChange func(state State, suggestions []store.Place)
}

// Autocomplete suggests places for the typed query.
// Searches are made only for the settled input: each keystroke restarts
// the debounce timer, cancels the search in flight and discards
// the responses of all previously dispatched searches.
type Autocomplete struct {
	log *slog.Logger
	src Searcher
	AutocompleteParams

	mu          sync.Mutex
	state       State
	query       string
	suggestions []store.Place
	timer       *time.Timer
	cancel      context.CancelFunc
}

// NewAutocomplete makes new Autocomplete over the searcher.
func NewAutocomplete(lg *slog.Logger, src Searcher, params AutocompleteParams) *Autocomplete {
	if params.Debounce <= 0 {
		params.Debounce = DefaultDebounce
	}
	if params.MinQueryLen <= 0 {
		params.MinQueryLen = DefaultMinQueryLen
	}
	if params.Tracker == nil {
		params.Tracker = &seq.Tracker{}
	}

	return &Autocomplete{log: lg, src: src, AutocompleteParams: params}
}

// Type sets the current input and restarts the debounce timer.
func (a *Autocomplete) Type(query string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.reset()
	a.query = query
	a.state = Debouncing
	a.timer = time.AfterFunc(a.Debounce, func() { a.settle(query) })
}

// Select commits the suggestion with the given index as the input value.
func (a *Autocomplete) Select(idx int) (store.Place, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != Suggesting || idx < 0 || idx >= len(a.suggestions) {
		return store.Place{}, ErrNoSuggestion
	}

	place := a.suggestions[idx]

	a.reset()
	a.query = place.DisplayName
	a.suggestions = nil
	a.state = Idle

	return place, nil
}

// State returns the current state.
func (a *Autocomplete) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Query returns the current input.
func (a *Autocomplete) Query() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

// Suggestions returns the current suggestions.
func (a *Autocomplete) Suggestions() []store.Place {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]store.Place(nil), a.suggestions...)
}

// Close stops the pending timer and cancels the search in flight.
func (a *Autocomplete) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
	a.state = Idle
}

// reset invalidates everything dispatched before, must be called under lock.
func (a *Autocomplete) reset() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Tracker.Invalidate(a.Key)
}

func (a *Autocomplete) settle(query string) {
	a.mu.Lock()

	if a.state != Debouncing || a.query != query {
		a.mu.Unlock()
		return
	}

	if utf8.RuneCountInString(strings.TrimSpace(query)) < a.MinQueryLen {
		a.suggestions = nil
		a.state = Idle
		a.mu.Unlock()
		a.notify(Idle, nil)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	n := a.Tracker.Next(a.Key)
	a.cancel = cancel
	a.state = Querying
	a.mu.Unlock()

	go a.search(ctx, cancel, n, query)
}

func (a *Autocomplete) search(ctx context.Context, cancel context.CancelFunc, n uint64, query string) {
	defer cancel()

	places, err := a.src.Search(ctx, query)

	a.mu.Lock()
	if !a.Tracker.IsLatest(a.Key, n) {
		a.mu.Unlock()
		a.log.DebugContext(ctx, "discarded stale suggestions", slog.String("query", query))
		return
	}

	a.cancel = nil
	if err != nil {
		a.log.WarnContext(ctx, "failed to search places", slog.String("query", query), slog.Any("err", err))
		places = nil
	}

	a.suggestions = places
	a.state = Suggesting
	if len(places) == 0 {
		a.state = Idle
	}

	state, suggestions := a.state, append([]store.Place(nil), a.suggestions...)
	a.mu.Unlock()

	a.notify(state, suggestions)
}

func (a *Autocomplete) notify(state State, suggestions []store.Place) {
	if a.OnChange != nil {
		a.OnChange(state, suggestions)
	}
}
