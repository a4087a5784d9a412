// Package autocomplete drives an airport search box: input is debounced,
// answered from a small cache when possible, and only the newest request may
// update the suggestions.
package autocomplete

import (
	"context"
	"strings"
	"sync"
	"time"

	"skytrip/pkg/logger"
	"skytrip/pkg/skyscrapper"
)

const (
	DefaultDelay = 500 * time.Millisecond
	MinQueryLen  = 2
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusQuerying  Status = "querying"
	StatusPopulated Status = "populated"
	StatusEmpty     Status = "empty"
	StatusFailed    Status = "failed"
)

// Suggestion is one row of the dropdown.
type Suggestion struct {
	Name            string `json:"name"`
	SuggestionTitle string `json:"suggestionTitle"`
	Subtitle        string `json:"subtitle"`
	EntityID        string `json:"entityId"`
	SkyID           string `json:"skyId"`
	Type            string `json:"type"`
}

// Selection is what a chosen suggestion commits to the form.
type Selection struct {
	DisplayName string `json:"displayName"`
	SkyID       string `json:"skyId"`
	EntityID    string `json:"entityId"`
}

type State struct {
	Query       string       `json:"query"`
	Status      Status       `json:"status"`
	Suggestions []Suggestion `json:"suggestions"`
	Open        bool         `json:"open"`
	Token       uint64       `json:"token"`
}

// Searcher is the airport lookup backing the box.
type Searcher interface {
	SearchAirport(ctx context.Context, query, locale string) (*skyscrapper.AirportResponse, error)
}

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. The default wraps time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Box)

func WithDelay(d time.Duration) Option {
	return func(b *Box) { b.delay = d }
}

func WithAfterFunc(fn AfterFunc) Option {
	return func(b *Box) { b.afterFunc = fn }
}

func WithLocale(locale string) Option {
	return func(b *Box) { b.locale = locale }
}

// WithOnChange registers a hook called after every asynchronous state change.
func WithOnChange(fn func(State)) Option {
	return func(b *Box) { b.onChange = fn }
}

// Box is one autocomplete input. It is safe for concurrent use.
type Box struct {
	searcher  Searcher
	cache     *Cache
	logger    logger.Client
	base      context.Context
	delay     time.Duration
	afterFunc AfterFunc
	locale    string
	onChange  func(State)

	mu     sync.Mutex
	state  State
	timer  Timer
	cancel context.CancelFunc
}

// New creates a box. base bounds the lifetime of every request it issues.
// cache may be shared between boxes of the same screen.
func New(base context.Context, searcher Searcher, cache *Cache, log logger.Client, opts ...Option) *Box {
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	b := &Box{
		searcher:  searcher,
		cache:     cache,
		logger:    log,
		base:      base,
		delay:     DefaultDelay,
		afterFunc: realAfterFunc,
		state:     State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Input handles a keystroke. Every call supersedes any pending timer and any
// request still in flight.
func (b *Box) Input(text string) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.supersede()
	b.state.Query = text

	query := strings.TrimSpace(text)
	if len(query) < MinQueryLen {
		b.state.Status = StatusIdle
		b.state.Suggestions = nil
		b.state.Open = false
		return b.snapshot()
	}

	if cached, ok := b.cache.Get(query); ok {
		b.populate(cached)
		return b.snapshot()
	}

	token := b.state.Token
	b.timer = b.afterFunc(b.delay, func() { b.fire(token, query) })
	return b.snapshot()
}

// Select closes the dropdown and returns the values to commit. The cache is
// left untouched.
func (b *Box) Select(s Suggestion) Selection {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.supersede()
	b.state.Query = s.SuggestionTitle
	b.state.Status = StatusIdle
	b.state.Suggestions = nil
	b.state.Open = false

	return Selection{DisplayName: s.SuggestionTitle, SkyID: s.SkyID, EntityID: s.EntityID}
}

// Suggestion returns the current suggestion with the given entity id.
func (b *Box) Suggestion(entityID string) (Suggestion, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.state.Suggestions {
		if s.EntityID == entityID {
			return s, true
		}
	}
	return Suggestion{}, false
}

func (b *Box) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

// Close stops pending work. The box stays usable.
func (b *Box) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.supersede()
}

// supersede bumps the token and cancels whatever the previous one started.
// Callers hold b.mu.
func (b *Box) supersede() {
	b.state.Token++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *Box) fire(token uint64, query string) {
	b.mu.Lock()
	if token != b.state.Token {
		b.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(b.base)
	b.cancel = cancel
	b.timer = nil
	b.state.Status = StatusQuerying
	b.mu.Unlock()

	b.logger.Debug("airport lookup", logger.Field{Key: "query", Value: query})
	resp, err := b.searcher.SearchAirport(ctx, query, b.locale)

	b.mu.Lock()
	if token != b.state.Token {
		b.mu.Unlock()
		cancel()
		b.logger.Debug("discarding stale airport lookup", logger.Field{Key: "query", Value: query})
		return
	}
	b.cancel = nil
	cancel()

	if err != nil {
		b.logger.Warn("airport lookup failed", logger.Field{Key: "query", Value: query}, logger.Field{Key: "err", Value: err})
		b.state.Status = StatusFailed
		b.state.Suggestions = nil
		b.state.Open = false
	} else {
		suggestions := MapSuggestions(resp)
		b.cache.Put(query, suggestions)
		b.populate(suggestions)
	}
	snap := b.snapshot()
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(snap)
	}
}

func (b *Box) populate(suggestions []Suggestion) {
	b.state.Suggestions = suggestions
	b.state.Open = true
	if len(suggestions) == 0 {
		b.state.Status = StatusEmpty
		return
	}
	b.state.Status = StatusPopulated
}

func (b *Box) snapshot() State {
	s := b.state
	s.Suggestions = append([]Suggestion(nil), b.state.Suggestions...)
	return s
}

// MapSuggestions converts an airport response into dropdown rows.
func MapSuggestions(resp *skyscrapper.AirportResponse) []Suggestion {
	if resp == nil {
		return []Suggestion{}
	}
	out := make([]Suggestion, 0, len(resp.Data))
	for _, item := range resp.Data {
		out = append(out, Suggestion{
			Name:            item.Presentation.Title,
			SuggestionTitle: item.Presentation.SuggestionTitle,
			Subtitle:        item.Presentation.Subtitle,
			EntityID:        item.Navigation.EntityID,
			SkyID:           item.Navigation.RelevantFlightParams.SkyID,
			Type:            item.Navigation.EntityType,
		})
	}
	return out
}
