package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skytrip/pkg/logger"
	"skytrip/pkg/skyscrapper"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) SearchAirport(ctx context.Context, query, locale string) (*skyscrapper.AirportResponse, error) {
	args := m.Called(ctx, query, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.AirportResponse), args.Error(1)
}

type fakeTimer struct {
	fn      func()
	delay   time.Duration
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock hands out timers that only fire when the test says so.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{fn: f, delay: d}
	c.timers = append(c.timers, t)
	return t
}

// fireAll runs every timer that was not stopped.
func (c *fakeClock) fireAll() {
	c.mu.Lock()
	pending := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, t := range pending {
		if !t.stopped {
			t.fn()
		}
	}
}

func airportResponse(titles ...string) *skyscrapper.AirportResponse {
	resp := &skyscrapper.AirportResponse{Status: true}
	for i, title := range titles {
		resp.Data = append(resp.Data, skyscrapper.AirportSuggestion{
			Presentation: skyscrapper.Presentation{Title: title, SuggestionTitle: title + " (Any)", Subtitle: "Somewhere"},
			Navigation: skyscrapper.Navigation{
				EntityID:             fmt.Sprintf("ent-%d", i),
				EntityType:           "AIRPORT",
				RelevantFlightParams: skyscrapper.RelevantFlightParams{SkyID: fmt.Sprintf("SKY%d", i)},
			},
		})
	}
	return resp
}

func newBox(s Searcher, clock *fakeClock, cache *Cache) *Box {
	return New(context.Background(), s, cache, logger.Nop(), WithAfterFunc(clock.AfterFunc))
}

func TestInput_ShortQueryStaysIdle(t *testing.T) {
	s := new(mockSearcher)
	clock := &fakeClock{}
	b := newBox(s, clock, nil)

	st := b.Input("l")
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, clock.timers)
	s.AssertNotCalled(t, "SearchAirport", mock.Anything, mock.Anything, mock.Anything)
}

func TestInput_DebouncesToLatest(t *testing.T) {
	s := new(mockSearcher)
	s.On("SearchAirport", mock.Anything, "lond", "").Return(airportResponse("London"), nil).Once()
	clock := &fakeClock{}
	b := newBox(s, clock, nil)

	b.Input("lo")
	b.Input("lon")
	b.Input("lond")

	require.Len(t, clock.timers, 3)
	assert.True(t, clock.timers[0].stopped)
	assert.True(t, clock.timers[1].stopped)
	assert.Equal(t, DefaultDelay, clock.timers[2].delay)

	clock.fireAll()

	st := b.State()
	assert.Equal(t, StatusPopulated, st.Status)
	assert.True(t, st.Open)
	require.Len(t, st.Suggestions, 1)
	assert.Equal(t, Suggestion{
		Name:            "London",
		SuggestionTitle: "London (Any)",
		Subtitle:        "Somewhere",
		EntityID:        "ent-0",
		SkyID:           "SKY0",
		Type:            "AIRPORT",
	}, st.Suggestions[0])
	s.AssertExpectations(t)
}

func TestInput_CacheHitIssuesNoRequest(t *testing.T) {
	s := new(mockSearcher)
	s.On("SearchAirport", mock.Anything, "par", "").Return(airportResponse("Paris"), nil).Once()
	s.On("SearchAirport", mock.Anything, "pa", "").Return(airportResponse(), nil).Once()
	clock := &fakeClock{}
	b := newBox(s, clock, nil)

	b.Input("par")
	clock.fireAll()
	b.Input("pa")
	clock.fireAll()

	st := b.Input("par")
	assert.Equal(t, StatusPopulated, st.Status)
	assert.Len(t, st.Suggestions, 1)
	assert.Empty(t, clock.timers)

	s.AssertNumberOfCalls(t, "SearchAirport", 2)
}

func TestInput_EmptyResult(t *testing.T) {
	s := new(mockSearcher)
	s.On("SearchAirport", mock.Anything, "zzz", "").Return(airportResponse(), nil).Once()
	clock := &fakeClock{}
	b := newBox(s, clock, nil)

	b.Input("zzz")
	clock.fireAll()

	assert.Equal(t, StatusEmpty, b.State().Status)
}

func TestInput_FailureIsNotCached(t *testing.T) {
	s := new(mockSearcher)
	s.On("SearchAirport", mock.Anything, "ber", "").Return(nil, errors.New("503")).Once()
	clock := &fakeClock{}
	cache := NewCache(DefaultCacheSize)
	b := newBox(s, clock, cache)

	b.Input("ber")
	clock.fireAll()

	assert.Equal(t, StatusFailed, b.State().Status)
	_, ok := cache.Get("ber")
	assert.False(t, ok)
}

func TestInput_StaleResponseDiscarded(t *testing.T) {
	clock := &fakeClock{}
	release := make(chan struct{})
	started := make(chan struct{})

	s := new(mockSearcher)
	var staleCtx context.Context
	s.On("SearchAirport", mock.Anything, "rom", "").Run(func(args mock.Arguments) {
		staleCtx = args.Get(0).(context.Context)
		close(started)
		<-release
	}).Return(airportResponse("Rome"), nil).Once()
	s.On("SearchAirport", mock.Anything, "mad", "").Return(airportResponse("Madrid"), nil).Once()

	b := newBox(s, clock, nil)
	b.Input("rom")

	done := make(chan struct{})
	go func() {
		clock.fireAll()
		close(done)
	}()
	<-started

	b.Input("mad")
	require.Error(t, staleCtx.Err())
	clock.fireAll()

	close(release)
	<-done

	st := b.State()
	require.Len(t, st.Suggestions, 1)
	assert.Equal(t, "Madrid", st.Suggestions[0].Name)
	assert.Equal(t, "mad", st.Query)
}

func TestSelect_ClosesWithoutTouchingCache(t *testing.T) {
	s := new(mockSearcher)
	s.On("SearchAirport", mock.Anything, "lon", "").Return(airportResponse("London"), nil).Once()
	clock := &fakeClock{}
	cache := NewCache(DefaultCacheSize)
	b := newBox(s, clock, cache)

	b.Input("lon")
	clock.fireAll()
	before := cache.Len()

	sug, ok := b.Suggestion("ent-0")
	require.True(t, ok)
	sel := b.Select(sug)

	assert.Equal(t, Selection{DisplayName: "London (Any)", SkyID: "SKY0", EntityID: "ent-0"}, sel)
	assert.False(t, b.State().Open)
	assert.Empty(t, b.State().Suggestions)
	assert.Equal(t, before, cache.Len())
}

func TestOnChange_CalledAfterLookup(t *testing.T) {
	s := new(mockSearcher)
	s.On("SearchAirport", mock.Anything, "nyc", "").Return(airportResponse("New York"), nil).Once()
	clock := &fakeClock{}

	var got []State
	b := New(context.Background(), s, nil, logger.Nop(),
		WithAfterFunc(clock.AfterFunc),
		WithOnChange(func(st State) { got = append(got, st) }),
	)
	b.Input("nyc")
	clock.fireAll()

	require.Len(t, got, 1)
	assert.Equal(t, StatusPopulated, got[0].Status)
}

func TestCache_EvictsOldestAtCapacity(t *testing.T) {
	c := NewCache(DefaultCacheSize)
	for i := 0; i < DefaultCacheSize; i++ {
		c.Put(fmt.Sprintf("q%02d", i), []Suggestion{{Name: fmt.Sprint(i)}})
	}
	require.Equal(t, DefaultCacheSize, c.Len())

	c.Put("q20", nil)

	assert.Equal(t, DefaultCacheSize, c.Len())
	_, ok := c.Get("q00")
	assert.False(t, ok, "first inserted query must be evicted")
	_, ok = c.Get("q01")
	assert.True(t, ok)
	_, ok = c.Get("q20")
	assert.True(t, ok)
}

func TestCache_RewriteKeepsPosition(t *testing.T) {
	c := NewCache(2)
	c.Put("a", nil)
	c.Put("b", nil)
	c.Put("a", []Suggestion{{Name: "A"}})
	c.Put("c", nil)

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestBox_TwentyFirstQueryEvictsOldest(t *testing.T) {
	s := new(mockSearcher)
	s.On("SearchAirport", mock.Anything, mock.Anything, "").Return(airportResponse("X"), nil)
	clock := &fakeClock{}
	cache := NewCache(DefaultCacheSize)
	b := newBox(s, clock, cache)

	for i := 0; i <= DefaultCacheSize; i++ {
		b.Input(fmt.Sprintf("query-%02d", i))
		clock.fireAll()
	}
	s.AssertNumberOfCalls(t, "SearchAirport", DefaultCacheSize+1)

	b.Input("query-00")
	assert.Len(t, clock.timers, 1, "evicted query must be fetched again")
}

func TestMapSuggestions_Nil(t *testing.T) {
	assert.Empty(t, MapSuggestions(nil))
}
