package flight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"skytrip/internal/autocomplete"
	"skytrip/pkg/cache"
	"skytrip/pkg/skyscrapper"
)

type mockVendor struct {
	mock.Mock
}

func (m *mockVendor) SearchAirport(ctx context.Context, query, locale string) (*skyscrapper.AirportResponse, error) {
	args := m.Called(ctx, query, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.AirportResponse), args.Error(1)
}

func (m *mockVendor) GetNearbyAirports(ctx context.Context, lat, lng float64, locale string) (*skyscrapper.NearbyAirportsResponse, error) {
	args := m.Called(ctx, lat, lng, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.NearbyAirportsResponse), args.Error(1)
}

func (m *mockVendor) SearchFlightsComplete(ctx context.Context, p skyscrapper.SearchFlightsParams) (*skyscrapper.SearchResponse, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.SearchResponse), args.Error(1)
}

func (m *mockVendor) SearchIncomplete(ctx context.Context, p skyscrapper.IncompleteParams) (*skyscrapper.SearchResponse, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.SearchResponse), args.Error(1)
}

func (m *mockVendor) SearchFlightsMultiStops(ctx context.Context, p skyscrapper.MultiStopParams) (*skyscrapper.SearchResponse, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.SearchResponse), args.Error(1)
}

func (m *mockVendor) GetPriceCalendar(ctx context.Context, originSkyID, destinationSkyID, fromDate, toDate, currency string) (*skyscrapper.PriceCalendarResponse, error) {
	args := m.Called(ctx, originSkyID, destinationSkyID, fromDate, toDate, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.PriceCalendarResponse), args.Error(1)
}

func (m *mockVendor) GetFlightDetails(ctx context.Context, p skyscrapper.FlightDetailsParams) (*skyscrapper.FlightDetailsResponse, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.FlightDetailsResponse), args.Error(1)
}

func (m *mockVendor) SearchFlightEverywhere(ctx context.Context, originEntityID, cabinClass, journeyType, currency string) (*skyscrapper.EverywhereResponse, error) {
	args := m.Called(ctx, originEntityID, cabinClass, journeyType, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*skyscrapper.EverywhereResponse), args.Error(1)
}

// memCache is an in-process cache.Cache.
type memCache struct {
	mu      sync.Mutex
	data    map[string]string
	pingErr error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (c *memCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Ping(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pingErr
}

func (c *memCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) GenerateID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("sess-%d", g.n)
}

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualClock collects debounce timers until fireAll runs them.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) autocomplete.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) fireAll() {
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
