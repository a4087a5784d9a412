package flight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"skytrip/internal/autocomplete"
	"skytrip/internal/calendar"
	"skytrip/internal/results"
	"skytrip/internal/searchform"
	"skytrip/pkg/cache"
	"skytrip/pkg/idgen"
	"skytrip/pkg/logger"
	"skytrip/pkg/skyscrapper"
)

// VendorClient is the subset of the Sky Scrapper client the screen uses.
type VendorClient interface {
	SearchAirport(ctx context.Context, query, locale string) (*skyscrapper.AirportResponse, error)
	GetNearbyAirports(ctx context.Context, lat, lng float64, locale string) (*skyscrapper.NearbyAirportsResponse, error)
	SearchFlightsComplete(ctx context.Context, p skyscrapper.SearchFlightsParams) (*skyscrapper.SearchResponse, error)
	SearchIncomplete(ctx context.Context, p skyscrapper.IncompleteParams) (*skyscrapper.SearchResponse, error)
	SearchFlightsMultiStops(ctx context.Context, p skyscrapper.MultiStopParams) (*skyscrapper.SearchResponse, error)
	GetPriceCalendar(ctx context.Context, originSkyID, destinationSkyID, fromDate, toDate, currency string) (*skyscrapper.PriceCalendarResponse, error)
	GetFlightDetails(ctx context.Context, p skyscrapper.FlightDetailsParams) (*skyscrapper.FlightDetailsResponse, error)
	SearchFlightEverywhere(ctx context.Context, originEntityID, cabinClass, journeyType, currency string) (*skyscrapper.EverywhereResponse, error)
}

const DefaultSessionIdleTTL = 30 * time.Minute

type Option func(*Service)

// WithClock replaces time.Now, which decides what "today" is for the calendar.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithAutocompleteOptions(opts ...autocomplete.Option) Option {
	return func(s *Service) { s.acOpts = append(s.acOpts, opts...) }
}

func WithSessionIdleTTL(d time.Duration) Option {
	return func(s *Service) { s.idleTTL = d }
}

// Service owns every open search screen.
type Service struct {
	client  VendorClient
	cache   cache.Cache
	ttl     time.Duration
	ids     idgen.Generator
	logger  logger.Client
	now     func() time.Time
	acOpts  []autocomplete.Option
	idleTTL time.Duration

	base   context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewService(client VendorClient, cache cache.Cache, ids idgen.Generator, ttlMinutes int, logger logger.Client, opts ...Option) *Service {
	base, cancel := context.WithCancel(context.Background())
	s := &Service{
		client:   client,
		cache:    cache,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
		idleTTL:  DefaultSessionIdleTTL,
		base:     base,
		cancel:   cancel,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close cancels background lookups of every session.
func (s *Service) Close() {
	s.cancel()
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		sess.closeAll()
		sess.mu.Unlock()
	}
}

func (s *Service) CreateSession(ctx context.Context) (Snapshot, error) {
	s.evictIdle()

	id := s.ids.GenerateID()
	sess := newSession(id, s.now())

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info("Session created", logger.Field{Key: "session_id", Value: id})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(sess), nil
}

func (s *Service) DeleteSession(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	sess.closeAll()
	sess.mu.Unlock()
	return nil
}

func (s *Service) Snapshot(id string) (Snapshot, error) {
	var snap Snapshot
	err := s.withSession(id, func(sess *session) error {
		snap = s.snapshot(sess)
		return nil
	})
	return snap, err
}

// AirportInput records typed text and feeds it to the field's autocomplete.
// Suggestions arrive asynchronously; the returned state may still be idle.
func (s *Service) AirportInput(id string, req AirportInputRequest) (autocomplete.State, error) {
	var st autocomplete.State
	err := s.withSession(id, func(sess *session) error {
		if err := sess.form.SetText(req.Leg, req.Field, req.Text); err != nil {
			return err
		}
		st = s.box(sess, req.Leg, req.Field).Input(req.Text)
		return nil
	})
	return st, err
}

// AirportSelect commits one of the field's current suggestions. Once both
// airports of a one-way or round trip are set the calendar opens.
func (s *Service) AirportSelect(ctx context.Context, id string, req AirportSelectRequest) (Snapshot, error) {
	var snap Snapshot
	err := s.withSession(id, func(sess *session) error {
		if req.Leg < 0 || req.Leg >= len(sess.form.Legs) {
			return fmt.Errorf("%w: index %d", searchform.ErrLegNotFound, req.Leg)
		}
		if req.Field != searchform.FieldOrigin && req.Field != searchform.FieldDestination {
			return fmt.Errorf("%w: %q", searchform.ErrInvalidField, req.Field)
		}

		b := s.box(sess, req.Leg, req.Field)
		sug, ok := b.Suggestion(req.EntityID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrSuggestionNotFound, req.EntityID)
		}

		both, err := sess.form.SelectAirport(req.Leg, req.Field, b.Select(sug))
		if err != nil {
			return err
		}
		if both && sess.form.TripType != searchform.TripMultiCity {
			s.openCalendar(ctx, sess, req.Leg, calendar.FieldDeparture)
		}
		snap = s.snapshot(sess)
		return nil
	})
	return snap, err
}

func (s *Service) UpdateForm(id string, req FormUpdateRequest) (Snapshot, error) {
	var snap Snapshot
	err := s.withSession(id, func(sess *session) error {
		f := sess.form
		if req.TripType != nil {
			if err := f.SetTripType(*req.TripType); err != nil {
				return err
			}
			sess.cal = calendar.Close(sess.cal)
		}
		if req.CabinClass != nil {
			if err := f.SetCabinClass(*req.CabinClass); err != nil {
				return err
			}
		}
		if req.Passengers != nil {
			f.SetPassengers(*req.Passengers)
		}
		if req.PassengerChange != nil {
			if err := f.ChangePassengers(req.PassengerChange.Kind, req.PassengerChange.Delta); err != nil {
				return err
			}
		}
		if req.SortBy != nil {
			f.SetSortBy(*req.SortBy)
		}
		if req.AddLeg {
			f.AddLeg()
		}
		if req.RemoveLegID != nil {
			if err := f.RemoveLeg(*req.RemoveLegID); err != nil {
				return err
			}
			sess.dropBoxes()
			sess.cal = calendar.Close(sess.cal)
		}
		snap = s.snapshot(sess)
		return nil
	})
	return snap, err
}

func (s *Service) OpenCalendar(ctx context.Context, id string, leg int, field calendar.Field) (calendar.View, error) {
	var v calendar.View
	err := s.withSession(id, func(sess *session) error {
		if leg < 0 || leg >= len(sess.form.Legs) {
			return fmt.Errorf("%w: index %d", searchform.ErrLegNotFound, leg)
		}
		v = s.openCalendar(ctx, sess, leg, field)
		return nil
	})
	return v, err
}

// CalendarClick applies a day click and commits the chosen date to the form.
func (s *Service) CalendarClick(id, day string) (CalendarResult, error) {
	var res CalendarResult
	err := s.withSession(id, func(sess *session) error {
		if !sess.cal.Open || sess.calLeg >= len(sess.form.Legs) {
			return ErrCalendarClosed
		}

		next, out, err := calendar.Click(sess.cal, day, s.now())
		if err != nil {
			return err
		}
		if out.Departure != "" {
			if err := sess.form.SetDate(sess.calLeg, out.Departure); err != nil {
				return err
			}
		}
		if out.Return != "" {
			sess.form.SetReturnDate(out.Return)
		}
		sess.cal = next

		res = CalendarResult{View: calendar.Render(sess.cal, sess.overlay, s.now()), Outcome: out}
		return nil
	})
	return res, err
}

func (s *Service) CalendarHover(id, day string) (calendar.View, error) {
	var v calendar.View
	err := s.withSession(id, func(sess *session) error {
		if !sess.cal.Open {
			return ErrCalendarClosed
		}
		next, err := calendar.Hover(sess.cal, day)
		if err != nil {
			return err
		}
		sess.cal = next
		v = calendar.Render(sess.cal, sess.overlay, s.now())
		return nil
	})
	return v, err
}

func (s *Service) CalendarNavigate(ctx context.Context, id string, delta int) (calendar.View, error) {
	var v calendar.View
	err := s.withSession(id, func(sess *session) error {
		if !sess.cal.Open {
			return ErrCalendarClosed
		}
		sess.cal = calendar.Navigate(sess.cal, delta)
		s.ensureOverlay(ctx, sess)
		v = calendar.Render(sess.cal, sess.overlay, s.now())
		return nil
	})
	return v, err
}

func (s *Service) CloseCalendar(id string) (Snapshot, error) {
	var snap Snapshot
	err := s.withSession(id, func(sess *session) error {
		sess.cal = calendar.Close(sess.cal)
		snap = s.snapshot(sess)
		return nil
	})
	return snap, err
}

// Search submits the form. A failed search clears the previous results.
func (s *Service) Search(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.withSession(id, func(sess *session) error {
		if !sess.form.IsValid() {
			return searchform.ErrFormInvalid
		}

		searcher := &cachingSearcher{client: s.client, cache: s.cache, ttl: s.ttl, logger: s.logger}
		startTime := time.Now()
		payload, err := sess.form.Submit(ctx, searcher)
		if err != nil {
			sess.list.Clear()
			sess.lastSearch = nil
			sess.notice = noticeSearchFailed
			s.logger.Error("Flight search failed",
				logger.Field{Key: "session_id", Value: sess.id},
				logger.Field{Key: "err", Value: err},
			)
			return upstreamError(noticeSearchFailed, err)
		}

		s.loadResults(sess, payload)
		sess.lastSearch = &SearchMeta{
			CacheKey:     searcher.cacheKey,
			CacheHit:     searcher.cacheHit,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
			TotalResults: len(payload.Itineraries),
			Incomplete:   payload.Incomplete,
		}
		f := sess.list.Filter()
		f.SortBy = sess.form.SortBy
		if err := sess.list.SetFilter(f); err != nil {
			return err
		}

		snap = s.snapshot(sess)
		return nil
	})
	return snap, err
}

// LoadMore polls an unfinished vendor search and replaces the results with
// whatever it has gathered so far.
func (s *Service) LoadMore(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.withSession(id, func(sess *session) error {
		vendorSession := sess.list.Payload().SessionID
		if vendorSession == "" {
			vendorSession = sess.vendorSession
		}
		if vendorSession == "" {
			return results.ErrMissingSessionID
		}

		resp, err := s.client.SearchIncomplete(ctx, skyscrapper.IncompleteParams{SessionID: vendorSession})
		if err != nil {
			sess.notice = noticeSearchFailed
			s.logger.Error("Incomplete search poll failed",
				logger.Field{Key: "session_id", Value: sess.id},
				logger.Field{Key: "err", Value: err},
			)
			return upstreamError(noticeSearchFailed, err)
		}

		payload := results.FromResponse(*resp)
		if payload.SessionID == "" {
			payload.SessionID = vendorSession
		}
		s.loadResults(sess, payload)
		if sess.lastSearch != nil {
			sess.lastSearch.TotalResults = len(payload.Itineraries)
			sess.lastSearch.Incomplete = payload.Incomplete
		}
		snap = s.snapshot(sess)
		return nil
	})
	return snap, err
}

func (s *Service) loadResults(sess *session, payload results.Payload) {
	sess.list.Load(payload)
	if payload.SessionID != "" {
		sess.vendorSession = payload.SessionID
	}
	sess.notice = ""
	if len(payload.Itineraries) == 0 {
		sess.notice = noticeNoResults
	}
}

func (s *Service) SetFilters(id string, f results.FilterState) (results.View, error) {
	var v results.View
	err := s.withSession(id, func(sess *session) error {
		if err := sess.list.SetFilter(f); err != nil {
			return err
		}
		v = sess.list.View()
		return nil
	})
	return v, err
}

// ToggleItinerary expands or collapses one result row. The last vendor
// session seen by this screen is the fallback session id for the details call.
func (s *Service) ToggleItinerary(ctx context.Context, id, itineraryID string) (results.View, error) {
	var v results.View
	err := s.withSession(id, func(sess *session) error {
		err := sess.list.Toggle(ctx, itineraryID, sess.vendorSession, s.client)
		v = sess.list.View()
		if err != nil && !errors.Is(err, results.ErrMissingSessionID) && !errors.Is(err, results.ErrItineraryNotFound) {
			s.logger.Error("Failed to load flight details",
				logger.Field{Key: "session_id", Value: sess.id},
				logger.Field{Key: "itinerary_id", Value: itineraryID},
				logger.Field{Key: "err", Value: err},
			)
			return upstreamError(results.MsgDetailsUnavailable, err)
		}
		return err
	})
	return v, err
}

// InvalidateCache drops the cached vendor response for the current form.
func (s *Service) InvalidateCache(ctx context.Context, id string) error {
	return s.withSession(id, func(sess *session) error {
		if !sess.form.IsValid() {
			return searchform.ErrFormInvalid
		}
		var cacheKey string
		if sess.form.TripType == searchform.TripMultiCity {
			cacheKey = generateCacheKey("multistop", sess.form.MultiStopParams())
		} else {
			cacheKey = generateCacheKey("complete", sess.form.SingleParams())
		}
		s.logger.Info("Invalidating cache", logger.Field{Key: "cache_key", Value: cacheKey})
		return s.cache.Del(ctx, cacheKey)
	})
}

// NearbyAirports suggests airports around a coordinate, nearest first.
func (s *Service) NearbyAirports(ctx context.Context, lat, lng float64, locale string) ([]autocomplete.Suggestion, error) {
	resp, err := s.client.GetNearbyAirports(ctx, lat, lng, locale)
	if err != nil {
		return nil, upstreamError("Failed to load nearby airports", err)
	}
	return autocomplete.MapSuggestions(&skyscrapper.AirportResponse{Data: resp.Data.Nearby}), nil
}

// Explore lists destinations reachable from an origin, for an open-ended search.
func (s *Service) Explore(ctx context.Context, originEntityID string, cabin searchform.CabinClass) (*skyscrapper.EverywhereResponse, error) {
	if cabin != "" && !cabin.Valid() {
		return nil, fmt.Errorf("%w: %q", searchform.ErrInvalidCabinClass, cabin)
	}
	resp, err := s.client.SearchFlightEverywhere(ctx, originEntityID, string(cabin), "", "")
	if err != nil {
		return nil, upstreamError("Failed to load destinations", err)
	}
	return resp, nil
}

func (s *Service) withSession(id string, fn func(*session) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// evicted or deleted between the lookup and the lock
	s.mu.RLock()
	current := s.sessions[id]
	s.mu.RUnlock()
	if current != sess {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sess.lastSeen = s.now()
	return fn(sess)
}

func (s *Service) evictIdle() {
	if s.idleTTL <= 0 {
		return
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		// a session busy with a request is not idle
		if !sess.mu.TryLock() {
			continue
		}
		idle := sess.lastSeen.Before(cutoff)
		if idle {
			sess.closeAll()
		}
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			s.logger.Debug("Session evicted", logger.Field{Key: "session_id", Value: id})
		}
	}
}

func upstreamError(msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newAppError(http.StatusGatewayTimeout, ErrorCodeTimeout, "Flight data provider timed out", err)
	}
	return newAppError(http.StatusBadGateway, ErrorCodeUpstream, msg, err)
}

// Ping reports whether the response cache is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return cache.Ping(ctx, s.cache)
}
