package flight

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skytrip/internal/autocomplete"
	"skytrip/internal/calendar"
	"skytrip/internal/results"
	"skytrip/internal/searchform"
	"skytrip/pkg/logger"
	"skytrip/pkg/skyscrapper"
)

var today = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	vendor *mockVendor
	cache  *memCache
	clock  *manualClock
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{vendor: new(mockVendor), cache: newMemCache(), clock: &manualClock{}}
	opts = append([]Option{
		WithClock(func() time.Time { return today }),
		WithAutocompleteOptions(autocomplete.WithAfterFunc(f.clock.AfterFunc)),
	}, opts...)
	f.svc = NewService(f.vendor, f.cache, &seqIDs{}, 10, logger.Nop(), opts...)
	t.Cleanup(f.svc.Close)
	return f
}

func airports(entries ...[3]string) *skyscrapper.AirportResponse {
	resp := &skyscrapper.AirportResponse{Status: true}
	for _, e := range entries {
		resp.Data = append(resp.Data, skyscrapper.AirportSuggestion{
			Presentation: skyscrapper.Presentation{Title: e[0], SuggestionTitle: e[0]},
			Navigation: skyscrapper.Navigation{
				EntityID:             e[2],
				EntityType:           "CITY",
				RelevantFlightParams: skyscrapper.RelevantFlightParams{SkyID: e[1], EntityID: e[2]},
			},
		})
	}
	return resp
}

func searchResponse(sessionID string, its ...skyscrapper.Itinerary) *skyscrapper.SearchResponse {
	resp := &skyscrapper.SearchResponse{Status: true}
	resp.Data.Context = skyscrapper.SearchContext{Status: "complete", SessionID: sessionID, TotalResults: len(its)}
	resp.Data.Itineraries = its
	return resp
}

func oneLegItinerary(id string, price float64) skyscrapper.Itinerary {
	return skyscrapper.Itinerary{
		ID:    id,
		Price: skyscrapper.Price{Raw: price},
		Legs: []skyscrapper.Leg{{
			Origin:      skyscrapper.Place{DisplayCode: "LHR"},
			Destination: skyscrapper.Place{DisplayCode: "CDG"},
			Departure:   "2026-11-02T08:00:00",
		}},
	}
}

// pickAirport types text, lets the debounce fire and selects the first row.
func (f *fixture) pickAirport(t *testing.T, id string, leg int, field searchform.Field, text string, entityID string) Snapshot {
	t.Helper()
	_, err := f.svc.AirportInput(id, AirportInputRequest{Leg: leg, Field: field, Text: text})
	require.NoError(t, err)
	f.clock.fireAll()

	snap, err := f.svc.AirportSelect(context.Background(), id, AirportSelectRequest{Leg: leg, Field: field, EntityID: entityID})
	require.NoError(t, err)
	return snap
}

func (f *fixture) readyRoundTrip(t *testing.T) string {
	t.Helper()
	f.vendor.On("SearchAirport", mock.Anything, "london", "").Return(airports([3]string{"London", "LOND", "100"}), nil).Once()
	f.vendor.On("SearchAirport", mock.Anything, "paris", "").Return(airports([3]string{"Paris", "PARI", "200"}), nil).Once()
	f.vendor.On("GetPriceCalendar", mock.Anything, "LOND", "PARI", "2026-10-01", "2026-11-30", "").
		Return(&skyscrapper.PriceCalendarResponse{}, nil).Once()

	snap, err := f.svc.CreateSession(context.Background())
	require.NoError(t, err)

	f.pickAirport(t, snap.ID, 0, searchform.FieldOrigin, "london", "100")
	snap = f.pickAirport(t, snap.ID, 0, searchform.FieldDestination, "paris", "200")
	require.NotNil(t, snap.Calendar, "calendar opens once both airports are set")

	_, err = f.svc.CalendarClick(snap.ID, "2026-11-02")
	require.NoError(t, err)
	res, err := f.svc.CalendarClick(snap.ID, "2026-11-09")
	require.NoError(t, err)
	require.True(t, res.Outcome.Close)
	return snap.ID
}

func TestService_SessionLifecycle(t *testing.T) {
	f := newFixture(t)

	snap, err := f.svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sess-1", snap.ID)
	assert.Equal(t, searchform.TripRoundTrip, snap.Form.TripType)
	assert.False(t, snap.FormValid)

	_, err = f.svc.Snapshot("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, f.svc.DeleteSession(snap.ID))
	_, err = f.svc.Snapshot(snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_AirportInputShowsSuggestions(t *testing.T) {
	f := newFixture(t)
	f.vendor.On("SearchAirport", mock.Anything, "lon", "").Return(airports([3]string{"London", "LOND", "100"}), nil).Once()

	snap, _ := f.svc.CreateSession(context.Background())
	st, err := f.svc.AirportInput(snap.ID, AirportInputRequest{Leg: 0, Field: searchform.FieldOrigin, Text: "lon"})
	require.NoError(t, err)
	assert.Equal(t, autocomplete.StatusIdle, st.Status)

	f.clock.fireAll()

	snap, err = f.svc.Snapshot(snap.ID)
	require.NoError(t, err)
	box := snap.Airports["0:origin"]
	assert.Equal(t, autocomplete.StatusPopulated, box.Status)
	require.Len(t, box.Suggestions, 1)
	assert.Equal(t, "LOND", box.Suggestions[0].SkyID)
	assert.Equal(t, "lon", snap.Form.Legs[0].Origin.Text)
}

func TestService_SelectUnknownSuggestion(t *testing.T) {
	f := newFixture(t)
	snap, _ := f.svc.CreateSession(context.Background())

	_, err := f.svc.AirportSelect(context.Background(), snap.ID, AirportSelectRequest{Field: searchform.FieldOrigin, EntityID: "x"})
	assert.ErrorIs(t, err, ErrSuggestionNotFound)
}

func TestService_RoundTripSearchUsesCache(t *testing.T) {
	f := newFixture(t)
	id := f.readyRoundTrip(t)

	snap, err := f.svc.Snapshot(id)
	require.NoError(t, err)
	require.True(t, snap.FormValid)
	assert.Nil(t, snap.Calendar)
	assert.Equal(t, "2026-11-02", snap.Form.Legs[0].Date)
	assert.Equal(t, "2026-11-09", snap.Form.ReturnDate)

	f.vendor.On("SearchFlightsComplete", mock.Anything, mock.MatchedBy(func(p skyscrapper.SearchFlightsParams) bool {
		return p.OriginSkyID == "LOND" && p.DestinationEntityID == "200" && p.ReturnDate == "2026-11-09"
	})).Return(searchResponse("vs-1", oneLegItinerary("a", 300), oneLegItinerary("b", 100)), nil).Once()

	snap, err = f.svc.Search(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, snap.LastSearch)
	assert.False(t, snap.LastSearch.CacheHit)
	assert.Equal(t, 2, snap.LastSearch.TotalResults)
	assert.Len(t, snap.Results.Itineraries, 2)
	assert.Empty(t, snap.Notice)
	assert.Equal(t, 1, f.cache.len())

	snap, err = f.svc.Search(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, snap.LastSearch.CacheHit)
	assert.Len(t, snap.Results.Itineraries, 2)

	require.NoError(t, f.svc.InvalidateCache(context.Background(), id))
	assert.Equal(t, 0, f.cache.len())

	f.vendor.AssertExpectations(t)
}

func TestService_SearchFailureClearsResults(t *testing.T) {
	f := newFixture(t)
	id := f.readyRoundTrip(t)

	f.vendor.On("SearchFlightsComplete", mock.Anything, mock.Anything).
		Return(searchResponse("vs-1", oneLegItinerary("a", 300)), nil).Once()
	_, err := f.svc.Search(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, f.svc.InvalidateCache(context.Background(), id))

	f.vendor.On("SearchFlightsComplete", mock.Anything, mock.Anything).
		Return(nil, &skyscrapper.APIError{Op: "SearchFlightsComplete", StatusCode: 500}).Once()
	_, err = f.svc.Search(context.Background(), id)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)

	snap, err := f.svc.Snapshot(id)
	require.NoError(t, err)
	assert.Empty(t, snap.Results.Itineraries)
	assert.Equal(t, noticeSearchFailed, snap.Notice)
	assert.Nil(t, snap.LastSearch)
}

func TestService_SearchInvalidFormMakesNoCall(t *testing.T) {
	f := newFixture(t)
	snap, _ := f.svc.CreateSession(context.Background())

	_, err := f.svc.Search(context.Background(), snap.ID)
	assert.ErrorIs(t, err, searchform.ErrFormInvalid)
	f.vendor.AssertNotCalled(t, "SearchFlightsComplete", mock.Anything, mock.Anything)
}

func TestService_EmptyResultsNotice(t *testing.T) {
	f := newFixture(t)
	id := f.readyRoundTrip(t)
	f.vendor.On("SearchFlightsComplete", mock.Anything, mock.Anything).Return(searchResponse("vs-1"), nil).Once()

	snap, err := f.svc.Search(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, noticeNoResults, snap.Notice)
}

func TestService_FiltersAndToggle(t *testing.T) {
	f := newFixture(t)
	id := f.readyRoundTrip(t)
	f.vendor.On("SearchFlightsComplete", mock.Anything, mock.Anything).
		Return(searchResponse("vs-1", oneLegItinerary("a", 300), oneLegItinerary("b", 100)), nil).Once()
	_, err := f.svc.Search(context.Background(), id)
	require.NoError(t, err)

	v, err := f.svc.SetFilters(id, results.FilterState{SortBy: results.SortPriceLow})
	require.NoError(t, err)
	assert.Equal(t, "b", v.Itineraries[0].ID)

	details := &skyscrapper.FlightDetailsResponse{}
	details.Data.Itinerary = &skyscrapper.ItineraryDetails{}
	f.vendor.On("GetFlightDetails", mock.Anything, skyscrapper.FlightDetailsParams{
		ItineraryID: "b",
		Legs:        []skyscrapper.DetailsLeg{{Origin: "LHR", Destination: "CDG", Date: "2026-11-02"}},
		SessionID:   "vs-1",
	}).Return(details, nil).Once()

	v, err = f.svc.ToggleItinerary(context.Background(), id, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", v.ExpandedID)
	assert.NotNil(t, v.Details)

	v, err = f.svc.ToggleItinerary(context.Background(), id, "b")
	require.NoError(t, err)
	assert.Empty(t, v.ExpandedID)

	f.vendor.AssertExpectations(t)
}

func TestService_ToggleDetailsFailure(t *testing.T) {
	f := newFixture(t)
	id := f.readyRoundTrip(t)
	f.vendor.On("SearchFlightsComplete", mock.Anything, mock.Anything).
		Return(searchResponse("vs-1", oneLegItinerary("a", 300)), nil).Once()
	_, err := f.svc.Search(context.Background(), id)
	require.NoError(t, err)

	f.vendor.On("GetFlightDetails", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
	_, err = f.svc.ToggleItinerary(context.Background(), id, "a")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, results.MsgDetailsUnavailable, appErr.Message)

	snap, _ := f.svc.Snapshot(id)
	assert.Equal(t, results.MsgDetailsUnavailable, snap.Results.DetailsNotice)
}

func TestService_LoadMorePollsVendorSession(t *testing.T) {
	f := newFixture(t)
	id := f.readyRoundTrip(t)

	first := searchResponse("vs-1", oneLegItinerary("a", 300))
	first.Data.Context.Status = "incomplete"
	f.vendor.On("SearchFlightsComplete", mock.Anything, mock.Anything).Return(first, nil).Once()

	snap, err := f.svc.Search(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, snap.LastSearch.Incomplete)
	assert.Equal(t, 0, f.cache.len(), "incomplete searches are not cached")

	f.vendor.On("SearchIncomplete", mock.Anything, skyscrapper.IncompleteParams{SessionID: "vs-1"}).
		Return(searchResponse("vs-1", oneLegItinerary("a", 300), oneLegItinerary("b", 200)), nil).Once()

	snap, err = f.svc.LoadMore(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, snap.Results.Itineraries, 2)
	assert.False(t, snap.LastSearch.Incomplete)
}

func TestService_LoadMoreWithoutSearch(t *testing.T) {
	f := newFixture(t)
	snap, _ := f.svc.CreateSession(context.Background())

	_, err := f.svc.LoadMore(context.Background(), snap.ID)
	assert.ErrorIs(t, err, results.ErrMissingSessionID)
}

func TestService_MultiCityPropagationAndSearch(t *testing.T) {
	f := newFixture(t)
	f.vendor.On("SearchAirport", mock.Anything, "london", "").Return(airports([3]string{"London", "LOND", "100"}), nil).Once()
	f.vendor.On("SearchAirport", mock.Anything, "paris", "").Return(airports([3]string{"Paris", "PARI", "200"}), nil).Once()
	f.vendor.On("SearchAirport", mock.Anything, "rome", "").Return(airports([3]string{"Rome", "ROME", "300"}), nil).Once()
	f.vendor.On("GetPriceCalendar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&skyscrapper.PriceCalendarResponse{}, nil)

	snap, _ := f.svc.CreateSession(context.Background())
	id := snap.ID
	multi := searchform.TripMultiCity
	_, err := f.svc.UpdateForm(id, FormUpdateRequest{TripType: &multi, AddLeg: true})
	require.NoError(t, err)

	f.pickAirport(t, id, 0, searchform.FieldOrigin, "london", "100")
	snap = f.pickAirport(t, id, 0, searchform.FieldDestination, "paris", "200")
	assert.Nil(t, snap.Calendar, "multi-city does not auto-open the calendar")
	assert.Equal(t, "PARI", snap.Form.Legs[1].Origin.SkyID)

	snap = f.pickAirport(t, id, 1, searchform.FieldDestination, "rome", "300")

	for leg, day := range []string{"2026-11-02", "2026-11-06"} {
		v, err := f.svc.OpenCalendar(context.Background(), id, leg, calendar.FieldReturn)
		require.NoError(t, err)
		assert.Equal(t, calendar.ModeOneWay, v.State.Mode)
		res, err := f.svc.CalendarClick(id, day)
		require.NoError(t, err)
		assert.True(t, res.Outcome.Close)
	}

	f.vendor.On("SearchFlightsMultiStops", mock.Anything, mock.MatchedBy(func(p skyscrapper.MultiStopParams) bool {
		return len(p.Legs) == 2 && p.Legs[1].Origin == "PARI" && p.Legs[1].Date == "2026-11-06"
	})).Return(&skyscrapper.SearchResponse{Status: true, SessionID: "ms-1"}, nil).Once()

	snap, err = f.svc.Search(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, noticeNoResults, snap.Notice)

	f.vendor.AssertExpectations(t)
}

func TestService_CalendarTransitions(t *testing.T) {
	f := newFixture(t)
	snap, _ := f.svc.CreateSession(context.Background())
	id := snap.ID

	_, err := f.svc.CalendarClick(id, "2026-11-02")
	assert.ErrorIs(t, err, ErrCalendarClosed)

	v, err := f.svc.OpenCalendar(context.Background(), id, 0, calendar.FieldDeparture)
	require.NoError(t, err)
	assert.Equal(t, "2026-10", v.State.ActiveMonth)
	f.vendor.AssertNotCalled(t, "GetPriceCalendar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	res, err := f.svc.CalendarClick(id, "2026-10-01")
	require.NoError(t, err)
	assert.False(t, res.Outcome.Committed())

	_, err = f.svc.CalendarClick(id, "2026-10-25")
	require.NoError(t, err)
	v, err = f.svc.CalendarHover(id, "2026-10-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-28", v.State.HoverDate)

	v, err = f.svc.CalendarNavigate(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-11", v.State.ActiveMonth)

	snap, err = f.svc.CloseCalendar(id)
	require.NoError(t, err)
	assert.Nil(t, snap.Calendar)
	assert.Equal(t, "2026-10-25", snap.Form.Legs[0].Date)
}

func TestService_UpdateFormValidation(t *testing.T) {
	f := newFixture(t)
	snap, _ := f.svc.CreateSession(context.Background())

	bad := searchform.CabinClass("deluxe")
	_, err := f.svc.UpdateForm(snap.ID, FormUpdateRequest{CabinClass: &bad})
	assert.ErrorIs(t, err, searchform.ErrInvalidCabinClass)

	last := 1
	_, err = f.svc.UpdateForm(snap.ID, FormUpdateRequest{RemoveLegID: &last})
	assert.ErrorIs(t, err, searchform.ErrLastLeg)

	snap, err = f.svc.UpdateForm(snap.ID, FormUpdateRequest{PassengerChange: &PassengerChange{Kind: searchform.Adults, Delta: 20}})
	require.NoError(t, err)
	assert.Equal(t, 9, snap.Form.Passengers.Adults)
}

func TestService_NearbyAndExplore(t *testing.T) {
	f := newFixture(t)
	nearby := &skyscrapper.NearbyAirportsResponse{}
	nearby.Data.Nearby = airports([3]string{"Heathrow", "LHR", "95565050"}).Data
	f.vendor.On("GetNearbyAirports", mock.Anything, 51.5, -0.1, "").Return(nearby, nil).Once()
	f.vendor.On("SearchFlightEverywhere", mock.Anything, "95565050", "business", "", "").
		Return(&skyscrapper.EverywhereResponse{Status: true}, nil).Once()

	out, err := f.svc.NearbyAirports(context.Background(), 51.5, -0.1, "")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "LHR", out[0].SkyID)

	resp, err := f.svc.Explore(context.Background(), "95565050", searchform.CabinBusiness)
	require.NoError(t, err)
	assert.True(t, resp.Status)

	_, err = f.svc.Explore(context.Background(), "95565050", "deluxe")
	assert.ErrorIs(t, err, searchform.ErrInvalidCabinClass)
}

func TestService_EvictsIdleSessions(t *testing.T) {
	now := today
	f := newFixture(t, WithClock(func() time.Time { return now }), WithSessionIdleTTL(time.Minute))

	old, _ := f.svc.CreateSession(context.Background())
	now = now.Add(2 * time.Minute)
	fresh, _ := f.svc.CreateSession(context.Background())

	_, err := f.svc.Snapshot(old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.svc.Snapshot(fresh.ID)
	assert.NoError(t, err)
}

func TestService_ToggleDetailsWithoutItinerary(t *testing.T) {
	f := newFixture(t)
	id := f.readyRoundTrip(t)
	f.vendor.On("SearchFlightsComplete", mock.Anything, mock.Anything).
		Return(searchResponse("vs-1", oneLegItinerary("a", 300)), nil).Once()
	_, err := f.svc.Search(context.Background(), id)
	require.NoError(t, err)

	f.vendor.On("GetFlightDetails", mock.Anything, mock.Anything).
		Return(&skyscrapper.FlightDetailsResponse{Status: false}, nil).Once()
	v, err := f.svc.ToggleItinerary(context.Background(), id, "a")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.ErrorIs(t, err, results.ErrDetailsUnavailable)
	assert.Equal(t, results.MsgDetailsUnavailable, v.DetailsNotice)
	assert.Nil(t, v.Details)
}

func TestService_RequestWaitingOnRemovedSession(t *testing.T) {
	f := newFixture(t)
	snap, err := f.svc.CreateSession(context.Background())
	require.NoError(t, err)

	f.svc.mu.RLock()
	sess := f.svc.sessions[snap.ID]
	f.svc.mu.RUnlock()

	sess.mu.Lock()
	done := make(chan error, 1)
	go func() {
		_, err := f.svc.UpdateForm(snap.ID, FormUpdateRequest{AddLeg: true})
		done <- err
	}()
	// let the request find the session and block on its lock
	time.Sleep(50 * time.Millisecond)

	f.svc.mu.Lock()
	delete(f.svc.sessions, snap.ID)
	f.svc.mu.Unlock()
	sess.mu.Unlock()

	assert.ErrorIs(t, <-done, ErrSessionNotFound)
	assert.Len(t, sess.form.Legs, 1)
}
