package results

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skytrip/pkg/skyscrapper"
)

var (
	ErrMissingSessionID   = errors.New("results: missing session id")
	ErrItineraryNotFound  = errors.New("results: itinerary not found")
	ErrDetailsUnavailable = errors.New("results: details response has no itinerary")
	ErrInvalidFilter      = errors.New("results: invalid filter")
)

const (
	MsgMissingSessionID   = "Session ID is missing. Please search again."
	MsgDetailsUnavailable = "Failed to load flight details. Please try again."
)

// DetailsFetcher loads the booking details of one itinerary.
type DetailsFetcher interface {
	GetFlightDetails(ctx context.Context, p skyscrapper.FlightDetailsParams) (*skyscrapper.FlightDetailsResponse, error)
}

// List holds one search's itineraries plus the user's view choices over them.
// The itineraries are never modified after Load.
type List struct {
	payload Payload
	filter  FilterState

	expandedID    string
	details       *skyscrapper.ItineraryDetails
	detailsNotice string
}

func NewList() *List {
	return &List{filter: DefaultFilterState()}
}

// Load replaces the current search results. The filter state is kept.
func (l *List) Load(p Payload) {
	l.payload = p
	l.collapse()
}

// Clear drops all results, used when a search fails.
func (l *List) Clear() {
	l.Load(Payload{})
}

// SetFilter replaces the filter state. Empty fields take their defaults; an
// unknown stop filter is rejected and the current state kept.
func (l *List) SetFilter(f FilterState) error {
	if f.Stops != "" && !f.Stops.Valid() {
		return fmt.Errorf("%w: stop filter %q", ErrInvalidFilter, f.Stops)
	}
	if f.Stops == "" {
		f.Stops = StopsAll
	}
	if f.Airline == "" {
		f.Airline = AirlinesAll
	}
	if f.SortBy == "" {
		f.SortBy = SortBest
	}
	l.filter = f
	return nil
}

func (l *List) Filter() FilterState { return l.filter }

func (l *List) Payload() Payload { return l.payload }

// View is what the results panel renders.
type View struct {
	Itineraries   []skyscrapper.Itinerary       `json:"itineraries"`
	Total         int                           `json:"total"`
	Carriers      []string                      `json:"carriers"`
	Filter        FilterState                   `json:"filter"`
	SortKeys      []SortKey                     `json:"sortKeys"`
	ExpandedID    string                        `json:"expandedId,omitempty"`
	Details       *skyscrapper.ItineraryDetails `json:"details,omitempty"`
	DetailsNotice string                        `json:"detailsNotice,omitempty"`
}

func (l *List) View() View {
	return View{
		Itineraries:   Apply(l.payload.Itineraries, l.filter),
		Total:         len(l.payload.Itineraries),
		Carriers:      CarrierNames(l.payload.Carriers),
		Filter:        l.filter,
		SortKeys:      SortKeys,
		ExpandedID:    l.expandedID,
		Details:       l.details,
		DetailsNotice: l.detailsNotice,
	}
}

// Toggle expands the itinerary with the given id, or collapses it if it is
// already the expanded one. Expanding fetches its details. The session id
// comes from the itinerary, then the search context, then fallbackSession.
func (l *List) Toggle(ctx context.Context, id, fallbackSession string, fetcher DetailsFetcher) error {
	if id == l.expandedID {
		l.collapse()
		return nil
	}

	it, ok := l.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItineraryNotFound, id)
	}

	l.expandedID = id
	l.details = nil
	l.detailsNotice = ""

	sessionID := firstNonEmpty(it.SessionID, l.payload.SessionID, fallbackSession)
	if sessionID == "" {
		l.detailsNotice = MsgMissingSessionID
		return ErrMissingSessionID
	}

	resp, err := fetcher.GetFlightDetails(ctx, DetailsParams(it, sessionID))
	if err != nil {
		l.detailsNotice = MsgDetailsUnavailable
		return fmt.Errorf("failed to load details for %s: %w", id, err)
	}
	if resp == nil || resp.Data.Itinerary == nil {
		l.detailsNotice = MsgDetailsUnavailable
		return fmt.Errorf("%w: %s", ErrDetailsUnavailable, id)
	}
	l.details = resp.Data.Itinerary
	return nil
}

// DetailsParams builds the details request for an itinerary.
func DetailsParams(it skyscrapper.Itinerary, sessionID string) skyscrapper.FlightDetailsParams {
	legs := make([]skyscrapper.DetailsLeg, 0, len(it.Legs))
	for _, leg := range it.Legs {
		legs = append(legs, skyscrapper.DetailsLeg{
			Origin:      leg.Origin.DisplayCode,
			Destination: leg.Destination.DisplayCode,
			Date:        datePart(leg.Departure),
		})
	}
	return skyscrapper.FlightDetailsParams{
		ItineraryID: it.ID,
		Legs:        legs,
		SessionID:   sessionID,
	}
}

func (l *List) collapse() {
	l.expandedID = ""
	l.details = nil
	l.detailsNotice = ""
}

func (l *List) find(id string) (skyscrapper.Itinerary, bool) {
	for _, it := range l.payload.Itineraries {
		if it.ID == id {
			return it, true
		}
	}
	return skyscrapper.Itinerary{}, false
}

func datePart(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
