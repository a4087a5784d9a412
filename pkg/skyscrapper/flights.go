package skyscrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Passengers carries the pax counts sent as adults/childrens/infants.
type Passengers struct {
	Adults   int
	Children int
	Infants  int
}

type SearchFlightsParams struct {
	OriginSkyID         string
	DestinationSkyID    string
	OriginEntityID      string
	DestinationEntityID string
	Date                string
	ReturnDate          string
	CabinClass          string
	Passengers          Passengers
	SortBy              string
	Limit               int
	CarriersIDs         string
	Currency            string
	Market              string
	CountryCode         string
}

// MultiStopLeg is one element of the serialized legs array.
type MultiStopLeg struct {
	Origin              string `json:"origin"`
	OriginEntityID      string `json:"originEntityId"`
	Destination         string `json:"destination"`
	DestinationEntityID string `json:"destinationEntityId"`
	Date                string `json:"date"`
}

type MultiStopParams struct {
	Legs        []MultiStopLeg
	CabinClass  string
	Passengers  Passengers
	SortBy      string
	Currency    string
	Market      string
	CountryCode string
}

type IncompleteParams struct {
	SessionID   string
	Limit       int
	CarriersIDs string
	Currency    string
	Market      string
	CountryCode string
}

// DetailsLeg is one element of the legs array sent to getFlightDetails.
type DetailsLeg struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

type FlightDetailsParams struct {
	ItineraryID string
	Legs        []DetailsLeg
	SessionID   string
	Adults      int
	Currency    string
	Locale      string
	Market      string
	CabinClass  string
	CountryCode string
}

// SearchFlightsComplete runs a one-way or round-trip search.
func (c *Client) SearchFlightsComplete(ctx context.Context, p SearchFlightsParams) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("originSkyId", p.OriginSkyID)
	q.Set("destinationSkyId", p.DestinationSkyID)
	q.Set("originEntityId", p.OriginEntityID)
	q.Set("destinationEntityId", p.DestinationEntityID)
	q.Set("date", p.Date)
	setIf(q, "returnDate", p.ReturnDate)
	q.Set("cabinClass", orDefault(p.CabinClass, DefaultCabinClass))
	setPassengers(q, p.Passengers)
	q.Set("sortBy", orDefault(p.SortBy, DefaultSortBy))
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	setIf(q, "carriersIds", p.CarriersIDs)
	setMarket(q, p.Currency, p.Market, p.CountryCode)

	var out SearchResponse
	if err := c.get(ctx, "SearchFlightsComplete", "/api/v2/flights/searchFlightsComplete", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchIncomplete polls a search session that was still running.
func (c *Client) SearchIncomplete(ctx context.Context, p IncompleteParams) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("sessionId", p.SessionID)
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	setIf(q, "carriersIds", p.CarriersIDs)
	setMarket(q, p.Currency, p.Market, p.CountryCode)

	var out SearchResponse
	if err := c.get(ctx, "SearchIncomplete", "/api/v2/flights/searchIncomplete", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchFlightsMultiStops runs a multi-city search.
func (c *Client) SearchFlightsMultiStops(ctx context.Context, p MultiStopParams) (*SearchResponse, error) {
	legs, err := json.Marshal(p.Legs)
	if err != nil {
		return nil, fmt.Errorf("skyscrapper SearchFlightsMultiStops: failed to encode legs: %w", err)
	}

	q := url.Values{}
	q.Set("legs", string(legs))
	q.Set("cabinClass", orDefault(p.CabinClass, DefaultCabinClass))
	setPassengers(q, p.Passengers)
	q.Set("sortBy", orDefault(p.SortBy, DefaultSortBy))
	setMarket(q, p.Currency, p.Market, p.CountryCode)

	var out SearchResponse
	if err := c.get(ctx, "SearchFlightsMultiStops", "/api/v1/flights/searchFlightsMultiStops", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFlightDetails fetches segments and booking options for one itinerary.
func (c *Client) GetFlightDetails(ctx context.Context, p FlightDetailsParams) (*FlightDetailsResponse, error) {
	legs, err := json.Marshal(p.Legs)
	if err != nil {
		return nil, fmt.Errorf("skyscrapper GetFlightDetails: failed to encode legs: %w", err)
	}

	adults := p.Adults
	if adults <= 0 {
		adults = 1
	}

	q := url.Values{}
	q.Set("itineraryId", p.ItineraryID)
	q.Set("legs", string(legs))
	q.Set("sessionId", p.SessionID)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("locale", orDefault(p.Locale, DefaultLocale))
	q.Set("cabinClass", orDefault(p.CabinClass, DefaultCabinClass))
	setMarket(q, p.Currency, p.Market, p.CountryCode)

	var out FlightDetailsResponse
	if err := c.get(ctx, "GetFlightDetails", "/api/v1/flights/getFlightDetails", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchFlightEverywhere lists cheapest destinations from an origin.
func (c *Client) SearchFlightEverywhere(ctx context.Context, originEntityID, cabinClass, journeyType, currency string) (*EverywhereResponse, error) {
	q := url.Values{}
	q.Set("originEntityId", originEntityID)
	q.Set("cabinClass", orDefault(cabinClass, DefaultCabinClass))
	q.Set("journeyType", orDefault(journeyType, "one_way"))
	q.Set("currency", orDefault(currency, DefaultCurrency))

	var out EverywhereResponse
	if err := c.get(ctx, "SearchFlightEverywhere", "/api/v2/flights/searchFlightEverywhere", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func setPassengers(q url.Values, p Passengers) {
	adults := p.Adults
	if adults <= 0 {
		adults = 1
	}
	q.Set("adults", strconv.Itoa(adults))
	q.Set("childrens", strconv.Itoa(p.Children))
	q.Set("infants", strconv.Itoa(p.Infants))
}

func setMarket(q url.Values, currency, market, countryCode string) {
	q.Set("currency", orDefault(currency, DefaultCurrency))
	q.Set("market", orDefault(market, DefaultMarket))
	q.Set("countryCode", orDefault(countryCode, DefaultCountryCode))
}
