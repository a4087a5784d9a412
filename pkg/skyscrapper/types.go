package skyscrapper

import "encoding/json"

// AirportResponse is the body of searchAirport.
type AirportResponse struct {
	Status    bool                `json:"status"`
	Timestamp int64               `json:"timestamp"`
	Data      []AirportSuggestion `json:"data"`
}

type AirportSuggestion struct {
	Presentation Presentation `json:"presentation"`
	Navigation   Navigation   `json:"navigation"`
}

type Presentation struct {
	Title           string `json:"title"`
	SuggestionTitle string `json:"suggestionTitle"`
	Subtitle        string `json:"subtitle"`
}

type Navigation struct {
	EntityID             string               `json:"entityId"`
	EntityType           string               `json:"entityType"`
	LocalizedName        string               `json:"localizedName"`
	RelevantFlightParams RelevantFlightParams `json:"relevantFlightParams"`
}

type RelevantFlightParams struct {
	SkyID           string `json:"skyId"`
	EntityID        string `json:"entityId"`
	FlightPlaceType string `json:"flightPlaceType"`
	LocalizedName   string `json:"localizedName"`
}

// NearbyAirportsResponse is the body of getNearByAirports.
type NearbyAirportsResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Current AirportSuggestion   `json:"current"`
		Nearby  []AirportSuggestion `json:"nearby"`
		Recent  []AirportSuggestion `json:"recent"`
	} `json:"data"`
}

// SearchResponse is shared by searchFlightsComplete, searchIncomplete and
// searchFlightsMultiStops. The multi-stop variant reports its session id at
// the top level instead of inside data.context.
type SearchResponse struct {
	Status    bool            `json:"status"`
	Message   json.RawMessage `json:"message,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Data      SearchData      `json:"data"`
}

type SearchData struct {
	Context     SearchContext `json:"context"`
	Itineraries []Itinerary   `json:"itineraries"`
	FilterStats FilterStats   `json:"filterStats"`
}

type SearchContext struct {
	Status       string `json:"status"`
	SessionID    string `json:"sessionId"`
	TotalResults int    `json:"totalResults"`
}

type FilterStats struct {
	Duration   json.RawMessage `json:"duration,omitempty"`
	Airports   json.RawMessage `json:"airports,omitempty"`
	Carriers   []FilterCarrier `json:"carriers"`
	StopPrices json.RawMessage `json:"stopPrices,omitempty"`
}

type FilterCarrier struct {
	ID          int64  `json:"id"`
	AlternateID string `json:"alternateId"`
	LogoURL     string `json:"logoUrl"`
	Name        string `json:"name"`
}

type Itinerary struct {
	ID        string   `json:"id"`
	SessionID string   `json:"sessionId,omitempty"`
	Price     Price    `json:"price"`
	Legs      []Leg    `json:"legs"`
	Tags      []string `json:"tags,omitempty"`
	Score     float64  `json:"score,omitempty"`
}

type Price struct {
	Raw             float64 `json:"raw"`
	Formatted       string  `json:"formatted"`
	PricingOptionID string  `json:"pricingOptionId,omitempty"`
}

type Leg struct {
	ID                string    `json:"id"`
	Origin            Place     `json:"origin"`
	Destination       Place     `json:"destination"`
	DurationInMinutes int       `json:"durationInMinutes"`
	StopCount         int       `json:"stopCount"`
	Departure         string    `json:"departure"`
	Arrival           string    `json:"arrival"`
	Carriers          Carriers  `json:"carriers"`
	Segments          []Segment `json:"segments,omitempty"`
}

type Place struct {
	ID          string `json:"id"`
	EntityID    string `json:"entityId,omitempty"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

type Carriers struct {
	Marketing     []Carrier `json:"marketing"`
	OperationType string    `json:"operationType,omitempty"`
}

type Carrier struct {
	ID      int64  `json:"id"`
	LogoURL string `json:"logoUrl,omitempty"`
	Logo    string `json:"logo,omitempty"`
	Name    string `json:"name"`
}

type Segment struct {
	ID                string   `json:"id"`
	Origin            Place    `json:"origin"`
	Destination       Place    `json:"destination"`
	Departure         string   `json:"departure"`
	Arrival           string   `json:"arrival"`
	DurationInMinutes int      `json:"durationInMinutes"`
	FlightNumber      string   `json:"flightNumber"`
	MarketingCarrier  *Carrier `json:"marketingCarrier,omitempty"`
	OperatingCarrier  *Carrier `json:"operatingCarrier,omitempty"`
	Aircraft          *struct {
		Name string `json:"name"`
	} `json:"aircraft,omitempty"`
}

// PriceCalendarResponse is the body of getPriceCalendar.
type PriceCalendarResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Flights PriceCalendar `json:"flights"`
	} `json:"data"`
}

type PriceCalendar struct {
	NoPriceLabel string       `json:"noPriceLabel"`
	Groups       []PriceGroup `json:"groups"`
	Days         []PriceDay   `json:"days"`
	Currency     string       `json:"currency"`
}

type PriceGroup struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type PriceDay struct {
	Day   string  `json:"day"`
	Group string  `json:"group"`
	Price float64 `json:"price"`
}

// FlightDetailsResponse is the body of getFlightDetails.
type FlightDetailsResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Itinerary *ItineraryDetails `json:"itinerary"`
	} `json:"data"`
}

type ItineraryDetails struct {
	Legs               []Leg           `json:"legs"`
	PricingOptions     []PricingOption `json:"pricingOptions"`
	IsTransferRequired bool            `json:"isTransferRequired"`
	Destination        json.RawMessage `json:"destination,omitempty"`
}

type PricingOption struct {
	TotalPrice float64        `json:"totalPrice"`
	Agents     []BookingAgent `json:"agents"`
}

type BookingAgent struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Price     float64 `json:"price"`
	IsCarrier bool    `json:"isCarrier"`
}

// EverywhereResponse is the body of searchFlightEverywhere.
type EverywhereResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Context SearchContext      `json:"context"`
		Results []EverywhereResult `json:"results"`
	} `json:"data"`
}

type EverywhereResult struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}
