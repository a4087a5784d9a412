package flight

import (
	"skytrip/internal/autocomplete"
	"skytrip/internal/calendar"
	"skytrip/internal/results"
	"skytrip/internal/searchform"
)

type AirportInputRequest struct {
	Leg   int              `json:"leg"`
	Field searchform.Field `json:"field" binding:"required"`
	Text  string           `json:"text"`
}

type AirportSelectRequest struct {
	Leg      int              `json:"leg"`
	Field    searchform.Field `json:"field" binding:"required"`
	EntityID string           `json:"entityId" binding:"required"`
}

type PassengerChange struct {
	Kind  searchform.PassengerKind `json:"kind" binding:"required"`
	Delta int                      `json:"delta"`
}

// FormUpdateRequest changes any subset of the form. Absent fields are left alone.
type FormUpdateRequest struct {
	TripType        *searchform.TripType   `json:"tripType,omitempty"`
	CabinClass      *searchform.CabinClass `json:"cabinClass,omitempty"`
	Passengers      *searchform.Passengers `json:"passengers,omitempty"`
	PassengerChange *PassengerChange       `json:"passengerChange,omitempty"`
	SortBy          *results.SortKey       `json:"sortBy,omitempty"`
	AddLeg          bool                   `json:"addLeg,omitempty"`
	RemoveLegID     *int                   `json:"removeLegId,omitempty"`
}

type CalendarClickRequest struct {
	Day string `json:"day" binding:"required"`
}

type CalendarHoverRequest struct {
	Day string `json:"day"`
}

type CalendarNavigateRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type CalendarResult struct {
	View    calendar.View    `json:"view"`
	Outcome calendar.Outcome `json:"outcome"`
}

// SearchMeta describes the last search of a session.
type SearchMeta struct {
	CacheKey     string `json:"cache_key,omitempty"`
	CacheHit     bool   `json:"cache_hit"`
	SearchTimeMs int64  `json:"search_time_ms"`
	TotalResults int    `json:"total_results"`
	Incomplete   bool   `json:"incomplete"`
}

// Snapshot is the whole screen as the UI renders it.
type Snapshot struct {
	ID                    string                        `json:"id"`
	Form                  *searchform.Form              `json:"form"`
	FormValid             bool                          `json:"formValid"`
	ReturnBeforeDeparture bool                          `json:"returnBeforeDeparture"`
	Airports              map[string]autocomplete.State `json:"airports"`
	Calendar              *calendar.View                `json:"calendar,omitempty"`
	Results               results.View                  `json:"results"`
	LastSearch            *SearchMeta                   `json:"lastSearch,omitempty"`
	Notice                string                        `json:"notice,omitempty"`
}
