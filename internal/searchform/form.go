// Package searchform owns the search criteria entered by the user and turns
// them into a vendor search.
package searchform

import (
	"errors"
	"fmt"

	"skytrip/internal/autocomplete"
	"skytrip/internal/results"
)

var (
	ErrFormInvalid       = errors.New("searchform: form is incomplete")
	ErrInvalidTripType   = errors.New("searchform: invalid trip type")
	ErrInvalidCabinClass = errors.New("searchform: invalid cabin class")
	ErrInvalidField      = errors.New("searchform: invalid field")
	ErrLegNotFound       = errors.New("searchform: leg not found")
	ErrLastLeg           = errors.New("searchform: cannot remove the last leg")
)

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
	TripMultiCity TripType = "multi-city"
)

func (t TripType) Valid() bool {
	switch t {
	case TripOneWay, TripRoundTrip, TripMultiCity:
		return true
	}
	return false
}

type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

// Field selects the origin or destination box of a leg.
type Field string

const (
	FieldOrigin      Field = "origin"
	FieldDestination Field = "destination"
)

// Airport is an airport box: free text plus the ids resolved by a selection.
type Airport struct {
	Text     string `json:"text"`
	SkyID    string `json:"skyId,omitempty"`
	EntityID string `json:"entityId,omitempty"`
}

func (a Airport) Resolved() bool {
	return a.SkyID != "" && a.EntityID != ""
}

func airportFrom(sel autocomplete.Selection) Airport {
	return Airport{Text: sel.DisplayName, SkyID: sel.SkyID, EntityID: sel.EntityID}
}

type Leg struct {
	ID          int     `json:"id"`
	Origin      Airport `json:"origin"`
	Destination Airport `json:"destination"`
	Date        string  `json:"date"`
}

// Eligible reports whether the leg can be searched.
func (l Leg) Eligible() bool {
	return l.Origin.Resolved() && l.Destination.Resolved() && l.Date != ""
}

func (l *Leg) airport(f Field) (*Airport, error) {
	switch f {
	case FieldOrigin:
		return &l.Origin, nil
	case FieldDestination:
		return &l.Destination, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidField, f)
}

// Form is the search criteria of one screen. One-way and round-trip use the
// first leg plus ReturnDate; multi-city uses every leg.
type Form struct {
	TripType   TripType        `json:"tripType"`
	Passengers Passengers      `json:"passengers"`
	CabinClass CabinClass      `json:"cabinClass"`
	ReturnDate string          `json:"returnDate,omitempty"`
	Legs       []Leg           `json:"legs"`
	SortBy     results.SortKey `json:"sortBy"`

	nextLegID int
}

func New() *Form {
	return &Form{
		TripType:   TripRoundTrip,
		Passengers: Passengers{Adults: MinAdults},
		CabinClass: CabinEconomy,
		Legs:       []Leg{{ID: 1}},
		SortBy:     results.SortBest,
		nextLegID:  2,
	}
}

func (f *Form) SetTripType(t TripType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTripType, t)
	}
	f.TripType = t
	return nil
}

func (f *Form) SetCabinClass(c CabinClass) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCabinClass, c)
	}
	f.CabinClass = c
	return nil
}

// SetSortBy sets the sort key sent with the search. Unknown keys fall back to best.
func (f *Form) SetSortBy(k results.SortKey) {
	for _, known := range results.SortKeys {
		if k == known {
			f.SortBy = k
			return
		}
	}
	f.SortBy = results.SortBest
}

// AddLeg appends a leg whose origin is the previous leg's destination.
func (f *Form) AddLeg() Leg {
	leg := Leg{ID: f.nextLegID}
	f.nextLegID++
	if n := len(f.Legs); n > 0 {
		leg.Origin = f.Legs[n-1].Destination
	}
	f.Legs = append(f.Legs, leg)
	return leg
}

// RemoveLeg deletes the leg with the given id. The last leg is never removed.
func (f *Form) RemoveLeg(id int) error {
	if len(f.Legs) <= 1 {
		return ErrLastLeg
	}
	idx := f.legIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrLegNotFound, id)
	}
	f.Legs = append(f.Legs[:idx], f.Legs[idx+1:]...)
	return nil
}

// SetText records typed text in an airport box and forgets its resolved ids.
func (f *Form) SetText(leg int, field Field, text string) error {
	a, err := f.airport(leg, field)
	if err != nil {
		return err
	}
	*a = Airport{Text: text}
	return nil
}

// SelectAirport commits a suggestion. In multi-city mode a destination is
// also copied into the next leg's origin, once, if that leg exists. It
// reports whether both airports of the leg are now resolved.
func (f *Form) SelectAirport(leg int, field Field, sel autocomplete.Selection) (bool, error) {
	a, err := f.airport(leg, field)
	if err != nil {
		return false, err
	}
	*a = airportFrom(sel)

	if f.TripType == TripMultiCity && field == FieldDestination && leg+1 < len(f.Legs) {
		f.Legs[leg+1].Origin = airportFrom(sel)
	}

	l := f.Legs[leg]
	return l.Origin.Resolved() && l.Destination.Resolved(), nil
}

// SetDate sets the departure date of a leg.
func (f *Form) SetDate(leg int, date string) error {
	if leg < 0 || leg >= len(f.Legs) {
		return fmt.Errorf("%w: index %d", ErrLegNotFound, leg)
	}
	f.Legs[leg].Date = date
	return nil
}

func (f *Form) SetReturnDate(date string) {
	f.ReturnDate = date
}

// IsValid reports whether Submit may run.
func (f *Form) IsValid() bool {
	if len(f.Legs) == 0 {
		return false
	}
	switch f.TripType {
	case TripMultiCity:
		for _, l := range f.Legs {
			if !l.Eligible() {
				return false
			}
		}
		return true
	case TripRoundTrip:
		return f.Legs[0].Eligible() && f.ReturnDate != ""
	default:
		return f.Legs[0].Eligible()
	}
}

// ReturnBeforeDeparture flags a round trip whose return date precedes the
// departure. Such a form is still valid.
func (f *Form) ReturnBeforeDeparture() bool {
	if f.TripType != TripRoundTrip || f.ReturnDate == "" || len(f.Legs) == 0 || f.Legs[0].Date == "" {
		return false
	}
	return f.ReturnDate < f.Legs[0].Date
}

// Clone returns a deep copy.
func (f *Form) Clone() *Form {
	c := *f
	c.Legs = append([]Leg(nil), f.Legs...)
	return &c
}

func (f *Form) airport(leg int, field Field) (*Airport, error) {
	if leg < 0 || leg >= len(f.Legs) {
		return nil, fmt.Errorf("%w: index %d", ErrLegNotFound, leg)
	}
	return f.Legs[leg].airport(field)
}

func (f *Form) legIndex(id int) int {
	for i, l := range f.Legs {
		if l.ID == id {
			return i
		}
	}
	return -1
}
