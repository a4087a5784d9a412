package searchform

import (
	"context"
	"fmt"

	"skytrip/internal/results"
	"skytrip/pkg/skyscrapper"
)

// Searcher runs vendor searches.
type Searcher interface {
	SearchFlightsComplete(ctx context.Context, p skyscrapper.SearchFlightsParams) (*skyscrapper.SearchResponse, error)
	SearchFlightsMultiStops(ctx context.Context, p skyscrapper.MultiStopParams) (*skyscrapper.SearchResponse, error)
}

// vendorSortBy maps a results sort key to the API's sortBy value. The API
// calls cheapest-first "price_high".
func vendorSortBy(k results.SortKey) string {
	if k == results.SortPriceLow {
		return "price_high"
	}
	return string(k)
}

// SingleParams builds the one-way / round-trip request.
func (f *Form) SingleParams() skyscrapper.SearchFlightsParams {
	leg := f.Legs[0]
	p := skyscrapper.SearchFlightsParams{
		OriginSkyID:         leg.Origin.SkyID,
		DestinationSkyID:    leg.Destination.SkyID,
		OriginEntityID:      leg.Origin.EntityID,
		DestinationEntityID: leg.Destination.EntityID,
		Date:                leg.Date,
		CabinClass:          string(f.CabinClass),
		Passengers:          f.vendorPassengers(),
		SortBy:              vendorSortBy(f.SortBy),
	}
	if f.TripType == TripRoundTrip {
		p.ReturnDate = f.ReturnDate
	}
	return p
}

// MultiStopParams builds the multi-city request.
func (f *Form) MultiStopParams() skyscrapper.MultiStopParams {
	legs := make([]skyscrapper.MultiStopLeg, 0, len(f.Legs))
	for _, l := range f.Legs {
		legs = append(legs, skyscrapper.MultiStopLeg{
			Origin:              l.Origin.SkyID,
			OriginEntityID:      l.Origin.EntityID,
			Destination:         l.Destination.SkyID,
			DestinationEntityID: l.Destination.EntityID,
			Date:                l.Date,
		})
	}
	return skyscrapper.MultiStopParams{
		Legs:       legs,
		CabinClass: string(f.CabinClass),
		Passengers: f.vendorPassengers(),
		SortBy:     vendorSortBy(f.SortBy),
	}
}

// Submit runs the search matching the trip type and returns the parsed
// results. An incomplete form returns ErrFormInvalid without a request.
func (f *Form) Submit(ctx context.Context, s Searcher) (results.Payload, error) {
	if !f.IsValid() {
		return results.Payload{}, ErrFormInvalid
	}

	var (
		resp *skyscrapper.SearchResponse
		err  error
	)
	if f.TripType == TripMultiCity {
		resp, err = s.SearchFlightsMultiStops(ctx, f.MultiStopParams())
	} else {
		resp, err = s.SearchFlightsComplete(ctx, f.SingleParams())
	}
	if err != nil {
		return results.Payload{}, fmt.Errorf("flight search failed: %w", err)
	}
	if resp == nil {
		return results.Payload{}, nil
	}
	return results.FromResponse(*resp), nil
}

func (f *Form) vendorPassengers() skyscrapper.Passengers {
	return skyscrapper.Passengers{
		Adults:   f.Passengers.Adults,
		Children: f.Passengers.Children,
		Infants:  f.Passengers.Infants,
	}
}
