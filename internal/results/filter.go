package results

import "skytrip/pkg/skyscrapper"

type StopFilter string

const (
	StopsAll     StopFilter = "all"
	StopsDirect  StopFilter = "direct"
	StopsOneStop StopFilter = "oneStop"
)

func (s StopFilter) Valid() bool {
	switch s {
	case StopsAll, StopsDirect, StopsOneStop:
		return true
	}
	return false
}

const AirlinesAll = "all"

// FilterState drives the derived view. It never touches the itineraries it is applied to.
type FilterState struct {
	Stops   StopFilter `json:"stopFilter"`
	Airline string     `json:"airlineFilter"`
	SortBy  SortKey    `json:"sortBy"`
}

func DefaultFilterState() FilterState {
	return FilterState{Stops: StopsAll, Airline: AirlinesAll, SortBy: SortBest}
}

// Apply returns the filtered and sorted view of its. its is not modified.
func Apply(its []skyscrapper.Itinerary, f FilterState) []skyscrapper.Itinerary {
	return Sort(Filter(its, f), f.SortBy)
}

// Filter keeps the itineraries that pass every active predicate, in input order.
func Filter(its []skyscrapper.Itinerary, f FilterState) []skyscrapper.Itinerary {
	filtered := make([]skyscrapper.Itinerary, 0, len(its))
	for _, it := range its {
		if f.matches(it) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// matches inspects only the first leg.
func (f FilterState) matches(it skyscrapper.Itinerary) bool {
	var first *skyscrapper.Leg
	if len(it.Legs) > 0 {
		first = &it.Legs[0]
	}

	switch f.Stops {
	case StopsDirect:
		if first == nil || first.StopCount != 0 {
			return false
		}
	case StopsOneStop:
		if first == nil || first.StopCount != 1 {
			return false
		}
	}

	if f.Airline != "" && f.Airline != AirlinesAll {
		if first == nil || PrimaryCarrier(*first) != f.Airline {
			return false
		}
	}

	return true
}

// PrimaryCarrier is the name of the leg's first marketing carrier, or "".
func PrimaryCarrier(l skyscrapper.Leg) string {
	if len(l.Carriers.Marketing) == 0 {
		return ""
	}
	return l.Carriers.Marketing[0].Name
}

// CarrierNames lists the airline filter choices from filterStats.carriers.
func CarrierNames(carriers []skyscrapper.FilterCarrier) []string {
	names := make([]string, 0, len(carriers))
	seen := make(map[string]struct{}, len(carriers))
	for _, c := range carriers {
		if c.Name == "" {
			continue
		}
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	return names
}
