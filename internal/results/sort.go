package results

import (
	"fmt"
	"sort"
	"time"

	"skytrip/pkg/skyscrapper"
)

type SortKey string

const (
	SortBest                SortKey = "best"
	SortPriceLow            SortKey = "price_low"
	SortFastest             SortKey = "fastest"
	SortOutboundTakeOffTime SortKey = "outbound_take_off_time"
	SortOutboundLandingTime SortKey = "outbound_landing_time"
	SortReturnTakeOffTime   SortKey = "return_take_off_time"
	SortReturnLandingTime   SortKey = "return_landing_time"
)

// SortKeys lists every key understood by Sort, in dropdown order.
var SortKeys = []SortKey{
	SortBest,
	SortPriceLow,
	SortFastest,
	SortOutboundTakeOffTime,
	SortOutboundLandingTime,
	SortReturnTakeOffTime,
	SortReturnLandingTime,
}

// comparator returns <0, 0 or >0. An error means the pair is treated as equal.
type comparator func(a, b *skyscrapper.Itinerary) (int, error)

var comparators = map[SortKey]comparator{
	SortPriceLow: func(a, b *skyscrapper.Itinerary) (int, error) {
		return cmpFloat(a.Price.Raw, b.Price.Raw), nil
	},
	SortFastest: func(a, b *skyscrapper.Itinerary) (int, error) {
		return cmpInt(legDuration(a, 0), legDuration(b, 0)), nil
	},
	SortOutboundTakeOffTime: byLegTime(0, func(l skyscrapper.Leg) string { return l.Departure }),
	SortOutboundLandingTime: byLegTime(0, func(l skyscrapper.Leg) string { return l.Arrival }),
	SortReturnTakeOffTime:   byLegTime(1, func(l skyscrapper.Leg) string { return l.Departure }),
	SortReturnLandingTime:   byLegTime(1, func(l skyscrapper.Leg) string { return l.Arrival }),
}

// Sort returns a stably sorted copy of its. best and unknown keys keep the
// upstream order.
func Sort(its []skyscrapper.Itinerary, key SortKey) []skyscrapper.Itinerary {
	sorted := make([]skyscrapper.Itinerary, len(its))
	copy(sorted, its)

	cmp, ok := comparators[key]
	if !ok || len(sorted) <= 1 {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return safeCompare(cmp, &sorted[i], &sorted[j]) < 0
	})
	return sorted
}

func safeCompare(cmp comparator, a, b *skyscrapper.Itinerary) (out int) {
	defer func() {
		if r := recover(); r != nil {
			out = 0
		}
	}()
	n, err := cmp(a, b)
	if err != nil {
		return 0
	}
	return n
}

func byLegTime(idx int, pick func(skyscrapper.Leg) string) comparator {
	return func(a, b *skyscrapper.Itinerary) (int, error) {
		if len(a.Legs) <= idx || len(b.Legs) <= idx {
			return 0, nil
		}
		ta, err := parseTimestamp(pick(a.Legs[idx]))
		if err != nil {
			return 0, err
		}
		tb, err := parseTimestamp(pick(b.Legs[idx]))
		if err != nil {
			return 0, err
		}
		return ta.Compare(tb), nil
	}
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func legDuration(it *skyscrapper.Itinerary, idx int) int {
	if len(it.Legs) <= idx {
		return 0
	}
	return it.Legs[idx].DurationInMinutes
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
