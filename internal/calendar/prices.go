package calendar

import (
	"context"
	"time"

	"skytrip/pkg/skyscrapper"
)

// PriceSource serves the price-by-day overlay.
type PriceSource interface {
	GetPriceCalendar(ctx context.Context, originSkyID, destinationSkyID, fromDate, toDate, currency string) (*skyscrapper.PriceCalendarResponse, error)
}

type PriceDay struct {
	Price float64 `json:"price"`
	Group string  `json:"group"`
}

// Overlay is the fetched price data for one (origin, destination, anchor).
type Overlay struct {
	Key      string              `json:"-"`
	Currency string              `json:"currency,omitempty"`
	Days     map[string]PriceDay `json:"days,omitempty"`
}

// OverlayKey identifies the fetch an overlay came from. A change of any part
// requires a new fetch.
func OverlayKey(originSkyID, destinationSkyID string, s State) string {
	return originSkyID + "|" + destinationSkyID + "|" + s.ActiveMonth
}

// Window is the inclusive date span covered by the two visible months.
func Window(activeMonth string) (from, to string) {
	anchor, err := time.Parse(monthLayout, activeMonth)
	if err != nil {
		return "", ""
	}
	last := anchor.AddDate(0, 2, -1)
	return anchor.Format(DateLayout), last.Format(DateLayout)
}

// FetchOverlay loads the overlay for the visible window. An empty origin or
// destination yields an empty overlay and no request.
func FetchOverlay(ctx context.Context, src PriceSource, originSkyID, destinationSkyID string, s State) (Overlay, error) {
	ov := Overlay{Key: OverlayKey(originSkyID, destinationSkyID, s)}
	if originSkyID == "" || destinationSkyID == "" {
		return ov, nil
	}

	from, to := Window(s.ActiveMonth)
	resp, err := src.GetPriceCalendar(ctx, originSkyID, destinationSkyID, from, to, "")
	if err != nil {
		return ov, err
	}

	ov.Currency = resp.Data.Flights.Currency
	ov.Days = make(map[string]PriceDay, len(resp.Data.Flights.Days))
	for _, d := range resp.Data.Flights.Days {
		ov.Days[d.Day] = PriceDay{Price: d.Price, Group: d.Group}
	}
	return ov, nil
}

// PriceColor maps a price group to its display colour.
func PriceColor(group string) string {
	switch group {
	case "low":
		return "green"
	case "medium":
		return "yellow"
	case "high":
		return "red"
	default:
		return "gray"
	}
}
