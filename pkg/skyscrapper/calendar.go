package skyscrapper

import (
	"context"
	"net/url"
)

// GetPriceCalendar returns the cheapest price per day between fromDate and toDate.
// toDate may be empty.
func (c *Client) GetPriceCalendar(ctx context.Context, originSkyID, destinationSkyID, fromDate, toDate, currency string) (*PriceCalendarResponse, error) {
	q := url.Values{}
	q.Set("originSkyId", originSkyID)
	q.Set("destinationSkyId", destinationSkyID)
	q.Set("fromDate", fromDate)
	setIf(q, "toDate", toDate)
	q.Set("currency", orDefault(currency, DefaultCurrency))

	var out PriceCalendarResponse
	if err := c.get(ctx, "GetPriceCalendar", "/api/v1/flights/getPriceCalendar", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
