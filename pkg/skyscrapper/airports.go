package skyscrapper

import (
	"context"
	"net/url"
	"strconv"
)

// SearchAirport looks up airports and cities matching query.
func (c *Client) SearchAirport(ctx context.Context, query, locale string) (*AirportResponse, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("locale", orDefault(locale, DefaultLocale))

	var out AirportResponse
	if err := c.get(ctx, "SearchAirport", "/api/v1/flights/searchAirport", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNearbyAirports returns the airports closest to a coordinate.
func (c *Client) GetNearbyAirports(ctx context.Context, lat, lng float64, locale string) (*NearbyAirportsResponse, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("locale", orDefault(locale, DefaultLocale))

	var out NearbyAirportsResponse
	if err := c.get(ctx, "GetNearbyAirports", "/api/v1/flights/getNearByAirports", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
