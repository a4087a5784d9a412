package results

import (
	"encoding/json"
	"errors"
	"fmt"

	"skytrip/pkg/skyscrapper"
)

var ErrMalformedPayload = errors.New("results: malformed payload")

// Payload is the part of a search response the results list works from.
type Payload struct {
	Itineraries []skyscrapper.Itinerary
	Carriers    []skyscrapper.FilterCarrier
	SessionID   string
	Incomplete  bool
}

// envelope accepts either a full search response or its bare data object.
type envelope struct {
	SessionID   string                     `json:"sessionId"`
	Data        *skyscrapper.SearchData    `json:"data"`
	Itineraries []skyscrapper.Itinerary    `json:"itineraries"`
	Context     *skyscrapper.SearchContext `json:"context"`
	FilterStats *skyscrapper.FilterStats   `json:"filterStats"`
}

// Parse normalizes a result payload. It accepts raw JSON bytes, a string
// holding JSON (itself possibly a JSON-encoded string), a search response or
// anything encoding/json can marshal. A payload without itineraries yields an
// empty Payload and no error; an undecodable one yields ErrMalformedPayload.
func Parse(raw any) (Payload, error) {
	switch v := raw.(type) {
	case nil:
		return Payload{}, nil
	case Payload:
		return v, nil
	case *skyscrapper.SearchResponse:
		if v == nil {
			return Payload{}, nil
		}
		return FromResponse(*v), nil
	case skyscrapper.SearchResponse:
		return FromResponse(v), nil
	case skyscrapper.SearchData:
		return fromData(v, ""), nil
	case string:
		return parseBytes([]byte(v), 0)
	case []byte:
		return parseBytes(v, 0)
	case json.RawMessage:
		return parseBytes(v, 0)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return parseBytes(b, 0)
	}
}

// FromResponse copies the itineraries out of a decoded search response.
func FromResponse(resp skyscrapper.SearchResponse) Payload {
	return fromData(resp.Data, resp.SessionID)
}

func fromData(d skyscrapper.SearchData, topLevelSession string) Payload {
	p := Payload{
		Itineraries: append([]skyscrapper.Itinerary(nil), d.Itineraries...),
		Carriers:    append([]skyscrapper.FilterCarrier(nil), d.FilterStats.Carriers...),
		SessionID:   d.Context.SessionID,
		Incomplete:  d.Context.Status == "incomplete",
	}
	if p.SessionID == "" {
		p.SessionID = topLevelSession
	}
	return p
}

func parseBytes(b []byte, depth int) (Payload, error) {
	if len(b) == 0 {
		return Payload{}, nil
	}

	// a serialized payload wrapped once more as a JSON string
	var inner string
	if depth < 2 && json.Unmarshal(b, &inner) == nil {
		return parseBytes([]byte(inner), depth+1)
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if env.Data != nil {
		return fromData(*env.Data, env.SessionID), nil
	}

	d := skyscrapper.SearchData{Itineraries: env.Itineraries}
	if env.Context != nil {
		d.Context = *env.Context
	}
	if env.FilterStats != nil {
		d.FilterStats = *env.FilterStats
	}
	return fromData(d, env.SessionID), nil
}
