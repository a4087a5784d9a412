package main

import (
	"net/http"
	"strings"
)

type Airport struct {
	SkyID    string
	EntityID string
	Name     string
	City     string
	Country  string
	Type     string
}

var airports = []Airport{
	{"LOND", "27544008", "London", "London", "United Kingdom", "CITY"},
	{"LHR", "95565050", "London Heathrow", "London", "United Kingdom", "AIRPORT"},
	{"LGW", "95565051", "London Gatwick", "London", "United Kingdom", "AIRPORT"},
	{"PARI", "27539733", "Paris", "Paris", "France", "CITY"},
	{"CDG", "95565041", "Paris Charles de Gaulle", "Paris", "France", "AIRPORT"},
	{"NYCA", "27537542", "New York", "New York", "United States", "CITY"},
	{"JFK", "95565058", "New York John F. Kennedy", "New York", "United States", "AIRPORT"},
	{"CGK", "95673351", "Jakarta Soekarno-Hatta", "Jakarta", "Indonesia", "AIRPORT"},
	{"DPS", "95673331", "Denpasar Ngurah Rai", "Denpasar", "Indonesia", "AIRPORT"},
	{"SIN", "95673375", "Singapore Changi", "Singapore", "Singapore", "AIRPORT"},
}

func suggestion(a Airport) map[string]any {
	title := a.Name + " (Any)"
	if a.Type == "AIRPORT" {
		title = a.Name + " (" + a.SkyID + ")"
	}
	return map[string]any{
		"presentation": map[string]any{
			"title":           a.Name,
			"suggestionTitle": title,
			"subtitle":        a.Country,
		},
		"navigation": map[string]any{
			"entityId":      a.EntityID,
			"entityType":    a.Type,
			"localizedName": a.Name,
			"relevantFlightParams": map[string]any{
				"skyId":           a.SkyID,
				"entityId":        a.EntityID,
				"flightPlaceType": a.Type,
				"localizedName":   a.Name,
			},
		},
	}
}

func findAirport(skyID string) (Airport, bool) {
	for _, a := range airports {
		if strings.EqualFold(a.SkyID, skyID) {
			return a, true
		}
	}
	return Airport{}, false
}

func SearchAirportHandler(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}

	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
	data := make([]map[string]any, 0)
	for _, a := range airports {
		if query == "" {
			break
		}
		if strings.Contains(strings.ToLower(a.Name), query) ||
			strings.EqualFold(a.SkyID, query) ||
			strings.Contains(strings.ToLower(a.City), query) {
			data = append(data, suggestion(a))
		}
	}

	writeJSON(w, map[string]any{"status": true, "data": data})
}

func NearbyAirportsHandler(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}

	nearby := make([]map[string]any, 0, 3)
	for _, a := range airports[:3] {
		nearby = append(nearby, suggestion(a))
	}
	writeJSON(w, map[string]any{
		"status": true,
		"data": map[string]any{
			"current": suggestion(airports[0]),
			"nearby":  nearby,
			"recent":  []any{},
		},
	})
}
