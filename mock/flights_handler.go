package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

type carrier struct {
	ID   int64
	Name string
}

var carriers = []carrier{
	{-32753, "British Airways"},
	{-32677, "Air France"},
	{-31939, "Garuda Indonesia"},
	{-32090, "Singapore Airlines"},
}

type legQuery struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

func place(skyID string) map[string]any {
	a, ok := findAirport(skyID)
	if !ok {
		a = Airport{SkyID: skyID, Name: skyID, City: skyID}
	}
	return map[string]any{
		"id":          a.SkyID,
		"entityId":    a.EntityID,
		"name":        a.Name,
		"displayCode": a.SkyID,
		"city":        a.City,
		"country":     a.Country,
	}
}

func makeLeg(id string, q legQuery, departHour, stops int, c carrier) map[string]any {
	day, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		day = time.Now().AddDate(0, 0, 14)
	}
	duration := 90 + stops*120 + rand.Intn(60)
	dep := day.Add(time.Duration(departHour) * time.Hour)
	arr := dep.Add(time.Duration(duration) * time.Minute)
	return map[string]any{
		"id":                id,
		"origin":            place(q.Origin),
		"destination":       place(q.Destination),
		"durationInMinutes": duration,
		"stopCount":         stops,
		"departure":         dep.Format("2006-01-02T15:04:05"),
		"arrival":           arr.Format("2006-01-02T15:04:05"),
		"carriers": map[string]any{
			"marketing":     []map[string]any{{"id": c.ID, "name": c.Name}},
			"operationType": "fully_operated",
		},
	}
}

func itineraries(sessionID string, legs []legQuery) []map[string]any {
	out := make([]map[string]any, 0, 6)
	for i := 0; i < 6; i++ {
		c := carriers[i%len(carriers)]
		stops := i % 3
		price := 120 + rand.Intn(400) - stops*30
		itLegs := make([]map[string]any, 0, len(legs))
		for j, q := range legs {
			itLegs = append(itLegs, makeLeg(fmt.Sprintf("%s-%d-%d", q.Origin, i, j), q, 6+i*2, stops, c))
		}
		out = append(out, map[string]any{
			"id":    fmt.Sprintf("%s-it-%d", sessionID, i),
			"price": map[string]any{"raw": price, "formatted": fmt.Sprintf("$%d", price)},
			"legs":  itLegs,
			"score": 1 - float64(i)/10,
		})
	}
	return out
}

func filterCarriers() []map[string]any {
	out := make([]map[string]any, 0, len(carriers))
	for _, c := range carriers {
		out = append(out, map[string]any{"id": c.ID, "name": c.Name})
	}
	return out
}

func searchBody(sessionID, status string, legs []legQuery) map[string]any {
	its := itineraries(sessionID, legs)
	return map[string]any{
		"status": true,
		"data": map[string]any{
			"context":     map[string]any{"status": status, "sessionId": sessionID, "totalResults": len(its)},
			"itineraries": its,
			"filterStats": map[string]any{"carriers": filterCarriers()},
		},
	}
}

func SearchFlightsHandler(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	q := r.URL.Query()
	if q.Get("originSkyId") == "" || q.Get("destinationSkyId") == "" || q.Get("date") == "" {
		http.Error(w, `{"status":false,"message":"originSkyId, destinationSkyId and date are required"}`, http.StatusBadRequest)
		return
	}

	legs := []legQuery{{q.Get("originSkyId"), q.Get("destinationSkyId"), q.Get("date")}}
	if ret := q.Get("returnDate"); ret != "" {
		legs = append(legs, legQuery{q.Get("destinationSkyId"), q.Get("originSkyId"), ret})
	}
	sessionID := fmt.Sprintf("mock-%d", time.Now().UnixNano())
	writeJSON(w, searchBody(sessionID, "complete", legs))
}

func SearchIncompleteHandler(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, `{"status":false,"message":"sessionId is required"}`, http.StatusBadRequest)
		return
	}
	writeJSON(w, searchBody(sessionID, "complete", []legQuery{{"LHR", "CDG", ""}}))
}

func MultiStopsHandler(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	var legs []legQuery
	if err := json.Unmarshal([]byte(r.URL.Query().Get("legs")), &legs); err != nil || len(legs) == 0 {
		http.Error(w, `{"status":false,"message":"legs must be a JSON array"}`, http.StatusBadRequest)
		return
	}

	sessionID := fmt.Sprintf("mock-ms-%d", time.Now().UnixNano())
	body := searchBody(sessionID, "complete", legs)
	body["sessionId"] = sessionID
	writeJSON(w, body)
}

func FlightDetailsHandler(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	q := r.URL.Query()
	var legs []legQuery
	if err := json.Unmarshal([]byte(q.Get("legs")), &legs); err != nil || q.Get("itineraryId") == "" {
		http.Error(w, `{"status":false,"message":"itineraryId and legs are required"}`, http.StatusBadRequest)
		return
	}

	detailLegs := make([]map[string]any, 0, len(legs))
	for i, l := range legs {
		detailLegs = append(detailLegs, makeLeg(fmt.Sprintf("detail-%d", i), l, 9, 0, carriers[0]))
	}
	price := 150 + rand.Intn(300)
	writeJSON(w, map[string]any{
		"status": true,
		"data": map[string]any{
			"itinerary": map[string]any{
				"legs": detailLegs,
				"pricingOptions": []map[string]any{{
					"totalPrice": price,
					"agents": []map[string]any{
						{"id": "skyt", "name": "Skytrip Travel", "url": "https://example.com/book", "price": price},
					},
				}},
			},
		},
	})
}

func EverywhereHandler(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	results := make([]map[string]any, 0, len(airports))
	for _, a := range airports {
		if a.Type != "CITY" || a.EntityID == r.URL.Query().Get("originEntityId") {
			continue
		}
		results = append(results, map[string]any{
			"id":      a.EntityID,
			"type":    "LOCATION",
			"content": map[string]any{"location": map[string]any{"name": a.Name, "skyCode": a.SkyID}},
		})
	}
	writeJSON(w, map[string]any{
		"status": true,
		"data": map[string]any{
			"context": map[string]any{"status": "complete", "sessionId": fmt.Sprintf("mock-ev-%d", time.Now().UnixNano())},
			"results": results,
		},
	})
}
