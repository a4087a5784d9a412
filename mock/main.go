package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"
)

// Local stand-in for the Sky Scrapper API. Point SKYSCRAPPER_BASE_URL at it.
func main() {
	// Default port
	port := "8081"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/api/v1/flights/searchAirport", SearchAirportHandler)
	http.HandleFunc("/api/v1/flights/getNearByAirports", NearbyAirportsHandler)
	http.HandleFunc("/api/v2/flights/searchFlightsComplete", SearchFlightsHandler)
	http.HandleFunc("/api/v2/flights/searchIncomplete", SearchIncompleteHandler)
	http.HandleFunc("/api/v1/flights/searchFlightsMultiStops", MultiStopsHandler)
	http.HandleFunc("/api/v1/flights/getPriceCalendar", PriceCalendarHandler)
	http.HandleFunc("/api/v1/flights/getFlightDetails", FlightDetailsHandler)
	http.HandleFunc("/api/v2/flights/searchFlightEverywhere", EverywhereHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Sky Scrapper mock running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}

func writeJSON(w http.ResponseWriter, body any) {
	delay := 50 + rand.Intn(151) // 50 to 200ms
	time.Sleep(time.Duration(delay) * time.Millisecond)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func onlyGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
