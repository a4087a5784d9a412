package main

import (
	"math/rand"
	"net/http"
	"time"
)

func PriceCalendarHandler(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	q := r.URL.Query()
	from, err := time.Parse("2006-01-02", q.Get("fromDate"))
	if err != nil {
		http.Error(w, `{"status":false,"message":"fromDate must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}
	to, err := time.Parse("2006-01-02", q.Get("toDate"))
	if err != nil {
		to = from.AddDate(0, 2, -1)
	}

	days := make([]map[string]any, 0, 62)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		price := 80 + rand.Intn(320)
		group := "medium"
		switch {
		case price < 150:
			group = "low"
		case price > 300:
			group = "high"
		}
		days = append(days, map[string]any{"day": d.Format("2006-01-02"), "group": group, "price": price})
	}

	writeJSON(w, map[string]any{
		"status": true,
		"data": map[string]any{
			"flights": map[string]any{
				"noPriceLabel": "N/A",
				"groups": []map[string]any{
					{"id": "low", "label": "cheap"},
					{"id": "medium", "label": "average"},
					{"id": "high", "label": "expensive"},
				},
				"days":     days,
				"currency": "USD",
			},
		},
	})
}
