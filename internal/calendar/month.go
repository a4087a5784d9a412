package calendar

import "time"

type Day struct {
	Date       string   `json:"date"`
	Weekday    int      `json:"weekday"`
	Disabled   bool     `json:"disabled"`
	Selected   bool     `json:"selected"`
	InRange    bool     `json:"inRange"`
	Price      *float64 `json:"price,omitempty"`
	PriceColor string   `json:"priceColor,omitempty"`
}

type Month struct {
	Month string `json:"month"`
	Title string `json:"title"`
	Days  []Day  `json:"days"`
}

// View is the two-month grid shown to the user.
type View struct {
	State  State   `json:"state"`
	Prompt string  `json:"prompt"`
	Months []Month `json:"months"`
}

// Render lays out the anchor month and the one after it, decorated with the
// overlay. Disabled days never show a price.
func Render(s State, overlay Overlay, now time.Time) View {
	anchor, err := time.Parse(monthLayout, s.ActiveMonth)
	if err != nil {
		anchor = monthOf(now)
	}

	prompt := "Select departure date"
	if s.SelectingReturn {
		prompt = "Select return date"
	}

	v := View{State: s, Prompt: prompt}
	for offset := 0; offset < 2; offset++ {
		start := anchor.AddDate(0, offset, 0)
		m := Month{Month: start.Format(monthLayout), Title: start.Format("January 2006")}
		for d := start; d.Month() == start.Month(); d = d.AddDate(0, 0, 1) {
			date := d.Format(DateLayout)
			day := Day{
				Date:     date,
				Weekday:  int(d.Weekday()),
				Disabled: IsDisabled(d, now),
				Selected: date == s.Departure || date == s.Return,
				InRange:  InRange(s, date),
			}
			if p, ok := overlay.Days[date]; ok && !day.Disabled {
				price := p.Price
				day.Price = &price
				day.PriceColor = PriceColor(p.Group)
			}
			m.Days = append(m.Days, day)
		}
		v.Months = append(v.Months, m)
	}
	return v
}
