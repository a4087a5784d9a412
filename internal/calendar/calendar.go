// Package calendar holds the date picker used by the search form. Every
// transition is a pure function over State; the caller supplies "now".
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format of every date the picker produces.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("calendar: invalid date")

type Mode string

const (
	ModeOneWay    Mode = "one-way"
	ModeRoundTrip Mode = "round-trip"
)

// Field names which form field opened the picker.
type Field string

const (
	FieldDeparture Field = "departure"
	FieldReturn    Field = "return"
)

type State struct {
	Open            bool   `json:"open"`
	Mode            Mode   `json:"mode"`
	Departure       string `json:"departure,omitempty"`
	Return          string `json:"return,omitempty"`
	SelectingReturn bool   `json:"selectingReturn"`
	ActiveMonth     string `json:"activeMonth"`
	HoverDate       string `json:"hoverDate,omitempty"`
}

// Outcome tells the form what a click committed.
type Outcome struct {
	Departure string `json:"departure,omitempty"`
	Return    string `json:"return,omitempty"`
	Close     bool   `json:"close"`
}

func (o Outcome) Committed() bool {
	return o.Departure != "" || o.Return != ""
}

// Open shows the picker for field. Multi-city legs open it in ModeOneWay.
// The anchor month is the month of the date being edited, or of now.
func Open(mode Mode, field Field, departure, ret string, now time.Time) State {
	s := State{
		Open:      true,
		Mode:      mode,
		Departure: departure,
		Return:    ret,
	}
	if mode == ModeRoundTrip && field == FieldReturn {
		s.SelectingReturn = true
	}

	anchor := now
	editing := departure
	if s.SelectingReturn && ret != "" {
		editing = ret
	}
	if d, err := ParseDate(editing); err == nil {
		anchor = d
	}
	s.ActiveMonth = monthOf(anchor).Format(monthLayout)
	return s
}

func Close(s State) State {
	s.Open = false
	s.SelectingReturn = false
	s.HoverDate = ""
	return s
}

// Click applies a day click. Days before today leave the state untouched.
func Click(s State, day string, now time.Time) (State, Outcome, error) {
	d, err := ParseDate(day)
	if err != nil {
		return s, Outcome{}, err
	}
	if IsDisabled(d, now) {
		return s, Outcome{}, nil
	}
	day = d.Format(DateLayout)

	if s.Mode != ModeRoundTrip {
		s.Departure = day
		return Close(s), Outcome{Departure: day, Close: true}, nil
	}

	if !s.SelectingReturn {
		s.Departure = day
		s.SelectingReturn = true
		s.HoverDate = ""
		return s, Outcome{Departure: day}, nil
	}

	s.Return = day
	return Close(s), Outcome{Return: day, Close: true}, nil
}

// Hover records the day under the pointer. It only matters while picking a
// return date.
func Hover(s State, day string) (State, error) {
	if !s.SelectingReturn {
		return s, nil
	}
	if day == "" {
		s.HoverDate = ""
		return s, nil
	}
	d, err := ParseDate(day)
	if err != nil {
		return s, err
	}
	s.HoverDate = d.Format(DateLayout)
	return s, nil
}

// Navigate moves the anchor month by delta months.
func Navigate(s State, delta int) State {
	anchor, err := time.Parse(monthLayout, s.ActiveMonth)
	if err != nil {
		return s
	}
	s.ActiveMonth = anchor.AddDate(0, delta, 0).Format(monthLayout)
	return s
}

// InRange reports whether day falls in the highlighted [departure, hover] span.
func InRange(s State, day string) bool {
	if !s.SelectingReturn || s.Departure == "" || s.HoverDate == "" {
		return false
	}
	return day >= s.Departure && day <= s.HoverDate
}

// IsDisabled reports whether d is strictly before the local day of now.
func IsDisabled(d, now time.Time) bool {
	y, m, dd := now.Date()
	today := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}

// ParseDate accepts YYYY-MM-DD, optionally followed by a time part.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

const monthLayout = "2006-01"

func monthOf(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
