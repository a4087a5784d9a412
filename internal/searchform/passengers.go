package searchform

import (
	"errors"
	"fmt"
)

const (
	MinAdults     = 1
	MaxPassengers = 9
)

var ErrInvalidPassengerKind = errors.New("searchform: invalid passenger kind")

type PassengerKind string

const (
	Adults   PassengerKind = "adults"
	Children PassengerKind = "children"
	Infants  PassengerKind = "infants"
)

type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}

// Clamp forces every count into its allowed range.
func (p Passengers) Clamp() Passengers {
	return Passengers{
		Adults:   clamp(p.Adults, MinAdults, MaxPassengers),
		Children: clamp(p.Children, 0, MaxPassengers),
		Infants:  clamp(p.Infants, 0, MaxPassengers),
	}
}

func (f *Form) SetPassengers(p Passengers) {
	f.Passengers = p.Clamp()
}

// ChangePassengers adds delta to one count, clamped.
func (f *Form) ChangePassengers(kind PassengerKind, delta int) error {
	p := f.Passengers
	switch kind {
	case Adults:
		p.Adults += delta
	case Children:
		p.Children += delta
	case Infants:
		p.Infants += delta
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPassengerKind, kind)
	}
	f.Passengers = p.Clamp()
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
