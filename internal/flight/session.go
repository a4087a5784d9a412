package flight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skytrip/internal/autocomplete"
	"skytrip/internal/calendar"
	"skytrip/internal/results"
	"skytrip/internal/searchform"
	"skytrip/pkg/logger"
)

const (
	noticeSearchFailed = "Failed to fetch flights. Please try again."
	noticeNoResults    = "No flights found for the selected criteria."
)

// session is one search screen. mu serializes every transition on it.
type session struct {
	mu sync.Mutex

	id       string
	lastSeen time.Time

	form    *searchform.Form
	acCache *autocomplete.Cache
	boxes   map[string]*autocomplete.Box

	cal     calendar.State
	calLeg  int
	overlay calendar.Overlay

	list          *results.List
	vendorSession string
	lastSearch    *SearchMeta
	notice        string
}

func newSession(id string, now time.Time) *session {
	return &session{
		id:       id,
		lastSeen: now,
		form:     searchform.New(),
		acCache:  autocomplete.NewCache(autocomplete.DefaultCacheSize),
		boxes:    make(map[string]*autocomplete.Box),
		list:     results.NewList(),
	}
}

func boxKey(legID int, field searchform.Field) string {
	return fmt.Sprintf("%d:%s", legID, field)
}

// box returns the autocomplete box of a leg field, creating it on first use.
func (s *Service) box(sess *session, leg int, field searchform.Field) *autocomplete.Box {
	key := boxKey(sess.form.Legs[leg].ID, field)
	if b, ok := sess.boxes[key]; ok {
		return b
	}
	log := s.logger
	if zl, ok := s.logger.(*logger.ZeroLogger); ok {
		log = zl.With(logger.Field{Key: "session_id", Value: sess.id}, logger.Field{Key: "box", Value: key})
	}
	b := autocomplete.New(s.base, s.client, sess.acCache, log, s.acOpts...)
	sess.boxes[key] = b
	return b
}

// dropBoxes closes boxes whose leg no longer exists.
func (sess *session) dropBoxes() {
	live := make(map[string]struct{}, 2*len(sess.form.Legs))
	for _, l := range sess.form.Legs {
		live[boxKey(l.ID, searchform.FieldOrigin)] = struct{}{}
		live[boxKey(l.ID, searchform.FieldDestination)] = struct{}{}
	}
	for key, b := range sess.boxes {
		if _, ok := live[key]; !ok {
			b.Close()
			delete(sess.boxes, key)
		}
	}
}

func (sess *session) closeAll() {
	for _, b := range sess.boxes {
		b.Close()
	}
}

func (s *Service) snapshot(sess *session) Snapshot {
	snap := Snapshot{
		ID:                    sess.id,
		Form:                  sess.form.Clone(),
		FormValid:             sess.form.IsValid(),
		ReturnBeforeDeparture: sess.form.ReturnBeforeDeparture(),
		Airports:              make(map[string]autocomplete.State),
		Results:               sess.list.View(),
		LastSearch:            sess.lastSearch,
		Notice:                sess.notice,
	}
	for i, l := range sess.form.Legs {
		for _, f := range []searchform.Field{searchform.FieldOrigin, searchform.FieldDestination} {
			if b, ok := sess.boxes[boxKey(l.ID, f)]; ok {
				snap.Airports[fmt.Sprintf("%d:%s", i, f)] = b.State()
			}
		}
	}
	if sess.cal.Open {
		v := calendar.Render(sess.cal, sess.overlay, s.now())
		snap.Calendar = &v
	}
	return snap
}

// openCalendar shows the picker for a leg. Multi-city legs and one-way trips
// pick a single date.
func (s *Service) openCalendar(ctx context.Context, sess *session, leg int, field calendar.Field) calendar.View {
	mode := calendar.ModeOneWay
	ret := ""
	if sess.form.TripType == searchform.TripRoundTrip && leg == 0 {
		mode = calendar.ModeRoundTrip
		ret = sess.form.ReturnDate
	} else {
		field = calendar.FieldDeparture
	}

	sess.cal = calendar.Open(mode, field, sess.form.Legs[leg].Date, ret, s.now())
	sess.calLeg = leg
	s.ensureOverlay(ctx, sess)
	return calendar.Render(sess.cal, sess.overlay, s.now())
}

// ensureOverlay fetches prices when the route or visible months changed.
// A failed fetch leaves the picker without prices.
func (s *Service) ensureOverlay(ctx context.Context, sess *session) {
	if sess.calLeg >= len(sess.form.Legs) {
		return
	}
	leg := sess.form.Legs[sess.calLeg]
	key := calendar.OverlayKey(leg.Origin.SkyID, leg.Destination.SkyID, sess.cal)
	if key == sess.overlay.Key {
		return
	}

	ov, err := calendar.FetchOverlay(ctx, s.client, leg.Origin.SkyID, leg.Destination.SkyID, sess.cal)
	if err != nil {
		s.logger.Warn("Failed to fetch price calendar",
			logger.Field{Key: "session_id", Value: sess.id},
			logger.Field{Key: "err", Value: err},
		)
	}
	sess.overlay = ov
}
