// Package scrollspy selects the FAQ section that matches the reader's scroll position.
//
// The tracker is fed heading positions measured once per animation frame. Positions are
// relative to the top of the viewport, so a heading above the fold has a negative top.
package scrollspy

import (
	"math"
	"time"
)

const (
	DEFAULT_OFFSET   = 120.0
	DEFAULT_SUPPRESS = 800 * time.Millisecond
)

type Heading struct {
	ID  string
	Top float64
}

type Tracker struct {
	Offset   float64
	Suppress time.Duration

	active          string
	suppressedUntil time.Time
}

func NewTracker() *Tracker {
	return &Tracker{Offset: DEFAULT_OFFSET, Suppress: DEFAULT_SUPPRESS}
}

func (t *Tracker) Active() string {
	return t.active
}

// Closest returns the heading whose top is nearest to offset. Ties keep the earlier heading.
func Closest(headings []Heading, offset float64) (string, bool) {
	best := ""
	bestDistance := math.Inf(1)
	for _, heading := range headings {
		if distance := math.Abs(heading.Top - offset); distance < bestDistance {
			best = heading.ID
			bestDistance = distance
		}
	}
	return best, best != ""
}

// Update handles one frame of measurements. While a sidebar click is scrolling the page the
// measurements are ignored so the highlight does not flicker through intermediate sections.
func (t *Tracker) Update(now time.Time, headings []Heading) (string, bool) {
	if now.Before(t.suppressedUntil) {
		return t.active, false
	}
	id, ok := Closest(headings, t.Offset)
	if !ok || id == t.active {
		return t.active, false
	}
	t.active = id
	return id, true
}

// Select marks a section as active after a sidebar click.
func (t *Tracker) Select(now time.Time, id string) {
	t.active = id
	t.suppressedUntil = now.Add(t.Suppress)
}
