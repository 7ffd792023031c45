// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Interval is a span of time anchored at a starting Instant. The
// duration is never negative and a zero-length interval is permitted.
//
// Containment is inclusive at BOTH ends: an interval covers [start,
// start+duration]. The zero value is the zero-length interval at the
// epoch.
type Interval struct {
	start    Instant
	duration Duration
}

// NewInterval returns the interval covering d from start. A negative
// duration fails with an error matching ErrInvalidInterval.
func NewInterval(start Instant, d Duration) (Interval, error) {
	if d < 0 {
		return Interval{}, errors.Mark(errors.Newf("negative duration %v", d), ErrInvalidInterval)
	}
	return Interval{start: start, duration: d}, nil
}

// IntervalBetween returns the interval from a to b. An end before the
// start fails with an error matching ErrInvalidInterval.
func IntervalBetween(a, b Instant) (Interval, error) {
	if b.Before(a) {
		return Interval{}, errors.Mark(errors.Newf("end %v precedes start %v", b, a), ErrInvalidInterval)
	}
	return Interval{start: a, duration: b.Sub(a)}, nil
}

// Start returns the anchoring instant.
func (iv Interval) Start() Instant { return iv.start }

// Duration returns the interval's span.
func (iv Interval) Duration() Duration { return iv.duration }

// End returns start+duration.
func (iv Interval) End() Instant { return iv.start.Add(iv.duration) }

// Contains reports whether t lies within the interval. Both endpoints
// are inside: Contains(Start()) and Contains(End()) are true, and any
// instant strictly before the start or strictly after the end is
// outside.
func (iv Interval) Contains(t Instant) bool {
	return t >= iv.start && t <= iv.End()
}

// Intersects reports whether the two (end-inclusive) intervals share
// at least one instant; intervals that merely touch at an endpoint
// count.
func (iv Interval) Intersects(o Interval) bool {
	return iv.start <= o.End() && o.start <= iv.End()
}

// Intersection returns the shared span of two intervals, if any.
func (iv Interval) Intersection(o Interval) (Interval, bool) {
	if !iv.Intersects(o) {
		return Interval{}, false
	}
	start := max(iv.start, o.start)
	end := min(iv.End(), o.End())
	return Interval{start: start, duration: end.Sub(start)}, true
}

// Compare orders intervals by start, then by duration. Two intervals
// are equal only when both match exactly.
func (iv Interval) Compare(o Interval) int {
	if c := cmpOrdered(iv.start, o.start); c != 0 {
		return c
	}
	return cmpOrdered(iv.duration, o.duration)
}

// Equal reports exact equality of start and duration.
func (iv Interval) Equal(o Interval) bool { return iv == o }

// IsZero reports whether iv is the zero interval, the zero-length
// interval at the epoch.
func (iv Interval) IsZero() bool { return iv == Interval{} }

// String formats the interval with its inclusive endpoints.
func (iv Interval) String() string {
	return fmt.Sprintf("[%v, %v]", iv.start, iv.End())
}
