// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"math"
	"time"

	"golang.org/x/exp/constraints"
)

// Instant is an absolute point in time: a signed, floating-point count
// of seconds since the Unix epoch (1970-01-01T00:00:00 UTC), with
// sub-second precision in the fraction.
//
// An Instant is independent of any calendar or time zone; interpreting
// one as a date requires a Calendar. Instants are immutable values and
// safe to share.
//
// The float64 representation resolves to well under a microsecond for
// dates within a few centuries of the epoch. Instants must be finite;
// NaN and infinities are outside the supported domain.
type Instant float64

// FromUnixSeconds returns the Instant at the given offset in seconds
// from the Unix epoch.
func FromUnixSeconds(sec float64) Instant { return Instant(sec) }

// FromTime converts a time.Time to an Instant.
func FromTime(t time.Time) Instant {
	return Instant(float64(t.Unix()) + float64(t.Nanosecond())/1e9)
}

// Unix splits t into whole seconds and remaining nanoseconds since the
// epoch. The nanosecond part is always in [0, 1e9).
func (t Instant) Unix() (sec, nsec int64) {
	s := math.Floor(float64(t))
	ns := math.Round((float64(t) - s) * 1e9)
	if ns >= 1e9 {
		s++
		ns = 0
	}
	return int64(s), int64(ns)
}

// Time converts t to a time.Time in the given location.
// A nil location means UTC.
func (t Instant) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	sec, nsec := t.Unix()
	return time.Unix(sec, nsec).In(loc)
}

// Add returns the instant d after t (before t, for negative d).
func (t Instant) Add(d Duration) Instant { return t + Instant(d) }

// AddSeconds is Add with a bare second count.
func (t Instant) AddSeconds(sec float64) Instant { return t + Instant(sec) }

// Sub returns the span from u to t, t minus u.
func (t Instant) Sub(u Instant) Duration { return Duration(t - u) }

// Compare returns -1 if t is before u, +1 if t is after u, and 0 only
// on exact numeric equality. No tolerance is applied: two instants a
// nanosecond apart are not equal. Callers wanting "same second" or
// "same day" truncate first (Truncate, or Calendar.Compare for
// calendar granularities).
func (t Instant) Compare(u Instant) int { return cmpOrdered(t, u) }

// Before reports whether t is before u.
func (t Instant) Before(u Instant) bool { return t < u }

// After reports whether t is after u.
func (t Instant) After(u Instant) bool { return t > u }

// Equal reports exact equality of t and u.
func (t Instant) Equal(u Instant) bool { return t == u }

// IsZero reports whether t is the epoch instant, the zero value.
func (t Instant) IsZero() bool { return t == 0 }

// Truncate rounds t down (toward the distant past) to a multiple of
// step since the epoch. Non-positive steps return t unchanged.
//
// Truncation here is flat arithmetic on the epoch offset and knows
// nothing of calendars or zones; Calendar.Compare truncates by
// calendar field instead.
func (t Instant) Truncate(step Duration) Instant {
	if step <= 0 {
		return t
	}
	return Instant(math.Floor(float64(t)/float64(step)) * float64(step))
}

// String formats t as an RFC 3339 timestamp in UTC, for debugging.
func (t Instant) String() string {
	return t.Time(time.UTC).Format(time.RFC3339Nano)
}

// cmpOrdered is a three-way comparison over any ordered type.
func cmpOrdered[T constraints.Ordered](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return +1
	}
	return 0
}
