// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora_test

import (
	"testing"
	"time"

	// Tests build calendars in IANA zones; embedding the zone database
	// keeps them hermetic on hosts that ship without one.
	_ "time/tzdata"

	"go.tempora.net/tempora"
)

// zone loads an IANA location or fails the test.
func zone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	return loc
}

// calendar builds a calendar or fails the test.
func calendar(t *testing.T, system, zone string, opts ...tempora.Option) *tempora.Calendar {
	t.Helper()
	c, err := tempora.NewCalendar(system, zone, opts...)
	if err != nil {
		t.Fatalf("NewCalendar(%s, %s): %v", system, zone, err)
	}
	return c
}

// at is shorthand for an instant at a wall-clock reading in a zone.
func at(loc *time.Location, y int, m time.Month, d, hh, mi, ss int) tempora.Instant {
	return tempora.FromTime(time.Date(y, m, d, hh, mi, ss, 0, loc))
}

// utc is at in UTC.
func utc(y int, m time.Month, d, hh, mi, ss int) tempora.Instant {
	return at(time.UTC, y, m, d, hh, mi, ss)
}
