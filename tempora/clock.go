// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"go.tempora.net/internal/weekdata"
)

// Process-wide state: the now-source and the current calendar. Both are
// read through atomic holders so that concurrent readers see a
// consistent snapshot and replacing either cannot race. Nothing in this
// package caches what it reads from them; a change is visible to the
// next call.
var (
	nowFunc    atomic.Pointer[func() time.Time]
	currentCal atomic.Pointer[Calendar]
)

func init() {
	f := time.Now
	nowFunc.Store(&f)

	def := weekdata.Default()
	mask, err := weekendMask(def.Weekend)
	if err != nil {
		panic("tempora: embedded week data: " + err.Error())
	}
	currentCal.Store(&Calendar{
		system:   Gregorian,
		loc:      time.Local,
		firstDay: def.FirstDay,
		minDays:  def.MinDaysInFirstWeek,
		weekend:  mask,
	})
}

// Now returns the current instant from the process-wide now-source,
// which defaults to time.Now. Reading the clock never fails: time.Now
// has no error, and an overriding source is expected to return a
// best-effort reading (for instance a monotonic fallback) rather than
// none.
func Now() Instant {
	return FromTime((*nowFunc.Load())())
}

// SetNowFunc replaces the process-wide now-source and returns the
// previous one, so tests can pin the clock and restore it:
//
//	prev := tempora.SetNowFunc(func() time.Time { return fixed })
//	defer tempora.SetNowFunc(prev)
//
// A nil f restores the default source, time.Now.
func SetNowFunc(f func() time.Time) (prev func() time.Time) {
	if f == nil {
		f = time.Now
	}
	return *nowFunc.Swap(&f)
}

// Current returns the process-wide current calendar: a fresh snapshot
// on every call, never cached by this package, so a SetCurrent made by
// other code (say, after the user changes a system setting) is visible
// to the next caller. The returned calendar itself is immutable.
//
// The default is a Gregorian calendar in time.Local with the world
// default week rules.
func Current() *Calendar {
	return currentCal.Load()
}

// SetCurrent replaces the process-wide current calendar with a newly
// constructed one; its arguments are those of NewCalendar. On error the
// current calendar is left unchanged.
func SetCurrent(system, zone string, opts ...Option) error {
	c, err := NewCalendar(system, zone, opts...)
	if err != nil {
		return errors.Wrap(err, "setting current calendar")
	}
	currentCal.Store(c)
	return nil
}

// SetCurrentCalendar installs c as the process-wide current calendar
// and returns the previous one, for save/restore in tests. It panics on
// a nil calendar.
func SetCurrentCalendar(c *Calendar) (prev *Calendar) {
	if c == nil {
		panic("tempora: SetCurrentCalendar(nil)")
	}
	return currentCal.Swap(c)
}
