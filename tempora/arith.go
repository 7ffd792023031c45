// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

// This file implements calendar-aware arithmetic on instants. Unlike
// Instant.Add, which moves by an exact number of seconds, these
// operations move by calendar units whose physical length varies:
// months have 28..31 days, and days spanning a daylight-saving
// transition have 23 or 25 hours.

import (
	"time"
)

// Add moves t by count units of the given field and returns the
// result. Count may be negative. The calendar defines the semantics of
// each unit:
//
//   - Year, Quarter, and Month move the month index and clamp the day
//     of month to the target month's length, so January 31 plus one
//     month is February 28 (or 29 in a leap year).
//   - WeekOfYear and WeekOfMonth move by 7 days per unit.
//   - Day moves by calendar days, preserving the wall clock across
//     zone transitions where it exists.
//   - HourOfDay, MinuteOfHour, SecondOfMinute, and NanosecondOfSecond
//     move by exact physical durations.
//
// Era and Weekday are not units of elapsed time; adding in them fails
// with an error matching ErrInvalidFields.
func (c *Calendar) Add(t Instant, unit Field, count int) (Instant, error) {
	switch unit {
	case Year:
		return c.addMonths(t, 12*count), nil
	case Quarter:
		return c.addMonths(t, 3*count), nil
	case Month:
		return c.addMonths(t, count), nil
	case WeekOfYear, WeekOfMonth:
		return c.addDays(t, 7*count), nil
	case Day:
		return c.addDays(t, count), nil
	case HourOfDay:
		return t.Add(Duration(count) * Hour), nil
	case MinuteOfHour:
		return t.Add(Duration(count) * Minute), nil
	case SecondOfMinute:
		return t.Add(Duration(count) * Second), nil
	case NanosecondOfSecond:
		return t.Add(Duration(count) * Nanosecond), nil
	case Era, Weekday:
		return 0, invalidFieldsf("cannot add in units of %s", unit)
	default:
		return 0, invalidFieldsf("unsupported field %s", unit)
	}
}

// addMonths moves t by a number of months, clamping the day of month
// to the target month's length. The wall clock is preserved where it
// exists; inside a zone gap it resolves forward by the transition
// delta.
func (c *Calendar) addMonths(t Instant, months int) Instant {
	tt := t.Time(c.loc)
	y, m, d := tt.Date()
	total := y*12 + int(m) - 1 + months
	ny, nm := floorDiv(total, 12), time.Month(floorMod(total, 12)+1)
	nd := min(d, daysInMonth(ny, nm))
	hh, mi, ss := tt.Clock()
	return FromTime(c.dateInZone(ny, nm, nd, hh, mi, ss, tt.Nanosecond()))
}

// addDays moves t by calendar days, keeping the wall clock rather than
// adding a fixed number of seconds. Across a daylight-saving
// transition the two differ: the day is 23 or 25 hours long.
func (c *Calendar) addDays(t Instant, days int) Instant {
	tt := t.Time(c.loc)
	y, m, d := tt.Date()
	ny, nm, nd := civilToDate(civilDay(y, m, d) + int64(days))
	hh, mi, ss := tt.Clock()
	return FromTime(c.dateInZone(ny, nm, nd, hh, mi, ss, tt.Nanosecond()))
}

// AddFields applies every field of fs as a signed displacement, one
// unit at a time from the largest unit to the smallest. Order matters
// when a coarse step lands near a month edge: adding {month: 1,
// day: -1} to January 30 clamps to February 28 and then steps back to
// February 27, while the opposite order would pass through January 29
// on its way to February.
func (c *Calendar) AddFields(t Instant, fs *Fields) (Instant, error) {
	for f := Era; f < numFields; f++ {
		count, ok := fs.Get(f)
		if !ok {
			continue
		}
		var err error
		if t, err = c.Add(t, f, count); err != nil {
			return 0, err
		}
	}
	return t, nil
}

// StartOfDay returns the first instant of the day containing t. That
// instant is usually midnight, but in zones where midnight falls
// inside a daylight-saving gap the day starts later; StartOfDay
// returns the instant the zone transition ends.
func (c *Calendar) StartOfDay(t Instant) Instant {
	y, m, d := t.Time(c.loc).Date()
	return FromTime(c.dayStartDate(y, m, d))
}

// dayStartDate returns the first instant of the civil date (y, m, d) in
// the calendar's zone. When midnight does not exist, the day begins at
// the instant the zone transition that swallowed it takes effect.
func (c *Calendar) dayStartDate(y int, m time.Month, d int) time.Time {
	st := time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	if readsAs(st, y, m, d, 0, 0, 0, 0) {
		return st
	}
	return gapTransition(st, time.Date(y, m, d, 0, 0, 0, 0, time.UTC)).In(c.loc)
}

// NextDay returns the start of the day after the day containing t.
func (c *Calendar) NextDay(t Instant) Instant {
	return c.StartOfDay(c.addDays(c.StartOfDay(t), 1))
}

// PreviousDay returns the start of the day before the day containing
// t. This is a calendar operation, not a subtraction of 86400 seconds:
// on the day after a daylight-saving transition the flat subtraction
// misses the previous day's start by the transition delta.
func (c *Calendar) PreviousDay(t Instant) Instant {
	return c.StartOfDay(c.addDays(c.StartOfDay(t), -1))
}

// DayInterval returns the day containing t as an interval from the
// day's first instant to the next day's first instant. Interval
// containment is end-inclusive, so the interval's End, the next
// midnight, is contained; callers that need a half-open day should
// test against End with Before.
func (c *Calendar) DayInterval(t Instant) Interval {
	start := c.StartOfDay(t)
	return Interval{start: start, duration: c.NextDay(t).Sub(start)}
}

// Compare orders two instants at the given granularity: it reports 0
// when both fall in the same era, year, quarter, month, week, day,
// hour, minute, second, or nanosecond, and otherwise the sign of their
// order. NanosecondOfSecond granularity is exact comparison.
//
// Week granularity may be expressed as WeekOfYear or WeekOfMonth; both
// compare the calendar week under the calendar's week rules. Weekday
// is not a granularity, and Compare panics on it as on any other
// non-granularity value.
func (c *Calendar) Compare(a, b Instant, granularity Field) int {
	if granularity == Era {
		ea, _ := eraYear(a.Time(c.loc).Year())
		eb, _ := eraYear(b.Time(c.loc).Year())
		return cmpOrdered(ea, eb)
	}
	return cmpOrdered(c.truncate(a, granularity), c.truncate(b, granularity))
}

// truncate maps t to a representative of its enclosing granularity
// unit, such that instants in the same unit share a representative and
// units are ordered with their wall-clock readings. Representatives
// are built from the local decomposition in a zone-free domain, so two
// instants compare equal exactly when their local fields agree down to
// the granularity.
func (c *Calendar) truncate(t Instant, granularity Field) Instant {
	if granularity == NanosecondOfSecond {
		return t
	}
	tt := t.Time(c.loc)
	y, m, d := tt.Date()
	hh, mi, ss := tt.Clock()
	switch granularity {
	case Year:
		m, d, hh, mi, ss = time.January, 1, 0, 0, 0
	case Quarter:
		m = time.Month(3*((int(m)-1)/3) + 1)
		d, hh, mi, ss = 1, 0, 0, 0
	case Month:
		d, hh, mi, ss = 1, 0, 0, 0
	case WeekOfYear, WeekOfMonth:
		return Instant(c.weekStartCivil(civilDay(y, m, d)) * 86400)
	case Day:
		hh, mi, ss = 0, 0, 0
	case HourOfDay:
		mi, ss = 0, 0
	case MinuteOfHour:
		ss = 0
	case SecondOfMinute:
	default:
		panic("tempora: invalid granularity " + granularity.String())
	}
	return FromTime(time.Date(y, m, d, hh, mi, ss, 0, time.UTC))
}
