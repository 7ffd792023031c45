// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import "time"

// InSameDay reports whether a and b fall on the same calendar day.
func (c *Calendar) InSameDay(a, b Instant) bool {
	return c.Compare(a, b, Day) == 0
}

// IsToday reports whether t falls on the current day. The current
// instant is read through the process-wide clock; see SetNowFunc.
func (c *Calendar) IsToday(t Instant) bool {
	return c.InSameDay(t, Now())
}

// IsTomorrow reports whether t falls on the day after the current day.
func (c *Calendar) IsTomorrow(t Instant) bool {
	return c.InSameDay(t, c.addDays(Now(), 1))
}

// IsYesterday reports whether t falls on the day before the current
// day.
func (c *Calendar) IsYesterday(t Instant) bool {
	return c.InSameDay(t, c.addDays(Now(), -1))
}

// IsWeekend reports whether t falls on one of the calendar's weekend
// days. Which days those are is a property of the calendar's week
// rules, not of the calendar system; see WithRegion and WithWeekRules.
func (c *Calendar) IsWeekend(t Instant) bool {
	return c.weekend&weekendBit(t.Time(c.loc).Weekday()) != 0
}

// Weekday returns the day of the week on which t falls.
func (c *Calendar) Weekday(t Instant) time.Weekday {
	return t.Time(c.loc).Weekday()
}

// WeekOfYear returns the week number of t under the calendar's week
// rules and the week-based year the week belongs to. Near January 1
// the week year may differ from the calendar year: under ISO 8601
// rules, 2021-01-01 is week 53 of week year 2020.
func (c *Calendar) WeekOfYear(t Instant) (week, year int) {
	return c.weekOfYearDate(t.Time(c.loc).Date())
}
