// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// MatchPolicy selects how NextOccurrence treats a candidate wall-clock
// reading that does not exist because a zone transition skipped it.
type MatchPolicy int

const (
	// Strict accepts only instants whose fields match the query
	// exactly. Readings inside a transition gap are passed over, and
	// the search fails with ErrNoMatch when no exact match exists
	// within the search horizon.
	Strict MatchPolicy = iota

	// NextValidTime stands in for a reading inside a transition gap
	// with the first valid instant after the gap. The stand-in's clock
	// fields differ from the query by the width of the gap.
	NextValidTime
)

// String returns the policy name.
func (p MatchPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case NextValidTime:
		return "nextValidTime"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// scanHorizonDays bounds the candidate scan. The proleptic Gregorian
// calendar repeats exactly every 400 years, 146097 days, and that cycle
// is a whole number of weeks, so a combination of date fields that does
// not occur within one cycle never occurs at all.
const scanHorizonDays = 146097

// NextOccurrence returns the earliest instant strictly after `after`
// whose fields match every entry set in match. The result is the start
// of the smallest matching period: unset fields finer than the finest
// set field are minimized, while unset coarser fields are left free.
// Matching {weekday: Monday} from a Monday morning therefore yields the
// start of the following Monday, never the instant passed in; matching
// {minute: 30} yields the next half-past of any hour.
//
// Unset fields are wildcards here, not defaults: a match with no Year
// entry matches any year. (DateFromFields is the operation that applies
// defaults.) When WeekOfYear is set, a Year entry names the week-based
// year, as in DateFromFields.
//
// A field value outside its domain (month 13, hour 24) can match no
// instant and fails with ErrInvalidFields. A combination of in-domain
// values that exists nowhere in the calendar (month 2 with day 31)
// fails with ErrNoMatch under either policy once the bounded search
// horizon, one full 400-year Gregorian cycle, is exhausted. A match
// that pins Year is searched within that year alone, however far
// ahead; a pinned year wholly in the past fails with ErrNoMatch at
// once. The policies differ only on wall-clock readings skipped by a
// zone transition: Strict passes over them, NextValidTime accepts the
// first valid instant after the gap in their stead.
func (c *Calendar) NextOccurrence(after Instant, match *Fields, policy MatchPolicy) (Instant, error) {
	if match == nil || match.Len() == 0 {
		return 0, invalidFieldsf("empty match: no fields set")
	}
	finest := Era
	for f, v := range match.m {
		if f < Era || f >= numFields {
			return 0, invalidFieldsf("unsupported field %s", f)
		}
		if err := checkMatchDomain(f, v); err != nil {
			return 0, err
		}
		if f > finest {
			finest = f
		}
	}
	if finest < HourOfDay {
		return c.nextDateMatch(after, match, finest)
	}
	return c.nextClockMatch(after, match, finest, policy)
}

// matchDomains gives the value domain of each field in a match. Year is
// absent: it is era-relative and only bounded below, by 1.
var matchDomains = [numFields][2]int{
	Era:                {BCE, CE},
	Quarter:            {1, 4},
	Month:              {1, 12},
	WeekOfYear:         {1, 53},
	WeekOfMonth:        {0, 6},
	Day:                {1, 31},
	Weekday:            {0, 6},
	HourOfDay:          {0, 23},
	MinuteOfHour:       {0, 59},
	SecondOfMinute:     {0, 59},
	NanosecondOfSecond: {0, 999999999},
}

func checkMatchDomain(f Field, v int) error {
	if f == Year {
		if v < 1 {
			return invalidFieldsf("year must be era-relative and >= 1, got %d", v)
		}
		return nil
	}
	if dom := matchDomains[f]; !inRange(v, dom[0], dom[1]) {
		return invalidFieldsf("%s must be %d..%d, got %d", f, dom[0], dom[1], v)
	}
	return nil
}

// scanBounds returns the inclusive civil-day range the scan may visit:
// from the day containing `after` through one full Gregorian cycle.
// When the match pins Year the named year bounds the scan by itself,
// with a week of slack each side for week fields that spill across
// January 1: the scan then jumps directly to the year, however far
// ahead, and a year wholly in the past yields an empty range.
func (c *Calendar) scanBounds(after Instant, match *Fields) (lo, hi int64) {
	y, m, d := after.Time(c.loc).Date()
	lo = civilDay(y, m, d)
	hi = lo + scanHorizonDays
	if year, ok := match.Get(Year); ok {
		py := prolepticYear(match.getOr(Era, CE), year)
		if ylo := civilDay(py, time.January, 1) - 7; ylo > lo {
			lo = ylo
		}
		hi = civilDay(py, time.December, 31) + 7
	}
	return lo, hi
}

// dayMatches reports whether the civil day cd satisfies every date
// field set in match. When WeekOfYear is set, Era and Year compare
// against the week-based year of cd rather than its calendar year.
func (c *Calendar) dayMatches(cd int64, match *Fields) bool {
	y, m, d := civilToDate(cd)

	yearFor := y
	if v, ok := match.Get(WeekOfYear); ok {
		week, wy := c.weekOfYearDate(y, m, d)
		if week != v {
			return false
		}
		yearFor = wy
	}
	era, year := eraYear(yearFor)
	if v, ok := match.Get(Era); ok && era != v {
		return false
	}
	if v, ok := match.Get(Year); ok && year != v {
		return false
	}
	if v, ok := match.Get(Quarter); ok && (int(m)-1)/3+1 != v {
		return false
	}
	if v, ok := match.Get(Month); ok && int(m) != v {
		return false
	}
	if v, ok := match.Get(WeekOfMonth); ok && c.weekOfMonthDate(y, m, d) != v {
		return false
	}
	if v, ok := match.Get(Day); ok && d != v {
		return false
	}
	if v, ok := match.Get(Weekday); ok && int(weekdayOfCivil(cd)) != v {
		return false
	}
	return true
}

// periodStart returns the first civil day of the g-period containing
// cd; nextPeriodStart the first day of the following period.
func (c *Calendar) periodStart(cd int64, g Field) int64 {
	y, m, _ := civilToDate(cd)
	switch g {
	case Year:
		return civilDay(y, time.January, 1)
	case Quarter:
		return civilDay(y, time.Month(3*((int(m)-1)/3)+1), 1)
	case Month:
		return civilDay(y, m, 1)
	case WeekOfYear, WeekOfMonth:
		return c.weekStartCivil(cd)
	default: // Day, Weekday
		return cd
	}
}

func (c *Calendar) nextPeriodStart(cd int64, g Field) int64 {
	y, m, _ := civilToDate(cd)
	switch g {
	case Year:
		return civilDay(y+1, time.January, 1)
	case Quarter:
		return civilDay(y, m+3, 1)
	case Month:
		return civilDay(y, m+1, 1)
	case WeekOfYear, WeekOfMonth:
		return cd + 7
	default:
		return cd + 1
	}
}

// nextDateMatch finds the next match when only date fields are set:
// candidates are the starts of the periods at the finest granularity.
func (c *Calendar) nextDateMatch(after Instant, match *Fields, finest Field) (Instant, error) {
	if finest == Era {
		// The one era boundary is the start of the common era; the
		// other era has no beginning to occur.
		if v, _ := match.Get(Era); v == CE {
			if t := FromTime(c.dayStartDate(1, time.January, 1)); t.After(after) {
				return t, nil
			}
		}
		return 0, errors.Mark(errors.Newf("no era boundary after %v", after), ErrNoMatch)
	}

	lo, hi := c.scanBounds(after, match)
	for cd := c.periodStart(lo, finest); cd <= hi; cd = c.nextPeriodStart(cd, finest) {
		if !c.dayMatches(cd, match) {
			continue
		}
		y, m, d := civilToDate(cd)
		st := c.dayStartDate(y, m, d)
		if ry, rm, rd := st.Date(); ry != y || rm != m || rd != d {
			continue // the zone skipped this day entirely
		}
		if t := FromTime(st); t.After(after) {
			return t, nil
		}
	}
	return 0, errors.Mark(errors.Newf("no occurrence of %v after %v", match, after), ErrNoMatch)
}

// clockValues returns the candidate values of a clock field: the set
// value alone; every value when the field is an unset wildcard coarser
// than the finest set field; or zero when it is finer and minimized.
func clockValues(match *Fields, f, finest Field, n int) []int {
	if v, ok := match.Get(f); ok {
		return []int{v}
	}
	if f > finest {
		return []int{0}
	}
	vals := make([]int, n)
	for i := range vals {
		vals[i] = i
	}
	return vals
}

// nextClockMatch finds the next match when clock fields participate:
// for each day satisfying the date fields, candidate readings are tried
// in wall order and mapped to instants, minding transition gaps and
// replays.
func (c *Calendar) nextClockMatch(after Instant, match *Fields, finest Field, policy MatchPolicy) (Instant, error) {
	hs := clockValues(match, HourOfDay, finest, 24)
	ms := clockValues(match, MinuteOfHour, finest, 60)
	ss := clockValues(match, SecondOfMinute, finest, 60)
	ns := match.getOr(NanosecondOfSecond, 0)

	lo, hi := c.scanBounds(after, match)
	for cd := lo; cd <= hi; cd++ {
		if !c.dayMatches(cd, match) {
			continue
		}
		y, m, d := civilToDate(cd)
		if t, ok := c.bestReadingOnDay(after, y, m, d, hs, ms, ss, ns, policy); ok {
			return t, nil
		}
	}
	return 0, errors.Mark(errors.Newf("no occurrence of %v after %v", match, after), ErrNoMatch)
}

// bestReadingOnDay returns the earliest instant strictly after `after`
// among the candidate readings of the civil day (y, m, d).
//
// A reading replayed by a backward transition yields its earliest
// instant first, but an instant-minimal result cannot simply take the
// first hit: when only a reading's replay lies beyond `after`, a later
// reading's first pass may still precede it. The scan therefore keeps
// the best instant found and stops once a reading's earliest instant
// can no longer improve on it.
func (c *Calendar) bestReadingOnDay(after Instant, y int, m time.Month, d int, hs, ms, ss []int, ns int, policy MatchPolicy) (Instant, bool) {
	var best Instant
	found := false
scan:
	for _, hh := range hs {
		for _, mi := range ms {
			for _, sec := range ss {
				insts := c.wallInstants(y, m, d, hh, mi, sec, ns)
				if len(insts) == 0 {
					if policy != NextValidTime {
						continue
					}
					// The reading was skipped by a transition; its
					// stand-in is the first instant after the gap, the
					// transition instant itself.
					st := time.Date(y, m, d, hh, mi, sec, ns, c.loc)
					trans := gapTransition(st, time.Date(y, m, d, hh, mi, sec, ns, time.UTC))
					insts = []time.Time{trans}
				}
				for _, tt := range insts {
					if t := FromTime(tt); t.After(after) && (!found || t.Before(best)) {
						best, found = t, true
					}
				}
				if found && !FromTime(insts[0]).Before(best) {
					break scan
				}
			}
		}
	}
	return best, found
}

// wallInstants returns the instants at which the wall-clock reading
// hh:mi:ss.ns occurs on the civil day (y, m, d), in increasing order:
// none when the reading falls inside a transition gap, one normally,
// and two when a backward transition replays it.
//
// The platform maps an ambiguous reading to one of its two instants
// without saying which, so the twin is recovered explicitly: it lies
// exactly one offset-change away, in the zone period before or after.
func (c *Calendar) wallInstants(y int, m time.Month, d, hh, mi, ss, ns int) []time.Time {
	tt := time.Date(y, m, d, hh, mi, ss, ns, c.loc)
	if !readsAs(tt, y, m, d, hh, mi, ss, ns) {
		return nil
	}
	insts := []time.Time{tt}
	zstart, zend := tt.ZoneBounds()
	_, off := tt.Zone()
	if !zend.IsZero() {
		if _, next := zend.Zone(); off > next {
			// Clocks fall back when this zone period ends; the reading
			// recurs in the next period.
			if twin := tt.Add(time.Duration(off-next) * time.Second); readsAs(twin, y, m, d, hh, mi, ss, ns) {
				insts = append(insts, twin)
			}
		}
	}
	if !zstart.IsZero() {
		if _, prev := zstart.Add(-time.Nanosecond).Zone(); prev > off {
			// Clocks fell back when this zone period began; the
			// reading already occurred in the previous period.
			if twin := tt.Add(time.Duration(off-prev) * time.Second); readsAs(twin, y, m, d, hh, mi, ss, ns) {
				insts = append([]time.Time{twin}, insts...)
			}
		}
	}
	return insts
}

// readsAs reports whether tt's wall-clock decomposition is exactly the
// given reading.
func readsAs(tt time.Time, y int, m time.Month, d, hh, mi, ss, ns int) bool {
	ry, rm, rd := tt.Date()
	rh, rmi, rs := tt.Clock()
	return ry == y && rm == m && rd == d &&
		rh == hh && rmi == mi && rs == ss && tt.Nanosecond() == ns
}
