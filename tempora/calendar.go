// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"

	"go.tempora.net/internal/spell"
	"go.tempora.net/internal/weekdata"
)

// Calendar system identifiers accepted by NewCalendar. Both systems
// use proleptic Gregorian dates (the calendar extends backward without
// the historical Julian cutover, so no dates are skipped); they differ
// in their default week rules.
const (
	// Gregorian uses common-era defaults: weeks start on Sunday and
	// week 1 is the week containing January 1.
	Gregorian = "gregorian"

	// ISO8601 uses ISO 8601 week rules: weeks start on Monday and
	// week 1 is the first week with at least four days in the new
	// year.
	ISO8601 = "iso8601"
)

type systemRules struct {
	firstDay time.Weekday
	minDays  int
}

var systems = map[string]systemRules{
	Gregorian: {time.Sunday, 1},
	ISO8601:   {time.Monday, 4},
}

// epochYear is the calendar epoch year, the year of the Unix epoch. It
// is the default Year for DateFromFields when unset.
const epochYear = 1970

// Calendar converts between Instants and Fields under a calendar
// system, a time zone, and week rules. It is deterministic: the same
// (system, zone, options) yields a calendar with identical behavior,
// and the same inputs always yield the same outputs.
//
// A Calendar is immutable after construction and safe for concurrent
// use. The process-wide "current" calendar is obtained through Current
// as a fresh snapshot; see SetCurrent.
type Calendar struct {
	system   string
	loc      *time.Location
	firstDay time.Weekday
	minDays  int
	weekend  uint8 // bit i set when time.Weekday(i) is a weekend day
}

func weekendBit(d time.Weekday) uint8 { return 1 << uint(d) }

func weekendMask(days []time.Weekday) (uint8, error) {
	var m uint8
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return 0, errors.Newf("bad weekday %d", int(d))
		}
		m |= weekendBit(d)
	}
	return m, nil
}

// An Option configures a Calendar under construction.
type Option func(*Calendar) error

// WithWeekRules overrides the calendar's week rules: the first day of
// the week, the weekend days, and the minimal number of days a week
// must have in the new year (or month) to count as its week 1 (1..7).
func WithWeekRules(first time.Weekday, weekend []time.Weekday, minDays int) Option {
	return func(c *Calendar) error {
		if first < time.Sunday || first > time.Saturday {
			return errors.Newf("bad first day of week %d", int(first))
		}
		if minDays < 1 || minDays > 7 {
			return errors.Newf("minimal days in first week must be 1..7, got %d", minDays)
		}
		mask, err := weekendMask(weekend)
		if err != nil {
			return err
		}
		c.firstDay, c.minDays, c.weekend = first, minDays, mask
		return nil
	}
}

// WithRegion applies the week rules of a region (an ISO 3166-1 alpha-2
// code, or "001" for the world default) from the embedded week-rule
// table. Unknown codes fail with an error matching ErrUnknownRegion.
func WithRegion(code string) Option {
	return func(c *Calendar) error {
		r, ok := weekdata.ForRegion(code)
		if !ok {
			msg := fmt.Sprintf("unknown region %q", code)
			if alt := spell.Nearest(code, weekdata.Regions()); alt != "" {
				msg += fmt.Sprintf(" (did you mean %s?)", alt)
			}
			return errors.Mark(errors.New(msg), ErrUnknownRegion)
		}
		mask, err := weekendMask(r.Weekend)
		if err != nil {
			return err
		}
		c.firstDay, c.minDays, c.weekend = r.FirstDay, r.MinDaysInFirstWeek, mask
		return nil
	}
}

// WithLocation overrides the calendar's time zone with an existing
// *time.Location, bypassing the IANA name lookup of NewCalendar.
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) error {
		if loc == nil {
			return errors.New("nil location")
		}
		c.loc = loc
		return nil
	}
}

// NewCalendar returns a calendar for the given system (Gregorian or
// ISO8601) in the named IANA time zone ("America/New_York", "UTC",
// "Local"; the empty string means UTC). Weekend days default to the
// embedded world week data and, like the other week rules, can be
// overridden by options.
func NewCalendar(system, zone string, opts ...Option) (*Calendar, error) {
	sys, ok := systems[system]
	if !ok {
		names := make([]string, 0, len(systems))
		for name := range systems {
			names = append(names, name)
		}
		sort.Strings(names)
		msg := fmt.Sprintf("unknown calendar system %q", system)
		if alt := spell.Nearest(system, names); alt != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", alt)
		}
		return nil, errors.Mark(errors.New(msg), ErrUnknownCalendar)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading time zone %q", zone)
	}
	mask, err := weekendMask(weekdata.Default().Weekend)
	if err != nil {
		return nil, err
	}
	c := &Calendar{
		system:   system,
		loc:      loc,
		firstDay: sys.firstDay,
		minDays:  sys.minDays,
		weekend:  mask,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.Wrap(err, "configuring calendar")
		}
	}
	return c, nil
}

// System returns the calendar system identifier.
func (c *Calendar) System() string { return c.system }

// Location returns the calendar's time zone.
func (c *Calendar) Location() *time.Location { return c.loc }

// FirstDayOfWeek returns the first day of the week.
func (c *Calendar) FirstDayOfWeek() time.Weekday { return c.firstDay }

// MinDaysInFirstWeek returns the minimal number of days a week must
// have in the new year (or month) to count as its week 1.
func (c *Calendar) MinDaysInFirstWeek() int { return c.minDays }

// WeekendDays returns the calendar's weekend days in Sunday..Saturday
// order.
func (c *Calendar) WeekendDays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if c.weekend&weekendBit(d) != 0 {
			days = append(days, d)
		}
	}
	return days
}

// String formats the calendar as system[zone].
func (c *Calendar) String() string { return fmt.Sprintf("%s[%s]", c.system, c.loc) }

// FieldsFromInstant decomposes t under the calendar into the requested
// fields, or into all fields when none are named. Every instant
// decomposes; the only failure mode is a panic on a Field outside the
// declared range.
//
// Year is era-relative: the instant of 44 BCE decomposes to {era: 0,
// year: 44}. WeekOfYear is numbered under the calendar's week rules
// and near January 1 may belong to the previous or next year's week
// cycle. WeekOfMonth is 0 for days in a leading partial week shorter
// than the minimal week length.
func (c *Calendar) FieldsFromInstant(t Instant, requested ...Field) *Fields {
	if len(requested) == 0 {
		requested = allFields()
	}
	tt := t.Time(c.loc)
	fs := NewFields()
	for _, f := range requested {
		switch f {
		case Era:
			era, _ := eraYear(tt.Year())
			fs.Set(Era, era)
		case Year:
			_, y := eraYear(tt.Year())
			fs.Set(Year, y)
		case Quarter:
			fs.Set(Quarter, (int(tt.Month())-1)/3+1)
		case Month:
			fs.Set(Month, int(tt.Month()))
		case WeekOfYear:
			w, _ := c.weekOfYearDate(tt.Date())
			fs.Set(WeekOfYear, w)
		case WeekOfMonth:
			fs.Set(WeekOfMonth, c.weekOfMonthDate(tt.Date()))
		case Day:
			fs.Set(Day, tt.Day())
		case Weekday:
			fs.Set(Weekday, int(tt.Weekday()))
		case HourOfDay:
			fs.Set(HourOfDay, tt.Hour())
		case MinuteOfHour:
			fs.Set(MinuteOfHour, tt.Minute())
		case SecondOfMinute:
			fs.Set(SecondOfMinute, tt.Second())
		case NanosecondOfSecond:
			fs.Set(NanosecondOfSecond, tt.Nanosecond())
		default:
			panic("tempora: invalid field " + f.String())
		}
	}
	return fs
}

func allFields() []Field {
	fields := make([]Field, numFields)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// DateFromFields maps a field set to the instant it denotes under the
// calendar, or fails with an error matching ErrInvalidFields when the
// combination denotes no date.
//
// Unset fields default as follows: Era to CE, Year to the calendar
// epoch year (the year of the Unix epoch, 1970), Month and Day to 1,
// and the clock fields to 0. Year is era-relative and must be at least
// 1; dates before year 1 set {era: BCE}.
//
// When Month and Day are both absent but WeekOfYear is set, the date
// is derived from week fields instead: Year is then the week-based
// year and Weekday defaults to the calendar's first day of the week.
//
// Redundant fields set alongside the driving ones (Weekday, Quarter,
// WeekOfYear, WeekOfMonth next to a year/month/day date) must agree
// with the derived date.
//
// A wall-clock reading that falls inside a daylight-saving gap does
// not invalidate an existing date: it resolves forward by the
// transition delta. NextOccurrence's Strict policy is the operation
// that refuses such readings.
func (c *Calendar) DateFromFields(fs *Fields) (Instant, error) {
	for f := range fs.m {
		if f < Era || f >= numFields {
			return 0, invalidFieldsf("unsupported field %s", f)
		}
	}

	era := fs.getOr(Era, CE)
	if era != BCE && era != CE {
		return 0, invalidFieldsf("era must be %d (BCE) or %d (CE), got %d", BCE, CE, era)
	}
	year := fs.getOr(Year, epochYear)
	if year < 1 {
		return 0, invalidFieldsf("year must be era-relative and >= 1, got %d (use era %d for dates before year 1)", year, BCE)
	}
	py := prolepticYear(era, year)

	hour := fs.getOr(HourOfDay, 0)
	if !inRange(hour, 0, 23) {
		return 0, invalidFieldsf("hour must be 0..23, got %d", hour)
	}
	minute := fs.getOr(MinuteOfHour, 0)
	if !inRange(minute, 0, 59) {
		return 0, invalidFieldsf("minute must be 0..59, got %d", minute)
	}
	sec := fs.getOr(SecondOfMinute, 0)
	if !inRange(sec, 0, 59) {
		return 0, invalidFieldsf("second must be 0..59, got %d", sec)
	}
	nsec := fs.getOr(NanosecondOfSecond, 0)
	if !inRange(nsec, 0, 999999999) {
		return 0, invalidFieldsf("nanosecond must be 0..999999999, got %d", nsec)
	}

	var (
		y int
		m time.Month
		d int
	)
	weekDriven := !fs.Has(Month) && !fs.Has(Day) && fs.Has(WeekOfYear)
	if weekDriven {
		week, _ := fs.Get(WeekOfYear)
		if weeks := c.weeksInYear(py); !inRange(week, 1, weeks) {
			return 0, invalidFieldsf("weekOfYear must be 1..%d for year %d, got %d", weeks, year, week)
		}
		wd := fs.getOr(Weekday, int(c.firstDay))
		if !inRange(wd, 0, 6) {
			return 0, invalidFieldsf("weekday must be 0 (Sunday) .. 6 (Saturday), got %d", wd)
		}
		cd := c.week1Civil(py) + int64(week-1)*7 + int64(floorMod(wd-int(c.firstDay), 7))
		y, m, d = civilToDate(cd)
	} else {
		m = time.Month(fs.getOr(Month, 1))
		if !inRange(int(m), 1, 12) {
			return 0, invalidFieldsf("month must be 1..12, got %d", int(m))
		}
		d = fs.getOr(Day, 1)
		if last := daysInMonth(py, m); !inRange(d, 1, last) {
			return 0, invalidFieldsf("day must be 1..%d in %s of year %d, got %d", last, m, year, d)
		}
		y = py
	}

	tt := c.dateInZone(y, m, d, hour, minute, sec, nsec)
	// A zone gap may shift the clock; it must never shift the date.
	if ry, rm, rd := tt.Date(); ry != y || rm != m || rd != d {
		return 0, invalidFieldsf("%04d-%02d-%02d %02d:%02d does not exist in %v", y, int(m), d, hour, minute, c.loc)
	}

	if err := c.checkRedundant(fs, tt, weekDriven); err != nil {
		return 0, err
	}
	return FromTime(tt), nil
}

// checkRedundant verifies that fields which did not drive the date
// agree with it.
func (c *Calendar) checkRedundant(fs *Fields, tt time.Time, weekDriven bool) error {
	date := tt.Format("2006-01-02")
	if v, ok := fs.Get(Weekday); ok && !weekDriven {
		if got := int(tt.Weekday()); got != v {
			return invalidFieldsf("weekday %d contradicts %s (a %s)", v, date, tt.Weekday())
		}
	}
	if v, ok := fs.Get(Quarter); ok {
		if got := (int(tt.Month())-1)/3 + 1; got != v {
			return invalidFieldsf("quarter %d contradicts month %s (quarter %d)", v, tt.Month(), got)
		}
	}
	if v, ok := fs.Get(WeekOfYear); ok && !weekDriven {
		if got, _ := c.weekOfYearDate(tt.Date()); got != v {
			return invalidFieldsf("weekOfYear %d contradicts %s (week %d)", v, date, got)
		}
	}
	if v, ok := fs.Get(WeekOfMonth); ok {
		if got := c.weekOfMonthDate(tt.Date()); got != v {
			return invalidFieldsf("weekOfMonth %d contradicts %s (week %d)", v, date, got)
		}
	}
	return nil
}

// dateInZone maps a wall-clock reading to an instant in the calendar's
// zone. A reading inside a daylight-saving gap resolves forward by the
// transition delta: 02:30 in a 02:00-03:00 spring-forward gap lands on
// 03:30. (time.Date resolves the same reading backward, to 01:30 in
// the pre-transition offset.)
func (c *Calendar) dateInZone(y int, m time.Month, d, hh, mi, ss, ns int) time.Time {
	tt := time.Date(y, m, d, hh, mi, ss, ns, c.loc)
	if readsAs(tt, y, m, d, hh, mi, ss, ns) {
		return tt
	}
	want := time.Date(y, m, d, hh, mi, ss, ns, time.UTC)
	trans := gapTransition(tt, want)
	_, before := trans.Add(-time.Nanosecond).Zone()
	return want.Add(-time.Duration(before) * time.Second).In(c.loc)
}

// gapTransition returns the transition instant of the gap that
// swallowed a wall reading, given the instant tt that time.Date
// resolved it to and the reading itself as a UTC wall value. tt sits
// in the zone period on whichever side of the gap resolution landed,
// so the matching ZoneBounds endpoint is the transition.
func gapTransition(tt, want time.Time) time.Time {
	if wallUTC(tt).Before(want) {
		_, end := tt.ZoneBounds()
		return end
	}
	start, _ := tt.ZoneBounds()
	return start
}

// wallUTC rereads tt's wall clock as a UTC instant, making wall
// readings comparable across zones.
func wallUTC(tt time.Time) time.Time {
	y, m, d := tt.Date()
	hh, mi, ss := tt.Clock()
	return time.Date(y, m, d, hh, mi, ss, tt.Nanosecond(), time.UTC)
}

// eraYear maps a proleptic year to (era, era-relative year): year 0 is
// 1 BCE, year -1 is 2 BCE.
func eraYear(proleptic int) (era, year int) {
	if proleptic >= 1 {
		return CE, proleptic
	}
	return BCE, 1 - proleptic
}

// prolepticYear is the inverse of eraYear.
func prolepticYear(era, year int) int {
	if era == BCE {
		return 1 - year
	}
	return year
}

// daysInMonth returns the length of a month: day 0 of the following
// month is this month's last day.
func daysInMonth(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Civil-day helpers. Week and date computations run in a pure date
// domain, days since the epoch in a zone-free calendar, so that zone
// transitions cannot disturb them; results are mapped back through the
// calendar's zone only at the edges.

// civilDay returns the count of whole days between the Unix epoch and
// the given proleptic Gregorian date (negative before 1970).
func civilDay(y int, m time.Month, d int) int64 {
	return floorDiv(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix(), 86400)
}

func civilToDate(cd int64) (int, time.Month, int) {
	return time.Unix(cd*86400, 0).UTC().Date()
}

// weekdayOfCivil: civil day 0, 1970-01-01, was a Thursday.
func weekdayOfCivil(cd int64) time.Weekday {
	return time.Weekday(floorMod(cd+4, 7))
}

// weekStartCivil returns the first day (per the calendar's first day
// of week) of the week containing civil day cd.
func (c *Calendar) weekStartCivil(cd int64) int64 {
	return cd - int64(floorMod(int(weekdayOfCivil(cd))-int(c.firstDay), 7))
}

// week1Civil returns the civil day starting week 1 of the given
// (proleptic) week-based year.
func (c *Calendar) week1Civil(year int) int64 {
	jan1 := civilDay(year, time.January, 1)
	start := c.weekStartCivil(jan1)
	if int(7-(jan1-start)) < c.minDays {
		start += 7
	}
	return start
}

// weeksInYear returns 52 or 53, the number of weeks in the week-based
// year.
func (c *Calendar) weeksInYear(year int) int {
	return int((c.week1Civil(year+1) - c.week1Civil(year)) / 7)
}

// weekOfYearDate returns the week number of a date and the week-based
// year it belongs to.
func (c *Calendar) weekOfYearDate(y int, m time.Month, d int) (week, weekYear int) {
	cd := civilDay(y, m, d)
	wy := y
	w1 := c.week1Civil(wy)
	if cd < w1 {
		wy--
		w1 = c.week1Civil(wy)
	} else if next := c.week1Civil(wy + 1); cd >= next {
		wy++
		w1 = next
	}
	return int((cd-w1)/7) + 1, wy
}

// weekOfMonthDate numbers the weeks of a month the way weekOfYearDate
// numbers the weeks of a year. Days in a leading partial week shorter
// than the minimal week length belong to week 0.
func (c *Calendar) weekOfMonthDate(y int, m time.Month, d int) int {
	first := civilDay(y, m, 1)
	offset := first - c.weekStartCivil(first)
	week := (offset + int64(d) - 1) / 7
	if int(7-offset) >= c.minDays {
		week++
	}
	return int(week)
}

func floorDiv[T constraints.Integer](x, y T) T {
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

func floorMod[T constraints.Integer](x, y T) T {
	return x - floorDiv(x, y)*y
}

func inRange[T constraints.Ordered](v, lo, hi T) bool {
	return lo <= v && v <= hi
}
