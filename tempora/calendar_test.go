// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora_test

import (
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"go.tempora.net/tempora"
)

func TestNewCalendar(t *testing.T) {
	for i, test := range []struct {
		system, zone string
		firstDay     time.Weekday
		minDays      int
	}{
		{tempora.Gregorian, "UTC", time.Sunday, 1},
		{tempora.ISO8601, "UTC", time.Monday, 4},
		{tempora.Gregorian, "", time.Sunday, 1}, // empty zone means UTC
		{tempora.ISO8601, "America/New_York", time.Monday, 4},
	} {
		cal, err := tempora.NewCalendar(test.system, test.zone)
		if err != nil {
			t.Errorf("#%d: NewCalendar: %v", i, err)
			continue
		}
		if got := cal.System(); got != test.system {
			t.Errorf("#%d: System = %q, want %q", i, got, test.system)
		}
		if got := cal.FirstDayOfWeek(); got != test.firstDay {
			t.Errorf("#%d: FirstDayOfWeek = %v, want %v", i, got, test.firstDay)
		}
		if got := cal.MinDaysInFirstWeek(); got != test.minDays {
			t.Errorf("#%d: MinDaysInFirstWeek = %d, want %d", i, got, test.minDays)
		}
		// The default weekend comes from the world week data.
		want := []time.Weekday{time.Sunday, time.Saturday}
		if diff := cmp.Diff(want, cal.WeekendDays()); diff != "" {
			t.Errorf("#%d: WeekendDays mismatch (-want +got):\n%s", i, diff)
		}
	}

	cal := calendar(t, tempora.Gregorian, "UTC")
	if got, want := cal.String(), "gregorian[UTC]"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
	if got := cal.Location(); got != time.UTC {
		t.Errorf("Location = %v, want UTC", got)
	}
}

func TestNewCalendarUnknownSystem(t *testing.T) {
	for i, test := range []struct {
		system  string
		suggest string
	}{
		{"gregorain", "did you mean gregorian?"},
		{"ISO8601", "did you mean iso8601?"},
		{"julian", ""},
	} {
		_, err := tempora.NewCalendar(test.system, "UTC")
		if err == nil {
			t.Errorf("#%d: NewCalendar(%q) succeeded", i, test.system)
			continue
		}
		if !errors.Is(err, tempora.ErrUnknownCalendar) {
			t.Errorf("#%d: error %v does not match ErrUnknownCalendar", i, err)
		}
		if test.suggest != "" && !strings.Contains(err.Error(), test.suggest) {
			t.Errorf("#%d: error %q lacks suggestion %q", i, err, test.suggest)
		}
	}
}

func TestNewCalendarBadZone(t *testing.T) {
	if _, err := tempora.NewCalendar(tempora.Gregorian, "Nowhere/City"); err == nil {
		t.Error("NewCalendar with an unknown zone succeeded")
	}
}

func TestCalendarWithRegion(t *testing.T) {
	for i, test := range []struct {
		region   string
		firstDay time.Weekday
		minDays  int
		weekend  []time.Weekday
	}{
		{"US", time.Sunday, 1, []time.Weekday{time.Sunday, time.Saturday}},
		{"DE", time.Monday, 4, []time.Weekday{time.Sunday, time.Saturday}},
		{"IL", time.Sunday, 1, []time.Weekday{time.Friday, time.Saturday}},
		{"IN", time.Sunday, 1, []time.Weekday{time.Sunday}},
		{"EG", time.Saturday, 1, []time.Weekday{time.Friday, time.Saturday}},
		{"001", time.Monday, 1, []time.Weekday{time.Sunday, time.Saturday}},
	} {
		cal, err := tempora.NewCalendar(tempora.Gregorian, "UTC", tempora.WithRegion(test.region))
		if err != nil {
			t.Errorf("#%d: WithRegion(%q): %v", i, test.region, err)
			continue
		}
		if got := cal.FirstDayOfWeek(); got != test.firstDay {
			t.Errorf("#%d: %s: FirstDayOfWeek = %v, want %v", i, test.region, got, test.firstDay)
		}
		if got := cal.MinDaysInFirstWeek(); got != test.minDays {
			t.Errorf("#%d: %s: MinDaysInFirstWeek = %d, want %d", i, test.region, got, test.minDays)
		}
		if diff := cmp.Diff(test.weekend, cal.WeekendDays()); diff != "" {
			t.Errorf("#%d: %s: WeekendDays mismatch (-want +got):\n%s", i, test.region, diff)
		}
	}

	_, err := tempora.NewCalendar(tempora.Gregorian, "UTC", tempora.WithRegion("USA"))
	if !errors.Is(err, tempora.ErrUnknownRegion) {
		t.Errorf("WithRegion(USA): error %v does not match ErrUnknownRegion", err)
	}
	// "SA" and "US" are both one edit from "USA"; the first candidate
	// at the minimum distance wins, and the codes sort "SA" first.
	if err == nil || !strings.Contains(err.Error(), "did you mean SA?") {
		t.Errorf("WithRegion(USA): error %v lacks a suggestion", err)
	}
}

func TestCalendarWithWeekRules(t *testing.T) {
	cal, err := tempora.NewCalendar(tempora.Gregorian, "UTC",
		tempora.WithWeekRules(time.Wednesday, []time.Weekday{time.Thursday}, 3))
	if err != nil {
		t.Fatalf("WithWeekRules: %v", err)
	}
	if cal.FirstDayOfWeek() != time.Wednesday || cal.MinDaysInFirstWeek() != 3 {
		t.Errorf("week rules not applied: first=%v minDays=%d", cal.FirstDayOfWeek(), cal.MinDaysInFirstWeek())
	}
	if diff := cmp.Diff([]time.Weekday{time.Thursday}, cal.WeekendDays()); diff != "" {
		t.Errorf("WeekendDays mismatch (-want +got):\n%s", diff)
	}

	// Week rules outside their documented ranges and a nil location
	// are rejected.
	for i, opt := range []tempora.Option{
		tempora.WithWeekRules(time.Weekday(7), nil, 1),
		tempora.WithWeekRules(time.Monday, nil, 0),
		tempora.WithWeekRules(time.Monday, nil, 8),
		tempora.WithWeekRules(time.Monday, []time.Weekday{-1}, 1),
		tempora.WithLocation(nil),
	} {
		if _, err := tempora.NewCalendar(tempora.Gregorian, "UTC", opt); err == nil {
			t.Errorf("#%d: bad option accepted", i)
		}
	}
}

func TestCalendarWithLocation(t *testing.T) {
	ny := zone(t, "America/New_York")
	cal, err := tempora.NewCalendar(tempora.Gregorian, "UTC", tempora.WithLocation(ny))
	if err != nil {
		t.Fatalf("WithLocation: %v", err)
	}
	if cal.Location() != ny {
		t.Errorf("Location = %v, want %v", cal.Location(), ny)
	}
}

func TestFieldsFromInstant(t *testing.T) {
	cal := calendar(t, tempora.ISO8601, "UTC")
	// 2024-03-15 was a Friday in ISO week 11.
	inst := tempora.FromTime(time.Date(2024, time.March, 15, 14, 30, 45, 500000000, time.UTC))
	got := cal.FieldsFromInstant(inst)
	for i, test := range []struct {
		f    tempora.Field
		want int
	}{
		{tempora.Era, tempora.CE},
		{tempora.Year, 2024},
		{tempora.Quarter, 1},
		{tempora.Month, 3},
		{tempora.WeekOfYear, 11},
		{tempora.WeekOfMonth, 2},
		{tempora.Day, 15},
		{tempora.Weekday, int(time.Friday)},
		{tempora.HourOfDay, 14},
		{tempora.MinuteOfHour, 30},
		{tempora.SecondOfMinute, 45},
		{tempora.NanosecondOfSecond, 500000000},
	} {
		if v, ok := got.Get(test.f); !ok || v != test.want {
			t.Errorf("#%d: %s = %d (set=%t), want %d", i, test.f, v, ok, test.want)
		}
	}
	if got.Len() != 12 {
		t.Errorf("full decomposition has %d fields, want 12", got.Len())
	}

	// Requesting a subset decomposes only those fields.
	sub := cal.FieldsFromInstant(inst, tempora.Year, tempora.Weekday)
	if sub.Len() != 2 || !sub.Has(tempora.Year) || !sub.Has(tempora.Weekday) {
		t.Errorf("subset decomposition = %v", sub)
	}

	// The same instant decomposes differently under another zone.
	tokyo := calendar(t, tempora.ISO8601, "Asia/Tokyo")
	if v, _ := tokyo.FieldsFromInstant(inst, tempora.Day).Get(tempora.Day); v != 15 {
		t.Errorf("Tokyo day = %d, want 15", v)
	}
	if v, _ := tokyo.FieldsFromInstant(inst, tempora.HourOfDay).Get(tempora.HourOfDay); v != 23 {
		t.Errorf("Tokyo hour = %d, want 23", v)
	}
}

func TestFieldsFromInstantBadField(t *testing.T) {
	cal := calendar(t, tempora.ISO8601, "UTC")
	defer func() {
		if recover() == nil {
			t.Error("FieldsFromInstant(Field(99)) did not panic")
		}
	}()
	cal.FieldsFromInstant(tempora.Now(), tempora.Field(99))
}

func TestFieldsFromInstantEra(t *testing.T) {
	cal := calendar(t, tempora.ISO8601, "UTC")
	for i, test := range []struct {
		t         tempora.Instant
		era, year int
	}{
		{tempora.FromTime(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)), tempora.CE, 2024},
		{tempora.FromTime(time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)), tempora.CE, 1},
		{tempora.FromTime(time.Date(0, time.June, 1, 0, 0, 0, 0, time.UTC)), tempora.BCE, 1},
		{tempora.FromTime(time.Date(-43, time.March, 15, 0, 0, 0, 0, time.UTC)), tempora.BCE, 44},
	} {
		fs := cal.FieldsFromInstant(test.t, tempora.Era, tempora.Year)
		if e, _ := fs.Get(tempora.Era); e != test.era {
			t.Errorf("#%d: era = %d, want %d", i, e, test.era)
		}
		if y, _ := fs.Get(tempora.Year); y != test.year {
			t.Errorf("#%d: year = %d, want %d", i, y, test.year)
		}
	}
}

func TestDateFromFieldsDefaults(t *testing.T) {
	cal := calendar(t, tempora.Gregorian, "UTC")
	for i, test := range []struct {
		fs   *tempora.Fields
		want tempora.Instant
	}{
		// Unset fields default to the epoch year, month and day 1, and
		// a zero clock.
		{tempora.NewFields(), tempora.FromUnixSeconds(0)},
		{tempora.NewFields().Set(tempora.Year, 2024), utc(2024, time.January, 1, 0, 0, 0)},
		{tempora.NewFields().Set(tempora.Month, 6), utc(1970, time.June, 1, 0, 0, 0)},
		{tempora.NewFields().Set(tempora.HourOfDay, 12), utc(1970, time.January, 1, 12, 0, 0)},
		{tempora.NewFields().Set(tempora.Day, 25).Set(tempora.MinuteOfHour, 7), utc(1970, time.January, 25, 0, 7, 0)},
	} {
		got, err := cal.DateFromFields(test.fs)
		if err != nil {
			t.Errorf("#%d: DateFromFields(%v): %v", i, test.fs, err)
			continue
		}
		if got != test.want {
			t.Errorf("#%d: DateFromFields(%v) = %v, want %v", i, test.fs, got, test.want)
		}
	}

	// Defaults are applied in the calendar's zone, not UTC.
	ny := zone(t, "America/New_York")
	local := calendar(t, tempora.Gregorian, "America/New_York")
	got, err := local.DateFromFields(tempora.NewFields())
	if err != nil {
		t.Fatalf("DateFromFields: %v", err)
	}
	if want := at(ny, 1970, time.January, 1, 0, 0, 0); got != want {
		t.Errorf("zoned default = %v, want %v", got, want)
	}
}

func TestDateFromFieldsRoundTrip(t *testing.T) {
	cal := calendar(t, tempora.ISO8601, "UTC")
	for i, fs := range []*tempora.Fields{
		tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Month, 2).Set(tempora.Day, 29),
		tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Month, 3).Set(tempora.Day, 15).
			Set(tempora.HourOfDay, 14).Set(tempora.MinuteOfHour, 30).Set(tempora.SecondOfMinute, 45),
		tempora.NewFields().Set(tempora.Era, tempora.BCE).Set(tempora.Year, 44).
			Set(tempora.Month, 3).Set(tempora.Day, 15),
		tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Quarter, 3).
			Set(tempora.Month, 8).Set(tempora.Day, 1),
		tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Month, 3).Set(tempora.Day, 15).
			Set(tempora.Weekday, int(time.Friday)),
		tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Month, 3).Set(tempora.Day, 15).
			Set(tempora.WeekOfYear, 11).Set(tempora.WeekOfMonth, 2),
		tempora.NewFields().Set(tempora.SecondOfMinute, 1).Set(tempora.NanosecondOfSecond, 123456789),
	} {
		inst, err := cal.DateFromFields(fs)
		if err != nil {
			t.Errorf("#%d: DateFromFields(%v): %v", i, fs, err)
			continue
		}
		got := cal.FieldsFromInstant(inst)
		fs.Each(func(f tempora.Field, want int) {
			if v, ok := got.Get(f); !ok || v != want {
				t.Errorf("#%d: round trip of %s: got %d, want %d", i, f, v, want)
			}
		})
	}
}

func TestDateFromFieldsInvalid(t *testing.T) {
	cal := calendar(t, tempora.ISO8601, "UTC")
	ymd := func(y, m, d int) *tempora.Fields {
		return tempora.NewFields().Set(tempora.Year, y).Set(tempora.Month, m).Set(tempora.Day, d)
	}
	for i, fs := range []*tempora.Fields{
		tempora.NewFields().Set(tempora.Month, 0),
		tempora.NewFields().Set(tempora.Month, 13),
		tempora.NewFields().Set(tempora.Day, 0),
		tempora.NewFields().Set(tempora.Day, 32),
		ymd(2024, 4, 31), // April has 30 days
		ymd(2023, 2, 29), // not a leap year
		ymd(2024, 2, 30),
		tempora.NewFields().Set(tempora.HourOfDay, -1),
		tempora.NewFields().Set(tempora.HourOfDay, 24),
		tempora.NewFields().Set(tempora.MinuteOfHour, 60),
		tempora.NewFields().Set(tempora.SecondOfMinute, 60),
		tempora.NewFields().Set(tempora.NanosecondOfSecond, -1),
		tempora.NewFields().Set(tempora.NanosecondOfSecond, 1000000000),
		tempora.NewFields().Set(tempora.Year, 0), // years are era-relative, >= 1
		tempora.NewFields().Set(tempora.Year, -5),
		tempora.NewFields().Set(tempora.Era, 2),
		ymd(2024, 3, 15).Set(tempora.Weekday, 7),
		// Redundant fields must agree with the date. 2024-03-15 was a
		// Friday in ISO week 11, week 2 of March; August is in Q3.
		ymd(2024, 3, 15).Set(tempora.Weekday, int(time.Thursday)),
		ymd(2024, 8, 1).Set(tempora.Quarter, 1),
		ymd(2024, 3, 15).Set(tempora.WeekOfYear, 10),
		ymd(2024, 3, 15).Set(tempora.WeekOfMonth, 1),
		// 2021 has 52 ISO weeks.
		tempora.NewFields().Set(tempora.Year, 2021).Set(tempora.WeekOfYear, 53),
		tempora.NewFields().Set(tempora.Year, 2020).Set(tempora.WeekOfYear, 1).Set(tempora.Weekday, 9),
		tempora.NewFields().Set(tempora.Field(99), 1),
	} {
		_, err := cal.DateFromFields(fs)
		if err == nil {
			t.Errorf("#%d: DateFromFields(%v) succeeded", i, fs)
			continue
		}
		if !errors.Is(err, tempora.ErrInvalidFields) {
			t.Errorf("#%d: error %v does not match ErrInvalidFields", i, err)
		}
	}
}

func TestDateFromFieldsFebruary(t *testing.T) {
	// Day 31 of February denotes no date in any year; there is no year
	// in which clamping or rollover would excuse it.
	cal := calendar(t, tempora.Gregorian, "UTC")
	for year := 1890; year <= 2110; year++ {
		fs := tempora.NewFields().Set(tempora.Year, year).Set(tempora.Month, 2).Set(tempora.Day, 31)
		if _, err := cal.DateFromFields(fs); !errors.Is(err, tempora.ErrInvalidFields) {
			t.Errorf("February 31 of %d: err = %v, want ErrInvalidFields", year, err)
		}

		leap := year%4 == 0 && (year%100 != 0 || year%400 == 0)
		fs = tempora.NewFields().Set(tempora.Year, year).Set(tempora.Month, 2).Set(tempora.Day, 29)
		_, err := cal.DateFromFields(fs)
		if leap && err != nil {
			t.Errorf("February 29 of leap year %d: %v", year, err)
		}
		if !leap && !errors.Is(err, tempora.ErrInvalidFields) {
			t.Errorf("February 29 of %d: err = %v, want ErrInvalidFields", year, err)
		}
	}
}

func TestDateFromFieldsWeekDriven(t *testing.T) {
	iso := calendar(t, tempora.ISO8601, "UTC")
	greg := calendar(t, tempora.Gregorian, "UTC")
	for i, test := range []struct {
		cal  *tempora.Calendar
		fs   *tempora.Fields
		want tempora.Instant
	}{
		// In week-driven dates Year names the week-based year; the
		// resulting calendar date may fall in the adjacent year.
		{
			iso,
			tempora.NewFields().Set(tempora.Year, 2020).Set(tempora.WeekOfYear, 53).Set(tempora.Weekday, int(time.Monday)),
			utc(2020, time.December, 28, 0, 0, 0),
		},
		{
			iso,
			tempora.NewFields().Set(tempora.Year, 2020).Set(tempora.WeekOfYear, 53).Set(tempora.Weekday, int(time.Friday)),
			utc(2021, time.January, 1, 0, 0, 0),
		},
		{
			iso,
			tempora.NewFields().Set(tempora.Year, 2020).Set(tempora.WeekOfYear, 53).Set(tempora.Weekday, int(time.Sunday)),
			utc(2021, time.January, 3, 0, 0, 0),
		},
		// Weekday defaults to the calendar's first day of the week.
		{
			iso,
			tempora.NewFields().Set(tempora.Year, 2021).Set(tempora.WeekOfYear, 1),
			utc(2021, time.January, 4, 0, 0, 0),
		},
		{
			iso,
			tempora.NewFields().Set(tempora.Year, 2026).Set(tempora.WeekOfYear, 1),
			utc(2025, time.December, 29, 0, 0, 0),
		},
		{
			greg,
			tempora.NewFields().Set(tempora.Year, 2021).Set(tempora.WeekOfYear, 1).Set(tempora.Weekday, int(time.Friday)),
			utc(2021, time.January, 1, 0, 0, 0),
		},
		// Clock fields still apply to a week-driven date.
		{
			iso,
			tempora.NewFields().Set(tempora.Year, 2021).Set(tempora.WeekOfYear, 1).Set(tempora.HourOfDay, 9),
			utc(2021, time.January, 4, 9, 0, 0),
		},
	} {
		got, err := test.cal.DateFromFields(test.fs)
		if err != nil {
			t.Errorf("#%d: DateFromFields(%v): %v", i, test.fs, err)
			continue
		}
		if got != test.want {
			t.Errorf("#%d: DateFromFields(%v) = %v, want %v", i, test.fs, got, test.want)
		}
	}
}

func TestDateFromFieldsZoneGap(t *testing.T) {
	// 2025-03-09 02:30 does not exist in New York; the date does, so the
	// reading resolves forward past the gap rather than failing.
	ny := zone(t, "America/New_York")
	cal := calendar(t, tempora.Gregorian, "America/New_York")
	fs := tempora.NewFields().
		Set(tempora.Year, 2025).Set(tempora.Month, 3).Set(tempora.Day, 9).
		Set(tempora.HourOfDay, 2).Set(tempora.MinuteOfHour, 30)
	got, err := cal.DateFromFields(fs)
	if err != nil {
		t.Fatalf("DateFromFields: %v", err)
	}
	if want := at(ny, 2025, time.March, 9, 3, 30, 0); got != want {
		t.Errorf("gap reading = %v, want %v", got, want)
	}
	if h, _ := cal.FieldsFromInstant(got, tempora.HourOfDay).Get(tempora.HourOfDay); h != 3 {
		t.Errorf("resolved hour = %d, want 3", h)
	}

	// Samoa skipped 2011-12-30 entirely; no reading on that date exists.
	apia := calendar(t, tempora.Gregorian, "Pacific/Apia")
	fs = tempora.NewFields().Set(tempora.Year, 2011).Set(tempora.Month, 12).Set(tempora.Day, 30)
	_, err = apia.DateFromFields(fs)
	if !errors.Is(err, tempora.ErrInvalidFields) {
		t.Errorf("skipped date: err = %v, want ErrInvalidFields", err)
	}
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("skipped date: err = %v, want mention of nonexistence", err)
	}
}

func TestWeekOfMonth(t *testing.T) {
	iso := calendar(t, tempora.ISO8601, "UTC")
	greg := calendar(t, tempora.Gregorian, "UTC")
	for i, test := range []struct {
		cal  *tempora.Calendar
		t    tempora.Instant
		want int
	}{
		// March 2024 begins on a Friday. Under ISO rules the leading
		// partial week is week 0; under Gregorian rules it is week 1.
		{iso, utc(2024, time.March, 1, 0, 0, 0), 0},
		{iso, utc(2024, time.March, 4, 0, 0, 0), 1},
		{iso, utc(2024, time.March, 15, 0, 0, 0), 2},
		{greg, utc(2024, time.March, 1, 0, 0, 0), 1},
		{greg, utc(2024, time.March, 3, 0, 0, 0), 2},
		{greg, utc(2024, time.March, 15, 0, 0, 0), 3},
	} {
		fs := test.cal.FieldsFromInstant(test.t, tempora.WeekOfMonth)
		if got, _ := fs.Get(tempora.WeekOfMonth); got != test.want {
			t.Errorf("#%d: weekOfMonth(%v) = %d, want %d", i, test.t, got, test.want)
		}
	}
}
