// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"go.tempora.net/tempora"
)

func TestFieldNames(t *testing.T) {
	for i, test := range []struct {
		f    tempora.Field
		want string
	}{
		{tempora.Era, "era"},
		{tempora.Year, "year"},
		{tempora.Quarter, "quarter"},
		{tempora.Month, "month"},
		{tempora.WeekOfYear, "weekOfYear"},
		{tempora.WeekOfMonth, "weekOfMonth"},
		{tempora.Day, "day"},
		{tempora.Weekday, "weekday"},
		{tempora.HourOfDay, "hour"},
		{tempora.MinuteOfHour, "minute"},
		{tempora.SecondOfMinute, "second"},
		{tempora.NanosecondOfSecond, "nanosecond"},
		{tempora.Field(99), "field(99)"},
	} {
		if got := test.f.String(); got != test.want {
			t.Errorf("#%d: String = %q, want %q", i, got, test.want)
		}
		if test.f == tempora.Field(99) {
			continue
		}
		f, err := tempora.FieldByName(test.want)
		if err != nil || f != test.f {
			t.Errorf("#%d: FieldByName(%q) = %v, %v; want %v", i, test.want, f, err, test.f)
		}
	}
}

func TestFieldByNameUnknown(t *testing.T) {
	for i, test := range []struct {
		name    string
		suggest string // wanted substring, "" for none
	}{
		{"weekOfYeer", "did you mean weekOfYear?"},
		{"year ", "did you mean year?"},
		{"Hour", "did you mean hour?"},
		{"zzzzz", ""},
	} {
		_, err := tempora.FieldByName(test.name)
		if err == nil {
			t.Errorf("#%d: FieldByName(%q) succeeded", i, test.name)
			continue
		}
		if !errors.Is(err, tempora.ErrInvalidFields) {
			t.Errorf("#%d: error %v does not match ErrInvalidFields", i, err)
		}
		if test.suggest != "" && !strings.Contains(err.Error(), test.suggest) {
			t.Errorf("#%d: error %q lacks suggestion %q", i, err, test.suggest)
		}
		if test.suggest == "" && strings.Contains(err.Error(), "did you mean") {
			t.Errorf("#%d: error %q has an unwanted suggestion", i, err)
		}
	}
}

func TestFieldsBuilder(t *testing.T) {
	fs := tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Month, 3)
	if got := fs.Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
	if v, ok := fs.Get(tempora.Year); !ok || v != 2024 {
		t.Errorf("Get(Year) = %d, %t; want 2024, true", v, ok)
	}
	if _, ok := fs.Get(tempora.Day); ok {
		t.Error("Get(Day) reports an unset field as set")
	}
	if !fs.Has(tempora.Month) || fs.Has(tempora.HourOfDay) {
		t.Errorf("Has(Month), Has(HourOfDay) = %t, %t; want true, false", fs.Has(tempora.Month), fs.Has(tempora.HourOfDay))
	}

	fs.Set(tempora.Year, 1999) // Set overwrites
	if v, _ := fs.Get(tempora.Year); v != 1999 {
		t.Errorf("after overwrite, Get(Year) = %d, want 1999", v)
	}

	fs.Clear(tempora.Month)
	if fs.Has(tempora.Month) || fs.Len() != 1 {
		t.Errorf("after Clear(Month): Has = %t, Len = %d", fs.Has(tempora.Month), fs.Len())
	}

	// The zero value is an empty set ready for use.
	var zero tempora.Fields
	if zero.Len() != 0 {
		t.Errorf("zero value Len = %d", zero.Len())
	}
	zero.Set(tempora.HourOfDay, 9)
	if v, _ := zero.Get(tempora.HourOfDay); v != 9 {
		t.Errorf("zero value after Set: Get(HourOfDay) = %d, want 9", v)
	}
}

func TestFieldsClone(t *testing.T) {
	fs := tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Day, 15)
	cl := fs.Clone()
	cl.Set(tempora.Year, 1)
	cl.Clear(tempora.Day)
	if v, _ := fs.Get(tempora.Year); v != 2024 || !fs.Has(tempora.Day) {
		t.Errorf("mutating a clone changed the original: %v", fs)
	}
}

func TestFieldsEachOrder(t *testing.T) {
	// Each yields fields largest unit first regardless of insertion
	// order.
	fs := tempora.NewFields().
		Set(tempora.SecondOfMinute, 6).
		Set(tempora.Year, 2024).
		Set(tempora.HourOfDay, 5).
		Set(tempora.Month, 3)
	var got []tempora.Field
	fs.Each(func(f tempora.Field, v int) { got = append(got, f) })
	want := []tempora.Field{tempora.Year, tempora.Month, tempora.HourOfDay, tempora.SecondOfMinute}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Each order mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsString(t *testing.T) {
	for i, test := range []struct {
		fs   *tempora.Fields
		want string
	}{
		{tempora.NewFields(), "{}"},
		{tempora.NewFields().Set(tempora.Month, 1).Set(tempora.Year, 2024), "{year: 2024, month: 1}"},
		{tempora.NewFields().Set(tempora.Weekday, 1), "{weekday: 1}"},
	} {
		if got := test.fs.String(); got != test.want {
			t.Errorf("#%d: String = %q, want %q", i, got, test.want)
		}
	}
}

func TestFieldsIsValid(t *testing.T) {
	cal := calendar(t, tempora.Gregorian, "UTC")
	for i, test := range []struct {
		fs   *tempora.Fields
		want bool
	}{
		{tempora.NewFields(), true}, // all defaults
		{tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Month, 2).Set(tempora.Day, 29), true},
		{tempora.NewFields().Set(tempora.Year, 2023).Set(tempora.Month, 2).Set(tempora.Day, 29), false},
		{tempora.NewFields().Set(tempora.Month, 13), false},
		{tempora.NewFields().Set(tempora.HourOfDay, 24), false},
	} {
		if got := test.fs.IsValid(cal); got != test.want {
			t.Errorf("#%d: IsValid(%v) = %t, want %t", i, test.fs, got, test.want)
		}
	}
}
