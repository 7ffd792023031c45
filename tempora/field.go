// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"go.tempora.net/internal/spell"
)

// A Field names one calendar unit of an instant's decomposition.
type Field int

// Calendar fields, largest unit first. The Weekday field carries
// time.Weekday numbering (0 = Sunday .. 6 = Saturday); Era carries
// BCE or CE. The clock fields name their containing unit (HourOfDay,
// MinuteOfHour, ...), leaving the bare unit names to the Duration
// constants; their canonical field names are still "hour", "minute",
// "second", and "nanosecond".
const (
	Era Field = iota
	Year
	Quarter
	Month
	WeekOfYear
	WeekOfMonth
	Day
	Weekday
	HourOfDay
	MinuteOfHour
	SecondOfMinute
	NanosecondOfSecond

	numFields
)

// Values of the Era field. Years are era-relative: the year before
// 1 CE is {era: BCE, year: 1}.
const (
	BCE = 0
	CE  = 1
)

var fieldNames = [...]string{
	Era:                "era",
	Year:               "year",
	Quarter:            "quarter",
	Month:              "month",
	WeekOfYear:         "weekOfYear",
	WeekOfMonth:        "weekOfMonth",
	Day:                "day",
	Weekday:            "weekday",
	HourOfDay:          "hour",
	MinuteOfHour:       "minute",
	SecondOfMinute:     "second",
	NanosecondOfSecond: "nanosecond",
}

// String returns the canonical field name.
func (f Field) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// FieldByName maps a canonical field name ("weekOfYear") back to its
// Field. Unknown names fail with an error matching ErrInvalidFields,
// with a spelling suggestion when one is plausible.
func FieldByName(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return Field(f), nil
		}
	}
	msg := fmt.Sprintf("unknown field %q", name)
	if alt := spell.Nearest(name, fieldNames[:]); alt != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", alt)
	}
	return 0, errors.Mark(errors.New(msg), ErrInvalidFields)
}

// Fields is a sparse, mutable set of calendar field values: the
// builder consumed by Calendar operations.
//
// A Fields value carries no validity of its own. It may describe an
// impossible date (day 31 in February) until a Calendar checks it;
// validity is always calendar-relative. The zero value is an empty set
// ready for use. Fields is the one mutable type in this package and is
// not safe for concurrent mutation.
type Fields struct {
	m map[Field]int
}

// NewFields returns an empty field set.
func NewFields() *Fields { return new(Fields) }

// Set records a value for f and returns the receiver, for chaining:
//
//	tempora.NewFields().Set(tempora.Year, 2024).Set(tempora.Month, 1)
func (fs *Fields) Set(f Field, v int) *Fields {
	if fs.m == nil {
		fs.m = make(map[Field]int)
	}
	fs.m[f] = v
	return fs
}

// Get returns the value of f and whether it is set.
func (fs *Fields) Get(f Field) (int, bool) {
	v, ok := fs.m[f]
	return v, ok
}

// getOr returns the value of f, or def when unset.
func (fs *Fields) getOr(f Field, def int) int {
	if v, ok := fs.m[f]; ok {
		return v
	}
	return def
}

// Has reports whether f is set.
func (fs *Fields) Has(f Field) bool {
	_, ok := fs.m[f]
	return ok
}

// Clear removes f and returns the receiver.
func (fs *Fields) Clear(f Field) *Fields {
	delete(fs.m, f)
	return fs
}

// Len returns the number of set fields.
func (fs *Fields) Len() int { return len(fs.m) }

// Each calls fn for every set field, largest unit first.
func (fs *Fields) Each(fn func(Field, int)) {
	for f := Era; f < numFields; f++ {
		if v, ok := fs.m[f]; ok {
			fn(f, v)
		}
	}
}

// Clone returns an independent copy of fs.
func (fs *Fields) Clone() *Fields {
	out := NewFields()
	for f, v := range fs.m {
		out.Set(f, v)
	}
	return out
}

// IsValid reports whether cal maps fs to an instant. The check is
// delegated entirely to the calendar; a Fields value alone rejects
// nothing.
func (fs *Fields) IsValid(cal *Calendar) bool {
	_, err := cal.DateFromFields(fs)
	return err == nil
}

// String formats the set fields in field order, for debugging.
func (fs *Fields) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	fs.Each(func(f Field, v int) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %d", f, v)
	})
	b.WriteByte('}')
	return b.String()
}
