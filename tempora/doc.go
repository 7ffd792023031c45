// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tempora provides calendar-aware date and time arithmetic.
//
// The package is built from a small set of immutable value types:
//
//   - Instant, an absolute point in time: a floating-point count of
//     seconds since the Unix epoch, independent of calendar and zone.
//   - Duration, a signed span of time in seconds.
//   - Fields, a sparse, mutable set of calendar field values (year,
//     month, day, ...) with no meaning of its own.
//   - Interval, a non-negative span anchored at a starting Instant.
//   - Calendar, the authority that converts between Instant and
//     Fields, validates field combinations, and performs field-aware
//     arithmetic.
//
// Conversions, calendar-unit addition, and granularity comparison all
// go through a Calendar, because only a calendar knows month lengths,
// leap years, week rules, and time zone transitions. Adding one month
// is not the same as adding thirty days, a day across a
// daylight-saving transition is not 86400 seconds, and the first
// moment of a day is not always midnight.
//
// A Fields value may describe an impossible date (day 31 in February);
// it is the Calendar that rejects it, with an error matching
// ErrInvalidFields. All such failures are expected, recoverable
// outcomes that callers handle locally.
//
// The process-wide now-source and "current calendar" settings are read
// through guarded accessors (Now, Current) returning fresh snapshots,
// and are replaceable for tests (SetNowFunc, SetCurrent).
//
// Physical quantities (lengths, masses, temperatures, ...) live in the
// companion package go.tempora.net/unit.
package tempora // import "go.tempora.net/tempora"
