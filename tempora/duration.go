// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"fmt"
	"math"
	"time"
)

// Duration is a signed span of time in seconds. It is a distinct type
// from Instant so that points and spans cannot be confused: durations
// add to durations or to instants, instants subtract to durations.
//
// Duration arithmetic is pure and has no failure modes.
type Duration float64

// Common flat durations.
//
// A calendar day is not a fixed number of seconds, so there is no Day
// constant here; day arithmetic lives on Calendar.
const (
	Nanosecond  Duration = 1e-9
	Microsecond Duration = 1e-6
	Millisecond Duration = 1e-3
	Second      Duration = 1
	Minute      Duration = 60 * Second
	Hour        Duration = 60 * Minute
)

// Seconds, Minutes, and Hours construct flat durations from a count.
func Seconds(n float64) Duration { return Duration(n) }

// Minutes returns a span of n minutes.
func Minutes(n float64) Duration { return Duration(n) * Minute }

// Hours returns a span of n hours.
func Hours(n float64) Duration { return Duration(n) * Hour }

// FromStd converts a time.Duration.
func FromStd(d time.Duration) Duration { return Duration(d.Seconds()) }

// Seconds returns d as a float64 count of seconds.
func (d Duration) Seconds() float64 { return float64(d) }

// Add returns d+e.
func (d Duration) Add(e Duration) Duration { return d + e }

// Sub returns d-e.
func (d Duration) Sub(e Duration) Duration { return d - e }

// Neg returns -d.
func (d Duration) Neg() Duration { return -d }

// Scale returns d scaled by k.
func (d Duration) Scale(k float64) Duration { return Duration(float64(d) * k) }

// Abs returns the magnitude of d.
func (d Duration) Abs() Duration { return Duration(math.Abs(float64(d))) }

// Compare returns -1, 0, or +1 ordering d against e.
func (d Duration) Compare(e Duration) int { return cmpOrdered(d, e) }

// Std converts d to a time.Duration, saturating at the int64
// nanosecond limits (about ±292 years).
func (d Duration) Std() time.Duration {
	ns := float64(d) * 1e9
	switch {
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case ns <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(math.Round(ns))
}

// String formats d in time.Duration notation ("1h30m0s") when it fits
// in one; spans beyond the time.Duration range fall back to a count of
// seconds.
func (d Duration) String() string {
	ns := float64(d) * 1e9
	if ns > math.MinInt64 && ns < math.MaxInt64 {
		return d.Std().String()
	}
	return fmt.Sprintf("%gs", float64(d))
}
