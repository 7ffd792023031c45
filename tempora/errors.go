// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import "github.com/cockroachdb/errors"

// Sentinel errors. Failures returned by this package carry details of
// the offending input and are matched with errors.Is against one of
// these.
var (
	// ErrInvalidFields reports a field combination that denotes no
	// instant under the calendar consulted: values out of range,
	// day 31 in a 30-day month, or redundant fields that contradict
	// the derived date.
	ErrInvalidFields = errors.New("invalid calendar fields")

	// ErrNoMatch reports that NextOccurrence found no matching instant
	// within its search horizon.
	ErrNoMatch = errors.New("no matching occurrence")

	// ErrUnknownCalendar reports a calendar system identifier this
	// package does not implement.
	ErrUnknownCalendar = errors.New("unknown calendar system")

	// ErrUnknownRegion reports a region code absent from the week-rule
	// table.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrInvalidInterval reports interval construction with a negative
	// duration or reversed endpoints.
	ErrInvalidInterval = errors.New("invalid interval")
)

// invalidFieldsf builds a detailed error matching ErrInvalidFields.
func invalidFieldsf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidFields)
}
