// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unit

import "github.com/cockroachdb/errors"

// Sentinel errors, matched with errors.Is.
var (
	// ErrUnknownUnit reports a unit symbol absent from the registry
	// table of its dimension. Cross-dimension conversion is not an
	// error here; it does not compile.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrBadTable reports a malformed conversion table: an unknown
	// dimension name, a missing or non-identity base unit, or a zero
	// scale factor.
	ErrBadTable = errors.New("bad unit table")
)

// badTablef builds a detailed error matching ErrBadTable.
func badTablef(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrBadTable)
}
