// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unit

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Parse reads the machine form "<value> <symbol>", e.g. "120 cm", as a
// quantity of dimension D. The symbol is resolved against the default
// registry within D only: "120 kg" does not parse as a Length, however
// well-known the symbol is elsewhere. Unknown symbols fail with an
// error matching ErrUnknownUnit, carrying a spelling suggestion when
// one is plausible.
func Parse[D Dimension](s string) (Quantity[D], error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Quantity[D]{}, errors.Newf("malformed quantity %q: want \"<value> <symbol>\"", s)
	}
	v, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Quantity[D]{}, errors.Wrapf(err, "malformed quantity %q", s)
	}
	if _, err := DefaultRegistry().conversion(dimName[D](), parts[1]); err != nil {
		return Quantity[D]{}, err
	}
	return Quantity[D]{Value: v, Unit: Unit[D]{symbol: parts[1]}}, nil
}
