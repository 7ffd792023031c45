// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package unit provides physical quantities: numeric values tagged with
// a unit of measure belonging to a dimension (length, mass,
// temperature, ...), convertible within their dimension.
//
// The dimension is a type parameter, so mixing dimensions is a compile
// error, not a runtime check: a Quantity[Length] cannot be converted to
// pounds or added to a Quantity[Mass]. Within a dimension, conversion
// goes through the dimension's base unit using an affine map
// (value*scale + offset per unit) supplied by a Registry, a data table
// rather than code. A default table is embedded; external tables in the
// same TOML form can be loaded with ReadTable and combined with Merge.
//
// Arithmetic normalizes both operands to the base unit and reports the
// result in the base unit; Convert re-expresses a quantity in any unit
// of its dimension. Quantities are immutable values, safe to share.
package unit // import "go.tempora.net/unit"
