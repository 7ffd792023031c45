// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unit

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Quantity is a numeric value tagged with a unit of dimension D: 120
// centimeters, 3.5 kilograms. The unit always belongs to the quantity's
// dimension; the type system allows no other combination. Quantities
// are immutable values.
type Quantity[D Dimension] struct {
	Value float64
	Unit  Unit[D]
}

// New returns value expressed in u.
func New[D Dimension](value float64, u Unit[D]) Quantity[D] {
	return Quantity[D]{Value: value, Unit: u}
}

// Convert re-expresses q in the unit `to` of the same dimension, using
// the default registry. Conversion composes through the dimension's
// base unit, so chaining conversions agrees with converting directly,
// up to floating-point rounding. A symbol missing from the registry
// fails with an error matching ErrUnknownUnit.
func (q Quantity[D]) Convert(to Unit[D]) (Quantity[D], error) {
	return ConvertIn(DefaultRegistry(), q, to)
}

// ConvertIn is Convert against an explicit registry.
func ConvertIn[D Dimension](r *Registry, q Quantity[D], to Unit[D]) (Quantity[D], error) {
	dim := dimName[D]()
	from, err := r.conversion(dim, q.Unit.symbol)
	if err != nil {
		return Quantity[D]{}, err
	}
	toCv, err := r.conversion(dim, to.symbol)
	if err != nil {
		return Quantity[D]{}, err
	}
	base := q.Value*from.Scale + from.Offset
	return Quantity[D]{Value: (base - toCv.Offset) / toCv.Scale, Unit: to}, nil
}

// Base re-expresses q in its dimension's base unit.
func (q Quantity[D]) Base() (Quantity[D], error) {
	dim := dimName[D]()
	base, ok := DefaultRegistry().Base(dim)
	if !ok {
		return Quantity[D]{}, errors.Mark(
			errors.Newf("no units known for dimension %s", dim), ErrUnknownUnit)
	}
	return q.Convert(Unit[D]{symbol: base})
}

// Add returns q+o. Both operands are normalized to the dimension's
// base unit first, and the result is reported in the base unit, not in
// either operand's. Callers wanting another unit convert the result.
func (q Quantity[D]) Add(o Quantity[D]) (Quantity[D], error) {
	a, err := q.Base()
	if err != nil {
		return Quantity[D]{}, err
	}
	b, err := o.Base()
	if err != nil {
		return Quantity[D]{}, err
	}
	return Quantity[D]{Value: a.Value + b.Value, Unit: a.Unit}, nil
}

// Sub returns q-o, in the base unit like Add.
func (q Quantity[D]) Sub(o Quantity[D]) (Quantity[D], error) {
	a, err := q.Base()
	if err != nil {
		return Quantity[D]{}, err
	}
	b, err := o.Base()
	if err != nil {
		return Quantity[D]{}, err
	}
	return Quantity[D]{Value: a.Value - b.Value, Unit: a.Unit}, nil
}

// Scale returns q with its value multiplied by k, in q's own unit.
// For affine units this scales the reading, not the underlying base
// value: twice 10 degrees Celsius is 20 degrees Celsius.
func (q Quantity[D]) Scale(k float64) Quantity[D] {
	return Quantity[D]{Value: q.Value * k, Unit: q.Unit}
}

// Neg returns q with its value negated, in q's own unit.
func (q Quantity[D]) Neg() Quantity[D] { return q.Scale(-1) }

// Compare orders q against o by their base-unit values: -1, 0, or +1.
func (q Quantity[D]) Compare(o Quantity[D]) (int, error) {
	a, err := q.Base()
	if err != nil {
		return 0, err
	}
	b, err := o.Base()
	if err != nil {
		return 0, err
	}
	switch {
	case a.Value < b.Value:
		return -1, nil
	case a.Value > b.Value:
		return +1, nil
	}
	return 0, nil
}

// String formats q as "<value> <symbol>", the same machine form Parse
// accepts.
func (q Quantity[D]) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit.symbol)
}
