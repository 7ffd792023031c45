// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unit

// Unit is a unit of measure belonging to dimension D, identified by
// its symbol in the conversion registry. The dimension is part of the
// type, so a Unit[Length] can never be handed to an operation on
// masses.
type Unit[D Dimension] struct {
	symbol string
}

// Of returns the unit of dimension D with the given registry symbol.
// The symbol is not checked here; one absent from the registry in use
// surfaces as ErrUnknownUnit when converting.
func Of[D Dimension](symbol string) Unit[D] { return Unit[D]{symbol: symbol} }

// Symbol returns the unit's registry symbol.
func (u Unit[D]) Symbol() string { return u.symbol }

// String returns the symbol.
func (u Unit[D]) String() string { return u.symbol }

// Units of the embedded default table.
var (
	Meter        = Unit[Length]{"m"}
	Kilometer    = Unit[Length]{"km"}
	Centimeter   = Unit[Length]{"cm"}
	Millimeter   = Unit[Length]{"mm"}
	Inch         = Unit[Length]{"in"}
	Foot         = Unit[Length]{"ft"}
	Yard         = Unit[Length]{"yd"}
	Mile         = Unit[Length]{"mi"}
	NauticalMile = Unit[Length]{"nmi"}

	Kilogram  = Unit[Mass]{"kg"}
	Gram      = Unit[Mass]{"g"}
	Milligram = Unit[Mass]{"mg"}
	Tonne     = Unit[Mass]{"t"}
	Pound     = Unit[Mass]{"lb"}
	Ounce     = Unit[Mass]{"oz"}

	Second      = Unit[Time]{"s"}
	Nanosecond  = Unit[Time]{"ns"}
	Microsecond = Unit[Time]{"us"}
	Millisecond = Unit[Time]{"ms"}
	Minute      = Unit[Time]{"min"}
	Hour        = Unit[Time]{"h"}

	Radian  = Unit[Angle]{"rad"}
	Degree  = Unit[Angle]{"deg"}
	Gradian = Unit[Angle]{"grad"}

	Watt       = Unit[Power]{"W"}
	Milliwatt  = Unit[Power]{"mW"}
	Kilowatt   = Unit[Power]{"kW"}
	Megawatt   = Unit[Power]{"MW"}
	Horsepower = Unit[Power]{"hp"}

	Kelvin     = Unit[Temperature]{"K"}
	Celsius    = Unit[Temperature]{"C"}
	Fahrenheit = Unit[Temperature]{"F"}

	MeterPerSecond   = Unit[Speed]{"m/s"}
	KilometerPerHour = Unit[Speed]{"km/h"}
	MilePerHour      = Unit[Speed]{"mph"}
	Knot             = Unit[Speed]{"kn"}

	Joule        = Unit[Energy]{"J"}
	Kilojoule    = Unit[Energy]{"kJ"}
	Calorie      = Unit[Energy]{"cal"}
	Kilocalorie  = Unit[Energy]{"kcal"}
	KilowattHour = Unit[Energy]{"kWh"}
)
