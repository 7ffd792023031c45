// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unit

// Dimension is the type constraint of a quantity's dimension. The set
// of dimensions is closed: only the tag types declared here implement
// the unexported method.
type Dimension interface {
	dim() string
}

// Dimension tags. Each names a table in the conversion registry.
type (
	Length      struct{}
	Mass        struct{}
	Time        struct{}
	Angle       struct{}
	Power       struct{}
	Temperature struct{}
	Speed       struct{}
	Energy      struct{}
)

func (Length) dim() string      { return "length" }
func (Mass) dim() string        { return "mass" }
func (Time) dim() string        { return "time" }
func (Angle) dim() string       { return "angle" }
func (Power) dim() string       { return "power" }
func (Temperature) dim() string { return "temperature" }
func (Speed) dim() string       { return "speed" }
func (Energy) dim() string      { return "energy" }

// dimensionNames lists every dimension a registry table may define,
// sorted.
var dimensionNames = []string{
	"angle", "energy", "length", "mass", "power", "speed", "temperature", "time",
}

// dimName returns the registry table name of dimension D.
func dimName[D Dimension]() string {
	var d D
	return d.dim()
}
