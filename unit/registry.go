// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unit

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"

	"go.tempora.net/internal/spell"
)

// A Conversion maps a unit onto its dimension's base unit:
// value_base = value*Scale + Offset. Purely linear units have a zero
// Offset; temperature scales need both.
type Conversion struct {
	Scale  float64 `toml:"scale"`
	Offset float64 `toml:"offset"`
}

// identity reports whether cv maps a value to itself, as a base unit's
// conversion must.
func (cv Conversion) identity() bool { return cv.Scale == 1 && cv.Offset == 0 }

type dimTable struct {
	base  string
	units map[string]Conversion
}

// A Registry holds conversion tables, one per dimension: the base unit
// symbol and each unit's affine map onto it. Registries are immutable
// once built and safe for concurrent use; Merge builds a new one.
//
// The registry is a data feed, not an algorithm: the tables come from
// TOML documents (see ReadTable) in the role of an external unit
// database.
type Registry struct {
	dims map[string]*dimTable
}

// Raw shape of a TOML table document.
type rawDimension struct {
	Base  string                `toml:"base"`
	Units map[string]Conversion `toml:"units"`
}

// ReadTable parses a TOML conversion table:
//
//	[length]
//	base = "m"
//	[length.units]
//	m  = { scale = 1.0 }
//	km = { scale = 1000.0 }
//
// Dimension names must come from the closed set this package declares;
// each dimension must list its base among its units with the identity
// conversion, and no unit may have a zero scale. Malformed input fails
// with an error matching ErrBadTable.
func ReadTable(r io.Reader) (*Registry, error) {
	var raw map[string]rawDimension
	if err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing unit table"), ErrBadTable)
	}
	reg := &Registry{dims: make(map[string]*dimTable, len(raw))}
	for name, rd := range raw {
		if !knownDimension(name) {
			msg := fmt.Sprintf("unknown dimension %q", name)
			if alt := spell.Nearest(name, dimensionNames); alt != "" {
				msg += fmt.Sprintf(" (did you mean %s?)", alt)
			}
			return nil, errors.Mark(errors.New(msg), ErrBadTable)
		}
		if rd.Base == "" {
			return nil, badTablef("dimension %s has no base unit", name)
		}
		base, ok := rd.Units[rd.Base]
		if !ok {
			return nil, badTablef("dimension %s: base unit %q is not among its units", name, rd.Base)
		}
		if !base.identity() {
			return nil, badTablef("dimension %s: base unit %q must have the identity conversion, got scale %g offset %g",
				name, rd.Base, base.Scale, base.Offset)
		}
		units := make(map[string]Conversion, len(rd.Units))
		for sym, cv := range rd.Units {
			if cv.Scale == 0 {
				return nil, badTablef("dimension %s: unit %q has zero scale", name, sym)
			}
			units[sym] = cv
		}
		reg.dims[name] = &dimTable{base: rd.Base, units: units}
	}
	return reg, nil
}

func knownDimension(name string) bool {
	for _, n := range dimensionNames {
		if n == name {
			return true
		}
	}
	return false
}

// Merge returns a registry combining r with o. A dimension declaring
// the same base in both has its unit sets united, o winning duplicate
// symbols; a dimension whose base differs in o is replaced wholesale by
// o's table, since conversions against different bases cannot mix.
// Dimensions present in only one registry are carried over.
func (r *Registry) Merge(o *Registry) *Registry {
	out := &Registry{dims: make(map[string]*dimTable, len(r.dims)+len(o.dims))}
	for name, dt := range r.dims {
		out.dims[name] = dt
	}
	for name, odt := range o.dims {
		rdt, ok := out.dims[name]
		if !ok || rdt.base != odt.base {
			out.dims[name] = odt
			continue
		}
		units := make(map[string]Conversion, len(rdt.units)+len(odt.units))
		for sym, cv := range rdt.units {
			units[sym] = cv
		}
		for sym, cv := range odt.units {
			units[sym] = cv
		}
		out.dims[name] = &dimTable{base: rdt.base, units: units}
	}
	return out
}

// Base returns the base unit symbol of a dimension, if the registry
// has a table for it.
func (r *Registry) Base(dimension string) (symbol string, ok bool) {
	dt := r.dims[dimension]
	if dt == nil {
		return "", false
	}
	return dt.base, true
}

// Symbols returns every unit symbol the registry knows for a
// dimension, sorted.
func (r *Registry) Symbols(dimension string) []string {
	dt := r.dims[dimension]
	if dt == nil {
		return nil
	}
	syms := make([]string, 0, len(dt.units))
	for sym := range dt.units {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// Dimensions returns the dimensions the registry has tables for,
// sorted.
func (r *Registry) Dimensions() []string {
	names := make([]string, 0, len(r.dims))
	for name := range r.dims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// conversion looks up a unit's map onto its dimension's base.
func (r *Registry) conversion(dimension, symbol string) (Conversion, error) {
	dt := r.dims[dimension]
	if dt == nil {
		return Conversion{}, errors.Mark(
			errors.Newf("no units known for dimension %s", dimension), ErrUnknownUnit)
	}
	cv, ok := dt.units[symbol]
	if !ok {
		msg := fmt.Sprintf("unknown %s unit %q", dimension, symbol)
		if alt := spell.Nearest(symbol, r.Symbols(dimension)); alt != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", alt)
		}
		return Conversion{}, errors.Mark(errors.New(msg), ErrUnknownUnit)
	}
	return cv, nil
}

//go:embed units.toml
var defaultTable []byte

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// DefaultRegistry returns the registry parsed from the embedded default
// table. The table ships with the package, so a parse failure is an
// unrecoverable build defect.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r, err := ReadTable(bytes.NewReader(defaultTable))
		if err != nil {
			panic("unit: embedded table: " + err.Error())
		}
		defaultReg = r
	})
	return defaultReg
}
