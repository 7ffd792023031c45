// Copyright 2024 The Tempora Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package weekdata carries regional week conventions: the first day of
// the week, the weekend days, and the minimal number of days a week
// must have in the new year (or month) to count as its week 1.
//
// The table is a data feed in the spirit of CLDR supplemental week
// data, embedded so lookups need no I/O. Regions absent from the table
// are reported to the caller, never silently defaulted.
package weekdata // import "go.tempora.net/internal/weekdata"

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed weekdata.yaml
var raw []byte

// Rules is one region's week conventions.
type Rules struct {
	FirstDay           time.Weekday
	Weekend            []time.Weekday
	MinDaysInFirstWeek int
}

// worldRegion keys the world-default rules.
const worldRegion = "001"

type rawRules struct {
	FirstDay string   `yaml:"first_day"`
	Weekend  []string `yaml:"weekend"`
	MinDays  int      `yaml:"min_days_in_first_week"`
}

var (
	once    sync.Once
	byCode  map[string]Rules
	regions []string
)

// load parses the embedded table. The table ships with the package, so
// a parse failure is an unrecoverable build defect.
func load() {
	var rt map[string]rawRules
	if err := yaml.Unmarshal(raw, &rt); err != nil {
		panic("weekdata: embedded table: " + err.Error())
	}
	byCode = make(map[string]Rules, len(rt))
	regions = make([]string, 0, len(rt))
	for code, rr := range rt {
		r, err := convert(rr)
		if err != nil {
			panic(fmt.Sprintf("weekdata: embedded table, region %s: %v", code, err))
		}
		byCode[code] = r
		regions = append(regions, code)
	}
	if _, ok := byCode[worldRegion]; !ok {
		panic("weekdata: embedded table lacks the 001 world default")
	}
	sort.Strings(regions)
}

var dayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func convert(rr rawRules) (Rules, error) {
	first, ok := dayNames[rr.FirstDay]
	if !ok {
		return Rules{}, fmt.Errorf("bad weekday %q", rr.FirstDay)
	}
	if rr.MinDays < 1 || rr.MinDays > 7 {
		return Rules{}, fmt.Errorf("min_days_in_first_week %d out of range 1..7", rr.MinDays)
	}
	if len(rr.Weekend) == 0 {
		return Rules{}, fmt.Errorf("empty weekend")
	}
	weekend := make([]time.Weekday, 0, len(rr.Weekend))
	for _, name := range rr.Weekend {
		d, ok := dayNames[name]
		if !ok {
			return Rules{}, fmt.Errorf("bad weekday %q", name)
		}
		weekend = append(weekend, d)
	}
	return Rules{FirstDay: first, Weekend: weekend, MinDaysInFirstWeek: rr.MinDays}, nil
}

// ForRegion returns the week rules of an ISO 3166-1 alpha-2 region
// code ("001" names the world default). Lookup folds case.
func ForRegion(code string) (Rules, bool) {
	once.Do(load)
	r, ok := byCode[strings.ToUpper(code)]
	return r, ok
}

// Default returns the world-default rules.
func Default() Rules {
	once.Do(load)
	return byCode[worldRegion]
}

// Regions returns every region code in the table, sorted.
func Regions() []string {
	once.Do(load)
	return append([]string(nil), regions...)
}
