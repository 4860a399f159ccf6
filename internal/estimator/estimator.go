// Package estimator holds the fixed species catalog and the annual CO2
// estimate shown next to a plot while it is being edited. The hourly,
// weather-driven numbers live in the weather service; this table is the
// display-path estimate only.
package estimator

import (
	"math"
	"strings"
)

// ImplicitDensityPerM2 converts covered square meters into estimation
// units (plants). It is a uniform simplification carried over from the
// product, not a physical model: crops and trees share the same value.
const ImplicitDensityPerM2 = 0.01

// DefaultRate applies to species missing from the rate table.
const DefaultRate = 15.0

// catalog is the allow-list, in canonical casing. Species names stored on
// a plot always come from this list.
var catalog = []string{
	"Abete bianco", "Abete rosso", "Acero", "Anguria", "Barbabietola", "Betulla",
	"Castagno", "Cavolo", "Cetriolo", "Ciliegio", "Cipresso", "Erba medica",
	"Eucalipto", "Fagiolo", "Faggio", "Fragola", "Frassino", "Girasole", "Grano",
	"Larice", "Lattuga", "Mais", "Melanzana", "Melone", "Nocciolo", "Olmo",
	"Patata", "Peperone", "Pino", "Pisello", "Pioppo", "Pomodoro", "Quercia",
	"Riso", "Salice", "Soia", "Tiglio", "Ulivo", "Zucchina",
}

// co2Rates maps lower-cased species names to kg CO2 per estimation unit
// per year.
var co2Rates = map[string]float64{
	"quercia":      21.5,
	"pino":         17.2,
	"mais":         2.4,
	"faggio":       19.0,
	"betulla":      18.1,
	"castagno":     22.3,
	"acero":        16.5,
	"olmo":         14.2,
	"pioppo":       23.8,
	"cipresso":     15.6,
	"larice":       20.0,
	"abete rosso":  18.8,
	"abete bianco": 19.5,
	"salice":       12.7,
	"eucalipto":    25.0,
	"tiglio":       17.4,
	"frassino":     16.8,
	"nocciolo":     13.6,
	"ciliegio":     14.4,
	"ulivo":        11.5,
	"grano":        1.7,
	"riso":         2.1,
	"soia":         2.0,
	"girasole":     2.2,
	"barbabietola": 2.8,
	"patata":       1.9,
	"pomodoro":     1.6,
	"lattuga":      0.8,
	"cavolo":       1.3,
	"zucchina":     1.5,
	"melanzana":    1.4,
	"peperone":     1.4,
	"fagiolo":      1.2,
	"pisello":      1.0,
	"cetriolo":     1.3,
	"anguria":      2.5,
	"melone":       2.3,
	"fragola":      0.9,
	"erba medica":  3.0,
}

// SpeciesEntry is one (species, covered area) pair on a plot.
type SpeciesEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Canonical resolves a user-entered name against the allow-list,
// case-insensitively, and returns the catalog casing.
func Canonical(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, valid := range catalog {
		if strings.EqualFold(valid, trimmed) {
			return valid, true
		}
	}
	return "", false
}

// AllSpecies returns a copy of the catalog in canonical casing.
func AllSpecies() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// RateFor returns the annual CO2 rate for a species, falling back to
// DefaultRate for names outside the table.
func RateFor(name string) float64 {
	if rate, ok := co2Rates[strings.ToLower(strings.TrimSpace(name))]; ok {
		return rate
	}
	return DefaultRate
}

// Estimate returns the annual CO2 absorption in kg for a species list,
// rounded to two decimals. Non-positive quantities do not contribute.
func Estimate(entries []SpeciesEntry) float64 {
	var total float64
	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		units := float64(e.Quantity) * ImplicitDensityPerM2
		total += RateFor(e.Name) * units
	}
	return math.Round(total*100) / 100
}
