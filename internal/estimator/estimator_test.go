package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateQuercia(t *testing.T) {
	got := Estimate([]SpeciesEntry{{Name: "Quercia", Quantity: 1000}})
	assert.Equal(t, 215.00, got) // 21.5 * 1000 * 0.01
}

func TestEstimateUnknownSpeciesUsesDefaultRate(t *testing.T) {
	got := Estimate([]SpeciesEntry{{Name: "Sequoia", Quantity: 100}})
	assert.Equal(t, 15.00, got)
}

func TestEstimateExcludesNonPositiveQuantities(t *testing.T) {
	got := Estimate([]SpeciesEntry{
		{Name: "Quercia", Quantity: -50},
		{Name: "Pino", Quantity: 0},
		{Name: "Grano", Quantity: 100},
	})
	assert.Equal(t, 1.7, got)
}

func TestEstimateMonotonicInQuantity(t *testing.T) {
	base := []SpeciesEntry{
		{Name: "Quercia", Quantity: 100},
		{Name: "Mais", Quantity: 500},
	}
	prev := Estimate(base)
	for q := 200; q <= 1000; q += 200 {
		base[0].Quantity = q
		next := Estimate(base)
		assert.GreaterOrEqual(t, next, prev)
		prev = next
	}
}

func TestCanonicalCaseInsensitive(t *testing.T) {
	name, ok := Canonical("quercia")
	assert.True(t, ok)
	assert.Equal(t, "Quercia", name)

	name, ok = Canonical("  ABETE ROSSO ")
	assert.True(t, ok)
	assert.Equal(t, "Abete rosso", name)

	_, ok = Canonical("Baobab")
	assert.False(t, ok)
}

func TestCatalogSize(t *testing.T) {
	assert.Len(t, AllSpecies(), 39)
}

func TestRateFor(t *testing.T) {
	assert.Equal(t, 21.5, RateFor("Quercia"))
	assert.Equal(t, 3.0, RateFor("erba medica"))
	assert.Equal(t, DefaultRate, RateFor("Baobab"))
}
