package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFormat(t *testing.T) {
	assert.Equal(t,
		"airvana_v1_p1_co2_2026-08-28",
		Key("p1", "co2", "2026-08-28"))
}

func TestGetSetRoundTrip(t *testing.T) {
	c := NewDayCache(4)
	k := Key("p1", "co2", "2026-08-28")

	_, ok := c.Get(k)
	assert.False(t, ok)

	c.Set(k, 42)
	v, ok := c.Get(k)
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestOverflowPrunesStaleDatesFirst(t *testing.T) {
	c := NewDayCache(2)
	c.today = func() string { return "2026-08-28" }

	c.Set(Key("p1", "co2", "2026-08-27"), "old")
	c.Set(Key("p2", "co2", "2026-08-28"), "fresh")
	c.Set(Key("p3", "co2", "2026-08-28"), "new")

	_, ok := c.Get(Key("p1", "co2", "2026-08-27"))
	assert.False(t, ok)
	_, ok = c.Get(Key("p2", "co2", "2026-08-28"))
	assert.True(t, ok)
	_, ok = c.Get(Key("p3", "co2", "2026-08-28"))
	assert.True(t, ok)
}

func TestOverflowWithOnlyFreshEntriesRefusesInsert(t *testing.T) {
	c := NewDayCache(2)
	c.today = func() string { return "2026-08-28" }

	c.Set(Key("p1", "co2", "2026-08-28"), 1)
	c.Set(Key("p2", "co2", "2026-08-28"), 2)
	c.Set(Key("p3", "co2", "2026-08-28"), 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(Key("p3", "co2", "2026-08-28"))
	assert.False(t, ok)
}

func TestInvalidateDropsAllKindsForPlot(t *testing.T) {
	c := NewDayCache(8)
	c.Set(Key("p1", "co2", "2026-08-28"), 1)
	c.Set(Key("p1", "o2", "2026-08-28"), 2)
	c.Set(Key("p2", "co2", "2026-08-28"), 3)

	c.Invalidate("p1")

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(Key("p2", "co2", "2026-08-28"))
	assert.True(t, ok)
}
