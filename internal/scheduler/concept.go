// Package scheduler implements the memory-decay scheduler: a graph of
// study concepts whose memory strength decays exponentially over elapsed
// days, backed by a min-heap that always knows the weakest concept.
package scheduler

import (
	"encoding/json"
	"math"
)

// Strength bounds and tuning constants. Memory strength never leaves
// [0.1, 1.0] — a topic is never fully forgotten.
const (
	DefaultDecayRate = 0.15
	DefaultBoost     = 0.4
	NeighborBoost    = 0.1
	UrgentThreshold  = 0.3

	minStrength = 0.1
	maxStrength = 1.0
)

// Concept is a learnable topic. MemoryStrength is derived: outside of a
// revision it is always recomputable from InitialWeight, LastRevisedDay,
// the current day, and the decay rate.
type Concept struct {
	Name           string
	ID             string
	Category       string
	InitialWeight  float64
	MemoryStrength float64
	LastRevisedDay int
	Prerequisites  []string
}

// CalculateMemory returns the decayed strength at the given day without
// mutating the concept: InitialWeight * e^(-lambda * elapsed days),
// clamped to [0.1, 1.0].
func (c *Concept) CalculateMemory(currentDay int, lambda float64) float64 {
	days := currentDay - c.LastRevisedDay
	decay := c.InitialWeight * math.Exp(-lambda*float64(days))
	return clamp(decay, minStrength, maxStrength)
}

// UpdateMemoryStrength recomputes MemoryStrength for the given day.
func (c *Concept) UpdateMemoryStrength(currentDay int, lambda float64) {
	c.MemoryStrength = c.CalculateMemory(currentDay, lambda)
}

// Revise boosts the strength (capped at 1.0) and resets the decay
// baseline: InitialWeight takes the boosted value and LastRevisedDay moves
// to currentDay, so future decay starts from the boosted strength.
func (c *Concept) Revise(currentDay int, boost float64) {
	c.MemoryStrength = math.Min(maxStrength, c.MemoryStrength+boost)
	c.InitialWeight = c.MemoryStrength
	c.LastRevisedDay = currentDay
}

// MarshalJSON renders the wire representation consumers depend on:
// weights as 2-decimal values and prerequisites as [] rather than null.
func (c Concept) MarshalJSON() ([]byte, error) {
	prereqs := c.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}
	return json.Marshal(struct {
		Name           string   `json:"name"`
		ID             string   `json:"id"`
		Category       string   `json:"category"`
		InitialWeight  float64  `json:"initial_weight"`
		MemoryStrength float64  `json:"memory_strength"`
		LastRevisedDay int      `json:"last_revised_day"`
		Prerequisites  []string `json:"prerequisites"`
	}{c.Name, c.ID, c.Category, round2(c.InitialWeight), round2(c.MemoryStrength), c.LastRevisedDay, prereqs})
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
