package scheduler

import (
	"fmt"
	"math"
	"sort"
)

// Graph owns every concept, the priority heap, and the day counter. It is
// the single entry point for all scheduling operations. After every
// public operation the heap holds exactly one entry per concept. The
// graph is not safe for concurrent use; callers that share it across
// goroutines must serialize access themselves.
type Graph struct {
	concepts map[string]*Concept

	// adjacency mirrors each concept's prerequisite list for direct
	// traversal; reverse indexes who lists a given id as a prerequisite,
	// so revision boosts never need a full scan.
	adjacency map[string][]string
	reverse   map[string]map[string]bool

	heap           *MinHeap
	currentDay     int
	lambda         float64
	totalRevisions int
}

// NewGraph creates an empty graph with the given decay rate.
func NewGraph(decayRate float64) *Graph {
	return &Graph{
		concepts:  make(map[string]*Concept),
		adjacency: make(map[string][]string),
		reverse:   make(map[string]map[string]bool),
		heap:      NewMinHeap(),
		lambda:    decayRate,
	}
}

// InsertConcept adds a concept stamped with the current day as its last
// revised day. The weight is clamped to [0, 1]. Prerequisite ids may
// reference concepts not present in the graph; they are kept verbatim.
// An existing concept with the same id is silently replaced.
func (g *Graph) InsertConcept(name, id, category string, initialWeight float64, prerequisites []string) {
	_, replacing := g.concepts[id]
	if replacing {
		for _, p := range g.adjacency[id] {
			delete(g.reverse[p], id)
		}
	}

	prereqs := append([]string(nil), prerequisites...)
	c := &Concept{
		Name:           name,
		ID:             id,
		Category:       category,
		InitialWeight:  clamp(initialWeight, 0, maxStrength),
		LastRevisedDay: g.currentDay,
		Prerequisites:  prereqs,
	}
	c.MemoryStrength = c.CalculateMemory(g.currentDay, g.lambda)

	g.concepts[id] = c
	g.adjacency[id] = prereqs
	for _, p := range prereqs {
		if g.reverse[p] == nil {
			g.reverse[p] = make(map[string]bool)
		}
		g.reverse[p][id] = true
	}

	if replacing {
		g.heap.UpdateKey(id, c.MemoryStrength)
	} else {
		g.heap.Insert(id, c.MemoryStrength)
	}
}

// UpdateMemoryStrengths recomputes every concept's strength from the
// current day and rebuilds the heap from the refreshed values. Used when
// the day or decay rate changes, because all strengths move at once.
func (g *Graph) UpdateMemoryStrengths() {
	entries := make([]Entry, 0, len(g.concepts))
	for id, c := range g.concepts {
		c.UpdateMemoryStrength(g.currentDay, g.lambda)
		entries = append(entries, Entry{ID: id, Strength: c.MemoryStrength})
	}
	g.heap.Rebuild(entries)
}

// NextRecommendation returns the id with the globally lowest memory
// strength, or "" when the graph is empty.
func (g *Graph) NextRecommendation() string {
	id, err := g.heap.PeekMin()
	if err != nil {
		return ""
	}
	return id
}

// TopRecommendations returns up to count ids ascending by strength. It
// sorts a fresh copy and leaves the heap untouched.
func (g *Graph) TopRecommendations(count int) []string {
	ranked := make([]Entry, 0, len(g.concepts))
	for id, c := range g.concepts {
		ranked = append(ranked, Entry{ID: id, Strength: c.MemoryStrength})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Strength < ranked[j].Strength })

	if count < 0 {
		count = 0
	}
	if count > len(ranked) {
		count = len(ranked)
	}
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		ids[i] = ranked[i].ID
	}
	return ids
}

// ReviseConcept revises the target and then boosts every concept
// connected to it by a prerequisite edge in either direction by
// NeighborBoost, capped at 1.0. Neighbors keep their LastRevisedDay but
// take the boosted value as their new decay baseline. Returns ErrNotFound
// without touching any state when the id is absent.
func (g *Graph) ReviseConcept(id string, boost float64) error {
	c, ok := g.concepts[id]
	if !ok {
		return fmt.Errorf("revise %s: %w", id, ErrNotFound)
	}

	c.Revise(g.currentDay, boost)
	g.heap.UpdateKey(id, c.MemoryStrength)

	for _, neighborID := range g.neighbors(id) {
		n := g.concepts[neighborID]
		n.MemoryStrength = math.Min(maxStrength, n.MemoryStrength+NeighborBoost)
		n.InitialWeight = n.MemoryStrength
		g.heap.UpdateKey(neighborID, n.MemoryStrength)
	}

	g.totalRevisions++
	return nil
}

// neighbors returns the ids connected to id by a prerequisite edge in
// either direction, restricted to concepts present in the graph.
func (g *Graph) neighbors(id string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(other string) {
		if other == id || seen[other] {
			return
		}
		if _, ok := g.concepts[other]; !ok {
			return
		}
		seen[other] = true
		out = append(out, other)
	}

	for _, p := range g.adjacency[id] {
		add(p)
	}
	for dep := range g.reverse[id] {
		add(dep)
	}
	return out
}

// SimulateTimePassage advances the day counter by days (negative values
// are accepted) and recomputes all strengths.
func (g *Graph) SimulateTimePassage(days int) {
	g.currentDay += days
	g.UpdateMemoryStrengths()
}

// SetDecayRate replaces lambda. Strengths are not recomputed; callers
// follow with UpdateMemoryStrengths when they want the new rate applied.
func (g *Graph) SetDecayRate(rate float64) {
	g.lambda = rate
}

// AverageMemoryStrength returns the mean strength, or 0 on an empty graph.
func (g *Graph) AverageMemoryStrength() float64 {
	if len(g.concepts) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range g.concepts {
		sum += c.MemoryStrength
	}
	return sum / float64(len(g.concepts))
}

// UrgentCount returns the number of concepts below the urgency threshold.
func (g *Graph) UrgentCount() int {
	count := 0
	for _, c := range g.concepts {
		if c.MemoryStrength < UrgentThreshold {
			count++
		}
	}
	return count
}

func (g *Graph) TotalConcepts() int  { return len(g.concepts) }
func (g *Graph) TotalRevisions() int { return g.totalRevisions }
func (g *Graph) CurrentDay() int     { return g.currentDay }
func (g *Graph) DecayRate() float64  { return g.lambda }

// Concept returns a copy of the concept with the given id.
func (g *Graph) Concept(id string) (Concept, bool) {
	c, ok := g.concepts[id]
	if !ok {
		return Concept{}, false
	}
	return snapshot(c), true
}

// Concepts returns copies of all concepts, ascending by id.
func (g *Graph) Concepts() []Concept {
	out := make([]Concept, 0, len(g.concepts))
	for _, c := range g.concepts {
		out = append(out, snapshot(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RevisionQueue returns up to count concepts ascending by strength.
func (g *Graph) RevisionQueue(count int) []Concept {
	ids := g.TopRecommendations(count)
	out := make([]Concept, 0, len(ids))
	for _, id := range ids {
		out = append(out, snapshot(g.concepts[id]))
	}
	return out
}

// Stats is the aggregate summary exposed to clients. AvgMemory is the
// average strength scaled to a 0-100 range.
type Stats struct {
	TotalConcepts  int     `json:"totalConcepts"`
	AvgMemory      float64 `json:"avgMemory"`
	UrgentCount    int     `json:"urgentCount"`
	TotalRevisions int     `json:"totalRevisions"`
	CurrentDay     int     `json:"currentDay"`
}

// Stats returns the current aggregate summary.
func (g *Graph) Stats() Stats {
	return Stats{
		TotalConcepts:  len(g.concepts),
		AvgMemory:      round2(g.AverageMemoryStrength() * 100),
		UrgentCount:    g.UrgentCount(),
		TotalRevisions: g.totalRevisions,
		CurrentDay:     g.currentDay,
	}
}

// snapshot copies a concept so callers never alias graph-owned state.
func snapshot(c *Concept) Concept {
	out := *c
	out.Prerequisites = append([]string(nil), c.Prerequisites...)
	return out
}
