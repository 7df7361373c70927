// Package seed loads the sample study topics used by the demo commands.
package seed

import "github.com/lazypower/recall/internal/scheduler"

// Apply inserts the sample concept set into the graph: eight computer
// science topics with prerequisite edges between them.
func Apply(g *scheduler.Graph) {
	g.InsertConcept("Binary Search", "binary_search", "Algorithms", 0.85, []string{"arrays"})
	g.InsertConcept("Arrays", "arrays", "Data Structures", 0.45, nil)
	g.InsertConcept("Sorting Algorithms", "sorting", "Algorithms", 0.62, []string{"arrays"})
	g.InsertConcept("Linked Lists", "linked_lists", "Data Structures", 0.28, nil)
	g.InsertConcept("Binary Trees", "trees", "Data Structures", 0.75, []string{"linked_lists"})
	g.InsertConcept("Hash Tables", "hash_tables", "Data Structures", 0.55, []string{"arrays"})
	g.InsertConcept("Graph Traversal", "graphs", "Algorithms", 0.35, []string{"trees"})
	g.InsertConcept("Dynamic Programming", "dp", "Algorithms", 0.90, []string{"sorting"})
}
