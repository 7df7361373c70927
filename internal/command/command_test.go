package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lazypower/recall/internal/scheduler"
	"github.com/lazypower/recall/internal/seed"
)

func testDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	g := scheduler.NewGraph(scheduler.DefaultDecayRate)
	seed.Apply(g)
	return New(g)
}

func decodeLine(t *testing.T, line string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(line), v); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, line)
	}
}

func TestGetAllConcepts(t *testing.T) {
	d := testDispatcher(t)

	var concepts []map[string]any
	decodeLine(t, d.Dispatch("GET_ALL_CONCEPTS", ""), &concepts)

	if len(concepts) != 8 {
		t.Fatalf("len = %d, want 8", len(concepts))
	}
	// Sorted ascending by id; arrays comes first.
	if concepts[0]["id"] != "arrays" {
		t.Errorf("first id = %v, want arrays", concepts[0]["id"])
	}
	for _, key := range []string{"name", "id", "category", "initial_weight", "memory_strength", "last_revised_day", "prerequisites"} {
		if _, ok := concepts[0][key]; !ok {
			t.Errorf("concept JSON missing %q", key)
		}
	}
}

func TestGetStats(t *testing.T) {
	d := testDispatcher(t)

	var stats map[string]any
	decodeLine(t, d.Dispatch("GET_STATS", ""), &stats)

	if stats["totalConcepts"] != float64(8) {
		t.Errorf("totalConcepts = %v, want 8", stats["totalConcepts"])
	}
	if stats["currentDay"] != float64(0) {
		t.Errorf("currentDay = %v, want 0", stats["currentDay"])
	}
	// Seed average: (0.85+0.45+0.62+0.28+0.75+0.55+0.35+0.90)/8 x 100
	if stats["avgMemory"] != 59.38 {
		t.Errorf("avgMemory = %v, want 59.38", stats["avgMemory"])
	}
	if stats["urgentCount"] != float64(1) {
		t.Errorf("urgentCount = %v, want 1 (linked_lists)", stats["urgentCount"])
	}
}

func TestGetRevisionQueue(t *testing.T) {
	d := testDispatcher(t)

	var queue []map[string]any
	decodeLine(t, d.Dispatch("GET_REVISION_QUEUE", ""), &queue)

	if len(queue) != 8 {
		t.Fatalf("len = %d, want 8", len(queue))
	}
	if queue[0]["id"] != "linked_lists" {
		t.Errorf("weakest = %v, want linked_lists", queue[0]["id"])
	}
	prev := -1.0
	for _, c := range queue {
		strength := c["memory_strength"].(float64)
		if strength < prev {
			t.Fatalf("queue not ascending: %v after %v", strength, prev)
		}
		prev = strength
	}
}

func TestReviseConcept(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]string
	decodeLine(t, d.Dispatch("REVISE_CONCEPT", "linked_lists"), &resp)
	if resp["status"] != "success" {
		t.Fatalf("status = %q, want success: %v", resp["status"], resp)
	}

	var stats map[string]any
	decodeLine(t, d.Dispatch("GET_STATS", ""), &stats)
	if stats["totalRevisions"] != float64(1) {
		t.Errorf("totalRevisions = %v, want 1", stats["totalRevisions"])
	}
}

func TestReviseConceptNotFound(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]string
	decodeLine(t, d.Dispatch("REVISE_CONCEPT", "nope"), &resp)
	if resp["status"] != "error" {
		t.Fatalf("status = %q, want error", resp["status"])
	}
	if !strings.Contains(resp["message"], "concept not found") {
		t.Errorf("message = %q, want it to mention concept not found", resp["message"])
	}
}

func TestSimulateTime(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]any
	decodeLine(t, d.Dispatch("SIMULATE_TIME", "10"), &resp)
	if resp["status"] != "success" || resp["days"] != float64(10) {
		t.Fatalf("resp = %v", resp)
	}

	var stats map[string]any
	decodeLine(t, d.Dispatch("GET_STATS", ""), &stats)
	if stats["currentDay"] != float64(10) {
		t.Errorf("currentDay = %v, want 10", stats["currentDay"])
	}
}

func TestSimulateTimeInvalid(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]string
	decodeLine(t, d.Dispatch("SIMULATE_TIME", "soon"), &resp)
	if resp["status"] != "error" {
		t.Errorf("status = %q, want error", resp["status"])
	}
}

func TestAddConcept(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]string
	decodeLine(t, d.Dispatch("ADD_CONCEPT", "Recursion|recursion|Algorithms|arrays,sorting"), &resp)
	if resp["status"] != "success" {
		t.Fatalf("resp = %v", resp)
	}

	var concepts []map[string]any
	decodeLine(t, d.Dispatch("GET_ALL_CONCEPTS", ""), &concepts)
	if len(concepts) != 9 {
		t.Fatalf("len = %d, want 9", len(concepts))
	}
	for _, c := range concepts {
		if c["id"] != "recursion" {
			continue
		}
		if c["initial_weight"] != float64(1) {
			t.Errorf("new concept weight = %v, want 1 (full strength on add)", c["initial_weight"])
		}
		prereqs := c["prerequisites"].([]any)
		if len(prereqs) != 2 || prereqs[0] != "arrays" || prereqs[1] != "sorting" {
			t.Errorf("prerequisites = %v", prereqs)
		}
		return
	}
	t.Fatal("recursion not found in concept list")
}

func TestAddConceptNoPrerequisites(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]string
	decodeLine(t, d.Dispatch("ADD_CONCEPT", "Recursion|recursion|Algorithms|"), &resp)
	if resp["status"] != "success" {
		t.Fatalf("resp = %v", resp)
	}
}

func TestAddConceptMissingID(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]string
	decodeLine(t, d.Dispatch("ADD_CONCEPT", "just a name"), &resp)
	if resp["status"] != "error" {
		t.Errorf("status = %q, want error", resp["status"])
	}
}

func TestSetDecayRate(t *testing.T) {
	d := testDispatcher(t)
	d.Dispatch("SIMULATE_TIME", "10")

	// Zero decay restores every strength to its baseline weight.
	var resp map[string]any
	decodeLine(t, d.Dispatch("SET_DECAY_RATE", "0"), &resp)
	if resp["status"] != "success" || resp["rate"] != float64(0) {
		t.Fatalf("resp = %v", resp)
	}

	var concepts []map[string]any
	decodeLine(t, d.Dispatch("GET_ALL_CONCEPTS", ""), &concepts)
	for _, c := range concepts {
		if c["memory_strength"] != c["initial_weight"] {
			t.Errorf("%v strength = %v, want weight %v with zero decay", c["id"], c["memory_strength"], c["initial_weight"])
		}
	}
}

func TestSetDecayRateInvalid(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]string
	decodeLine(t, d.Dispatch("SET_DECAY_RATE", "fast"), &resp)
	if resp["status"] != "error" {
		t.Errorf("status = %q, want error", resp["status"])
	}
}

func TestUnknownCommand(t *testing.T) {
	d := testDispatcher(t)

	var resp map[string]string
	decodeLine(t, d.Dispatch("DO_SOMETHING", ""), &resp)
	if resp["status"] != "error" || !strings.Contains(resp["message"], "unknown command") {
		t.Errorf("resp = %v", resp)
	}
}

func TestRunLoop(t *testing.T) {
	d := testDispatcher(t)

	in := strings.NewReader("GET_STATS\nSIMULATE_TIME 5\nEXIT\nGET_STATS\n")
	var out strings.Builder
	if err := d.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d response lines, want 2 (loop stops at EXIT): %q", len(lines), out.String())
	}
	for _, line := range lines {
		var v map[string]any
		decodeLine(t, line, &v)
	}
}

func TestRunLoopStopsOnEmptyLine(t *testing.T) {
	d := testDispatcher(t)

	in := strings.NewReader("GET_STATS\n\nGET_STATS\n")
	var out strings.Builder
	if err := d.Run(in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d response lines, want 1: %q", len(lines), out.String())
	}
}
