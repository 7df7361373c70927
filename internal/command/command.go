// Package command maps line-protocol verbs onto graph operations. One
// verb plus optional payload per input line, one JSON document per
// response line.
package command

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lazypower/recall/internal/scheduler"
)

// queueLimit caps how many concepts GET_REVISION_QUEUE returns.
const queueLimit = 10

// Dispatcher executes protocol commands against a single graph.
type Dispatcher struct {
	graph *scheduler.Graph
}

// New creates a Dispatcher around the given graph.
func New(g *scheduler.Graph) *Dispatcher {
	return &Dispatcher{graph: g}
}

// Dispatch executes one command and returns its JSON response line.
// Failures are rendered as {"status":"error",...}; Dispatch itself never
// fails and never partially applies a command.
func (d *Dispatcher) Dispatch(verb, data string) string {
	switch verb {
	case "GET_ALL_CONCEPTS":
		return marshal(d.graph.Concepts())

	case "GET_STATS":
		return marshal(d.graph.Stats())

	case "GET_REVISION_QUEUE":
		return marshal(d.graph.RevisionQueue(queueLimit))

	case "REVISE_CONCEPT":
		if err := d.graph.ReviseConcept(strings.TrimSpace(data), scheduler.DefaultBoost); err != nil {
			return errorLine(err)
		}
		return marshal(status{"success", "Concept revised"})

	case "SIMULATE_TIME":
		days, err := strconv.Atoi(strings.TrimSpace(data))
		if err != nil {
			return errorLine(fmt.Errorf("invalid day count %q", data))
		}
		d.graph.SimulateTimePassage(days)
		return marshal(map[string]any{"status": "success", "days": days})

	case "ADD_CONCEPT":
		name, id, category, prereqs, err := parseAddPayload(data)
		if err != nil {
			return errorLine(err)
		}
		d.graph.InsertConcept(name, id, category, 1.0, prereqs)
		return marshal(status{"success", "Concept added"})

	case "SET_DECAY_RATE":
		rate, err := strconv.ParseFloat(strings.TrimSpace(data), 64)
		if err != nil {
			return errorLine(fmt.Errorf("invalid decay rate %q", data))
		}
		d.graph.SetDecayRate(rate)
		d.graph.UpdateMemoryStrengths()
		return marshal(map[string]any{"status": "success", "rate": rate})

	default:
		return errorLine(fmt.Errorf("unknown command: %s", verb))
	}
}

// Run reads commands line by line until EOF, an empty line, or EXIT, and
// writes one response line per command.
func (d *Dispatcher) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line == "EXIT" {
			break
		}
		verb, data, _ := strings.Cut(line, " ")
		fmt.Fprintln(w, d.Dispatch(verb, data))
	}
	return scanner.Err()
}

// parseAddPayload splits a "name|id|category|p1,p2" payload. New concepts
// enter at full weight; only the id segment is mandatory.
func parseAddPayload(data string) (name, id, category string, prereqs []string, err error) {
	parts := strings.SplitN(data, "|", 4)
	if len(parts) < 2 || parts[1] == "" {
		return "", "", "", nil, fmt.Errorf("ADD_CONCEPT payload must be name|id|category|prereq1,prereq2")
	}
	name = parts[0]
	id = parts[1]
	if len(parts) > 2 {
		category = parts[2]
	}
	if len(parts) > 3 && parts[3] != "" {
		for _, p := range strings.Split(parts[3], ",") {
			if p = strings.TrimSpace(p); p != "" {
				prereqs = append(prereqs, p)
			}
		}
	}
	return name, id, category, prereqs, nil
}

type status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func marshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return errorLine(err)
	}
	return string(data)
}

func errorLine(err error) string {
	data, _ := json.Marshal(status{Status: "error", Message: err.Error()})
	return string(data)
}
