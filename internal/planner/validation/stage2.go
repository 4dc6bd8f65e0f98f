// internal/planner/validation/stage2.go
package validation

import (
	"fmt"
	"strings"
	"time"

	"planflow/internal/common/errors"
	"planflow/internal/models"
)

// Stage2 checks graph-level invariants on an already well-formed plan:
// unique task and link ids, every link endpoint resolves, no self-links, the
// dependency graph is acyclic, and finish-to-start ordering holds against
// recomputed finish dates (the model's dates are checked, never trusted).
func (v *Validator) Stage2(plan *models.ProjectPlan) error {
	g := plan.GanttData

	tasks := make(map[int]models.GanttTask, len(g.Data))
	for _, t := range g.Data {
		if _, dup := tasks[t.ID]; dup {
			return errors.NewSemanticError(fmt.Sprintf("duplicate task id %d", t.ID))
		}
		tasks[t.ID] = t
	}

	starts := make(map[int]time.Time, len(g.Data))
	for _, t := range g.Data {
		start, err := time.Parse(models.DateLayout, t.StartDate)
		if err != nil {
			return errors.NewSemanticError(fmt.Sprintf("task %d: invalid start date %q", t.ID, t.StartDate))
		}
		starts[t.ID] = start
	}

	linkIDs := make(map[int]struct{}, len(g.Links))
	adjacency := make(map[int][]int, len(g.Data))
	for _, l := range g.Links {
		if _, dup := linkIDs[l.ID]; dup {
			return errors.NewSemanticError(fmt.Sprintf("duplicate link id %d", l.ID))
		}
		linkIDs[l.ID] = struct{}{}

		if _, ok := tasks[l.Source]; !ok {
			return errors.NewSemanticError(fmt.Sprintf("link %d: source task %d does not exist", l.ID, l.Source))
		}
		if _, ok := tasks[l.Target]; !ok {
			return errors.NewSemanticError(fmt.Sprintf("link %d: target task %d does not exist", l.ID, l.Target))
		}
		if l.Source == l.Target {
			return errors.NewSemanticError(fmt.Sprintf("link %d: task %d depends on itself", l.ID, l.Source))
		}

		adjacency[l.Source] = append(adjacency[l.Source], l.Target)
	}

	if cycle := findCycle(adjacency); cycle != nil {
		parts := make([]string, len(cycle))
		for i, id := range cycle {
			parts[i] = fmt.Sprintf("task %d", id)
		}
		return errors.NewSemanticError("cycle: " + strings.Join(parts, " -> "))
	}

	// Finish-to-start ordering: the successor must not start before the
	// predecessor's recomputed finish (start + duration days).
	for _, l := range g.Links {
		if l.Type != models.LinkFinishToStart {
			continue
		}
		src := tasks[l.Source]
		finish := starts[l.Source].AddDate(0, 0, src.Duration)
		if starts[l.Target].Before(finish) {
			return errors.NewSemanticError(fmt.Sprintf(
				"link %d: task %d starts %s, before task %d finishes %s",
				l.ID, l.Target, starts[l.Target].Format(models.DateLayout),
				l.Source, finish.Format(models.DateLayout),
			))
		}
	}

	return nil
}

// findCycle runs a DFS over the directed edge set and returns the first cycle
// found as a task id path (first id repeated at the end), or nil.
func findCycle(adjacency map[int][]int) []int {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)

	state := make(map[int]int)
	var stack []int
	var cycle []int

	var visit func(node int) bool
	visit = func(node int) bool {
		state[node] = inStack
		stack = append(stack, node)

		for _, next := range adjacency[node] {
			switch state[next] {
			case inStack:
				// Slice the current stack from the repeated node to close the loop.
				for i, id := range stack {
					if id == next {
						cycle = append(append(cycle, stack[i:]...), next)
						return true
					}
				}
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[node] = done
		return false
	}

	for node := range adjacency {
		if state[node] == unvisited && visit(node) {
			return cycle
		}
	}
	return nil
}
