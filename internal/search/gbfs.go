package search

import (
	"container/heap"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"liftplan/internal/heuristic"
	"liftplan/internal/logging"
	"liftplan/internal/successor"
	"liftplan/internal/task"
)

// Options tunes one search run.
type Options struct {
	// MaxExpansions bounds the number of expanded nodes; 0 means unbounded.
	MaxExpansions int
	// Workers > 1 evaluates successor heuristics in parallel. States are
	// immutable, so this needs no locking.
	Workers int
}

// Step is one plan step, resolved back to names for reporting.
type Step struct {
	Schema    string
	Arguments []string
}

// Result summarizes a finished search.
type Result struct {
	Solved     bool
	Plan       []Step
	Expansions int
	Generated  int
}

// Greedy runs greedy best-first search from the task's initial state until
// a goal state is reached, the open list empties, the expansion bound is
// hit, or ctx is cancelled. Cancellation and limits live here, outside the
// engine, which stays a pure query layer.
func Greedy(ctx context.Context, gen *successor.Generator, h heuristic.Heuristic, opts Options) (Result, error) {
	log := logging.Get(logging.CategorySearch)
	t := gen.Task()

	var result Result
	counter := 0
	root := &node{state: t.Initial, h: h.Evaluate(t.Initial), order: counter}

	open := &openList{}
	heap.Init(open)
	heap.Push(open, root)
	closed := map[string]bool{t.Initial.Fingerprint(): true}

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("search: %w", err)
		}
		n := heap.Pop(open).(*node)

		if t.GoalSatisfied(n.state) {
			result.Solved = true
			result.Plan = extractPlan(t, n)
			log.Infow("goal reached", "expansions", result.Expansions, "generated", result.Generated, "plan_length", len(result.Plan))
			return result, nil
		}

		if opts.MaxExpansions > 0 && result.Expansions >= opts.MaxExpansions {
			log.Warnw("expansion bound reached", "expansions", result.Expansions)
			return result, nil
		}
		result.Expansions++
		if result.Expansions%10000 == 0 {
			log.Debugw("progress", "expansions", result.Expansions, "open", open.Len(), "best_h", n.h)
		}

		ops := gen.ApplicableActions(n.state)
		successors := make([]*node, 0, len(ops))
		for _, op := range ops {
			succ := gen.Successor(op, n.state)
			result.Generated++
			fp := succ.Fingerprint()
			if closed[fp] {
				continue
			}
			closed[fp] = true
			counter++
			successors = append(successors, &node{state: succ, parent: n, op: op, order: counter})
		}

		if err := evaluate(ctx, successors, h, opts.Workers); err != nil {
			return result, err
		}
		for _, s := range successors {
			heap.Push(open, s)
		}
	}

	log.Infow("open list exhausted, no solution", "expansions", result.Expansions)
	return result, nil
}

// evaluate fills in the heuristic value of each new node, in parallel when
// more than one worker is configured.
func evaluate(ctx context.Context, nodes []*node, h heuristic.Heuristic, workers int) error {
	if workers <= 1 || len(nodes) < 2 {
		for _, n := range nodes {
			n.h = h.Evaluate(n.state)
		}
		return nil
	}
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, n := range nodes {
		n := n
		g.Go(func() error {
			n.h = h.Evaluate(n.state)
			return nil
		})
	}
	return g.Wait()
}

// extractPlan walks the parent links back to the root and resolves each
// operator to schema and object names.
func extractPlan(t *task.Task, goal *node) []Step {
	var steps []Step
	for n := goal; n.parent != nil; n = n.parent {
		schema := &t.Schemas[n.op.Schema]
		args := make([]string, len(n.op.Instantiation))
		for i, obj := range n.op.Instantiation {
			args[i] = t.Objects[obj].Name
		}
		steps = append(steps, Step{Schema: schema.Name, Arguments: args})
	}
	// Reverse into root-to-goal order.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
