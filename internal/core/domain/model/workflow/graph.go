package workflow

import (
	"errors"
	"fmt"
	"slices"

	"shopfloor/internal/pkg/errs"
)

// Stage is a named node of a stage graph. Its value is the persisted status.
type Stage string

func (s Stage) String() string {
	return string(s)
}

// Guard is a precondition on a transition. Empty From or To match every
// stage. Guards never apply to transitions into any-state terminals.
type Guard[F any] struct {
	From      Stage
	To        Stage
	Condition string
	Holds     func(facts F) bool
}

// Resolver picks the default successor of current from facts. It reports
// false when it has no opinion, in which case a stage with exactly one
// successor advances to it.
type Resolver[F any] func(current Stage, facts F) (Stage, bool)

// Definition describes a stage graph. Stages lists every stage in display
// order; Edges, Terminal and AnyState may only reference listed stages.
type Definition[F any] struct {
	Initial  Stage
	Stages   []Stage
	Edges    map[Stage][]Stage
	Terminal []Stage
	// AnyState stages are terminals reachable from every non-terminal stage.
	AnyState []Stage
	Guards   []Guard[F]
	Resolve  Resolver[F]
}

// Graph is an immutable, validated stage graph over facts of type F. It is
// safe for concurrent use.
type Graph[F any] struct {
	initial  Stage
	stages   []Stage
	edges    map[Stage][]Stage
	terminal map[Stage]bool
	anyState map[Stage]bool
	guards   []Guard[F]
	resolve  Resolver[F]
}

var ErrGraphIsInvalid = errors.New("stage graph is invalid")

// NewGraph validates def and builds the graph.
//
// Returns an error wrapping ErrGraphIsInvalid when:
//   - a referenced stage is not listed in Stages
//   - the initial stage is missing or terminal
//   - a terminal stage has outgoing edges
//   - a guard has no Holds function
func NewGraph[F any](def Definition[F]) (*Graph[F], error) {
	known := make(map[Stage]bool, len(def.Stages))
	for _, s := range def.Stages {
		if s == "" || known[s] {
			return nil, fmt.Errorf("%w: stage %q is empty or duplicated", ErrGraphIsInvalid, s)
		}
		known[s] = true
	}

	check := func(s Stage) error {
		if !known[s] {
			return fmt.Errorf("%w: stage %q is not listed", ErrGraphIsInvalid, s)
		}
		return nil
	}

	g := &Graph[F]{
		initial:  def.Initial,
		stages:   slices.Clone(def.Stages),
		edges:    make(map[Stage][]Stage, len(def.Edges)),
		terminal: make(map[Stage]bool),
		anyState: make(map[Stage]bool),
		guards:   slices.Clone(def.Guards),
		resolve:  def.Resolve,
	}

	if err := check(def.Initial); err != nil {
		return nil, err
	}
	for _, s := range def.Terminal {
		if err := check(s); err != nil {
			return nil, err
		}
		g.terminal[s] = true
	}
	for _, s := range def.AnyState {
		if err := check(s); err != nil {
			return nil, err
		}
		g.terminal[s] = true
		g.anyState[s] = true
	}
	if g.terminal[def.Initial] {
		return nil, fmt.Errorf("%w: initial stage %q is terminal", ErrGraphIsInvalid, def.Initial)
	}
	for from, targets := range def.Edges {
		if err := check(from); err != nil {
			return nil, err
		}
		if g.terminal[from] && len(targets) > 0 {
			return nil, fmt.Errorf("%w: terminal stage %q has successors", ErrGraphIsInvalid, from)
		}
		for _, to := range targets {
			if err := check(to); err != nil {
				return nil, err
			}
		}
		g.edges[from] = slices.Clone(targets)
	}
	for _, gd := range def.Guards {
		if gd.Holds == nil {
			return nil, fmt.Errorf("%w: guard %q has no condition function", ErrGraphIsInvalid, gd.Condition)
		}
	}

	return g, nil
}

// MustGraph is NewGraph for package-level graph variables.
func MustGraph[F any](def Definition[F]) *Graph[F] {
	g, err := NewGraph(def)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Graph[F]) Initial() Stage {
	return g.initial
}

// Stages returns every stage in display order.
func (g *Graph[F]) Stages() []Stage {
	return slices.Clone(g.stages)
}

func (g *Graph[F]) Contains(s Stage) bool {
	return slices.Contains(g.stages, s)
}

func (g *Graph[F]) IsTerminal(s Stage) bool {
	return g.terminal[s]
}

// Successors lists the declared targets of current followed by the
// any-state terminals. Terminal stages have none.
func (g *Graph[F]) Successors(current Stage) []Stage {
	if !g.Contains(current) || g.terminal[current] {
		return nil
	}
	out := slices.Clone(g.edges[current])
	for _, s := range g.stages {
		if g.anyState[s] && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// CanAdvance reports whether target is structurally reachable from current in
// one step. Guards are not evaluated.
func (g *Graph[F]) CanAdvance(current, target Stage) bool {
	return slices.Contains(g.Successors(current), target)
}

// NextStage resolves the default successor of current.
//
// Returns:
//   - errs.ErrEntityIsClosed if current is terminal
//   - *errs.ValueIsRequiredError if current branches and facts do not choose
func (g *Graph[F]) NextStage(current Stage, facts F) (Stage, error) {
	if err := g.ensureKnown(current); err != nil {
		return "", err
	}
	if g.terminal[current] {
		return "", errs.ErrEntityIsClosed
	}
	if g.resolve != nil {
		if next, ok := g.resolve(current, facts); ok {
			return next, nil
		}
	}
	if targets := g.edges[current]; len(targets) == 1 {
		return targets[0], nil
	}
	return "", errs.NewValueIsRequiredErrorWithCause(
		"target stage",
		fmt.Errorf("%s has no single default successor", current),
	)
}

// Check validates the transition current -> target for subject.
//
// Returns:
//   - errs.ErrEntityIsClosed if current is terminal
//   - *errs.TransitionIsInvalidError if target is not a successor
//   - *errs.GuardViolationError for the first guard that does not hold
func (g *Graph[F]) Check(subject string, current, target Stage, facts F) error {
	if err := g.ensureKnown(current); err != nil {
		return err
	}
	if g.terminal[current] {
		return errs.ErrEntityIsClosed
	}
	if !g.CanAdvance(current, target) {
		return errs.NewTransitionIsInvalidError(subject, current.String(), target.String())
	}
	if g.anyState[target] {
		return nil
	}
	for _, gd := range g.guards {
		if gd.From != "" && gd.From != current {
			continue
		}
		if gd.To != "" && gd.To != target {
			continue
		}
		if !gd.Holds(facts) {
			return errs.NewGuardViolationError(subject, current.String(), target.String(), gd.Condition)
		}
	}
	return nil
}

// Advance resolves an empty target with NextStage and checks the transition.
func (g *Graph[F]) Advance(subject string, current, target Stage, facts F) (Stage, error) {
	if target == "" {
		next, err := g.NextStage(current, facts)
		if err != nil {
			return "", err
		}
		target = next
	}
	if err := g.Check(subject, current, target, facts); err != nil {
		return "", err
	}
	return target, nil
}

func (g *Graph[F]) ensureKnown(s Stage) error {
	if !g.Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid", fmt.Errorf("%q is not a stage of this workflow", s))
	}
	return nil
}

// StatusEventKind is the audit marker appended when an entity enters stage.
func StatusEventKind(stage Stage) string {
	return "status_" + stage.String()
}
