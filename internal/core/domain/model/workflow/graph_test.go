package workflow_test

import (
	"testing"

	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type facts struct {
	ready  bool
	branch workflow.Stage
}

const (
	draft     workflow.Stage = "draft"
	review    workflow.Stage = "review"
	approved  workflow.Stage = "approved"
	rejected  workflow.Stage = "rejected"
	cancelled workflow.Stage = "cancelled"
)

func testGraph(t *testing.T) *workflow.Graph[facts] {
	t.Helper()
	g, err := workflow.NewGraph(workflow.Definition[facts]{
		Initial:  draft,
		Stages:   []workflow.Stage{draft, review, approved, rejected, cancelled},
		Edges:    map[workflow.Stage][]workflow.Stage{draft: {review}, review: {approved, rejected}},
		Terminal: []workflow.Stage{approved, rejected},
		AnyState: []workflow.Stage{cancelled},
		Guards: []workflow.Guard[facts]{
			{To: approved, Condition: "must be ready", Holds: func(f facts) bool { return f.ready }},
		},
		Resolve: func(current workflow.Stage, f facts) (workflow.Stage, bool) {
			if current == review && f.branch != "" {
				return f.branch, true
			}
			return "", false
		},
	})
	require.NoError(t, err)
	return g
}

func TestNewGraph_Validation(t *testing.T) {
	testCases := map[string]workflow.Definition[facts]{
		"unlisted_initial": {Initial: "x", Stages: []workflow.Stage{draft}},
		"terminal_initial": {Initial: draft, Stages: []workflow.Stage{draft}, Terminal: []workflow.Stage{draft}},
		"unlisted_target": {
			Initial: draft, Stages: []workflow.Stage{draft},
			Edges: map[workflow.Stage][]workflow.Stage{draft: {review}},
		},
		"terminal_with_edges": {
			Initial: draft, Stages: []workflow.Stage{draft, approved},
			Edges:    map[workflow.Stage][]workflow.Stage{draft: {approved}, approved: {draft}},
			Terminal: []workflow.Stage{approved},
		},
		"guard_without_func": {
			Initial: draft, Stages: []workflow.Stage{draft},
			Guards: []workflow.Guard[facts]{{Condition: "x"}},
		},
		"duplicated_stage": {Initial: draft, Stages: []workflow.Stage{draft, draft}},
	}

	for name, def := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := workflow.NewGraph(def)
			require.ErrorIs(t, err, workflow.ErrGraphIsInvalid)
		})
	}
}

func TestGraph_Structure(t *testing.T) {
	g := testGraph(t)

	assert.Equal(t, draft, g.Initial())
	assert.Equal(t, []workflow.Stage{draft, review, approved, rejected, cancelled}, g.Stages())
	assert.True(t, g.IsTerminal(approved))
	assert.True(t, g.IsTerminal(cancelled))
	assert.False(t, g.IsTerminal(review))

	assert.True(t, g.CanAdvance(draft, review))
	assert.True(t, g.CanAdvance(draft, cancelled))
	assert.False(t, g.CanAdvance(draft, approved))
	assert.False(t, g.CanAdvance(approved, cancelled))
	assert.Equal(t, []workflow.Stage{approved, rejected, cancelled}, g.Successors(review))
}

func TestGraph_NextStage(t *testing.T) {
	g := testGraph(t)

	t.Run("single_successor", func(t *testing.T) {
		next, err := g.NextStage(draft, facts{})
		require.NoError(t, err)
		assert.Equal(t, review, next)
	})

	t.Run("resolved_branch", func(t *testing.T) {
		next, err := g.NextStage(review, facts{branch: rejected})
		require.NoError(t, err)
		assert.Equal(t, rejected, next)
	})

	t.Run("unresolved_branch_requires_target", func(t *testing.T) {
		_, err := g.NextStage(review, facts{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("terminal_is_closed", func(t *testing.T) {
		_, err := g.NextStage(approved, facts{})
		assert.Equal(t, errs.ErrEntityIsClosed, err)
	})

	t.Run("unknown_stage", func(t *testing.T) {
		_, err := g.NextStage("nowhere", facts{})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestGraph_Check(t *testing.T) {
	g := testGraph(t)

	t.Run("guard_violation_names_condition", func(t *testing.T) {
		err := g.Check("doc 1", review, approved, facts{})

		var gv *errs.GuardViolationError
		require.ErrorAs(t, err, &gv)
		assert.Equal(t, "must be ready", gv.Condition)
		assert.Equal(t, "review", gv.From)
		assert.Equal(t, "approved", gv.To)
	})

	t.Run("guard_satisfied", func(t *testing.T) {
		require.NoError(t, g.Check("doc 1", review, approved, facts{ready: true}))
	})

	t.Run("cancellation_bypasses_guards", func(t *testing.T) {
		require.NoError(t, g.Check("doc 1", review, cancelled, facts{}))
	})

	t.Run("illegal_edge", func(t *testing.T) {
		err := g.Check("doc 1", draft, approved, facts{ready: true})
		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
	})

	t.Run("terminal_rejects_everything", func(t *testing.T) {
		assert.Equal(t, errs.ErrEntityIsClosed, g.Check("doc 1", rejected, cancelled, facts{}))
	})
}

func TestGraph_Advance(t *testing.T) {
	g := testGraph(t)

	next, err := g.Advance("doc 1", draft, "", facts{})
	require.NoError(t, err)
	assert.Equal(t, review, next)

	_, err = g.Advance("doc 1", review, "", facts{branch: approved})
	require.ErrorIs(t, err, errs.ErrGuardViolation)
}

// No sequence of advances ever leaves a terminal stage.
func TestGraph_TerminalIsAbsorbing(t *testing.T) {
	g := testGraph(t)
	stages := g.Stages()

	rapid.Check(t, func(t *rapid.T) {
		current := g.Initial()
		steps := rapid.SliceOfN(rapid.SampledFrom(stages), 1, 20).Draw(t, "targets")
		ready := rapid.Bool().Draw(t, "ready")

		closed := false
		for _, target := range steps {
			next, err := g.Advance("doc", current, target, facts{ready: ready})
			if closed {
				if err != errs.ErrEntityIsClosed {
					t.Fatalf("terminal %s accepted %s: %v", current, target, err)
				}
				continue
			}
			if err == nil {
				current = next
				closed = g.IsTerminal(current)
			}
		}
	})
}
