package control_test

import (
	"testing"

	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidate_Table(t *testing.T) {
	strict := control.Policy{}
	lenient := control.Policy{AllowEndAfterPause: true}

	testCases := []struct {
		name      string
		last      control.Kind
		requested control.Kind
		policy    control.Policy
		rule      string
	}{
		{"none_inicio", control.None, control.Inicio, strict, ""},
		{"none_pausa", control.None, control.Pausa, strict, control.RulePausa},
		{"none_retorno", control.None, control.Retorno, strict, control.RuleRetorno},
		{"none_fim", control.None, control.Fim, strict, control.RuleFim},
		{"inicio_inicio", control.Inicio, control.Inicio, strict, control.RuleInicio},
		{"inicio_pausa", control.Inicio, control.Pausa, strict, ""},
		{"inicio_fim", control.Inicio, control.Fim, strict, ""},
		{"pausa_pausa", control.Pausa, control.Pausa, strict, control.RulePausa},
		{"pausa_retorno", control.Pausa, control.Retorno, strict, ""},
		{"pausa_fim_strict", control.Pausa, control.Fim, strict, control.RuleFim},
		{"pausa_fim_lenient", control.Pausa, control.Fim, lenient, ""},
		{"pausa_inicio", control.Pausa, control.Inicio, strict, control.RuleInicio},
		{"retorno_pausa", control.Retorno, control.Pausa, strict, ""},
		{"retorno_retorno", control.Retorno, control.Retorno, strict, control.RuleRetorno},
		{"retorno_fim", control.Retorno, control.Fim, strict, ""},
		{"fim_inicio_restart", control.Fim, control.Inicio, strict, ""},
		{"fim_fim", control.Fim, control.Fim, strict, control.RuleFim},
		{"fim_fim_lenient", control.Fim, control.Fim, lenient, control.RuleFimAfterPause},
		{"fim_pausa", control.Fim, control.Pausa, strict, control.RulePausa},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := control.Validate(tc.last, tc.requested, tc.policy)

			if tc.rule == "" {
				require.NoError(t, err)
				return
			}
			var seqErr *errs.SequenceError
			require.ErrorAs(t, err, &seqErr)
			assert.Equal(t, tc.rule, seqErr.Rule)
			assert.Equal(t, tc.last.String(), seqErr.Last)
			assert.Equal(t, tc.requested.String(), seqErr.Requested)
		})
	}
}

func TestValidate_RejectsNonActions(t *testing.T) {
	for _, k := range []control.Kind{control.None, control.Kind(9)} {
		err := control.Validate(control.Inicio, k, control.Policy{})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestParseKind(t *testing.T) {
	for _, code := range []string{"inicio", "pausa", "retorno", "fim"} {
		k, err := control.ParseKind(code)
		require.NoError(t, err)
		assert.Equal(t, code, k.String())
	}

	for _, code := range []string{"", "none", "INICIO", "restart"} {
		_, err := control.ParseKind(code)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, code)
	}
}

func TestSequence_Accept(t *testing.T) {
	t.Run("advances_state_and_names_stage_on_failure", func(t *testing.T) {
		seq := control.Sequence{Stage: "montagem"}

		seq, err := seq.Accept(control.Inicio, control.Policy{})
		require.NoError(t, err)
		assert.True(t, seq.IsOpen())

		seq, err = seq.Accept(control.Pausa, control.Policy{})
		require.NoError(t, err)
		assert.False(t, seq.IsOpen())

		_, err = seq.Accept(control.Pausa, control.Policy{})
		var seqErr *errs.SequenceError
		require.ErrorAs(t, err, &seqErr)
		assert.Equal(t, "montagem", seqErr.Stage)
		assert.Contains(t, err.Error(), "pausa requires inicio or retorno")
	})
}

func TestPolicyFor(t *testing.T) {
	assert.False(t, control.PolicyFor(kernel.ProductionOrder).AllowEndAfterPause)
	assert.False(t, control.PolicyFor(kernel.ShipmentBatch).AllowEndAfterPause)
	assert.True(t, control.PolicyFor(kernel.RepairTicket).AllowEndAfterPause)
}

// Accepted histories never contain two consecutive pausas, a retorno not
// directly after pausa, or an inicio while the stage is open.
func TestValidate_AcceptedHistoriesAreWellFormed(t *testing.T) {
	actions := []control.Kind{control.Inicio, control.Pausa, control.Retorno, control.Fim}

	rapid.Check(t, func(t *rapid.T) {
		policy := control.Policy{AllowEndAfterPause: rapid.Bool().Draw(t, "lenient")}
		requests := rapid.SliceOfN(rapid.SampledFrom(actions), 0, 40).Draw(t, "requests")

		last := control.None
		for _, req := range requests {
			err := control.Validate(last, req, policy)
			if err != nil {
				continue
			}
			switch req {
			case control.Inicio:
				if last != control.None && last != control.Fim {
					t.Fatalf("inicio accepted after %s", last)
				}
			case control.Pausa:
				if !last.Opens() {
					t.Fatalf("pausa accepted after %s", last)
				}
			case control.Retorno:
				if last != control.Pausa {
					t.Fatalf("retorno accepted after %s", last)
				}
			case control.Fim:
				if !last.Opens() && !(policy.AllowEndAfterPause && last == control.Pausa) {
					t.Fatalf("fim accepted after %s", last)
				}
			}
			last = req
		}
	})
}

// Rejections are pure: the same request is rejected again with the same rule.
func TestValidate_RejectionIsStable(t *testing.T) {
	kinds := []control.Kind{control.None, control.Inicio, control.Pausa, control.Retorno, control.Fim}

	rapid.Check(t, func(t *rapid.T) {
		last := rapid.SampledFrom(kinds).Draw(t, "last")
		req := rapid.SampledFrom(kinds[1:]).Draw(t, "requested")
		policy := control.Policy{AllowEndAfterPause: rapid.Bool().Draw(t, "lenient")}

		first := control.Validate(last, req, policy)
		second := control.Validate(last, req, policy)
		if (first == nil) != (second == nil) {
			t.Fatalf("validation not deterministic for %s -> %s", last, req)
		}
		if first != nil && first.Error() != second.Error() {
			t.Fatalf("rule changed: %v vs %v", first, second)
		}
	})
}
