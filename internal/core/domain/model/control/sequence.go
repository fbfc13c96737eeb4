package control

import (
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// Policy holds the per-entity-kind variations of the sequence rules.
type Policy struct {
	// AllowEndAfterPause accepts fim directly after pausa.
	AllowEndAfterPause bool
}

// PolicyFor returns the policy used for kind. Repair tickets accept fim after
// pausa; production orders and shipment batches require a retorno first.
func PolicyFor(kind kernel.EntityKind) Policy {
	return Policy{AllowEndAfterPause: kind == kernel.RepairTicket}
}

// Rule texts carried by errs.SequenceError.
const (
	RuleInicio        = "inicio requires none or fim"
	RulePausa         = "pausa requires inicio or retorno"
	RuleRetorno       = "retorno requires pausa"
	RuleFim           = "fim requires inicio or retorno"
	RuleFimAfterPause = "fim requires inicio, retorno or pausa"
)

// Validate decides whether requested may follow last within one stage.
//
// Returns:
//   - nil if the transition is accepted
//   - *errs.ValueIsInvalidError if requested is not an action
//   - *errs.SequenceError naming the violated rule otherwise
func Validate(last, requested Kind, policy Policy) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	var rule string
	switch requested {
	case Inicio:
		if last == None || last == Fim {
			return nil
		}
		rule = RuleInicio
	case Pausa:
		if last.Opens() {
			return nil
		}
		rule = RulePausa
	case Retorno:
		if last == Pausa {
			return nil
		}
		rule = RuleRetorno
	case Fim:
		if last.Opens() {
			return nil
		}
		if policy.AllowEndAfterPause {
			if last == Pausa {
				return nil
			}
			rule = RuleFimAfterPause
		} else {
			rule = RuleFim
		}
	}

	return errs.NewSequenceError("", last.String(), requested.String(), rule)
}

// Sequence is the control state of one stage of one entity.
type Sequence struct {
	Stage string
	Last  Kind
}

// Accept validates requested against the sequence and, on success, returns
// the sequence that results from it.
func (s Sequence) Accept(requested Kind, policy Policy) (Sequence, error) {
	if err := Validate(s.Last, requested, policy); err != nil {
		if seqErr, ok := err.(*errs.SequenceError); ok {
			seqErr.Stage = s.Stage
		}
		return s, err
	}
	return Sequence{Stage: s.Stage, Last: requested}, nil
}

// IsOpen reports whether the stage has work in progress.
func (s Sequence) IsOpen() bool {
	return s.Last.Opens()
}
