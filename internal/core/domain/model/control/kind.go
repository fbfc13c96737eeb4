package control

import (
	"fmt"

	"shopfloor/internal/pkg/errs"
)

// Kind is an operator action recorded against one stage of an entity.
//
// State machine per (entity, stage):
//
//	none ──> inicio ──┬──> pausa ──> retorno ──┐
//	          ▲       │      │                  │
//	          │       │      └─(policy)─┐       │
//	          │       └──────> fim <────┴───────┘
//	          └────────────────┘
//	           (stage restart)
//
// None is the state of a stage without control events and is never a valid
// requested action.
type Kind int

const (
	None Kind = iota
	Inicio
	Pausa
	Retorno
	Fim
)

var kindCodes = map[Kind]string{
	None:    "none",
	Inicio:  "inicio",
	Pausa:   "pausa",
	Retorno: "retorno",
	Fim:     "fim",
}

// ParseKind accepts exactly the four action codes.
func ParseKind(code string) (Kind, error) {
	for k, c := range kindCodes {
		if k != None && c == code {
			return k, nil
		}
	}
	return None, errs.NewValueIsInvalidErrorWithCause(
		"control kind is invalid",
		fmt.Errorf("%q is not one of inicio, pausa, retorno, fim", code),
	)
}

func (k Kind) String() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return "unknown"
}

// Validate rejects None and out-of-range values.
func (k Kind) Validate() error {
	if k < Inicio || k > Fim {
		return errs.NewValueIsInvalidErrorWithCause("control kind is invalid", fmt.Errorf("%d is not an action", k))
	}
	return nil
}

// Opens reports whether a stage whose last action is k has work in progress.
func (k Kind) Opens() bool {
	return k == Inicio || k == Retorno
}
