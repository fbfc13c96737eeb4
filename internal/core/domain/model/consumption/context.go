package consumption

import (
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

// ContextKind is what a consumed part is consumed into.
type ContextKind int

const (
	UnknownContext ContextKind = iota
	FinalUnitContext
	SubAssemblyContext
	RepairTicketContext
)

var contextKindCodes = map[ContextKind]string{
	FinalUnitContext:    "final_unit",
	SubAssemblyContext:  "sub_assembly",
	RepairTicketContext: "repair_ticket",
}

func ParseContextKind(code string) (ContextKind, error) {
	for k, c := range contextKindCodes {
		if c == code {
			return k, nil
		}
	}
	return UnknownContext, errs.NewValueIsInvalidErrorWithCause("context kind is invalid", fmt.Errorf("%q is not a consumption context", code))
}

func (k ContextKind) String() string {
	if c, ok := contextKindCodes[k]; ok {
		return c
	}
	return "unknown"
}

// Context is the identity of the thing parts are consumed into: a final
// unit, a sub-assembly or a repair ticket.
type Context struct {
	Kind ContextKind
	Ref  kernel.UUID
}

func NewContext(kind ContextKind, ref kernel.UUID) (Context, error) {
	if _, ok := contextKindCodes[kind]; !ok {
		return Context{}, errs.NewValueIsInvalidErrorWithCause("context kind is invalid", fmt.Errorf("%d is not a consumption context", kind))
	}
	if err := ref.Validate(); err != nil {
		return Context{}, err
	}
	return Context{Kind: kind, Ref: ref}, nil
}

func (c Context) IsEqual(other Context) bool {
	return c.Kind == other.Kind && c.Ref.IsEqual(other.Ref)
}

func (c Context) String() string {
	return c.Kind.String() + " " + c.Ref.String()
}
