package services

import (
	"fmt"

	"shopfloor/internal/core/domain/model/bom"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/kernel"
)

// ContextCandidate is a consumption context together with the BOM that
// decides which items may be consumed into it.
type ContextCandidate struct {
	Context consumption.Context
	BOM     bom.BOM
}

// ConsumptionContextResolver decides which context a scanned item is consumed
// into when working on a final unit that may hold bound sub-assemblies.
//
// Business rules:
//   - An item listed in the final product BOM is consumed into the final unit
//   - Otherwise it is consumed into the one bound sub-assembly whose BOM lists it
//   - Several matching sub-assemblies are ambiguous unless the caller names one
//   - A named sub-assembly wins over the final product BOM
type ConsumptionContextResolver struct{}

func NewConsumptionContextResolver() ConsumptionContextResolver {
	return ConsumptionContextResolver{}
}

// Resolve returns the context for itemCode.
//
// Parameters:
//   - itemCode: the scanned item code
//   - primary: the final unit (or repair ticket) context and its product BOM
//   - subAssemblies: bound sub-assembly contexts and their BOMs
//   - preferred: optional sub-assembly the caller chose
//
// Returns:
//   - *consumption.AmbiguousContextError when several sub-assemblies match
//   - *consumption.ItemNotInBOMError when nothing matches
func (ConsumptionContextResolver) Resolve(
	itemCode string,
	primary ContextCandidate,
	subAssemblies []ContextCandidate,
	preferred *kernel.UUID,
) (consumption.Context, error) {
	var matches []ContextCandidate
	for _, c := range subAssemblies {
		if c.BOM.Contains(itemCode) {
			matches = append(matches, c)
		}
	}

	if preferred != nil {
		for _, c := range matches {
			if c.Context.Ref.IsEqual(*preferred) {
				return c.Context, nil
			}
		}
		return consumption.Context{}, consumption.Invalid("sub-assembly is invalid",
			fmt.Errorf("%s does not list item %s or is not bound to the unit", preferred, itemCode))
	}

	if primary.BOM.Contains(itemCode) {
		return primary.Context, nil
	}

	switch len(matches) {
	case 0:
		return consumption.Context{}, &consumption.ItemNotInBOMError{ItemCode: itemCode}
	case 1:
		return matches[0].Context, nil
	default:
		ids := make([]kernel.UUID, len(matches))
		for i, m := range matches {
			ids[i] = m.Context.Ref
		}
		return consumption.Context{}, &consumption.AmbiguousContextError{ItemCode: itemCode, Candidates: ids}
	}
}
