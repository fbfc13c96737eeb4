package production

import (
	"shopfloor/internal/core/domain/model/workflow"
)

// Production stages, persisted as the order status.
//
//	aguardando ──> montagem ──┬──> teste ──┬──> embalagem ──> finalizada
//	                          │            └───────────────────^
//	                          ├──────────────> embalagem
//	                          └──────────────────────────────> finalizada
//
// Every non-terminal stage may also move to cancelada.
const (
	Aguardando workflow.Stage = "aguardando"
	Montagem   workflow.Stage = "montagem"
	Teste      workflow.Stage = "teste"
	Embalagem  workflow.Stage = "embalagem"
	Finalizada workflow.Stage = "finalizada"
	Cancelada  workflow.Stage = "cancelada"
)

// Guard conditions reported by GuardViolationError.
const (
	ConditionSubAssembliesRegistered = "registered sub-assemblies must reach the order quantity"
	ConditionFinalUnitsGenerated     = "generated final units must reach the order quantity"
	ConditionNoOpenSequence          = "no stage may have an open control sequence"
)

// Facts is what the production graph reads to resolve and guard transitions.
type Facts struct {
	Kind            Kind
	Quantity        int
	RequiresTesting bool
	FinalUnits      int
	SubAssemblies   int
	OpenStages      []workflow.Stage
}

// Progress is the derived state an application service collects before
// asking an order to advance.
type Progress struct {
	FinalUnits    int
	SubAssemblies int
	OpenStages    []workflow.Stage
}

// Graph is the production order workflow.
var Graph = workflow.MustGraph(workflow.Definition[Facts]{
	Initial: Aguardando,
	Stages:  []workflow.Stage{Aguardando, Montagem, Teste, Embalagem, Finalizada, Cancelada},
	Edges: map[workflow.Stage][]workflow.Stage{
		Aguardando: {Montagem},
		Montagem:   {Teste, Embalagem, Finalizada},
		Teste:      {Embalagem, Finalizada},
		Embalagem:  {Finalizada},
	},
	Terminal: []workflow.Stage{Finalizada},
	AnyState: []workflow.Stage{Cancelada},
	Guards: []workflow.Guard[Facts]{
		{
			From:      Montagem,
			Condition: ConditionSubAssembliesRegistered,
			Holds: func(f Facts) bool {
				return f.Kind != SubAssembly || f.SubAssemblies >= f.Quantity
			},
		},
		{
			From:      Montagem,
			Condition: ConditionFinalUnitsGenerated,
			Holds: func(f Facts) bool {
				return f.Kind != FinalProduct || f.FinalUnits >= f.Quantity
			},
		},
		{
			To:        Finalizada,
			Condition: ConditionNoOpenSequence,
			Holds:     func(f Facts) bool { return len(f.OpenStages) == 0 },
		},
	},
	Resolve: resolve,
})

func resolve(current workflow.Stage, f Facts) (workflow.Stage, bool) {
	switch current {
	case Montagem:
		if f.RequiresTesting {
			return Teste, true
		}
		if f.FinalUnits > 0 {
			return Embalagem, true
		}
		return Finalizada, true
	case Teste:
		if f.FinalUnits > 0 {
			return Embalagem, true
		}
		return Finalizada, true
	default:
		return "", false
	}
}
