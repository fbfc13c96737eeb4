package shipment

import "shopfloor/internal/core/domain/model/workflow"

// Shipment stages: separacao ──> conferencia ──> expedida, and cancelada from
// any open stage.
const (
	Separacao   workflow.Stage = "separacao"
	Conferencia workflow.Stage = "conferencia"
	Expedida    workflow.Stage = "expedida"
	Cancelada   workflow.Stage = "cancelada"
)

const ConditionNoOpenSequence = "no stage may have an open control sequence"

type Facts struct {
	OpenStages []workflow.Stage
}

var Graph = workflow.MustGraph(workflow.Definition[Facts]{
	Initial: Separacao,
	Stages:  []workflow.Stage{Separacao, Conferencia, Expedida, Cancelada},
	Edges: map[workflow.Stage][]workflow.Stage{
		Separacao:   {Conferencia},
		Conferencia: {Expedida},
	},
	Terminal: []workflow.Stage{Expedida},
	AnyState: []workflow.Stage{Cancelada},
	Guards: []workflow.Guard[Facts]{
		{
			To:        Expedida,
			Condition: ConditionNoOpenSequence,
			Holds:     func(f Facts) bool { return len(f.OpenStages) == 0 },
		},
	},
})
