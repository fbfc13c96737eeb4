package repair

import "shopfloor/internal/core/domain/model/workflow"

// Repair stages.
//
//	recebida ──> diagnostico ──┬──> reparo ──> testes ──┬──> entregue
//	                           │      ▲                 │
//	                           │      └─────────────────┘
//	                           └──> aguardando_aprovacao ──┬──> reparo
//	                                                       ├──> devolvida
//	                                                       └──> descarte
//
// Every non-terminal stage may also move to cancelada.
const (
	Recebida            workflow.Stage = "recebida"
	Diagnostico         workflow.Stage = "diagnostico"
	AguardandoAprovacao workflow.Stage = "aguardando_aprovacao"
	Reparo              workflow.Stage = "reparo"
	Testes              workflow.Stage = "testes"
	Entregue            workflow.Stage = "entregue"
	Devolvida           workflow.Stage = "devolvida"
	Descarte            workflow.Stage = "descarte"
	Cancelada           workflow.Stage = "cancelada"
)

const (
	ConditionBudgetApproved = "repairs outside warranty require an approved budget"
	ConditionNoOpenSequence = "no stage may have an open control sequence"
)

type Facts struct {
	UnderWarranty  bool
	BudgetApproved bool
	OpenStages     []workflow.Stage
}

var Graph = workflow.MustGraph(workflow.Definition[Facts]{
	Initial: Recebida,
	Stages: []workflow.Stage{
		Recebida, Diagnostico, AguardandoAprovacao, Reparo, Testes,
		Entregue, Devolvida, Descarte, Cancelada,
	},
	Edges: map[workflow.Stage][]workflow.Stage{
		Recebida:            {Diagnostico},
		Diagnostico:         {Reparo, AguardandoAprovacao},
		AguardandoAprovacao: {Reparo, Devolvida, Descarte},
		Reparo:              {Testes},
		Testes:              {Reparo, Entregue},
	},
	Terminal: []workflow.Stage{Entregue, Devolvida, Descarte},
	AnyState: []workflow.Stage{Cancelada},
	Guards: []workflow.Guard[Facts]{
		{
			To:        Reparo,
			Condition: ConditionBudgetApproved,
			Holds:     func(f Facts) bool { return f.UnderWarranty || f.BudgetApproved },
		},
		{
			To:        Entregue,
			Condition: ConditionNoOpenSequence,
			Holds:     func(f Facts) bool { return len(f.OpenStages) == 0 },
		},
	},
	Resolve: resolve,
})

func resolve(current workflow.Stage, f Facts) (workflow.Stage, bool) {
	switch current {
	case Diagnostico:
		if f.UnderWarranty {
			return Reparo, true
		}
		return AguardandoAprovacao, true
	case AguardandoAprovacao:
		if f.BudgetApproved {
			return Reparo, true
		}
		return "", false
	case Testes:
		return Entregue, true
	default:
		return "", false
	}
}
