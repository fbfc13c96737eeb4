package event

import (
	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/workflow"
)

// LastControl returns the most recent action recorded for stage in events,
// which must be in insertion order. None when the stage has no control
// events.
func LastControl(events []*Event, stage workflow.Stage) control.Kind {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].stage != stage {
			continue
		}
		if k, ok := events[i].Control(); ok {
			return k
		}
	}
	return control.None
}

// OpenStages lists, in order of first appearance, the stages whose last
// control action is inicio or retorno.
func OpenStages(events []*Event) []workflow.Stage {
	last := make(map[workflow.Stage]control.Kind)
	var order []workflow.Stage
	for _, e := range events {
		k, ok := e.Control()
		if !ok {
			continue
		}
		if _, seen := last[e.stage]; !seen {
			order = append(order, e.stage)
		}
		last[e.stage] = k
	}

	var open []workflow.Stage
	for _, s := range order {
		if last[s].Opens() {
			open = append(open, s)
		}
	}
	return open
}
