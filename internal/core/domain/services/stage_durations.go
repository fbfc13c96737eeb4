package services

import (
	"time"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/workflow"
)

// StageDuration is the active business time spent in one stage.
type StageDuration struct {
	Stage  workflow.Stage
	Active time.Duration
	// Open is true when the stage was still running at the measurement instant.
	Open bool
}

type StageDurationReport struct {
	Stages []StageDuration
	Total  time.Duration
}

// StageDurations pairs every inicio or retorno with the next pausa or fim of
// the same stage and sums the business time between them. A stage still
// running is measured up to now. Events must be in insertion order; audit
// events are ignored.
func (a *BusinessHoursAccountant) StageDurations(events []*event.Event, now time.Time) StageDurationReport {
	type running struct {
		since  *time.Time
		active time.Duration
	}

	byStage := make(map[workflow.Stage]*running)
	var order []workflow.Stage

	for _, e := range events {
		k, ok := e.Control()
		if !ok {
			continue
		}
		r, seen := byStage[e.Stage()]
		if !seen {
			r = &running{}
			byStage[e.Stage()] = r
			order = append(order, e.Stage())
		}

		at := e.CreatedAt()
		switch {
		case k.Opens():
			if r.since == nil {
				r.since = &at
			}
		default:
			if r.since != nil {
				r.active += a.Active(*r.since, at)
				r.since = nil
			}
		}
	}

	report := StageDurationReport{Stages: make([]StageDuration, 0, len(order))}
	for _, s := range order {
		r := byStage[s]
		sd := StageDuration{Stage: s, Active: r.active, Open: r.since != nil}
		if r.since != nil {
			sd.Active += a.Active(*r.since, now)
		}
		report.Stages = append(report.Stages, sd)
		report.Total += sd.Active
	}
	return report
}
