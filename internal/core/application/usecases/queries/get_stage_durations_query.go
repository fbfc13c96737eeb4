// Package queries contains read operations for retrieving system state.
// Queries never claim an entity and never write; every figure they return is
// derived on read from the event log and the current snapshots.
package queries

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/guard"
)

var ErrGetStageDurationsQueryIsNotConstructed = errors.New(
	"GetStageDurationsQuery must be created via NewGetStageDurationsQuery constructor",
)

// GetStageDurationsQuery reports the active business time an entity spent in
// each stage it worked on.
//
// Example:
//
//	query, err := NewGetStageDurationsQuery(order.Ref())
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, query)
//	fmt.Printf("%s spent %s in montagem\n", report.Entity, report.Stages[0].Active)
type GetStageDurationsQuery struct {
	entity kernel.EntityRef

	guard guard.ConstructorGuard
}

func NewGetStageDurationsQuery(entity kernel.EntityRef) (GetStageDurationsQuery, error) {
	if _, err := kernel.NewEntityRef(entity.Kind, entity.ID); err != nil {
		return GetStageDurationsQuery{}, err
	}
	return GetStageDurationsQuery{entity: entity, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStageDurationsQuery) Entity() kernel.EntityRef { return q.entity }

func (q GetStageDurationsQuery) Validate() error {
	return q.guard.Validate(ErrGetStageDurationsQueryIsNotConstructed)
}

type StageDurationView struct {
	Stage  workflow.Stage
	Active time.Duration
	Open   bool
}

// GetStageDurationsQueryResponse lists stages in the order work first started
// in them. MeasuredAt is the instant open stages were measured up to.
type GetStageDurationsQueryResponse struct {
	Entity     kernel.EntityRef
	Status     workflow.Stage
	Version    int
	Stages     []StageDurationView
	Total      time.Duration
	MeasuredAt time.Time
}
