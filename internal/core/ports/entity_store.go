package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
)

// EntitySnapshot is the (status, version) pair a caller claims against.
type EntitySnapshot struct {
	Entity  kernel.EntityRef
	Status  workflow.Stage
	Version int
}

// ClaimRequest asks to move Entity from (ExpectedVersion, ExpectedStatus) to
// (ExpectedVersion+1, NextStatus). An empty NextStatus keeps the status.
type ClaimRequest struct {
	Entity          kernel.EntityRef
	ExpectedVersion int
	ExpectedStatus  workflow.Stage
	NextStatus      workflow.Stage
}

// Target is the status the entity has after a successful claim.
func (r ClaimRequest) Target() workflow.Stage {
	if r.NextStatus == "" {
		return r.ExpectedStatus
	}
	return r.NextStatus
}

// VersionedEntityStore serialises mutations of one entity. Every mutating
// command claims the entity inside its transaction before writing dependent
// rows; of two claims made against the same version exactly one succeeds.
type VersionedEntityStore interface {
	// Load returns the current snapshot or *errs.ObjectNotFoundError.
	Load(ctx context.Context, entity kernel.EntityRef) (EntitySnapshot, error)

	// Claim is a conditional update. When the entity is not at the expected
	// version and status it returns *errs.ConcurrencyConflictError and
	// changes nothing. It never retries.
	Claim(ctx context.Context, req ClaimRequest) error
}
