// Package entitystore implements the versioned entity store over the
// status and version columns of the aggregate tables.
package entitystore

import (
	"context"
	"errors"
	"fmt"

	"shopfloor/internal/adapters/out/postgres/productionrepo"
	"shopfloor/internal/adapters/out/postgres/repairrepo"
	"shopfloor/internal/adapters/out/postgres/shipmentrepo"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const tracerName = "shopfloor/adapters/out/postgres/entitystore"

var tables = map[kernel.EntityKind]string{
	kernel.ProductionOrder: productionrepo.OrderDTO{}.TableName(),
	kernel.ShipmentBatch:   shipmentrepo.BatchDTO{}.TableName(),
	kernel.RepairTicket:    repairrepo.TicketDTO{}.TableName(),
}

// GormEntityStore implements ports.VersionedEntityStore.
type GormEntityStore struct {
	db     *gorm.DB
	tracer trace.Tracer
}

func NewGormEntityStore(db *gorm.DB) *GormEntityStore {
	return &GormEntityStore{db: db, tracer: otel.Tracer(tracerName)}
}

type snapshotRow struct {
	Status  string
	Version int
}

// Load reads the current status and version of entity.
func (s *GormEntityStore) Load(ctx context.Context, entity kernel.EntityRef) (ports.EntitySnapshot, error) {
	table, err := tableFor(entity.Kind)
	if err != nil {
		return ports.EntitySnapshot{}, err
	}

	var row snapshotRow
	err = s.db.WithContext(ctx).
		Table(table).
		Select("status, version").
		Where("id = ?", entity.ID.Google()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.EntitySnapshot{}, errs.NewObjectNotFoundError(entity.Kind.String(), entity.ID.String())
	}
	if err != nil {
		return ports.EntitySnapshot{}, err
	}

	return ports.EntitySnapshot{Entity: entity, Status: workflow.Stage(row.Status), Version: row.Version}, nil
}

// Claim runs the conditional update. Inside a transaction the updated row
// stays locked until commit, so a concurrent claim on the same version waits
// and then matches zero rows.
func (s *GormEntityStore) Claim(ctx context.Context, req ports.ClaimRequest) error {
	ctx, span := s.tracer.Start(ctx, "EntityStore.Claim", trace.WithAttributes(
		attribute.String("entity.kind", req.Entity.Kind.String()),
		attribute.String("entity.id", req.Entity.ID.String()),
		attribute.Int("entity.version", req.ExpectedVersion),
		attribute.String("entity.status", string(req.ExpectedStatus)),
		attribute.String("entity.next_status", string(req.Target())),
	))
	defer span.End()

	table, err := tableFor(req.Entity.Kind)
	if err != nil {
		span.RecordError(err)
		return err
	}

	result := s.db.WithContext(ctx).
		Table(table).
		Where("id = ? AND version = ? AND status = ?", req.Entity.ID.Google(), req.ExpectedVersion, string(req.ExpectedStatus)).
		Updates(map[string]any{
			"version": gorm.Expr("version + 1"),
			"status":  string(req.Target()),
		})
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "claim failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		conflict := errs.NewConcurrencyConflictError(
			req.Entity.Kind.String(), req.Entity.ID.String(), req.ExpectedVersion, string(req.ExpectedStatus))
		span.RecordError(conflict)
		span.SetStatus(codes.Error, "conflict")
		return conflict
	}
	return nil
}

func tableFor(kind kernel.EntityKind) (string, error) {
	table, ok := tables[kind]
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("entity kind", fmt.Errorf("%s has no versioned table", kind))
	}
	return table, nil
}
