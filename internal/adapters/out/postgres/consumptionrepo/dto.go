// Package consumptionrepo persists consumption records and sub-assembly
// bindings for production and repair.
package consumptionrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// Partial unique indexes over active records.
const (
	ActiveScanIndex = "idx_consumption_active_scan"
	ActiveSlotIndex = "idx_consumption_active_slot"
)

// RecordDTO is the consumption_records row shared by every context kind.
type RecordDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerKind    string     `gorm:"size:32;not null"`
	OwnerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ContextKind  string     `gorm:"size:32;not null;uniqueIndex:idx_consumption_active_slot,priority:2,where:ended_at IS NULL"`
	ContextRef   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_consumption_active_slot,priority:3,where:ended_at IS NULL"`
	ItemCode     string     `gorm:"size:64;not null;uniqueIndex:idx_consumption_active_slot,priority:1,where:ended_at IS NULL"`
	ScanIdentity string     `gorm:"size:128;not null;uniqueIndex:idx_consumption_active_scan,where:ended_at IS NULL"`
	RawScan      string     `gorm:"type:text;not null"`
	ActorID      string     `gorm:"size:64;not null"`
	StartedAt    time.Time  `gorm:"not null"`
	EndedAt      *time.Time
	ReplacedBy   *uuid.UUID `gorm:"type:uuid"`
}

func (RecordDTO) TableName() string {
	return "consumption_records"
}

// SubAssemblyDTO is the sub_assemblies row.
type SubAssemblyDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LabelSerial       string     `gorm:"size:128;not null;uniqueIndex"`
	ItemCode          string     `gorm:"size:64;not null"`
	ProductionOrderID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FinalUnitID       *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time  `gorm:"not null"`
	BoundAt           *time.Time
}

func (SubAssemblyDTO) TableName() string {
	return "sub_assemblies"
}

func recordFromDomain(r *consumption.Record) RecordDTO {
	return RecordDTO{
		ID:           r.ID().Google(),
		OwnerKind:    r.Owner().Kind.String(),
		OwnerID:      r.Owner().ID.Google(),
		ContextKind:  r.Context().Kind.String(),
		ContextRef:   r.Context().Ref.Google(),
		ItemCode:     r.ItemCode(),
		ScanIdentity: r.ScanIdentity(),
		RawScan:      r.RawScan(),
		ActorID:      r.ActorID(),
		StartedAt:    r.StartedAt(),
		EndedAt:      r.EndedAt(),
		ReplacedBy:   googlePtr(r.ReplacedBy()),
	}
}

func recordToDomain(dto RecordDTO) (*consumption.Record, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerKind, err := kernel.ParseEntityKind(dto.OwnerKind)
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromGoogle(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	ctxKind, err := consumption.ParseContextKind(dto.ContextKind)
	if err != nil {
		return nil, err
	}
	ctxRef, err := kernel.UUIDFromGoogle(dto.ContextRef)
	if err != nil {
		return nil, err
	}
	replacedBy, err := kernelPtr(dto.ReplacedBy)
	if err != nil {
		return nil, err
	}

	return consumption.RestoreRecord(
		id,
		kernel.EntityRef{Kind: ownerKind, ID: ownerID},
		consumption.Context{Kind: ctxKind, Ref: ctxRef},
		dto.ItemCode,
		dto.ScanIdentity,
		dto.RawScan,
		dto.ActorID,
		dto.StartedAt,
		dto.EndedAt,
		replacedBy,
	)
}

func subAssemblyFromDomain(s *consumption.SubAssembly) SubAssemblyDTO {
	return SubAssemblyDTO{
		ID:                s.ID().Google(),
		LabelSerial:       s.LabelSerial(),
		ItemCode:          s.ItemCode(),
		ProductionOrderID: s.ProductionOrderID().Google(),
		FinalUnitID:       googlePtr(s.FinalUnitID()),
		CreatedAt:         s.CreatedAt(),
		BoundAt:           s.BoundAt(),
	}
}

func subAssemblyToDomain(dto SubAssemblyDTO) (*consumption.SubAssembly, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.ProductionOrderID)
	if err != nil {
		return nil, err
	}
	unitID, err := kernelPtr(dto.FinalUnitID)
	if err != nil {
		return nil, err
	}
	return consumption.RestoreSubAssembly(id, dto.LabelSerial, dto.ItemCode, orderID, unitID, dto.CreatedAt, dto.BoundAt)
}

func googlePtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	g := id.Google()
	return &g
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
