// Package shipmentrepo persists shipment batches.
package shipmentrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/shipment"
	"shopfloor/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

type BatchDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"size:64;not null;index"`
	Company     string    `gorm:"size:16;not null"`
	Customer    string    `gorm:"size:255;not null"`
	Volumes     int       `gorm:"not null"`
	Status      string    `gorm:"size:64;not null"`
	Version     int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (BatchDTO) TableName() string {
	return "shipment_batches"
}

func fromDomain(b *shipment.Batch) BatchDTO {
	return BatchDTO{
		ID:          b.ID().Google(),
		OrderNumber: b.OrderNumber(),
		Company:     b.Company(),
		Customer:    b.Customer(),
		Volumes:     b.Volumes(),
		Status:      string(b.Status()),
		Version:     b.Version(),
		CreatedAt:   b.CreatedAt(),
	}
}

func toDomain(dto BatchDTO) (*shipment.Batch, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return shipment.RestoreBatch(id, dto.OrderNumber, dto.Company, dto.Customer, dto.Volumes,
		workflow.Stage(dto.Status), dto.Version, dto.CreatedAt)
}
