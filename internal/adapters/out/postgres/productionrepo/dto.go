// Package productionrepo persists production orders and their final units.
package productionrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

// OrderDTO is the production_orders row. Status and Version are written on
// insert and afterwards only by the entity store claim.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     string    `gorm:"size:64;not null;index"`
	Company         string    `gorm:"size:16;not null"`
	ProductCode     string    `gorm:"size:64;not null"`
	Quantity        int       `gorm:"not null"`
	Kind            string    `gorm:"size:32;not null"`
	RequiresTesting bool      `gorm:"not null"`
	Status          string    `gorm:"size:64;not null"`
	Version         int       `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "production_orders"
}

// FinalUnitDTO is the final_units row.
type FinalUnitDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductionOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Serial            string    `gorm:"size:96;not null;uniqueIndex"`
	CreatedAt         time.Time `gorm:"not null"`
}

func (FinalUnitDTO) TableName() string {
	return "final_units"
}

func orderFromDomain(o *production.Order) OrderDTO {
	return OrderDTO{
		ID:              o.ID().Google(),
		OrderNumber:     o.OrderNumber(),
		Company:         o.Company(),
		ProductCode:     o.ProductCode(),
		Quantity:        o.Quantity(),
		Kind:            o.Kind().String(),
		RequiresTesting: o.RequiresTesting(),
		Status:          string(o.Status()),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
	}
}

func orderToDomain(dto OrderDTO) (*production.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	kind, err := production.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	return production.RestoreOrder(
		id,
		dto.OrderNumber,
		dto.Company,
		dto.ProductCode,
		dto.Quantity,
		kind,
		dto.RequiresTesting,
		workflow.Stage(dto.Status),
		dto.Version,
		dto.CreatedAt,
	)
}

func unitFromDomain(u *production.FinalUnit) FinalUnitDTO {
	return FinalUnitDTO{
		ID:                u.ID().Google(),
		ProductionOrderID: u.OrderID().Google(),
		Serial:            u.Serial(),
		CreatedAt:         u.CreatedAt(),
	}
}

func unitToDomain(dto FinalUnitDTO) (*production.FinalUnit, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.ProductionOrderID)
	if err != nil {
		return nil, err
	}
	return production.NewFinalUnit(id, orderID, dto.Serial, dto.CreatedAt)
}
