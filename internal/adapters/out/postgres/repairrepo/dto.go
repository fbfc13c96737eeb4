// Package repairrepo persists repair tickets.
package repairrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

type TicketDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Company        string    `gorm:"size:16;not null"`
	ProductCode    string    `gorm:"size:64;not null"`
	SerialNumber   string    `gorm:"size:96;not null;index"`
	Customer       string    `gorm:"size:255;not null"`
	UnderWarranty  bool      `gorm:"not null"`
	BudgetApproved bool      `gorm:"not null"`
	Status         string    `gorm:"size:64;not null"`
	Version        int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (TicketDTO) TableName() string {
	return "repair_tickets"
}

func fromDomain(t *repair.Ticket) TicketDTO {
	return TicketDTO{
		ID:             t.ID().Google(),
		Company:        t.Company(),
		ProductCode:    t.ProductCode(),
		SerialNumber:   t.SerialNumber(),
		Customer:       t.Customer(),
		UnderWarranty:  t.UnderWarranty(),
		BudgetApproved: t.BudgetApproved(),
		Status:         string(t.Status()),
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt(),
	}
}

func toDomain(dto TicketDTO) (*repair.Ticket, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return repair.RestoreTicket(id, dto.Company, dto.ProductCode, dto.SerialNumber, dto.Customer,
		dto.UnderWarranty, dto.BudgetApproved, workflow.Stage(dto.Status), dto.Version, dto.CreatedAt)
}
