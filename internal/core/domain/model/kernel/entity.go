package kernel

import (
	"fmt"

	"shopfloor/internal/pkg/errs"
)

// EntityKind enumerates the long-lived, versioned entities that move through a
// stage graph.
type EntityKind int

const (
	UnknownEntity EntityKind = iota
	ProductionOrder
	ShipmentBatch
	RepairTicket
)

var entityKindCodes = map[EntityKind]string{
	ProductionOrder: "production_order",
	ShipmentBatch:   "shipment_batch",
	RepairTicket:    "repair_ticket",
}

// entityKindSectors maps each kind to the sector whose active members may
// act on it.
var entityKindSectors = map[EntityKind]string{
	ProductionOrder: "producao",
	ShipmentBatch:   "expedicao",
	RepairTicket:    "assistencia",
}

// ParseEntityKind accepts the persisted code ("production_order", ...).
func ParseEntityKind(code string) (EntityKind, error) {
	for k, c := range entityKindCodes {
		if c == code {
			return k, nil
		}
	}
	return UnknownEntity, errs.NewValueIsInvalidErrorWithCause(
		"entity kind is invalid",
		fmt.Errorf("%q is not a known entity kind", code),
	)
}

func (k EntityKind) Validate() error {
	if _, ok := entityKindCodes[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("entity kind is invalid", fmt.Errorf("%d is not a valid entity kind", k))
	}
	return nil
}

// String returns the persisted code, "unknown" for invalid values.
func (k EntityKind) String() string {
	if c, ok := entityKindCodes[k]; ok {
		return c
	}
	return "unknown"
}

// Sector names the sector an actor must be active in to act on this kind.
func (k EntityKind) Sector() string {
	return entityKindSectors[k]
}

// EntityRef addresses one entity across kinds.
type EntityRef struct {
	Kind EntityKind
	ID   UUID
}

func NewEntityRef(kind EntityKind, id UUID) (EntityRef, error) {
	if err := kind.Validate(); err != nil {
		return EntityRef{}, err
	}
	if err := id.Validate(); err != nil {
		return EntityRef{}, err
	}
	return EntityRef{Kind: kind, ID: id}, nil
}

// String renders "<kind> <id>", the subject used in error messages.
func (r EntityRef) String() string {
	return r.Kind.String() + " " + r.ID.String()
}
