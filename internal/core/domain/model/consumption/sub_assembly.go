package consumption

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

var ErrSubAssemblyIsNotConstructed = errors.New("SubAssembly must be created via NewSubAssembly constructor")

// SubAssembly is a labelled component produced by a sub-assembly order. It
// starts unbound and is bound once to the final unit it is built into.
type SubAssembly struct {
	id                kernel.UUID
	labelSerial       string
	itemCode          string
	productionOrderID kernel.UUID
	finalUnitID       *kernel.UUID
	createdAt         time.Time
	boundAt           *time.Time

	isConstructed bool
}

func NewSubAssembly(id kernel.UUID, labelSerial, itemCode string, productionOrderID kernel.UUID, createdAt time.Time) (*SubAssembly, error) {
	return RestoreSubAssembly(id, labelSerial, itemCode, productionOrderID, nil, createdAt, nil)
}

func RestoreSubAssembly(
	id kernel.UUID,
	labelSerial, itemCode string,
	productionOrderID kernel.UUID,
	finalUnitID *kernel.UUID,
	createdAt time.Time,
	boundAt *time.Time,
) (*SubAssembly, error) {
	s := &SubAssembly{
		id:                id,
		labelSerial:       strings.TrimSpace(labelSerial),
		itemCode:          strings.TrimSpace(itemCode),
		productionOrderID: productionOrderID,
		finalUnitID:       finalUnitID,
		createdAt:         createdAt,
		boundAt:           boundAt,
		isConstructed:     true,
	}

	var errList []error
	errList = append(errList, id.Validate(), productionOrderID.Validate())
	if s.labelSerial == "" {
		errList = append(errList, errs.NewValueIsRequiredError("labelSerial"))
	}
	if s.itemCode == "" {
		errList = append(errList, errs.NewValueIsRequiredError("itemCode"))
	}
	if (finalUnitID == nil) != (boundAt == nil) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("binding is invalid", errors.New("final unit and bound time must be set together")))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SubAssembly) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSubAssemblyIsNotConstructed
	}
	return nil
}

func (s *SubAssembly) ID() kernel.UUID                { return s.id }
func (s *SubAssembly) LabelSerial() string            { return s.labelSerial }
func (s *SubAssembly) ItemCode() string               { return s.itemCode }
func (s *SubAssembly) ProductionOrderID() kernel.UUID { return s.productionOrderID }
func (s *SubAssembly) FinalUnitID() *kernel.UUID      { return s.finalUnitID }
func (s *SubAssembly) CreatedAt() time.Time           { return s.createdAt }
func (s *SubAssembly) BoundAt() *time.Time            { return s.boundAt }
func (s *SubAssembly) IsBound() bool                  { return s.finalUnitID != nil }

// Context is the consumption context of parts built into this sub-assembly.
func (s *SubAssembly) Context() Context {
	return Context{Kind: SubAssemblyContext, Ref: s.id}
}

// Bind links the sub-assembly to unitID.
//
// Returns:
//   - (false, nil) when the binding is created
//   - (true, nil) when it was already bound to unitID
//   - an error wrapping ErrBoundToAnotherUnit when bound elsewhere
func (s *SubAssembly) Bind(unitID kernel.UUID, at time.Time) (bool, error) {
	if err := unitID.Validate(); err != nil {
		return false, err
	}
	if s.finalUnitID != nil {
		if s.finalUnitID.IsEqual(unitID) {
			return true, nil
		}
		return false, Invalid("sub-assembly binding is invalid",
			fmt.Errorf("%w: %s is bound to %s", ErrBoundToAnotherUnit, s.labelSerial, s.finalUnitID))
	}
	s.finalUnitID = &unitID
	s.boundAt = &at
	return false, nil
}

// EnsureSlotFree rejects binding candidate to a unit that already holds a
// different sub-assembly of the same item code. bound are the sub-assemblies
// currently bound to that unit.
func EnsureSlotFree(bound []*SubAssembly, candidate *SubAssembly) error {
	for _, b := range bound {
		if b.id.IsEqual(candidate.id) {
			continue
		}
		if strings.EqualFold(b.itemCode, candidate.itemCode) {
			return Invalid("sub-assembly binding is invalid",
				fmt.Errorf("%w: %s holds %s", ErrUnitSlotTaken, b.itemCode, b.labelSerial))
		}
	}
	return nil
}
