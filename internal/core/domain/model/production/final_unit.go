package production

import (
	"errors"
	"fmt"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

var ErrFinalUnitIsNotConstructed = errors.New("FinalUnit must be created via NewFinalUnit constructor")

// FinalUnit is one generated unit of a final-product order. Parts and bound
// sub-assemblies are consumed into a final unit.
type FinalUnit struct {
	id        kernel.UUID
	orderID   kernel.UUID
	serial    string
	createdAt time.Time

	isConstructed bool
}

// UnitSerial formats the serial of the seq-th unit of an order: the ERP order
// number and a three-digit, one-based sequence ("OP-1042-007").
func UnitSerial(orderNumber string, seq int) string {
	return fmt.Sprintf("%s-%03d", orderNumber, seq)
}

func NewFinalUnit(id, orderID kernel.UUID, serial string, createdAt time.Time) (*FinalUnit, error) {
	u := &FinalUnit{id: id, orderID: orderID, serial: serial, createdAt: createdAt, isConstructed: true}

	var serialErr error
	if serial == "" {
		serialErr = errs.NewValueIsRequiredError("serial")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), serialErr); err != nil {
		return nil, err
	}
	return u, nil
}

// GenerateFinalUnits creates count units continuing the sequence after
// existing.
func GenerateFinalUnits(o *Order, existing, count int, at time.Time) ([]*FinalUnit, error) {
	if err := o.EnsureCanGenerateUnits(existing, count); err != nil {
		return nil, err
	}
	units := make([]*FinalUnit, 0, count)
	for i := 1; i <= count; i++ {
		u, err := NewFinalUnit(kernel.NewUUID(), o.ID(), UnitSerial(o.OrderNumber(), existing+i), at)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func (u *FinalUnit) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrFinalUnitIsNotConstructed
	}
	return nil
}

func (u *FinalUnit) ID() kernel.UUID      { return u.id }
func (u *FinalUnit) OrderID() kernel.UUID { return u.orderID }
func (u *FinalUnit) Serial() string       { return u.serial }
func (u *FinalUnit) CreatedAt() time.Time { return u.createdAt }
