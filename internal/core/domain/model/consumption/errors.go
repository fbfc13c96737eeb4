package consumption

import (
	"errors"
	"fmt"
	"strings"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
)

var (
	ErrScanIdentityActive   = errors.New("scan identity is already consumed")
	ErrSameScanIdentity     = errors.New("replacement has the same scan identity")
	ErrNothingToReplace     = errors.New("no active consumption for item in context")
	ErrRecordAlreadyClosed  = errors.New("consumption record is already closed")
	ErrBoundToAnotherUnit   = errors.New("sub-assembly is bound to another final unit")
	ErrUnitSlotTaken        = errors.New("final unit already holds a sub-assembly of this item")
	ErrLabelNotInOrder      = errors.New("label does not belong to the production order")
	ErrLabelItemMismatch    = errors.New("label item code differs from the declared item code")
	ErrLabelAlreadyRecorded = errors.New("label is already registered")
)

// Invalid wraps a consumption rule failure as a validation error.
func Invalid(param string, cause error) *errs.ValueIsInvalidError {
	return errs.NewValueIsInvalidErrorWithCause(param, cause)
}

// AmbiguousContextError means the scanned item appears in the BOM of more than
// one bound sub-assembly and the caller did not name one.
type AmbiguousContextError struct {
	ItemCode   string
	Candidates []kernel.UUID
}

func (e *AmbiguousContextError) Error() string {
	ids := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		ids[i] = c.String()
	}
	return fmt.Sprintf("%s: item %s matches sub-assemblies %s", errs.ErrValueIsInvalid, e.ItemCode, strings.Join(ids, ", "))
}

func (e *AmbiguousContextError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// ItemNotInBOMError means no candidate context lists the scanned item.
// Description is best-effort and may be empty.
type ItemNotInBOMError struct {
	ItemCode    string
	Description string
}

func (e *ItemNotInBOMError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%s: item %s is not in the bill of materials", errs.ErrValueIsInvalid, e.ItemCode)
	}
	return fmt.Sprintf("%s: item %s (%s) is not in the bill of materials", errs.ErrValueIsInvalid, e.ItemCode, e.Description)
}

func (e *ItemNotInBOMError) Unwrap() error {
	return errs.ErrValueIsInvalid
}
