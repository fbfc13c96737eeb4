package consumption

import (
	"fmt"
	"strings"

	"shopfloor/internal/pkg/errs"
)

const (
	scanSeparator = ";"
	itemCodeField = 1
	minScanFields = itemCodeField + 1
)

// Scan is a parsed physical label read. Field index 1 is the item code; the
// text after the last separator is the scan identity, which distinguishes one
// physical piece from every other piece of the same item.
type Scan struct {
	Raw      string
	ItemCode string
	Identity string
}

// ParseScan parses a semicolon-delimited label such as
// "LOTE 7781;MP-200;2024-02-11;000123", whose item code is MP-200.
//
// Returns a validation error when the label has fewer than two fields or
// the item code or identity is blank.
func ParseScan(raw string) (Scan, error) {
	trimmed := strings.TrimSpace(raw)
	fields := strings.Split(trimmed, scanSeparator)
	if len(fields) < minScanFields {
		return Scan{}, errs.NewValueIsInvalidErrorWithCause(
			"scan is invalid",
			fmt.Errorf("%d fields, at least %d required", len(fields), minScanFields),
		)
	}

	itemCode := strings.TrimSpace(fields[itemCodeField])
	identity := strings.TrimSpace(trimmed[strings.LastIndex(trimmed, scanSeparator)+1:])
	if itemCode == "" {
		return Scan{}, errs.NewValueIsRequiredErrorWithCause("scan item code", fmt.Errorf("field %d of %q is blank", itemCodeField, trimmed))
	}
	if identity == "" {
		return Scan{}, errs.NewValueIsRequiredErrorWithCause("scan identity", fmt.Errorf("last field of %q is blank", trimmed))
	}

	return Scan{Raw: trimmed, ItemCode: itemCode, Identity: identity}, nil
}
