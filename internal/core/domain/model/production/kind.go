package production

import (
	"fmt"

	"shopfloor/internal/pkg/errs"
)

// Kind distinguishes orders that build sellable units from orders that build
// components consumed by other orders.
type Kind int

const (
	UnknownKind Kind = iota
	FinalProduct
	SubAssembly
)

var kindCodes = map[Kind]string{
	FinalProduct: "produto_final",
	SubAssembly:  "subproduto",
}

func ParseKind(code string) (Kind, error) {
	for k, c := range kindCodes {
		if c == code {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("order kind is invalid", fmt.Errorf("%q is not an order kind", code))
}

func (k Kind) String() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return "unknown"
}

func (k Kind) Validate() error {
	if _, ok := kindCodes[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order kind is invalid", fmt.Errorf("%d is not a valid order kind", k))
	}
	return nil
}
