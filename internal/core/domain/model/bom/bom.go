// Package bom holds the bill of materials read from the ERP.
package bom

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Line is one component of a BOM. Quantity is per produced unit and may be
// fractional (cable lengths, adhesives).
type Line struct {
	ItemCode    string
	Description string
	Quantity    decimal.Decimal
	Unit        string
}

// BOM lists the components of ProductCode.
type BOM struct {
	ProductCode string
	Lines       []Line
}

// Line returns the line for itemCode. Item codes compare case-insensitively
// after trimming, as the ERP stores them upper-case while labels vary.
func (b BOM) Line(itemCode string) (Line, bool) {
	want := normalize(itemCode)
	for _, l := range b.Lines {
		if normalize(l.ItemCode) == want {
			return l, true
		}
	}
	return Line{}, false
}

func (b BOM) Contains(itemCode string) bool {
	_, ok := b.Line(itemCode)
	return ok
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
