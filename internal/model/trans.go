package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DocumentSeparator joins the attachment list into the single column the
// transaction tables persist.
const DocumentSeparator = ";"

// Trans is the canonical stored transaction record. Double-entry sections
// use the symmetric lhs/rhs sides; order sections (purchase, sales) use
// NodeID as the owning order plus the product pair and price fields.
type Trans struct {
	ID          int
	State       bool
	DateTime    string
	Code        string
	Document    []string
	Description string

	LhsNode   int
	LhsRatio  decimal.Decimal
	LhsDebit  decimal.Decimal
	LhsCredit decimal.Decimal

	RhsNode   int
	RhsRatio  decimal.Decimal
	RhsDebit  decimal.Decimal
	RhsCredit decimal.Decimal

	// Order-section fields.
	NodeID        int
	UnitPrice     decimal.Decimal
	DiscountPrice decimal.Decimal
	Settled       decimal.Decimal
}

// Reset clears a transaction for reuse from the pool.
func (t *Trans) Reset() {
	*t = Trans{}
}

// JoinDocuments flattens an attachment list for storage.
func JoinDocuments(docs []string) string {
	return strings.Join(docs, DocumentSeparator)
}

// SplitDocuments parses a stored attachment column back into an ordered
// list, dropping empty segments.
func SplitDocuments(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, DocumentSeparator)
	docs := parts[:0]
	for _, p := range parts {
		if p != "" {
			docs = append(docs, p)
		}
	}
	if len(docs) == 0 {
		return nil
	}
	return docs
}
