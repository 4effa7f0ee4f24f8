// Package model holds the ledger's in-memory records: hierarchy nodes,
// double-entry transactions and their side-selecting shadows.
package model

import "github.com/shopspring/decimal"

// Reserved node ids.
const (
	// RootID is the virtual root of every section tree. It is never
	// stored as a node row and never removed or moved.
	RootID = -1

	// UnassignedID marks a missing counter-party or product reference.
	// A transaction still pointing at it is incomplete and must not be
	// persisted.
	UnassignedID = 0
)

// Node is one entry of a section hierarchy: an account, a category, a
// party or a product. Branch nodes only group; leaves carry balances.
type Node struct {
	ID          int
	Name        string
	Code        string
	Description string
	Note        string

	// Rule is the sign convention: true means the normal balance
	// increases with credit, false with debit.
	Rule   bool
	Branch bool
	Unit   int

	InitialTotal decimal.Decimal
	FinalTotal   decimal.Decimal

	// Order-section fields (purchase, sales).
	Party    int
	Employee int
	DateTime string
	First    int
	Second   decimal.Decimal
	Discount decimal.Decimal
	Locked   bool

	// Tree links. Parent is a non-owning back-reference.
	Parent   *Node
	Children []*Node
}

// Reset clears a node for reuse from the pool.
func (n *Node) Reset() {
	*n = Node{}
}

// IsLeaf reports whether the node may carry a balance. The virtual root
// and the unassigned placeholder never do.
func (n *Node) IsLeaf() bool {
	return !n.Branch && n.ID > 0
}
