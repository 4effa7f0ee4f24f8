// Package section defines the ledger sections and their storage layout.
// Each section keeps its own node table, closure-path table and transaction
// table; the capability flags decide which engine operations apply.
package section

import "fmt"

// Section identifies one ledger book.
type Section int

const (
	Finance Section = iota
	Product
	Task
	Stakeholder
	Purchase
	Sales
)

var names = map[Section]string{
	Finance:     "finance",
	Product:     "product",
	Task:        "task",
	Stakeholder: "stakeholder",
	Purchase:    "purchase",
	Sales:       "sales",
}

// All lists every section in a stable order.
func All() []Section {
	return []Section{Finance, Product, Task, Stakeholder, Purchase, Sales}
}

func (s Section) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// Parse resolves a section by name.
func Parse(name string) (Section, error) {
	for s, n := range names {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown section: %q", name)
}

// Info describes a section's tables and capabilities.
type Info struct {
	Section Section

	// Table names.
	Node  string
	Path  string
	Trans string

	// SupportsReplace allows merging one node into another. Order books
	// (purchase, sales) never merge.
	SupportsReplace bool

	// HasLeafTotal marks the double-entry sections whose leaves carry
	// aggregated balances (finance, product, task).
	HasLeafTotal bool

	// HasExternalReference marks sections whose nodes may be referenced
	// from other sections' tables (product, stakeholder).
	HasExternalReference bool

	// OrderStyle marks sections whose transactions are order lines
	// (node_id owner + product pair) instead of symmetric sides.
	OrderStyle bool
}

// InfoFor returns the storage layout for a section.
func InfoFor(s Section) Info {
	name := s.String()
	info := Info{
		Section: s,
		Node:    name,
		Path:    name + "_path",
		Trans:   name + "_transaction",
	}

	switch s {
	case Finance, Task:
		info.SupportsReplace = true
		info.HasLeafTotal = true
	case Product:
		info.SupportsReplace = true
		info.HasLeafTotal = true
		info.HasExternalReference = true
	case Stakeholder:
		info.SupportsReplace = true
		info.HasExternalReference = true
	case Purchase, Sales:
		info.OrderStyle = true
	}

	return info
}
