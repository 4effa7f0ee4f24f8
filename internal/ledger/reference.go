package ledger

import (
	"database/sql"
	"fmt"

	"github.com/YtxCash/YtxModel/internal/event"
)

// The reference-rewriting engine scans the live transaction cache for
// records touching a target node, computing the (counter-party,
// transaction) pairs the view layer must recompute — and, for merges,
// mutating the cached references in the same pass so no second walk is
// needed. Self-referencing records (both sides equal to the target) are
// excluded throughout.

// affectedByRemoval collects the counter-parties of every cached
// transaction touching nodeID on exactly one side. For the order
// sections the owning order's lines are keyed under the order id
// itself, so reclamation still finds them.
func (l *Ledger) affectedByRemoval(nodeID int) event.NodeTrans {
	affected := event.NodeTrans{}

	for id, t := range l.cache {
		if l.info.OrderStyle {
			if t.NodeID == nodeID {
				affected.Add(nodeID, id)
			}
			continue
		}

		if t.LhsNode == nodeID && t.RhsNode != nodeID {
			affected.Add(t.RhsNode, id)
		}
		if t.RhsNode == nodeID && t.LhsNode != nodeID {
			affected.Add(t.LhsNode, id)
		}
	}

	return affected
}

// rewriteReferences moves every cached one-sided reference from oldID
// to newID in place and returns the affected pairs keyed by
// counter-party.
func (l *Ledger) rewriteReferences(oldID, newID int) event.NodeTrans {
	affected := event.NodeTrans{}

	for id, t := range l.cache {
		switch {
		case t.LhsNode == oldID && t.RhsNode == oldID:
			// Self-referencing, left untouched.
		case t.LhsNode == oldID:
			affected.Add(t.RhsNode, id)
			t.LhsNode = newID
		case t.RhsNode == oldID:
			affected.Add(t.LhsNode, id)
			t.RhsNode = newID
		}
	}

	return affected
}

// UpdateProductReference rewrites this section's denormalized product
// references from oldID to newID, in storage and in the live cache. It
// is the receiving end of a product merge in another section.
func (l *Ledger) UpdateProductReference(oldID, newID int) error {
	if len(l.d.productRef) == 0 {
		return fmt.Errorf("%s: no product references to update", l.info.Section)
	}

	for _, stmt := range l.d.productRef {
		if _, err := l.conn.Exec(stmt, oldID, newID); err != nil {
			l.log.WithError(err).WithField("section", l.info.Section).
				Error("failed to update product reference")
			return fmt.Errorf("failed to update product reference: %w", err)
		}
	}

	for _, t := range l.cache {
		if l.info.OrderStyle {
			// Order lines keep the product on the inside slot.
			if t.LhsNode == oldID {
				t.LhsNode = newID
			}
			continue
		}
		// Stakeholder price records keep it on the rhs side.
		if t.RhsNode == oldID {
			t.RhsNode = newID
		}
	}

	return nil
}

// UpdateStakeholderReference rewrites an order section's party,
// employee and outside-product columns from oldID to newID, in one
// transaction, then patches the live cache.
func (l *Ledger) UpdateStakeholderReference(oldID, newID int) error {
	if len(l.d.stakeholderRef) == 0 {
		return fmt.Errorf("%s: no stakeholder references to update", l.info.Section)
	}

	err := l.conn.Transaction(func(tx *sql.Tx) error {
		for _, stmt := range l.d.stakeholderRef {
			if _, err := tx.Exec(stmt, oldID, newID); err != nil {
				return fmt.Errorf("failed to update stakeholder reference: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		l.log.WithError(err).WithField("section", l.info.Section).
			Error("stakeholder reference update rolled back")
		return err
	}

	for _, t := range l.cache {
		if t.RhsNode == oldID {
			t.RhsNode = newID
		}
	}

	return nil
}
