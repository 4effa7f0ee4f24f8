package ledger

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/YtxCash/YtxModel/internal/model"
	"github.com/YtxCash/YtxModel/internal/section"
)

// BuildTree loads every live node into an id-keyed map, adds the
// virtual root, and wires parent/child links from the distance-1 edges.
// The returned map stays usable even when relationship wiring was
// partial.
func (l *Ledger) BuildTree() (map[int]*model.Node, error) {
	rows, err := l.conn.Query(l.d.readNode)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	defer rows.Close()

	nodes := map[int]*model.Node{
		model.RootID: {ID: model.RootID, Name: "root", Branch: true},
	}

	for rows.Next() {
		node := &model.Node{}
		if err := l.d.scanNode(rows, node); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes[node.ID] = node
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}

	if err := l.readRelationship(nodes); err != nil {
		l.log.WithError(err).WithField("section", l.info.Section).
			Warn("tree relationships incomplete")
	}

	return nodes, nil
}

// InsertNode writes a new node under parentID and its closure-table
// edges in one transaction, assigning the generated id to node.ID.
func (l *Ledger) InsertNode(parentID int, node *model.Node) error {
	if node == nil || node.ID == model.RootID {
		return ErrInvalidNode
	}

	err := l.conn.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(l.d.writeNode, l.d.bindNode(node)...)
		if err != nil {
			return fmt.Errorf("failed to insert node: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read generated node id: %w", err)
		}
		node.ID = int(id)

		return l.writeRelationship(tx, node.ID, parentID)
	})
	if err != nil {
		l.log.WithError(err).WithField("section", l.info.Section).
			Error("insert node rolled back")
		return err
	}

	return nil
}

// RemoveNode removes a node: the record and its paths go in one
// transaction, then the views are told to let go, and only after the
// removal notifications does the cache reclaim the node's transactions.
// Counter-party balance notifications are emitted for the double-entry
// balance sections only.
func (l *Ledger) RemoveNode(nodeID int, branch bool) error {
	if nodeID <= 0 {
		return ErrInvalidID
	}

	affected := l.affectedByRemoval(nodeID)

	if err := l.removeNodeRecords(nodeID, branch); err != nil {
		return err
	}

	if l.station != nil {
		l.station.FreeView(l.info.Section, nodeID)
		l.station.NodeRemoved(l.info.Section, nodeID)

		if l.info.HasLeafTotal {
			l.station.TransRemoved(l.info.Section, affected)
			l.station.LeafTotalChanged(l.info.Section, affected.Nodes())
		}
	}

	// Reclamation must stay behind the notifications so no subscriber
	// observes a dangling record.
	for _, transID := range affected.TransIDs() {
		l.recycle(transID)
	}

	return nil
}

// ReplaceNode merges oldID into newID: every cached and stored
// reference moves over, affected counter-parties get balance
// notifications, and when nothing keeps oldID alive its view is freed
// and the node removed. With no references at all the call is a
// successful no-op that never touches storage.
func (l *Ledger) ReplaceNode(oldID, newID int) error {
	if !l.info.SupportsReplace {
		return ErrReplaceUnsupported
	}
	if oldID <= 0 || newID <= 0 || oldID == newID {
		return ErrInvalidID
	}

	affected := l.rewriteReferences(oldID, newID)
	if len(affected) == 0 {
		return nil
	}

	// A pairing with newID itself becomes a self-reference after the
	// merge; it is rewritten but needs no counter-party notification,
	// and its existence keeps oldID's view alive.
	free := !affected.Contains(newID)
	delete(affected, newID)

	if _, err := l.conn.Exec(l.d.replaceNode, oldID, newID); err != nil {
		l.log.WithError(err).WithField("section", l.info.Section).
			Error("failed to replace node references")
		return fmt.Errorf("failed to replace node references: %w", err)
	}

	if l.station != nil {
		if len(affected) > 0 {
			l.station.TransMoved(l.info.Section, oldID, newID, affected.TransIDs())
			l.station.LeafTotalChanged(l.info.Section, []int{oldID, newID})
		}

		// Sections holding denormalized copies of these ids are told to
		// rewrite them as well.
		switch l.info.Section {
		case section.Product:
			l.station.ProductReferenceChanged(l.info.Section, oldID, newID)
		case section.Stakeholder:
			l.station.StakeholderReferenceChanged(l.info.Section, oldID, newID)
		}

		// Freeing comes after the balance notifications.
		if free {
			l.station.FreeView(l.info.Section, oldID)
			l.station.NodeRemoved(l.info.Section, oldID)
		}
	}

	return nil
}

// LeafTotal recomputes a leaf's initial and final balances from its
// transactions and applies the sign convention: credit-normal accounts
// (rule true) keep the stored credit-minus-debit aggregate, debit-normal
// accounts negate it. Branch nodes and invalid ids are a no-op.
func (l *Ledger) LeafTotal(node *model.Node) error {
	if node == nil || node.ID <= 0 || node.Branch {
		return nil
	}
	if l.d.leafTotal == "" {
		return nil
	}

	var initial, final sql.NullFloat64
	err := l.conn.QueryRow(l.d.leafTotal, node.ID).Scan(&initial, &final)
	if err != nil {
		l.log.WithError(err).WithField("node", node.ID).Error("failed to compute leaf total")
		return fmt.Errorf("failed to compute leaf total: %w", err)
	}

	sign := decimal.NewFromInt(1)
	if !node.Rule {
		sign = decimal.NewFromInt(-1)
	}

	node.InitialTotal = decimal.NewFromFloat(initial.Float64).Mul(sign)
	node.FinalTotal = decimal.NewFromFloat(final.Float64).Mul(sign)

	return nil
}

// InternalReference reports whether any live transaction of this
// section references nodeID.
func (l *Ledger) InternalReference(nodeID int) (bool, error) {
	if l.d.internalRef == "" || nodeID <= 0 {
		return false, nil
	}

	var count int
	if err := l.conn.QueryRow(l.d.internalRef, nodeID).Scan(&count); err != nil {
		l.log.WithError(err).WithField("node", nodeID).Error("failed to count internal references")
		return false, fmt.Errorf("failed to count internal references: %w", err)
	}

	return count >= 1, nil
}

// ExternalReference reports whether another section still references
// nodeID (product price lists, order lines, order headers). Sections
// without external references always report false.
func (l *Ledger) ExternalReference(nodeID int) (bool, error) {
	if l.d.externalRef == "" || nodeID <= 0 {
		return false, nil
	}

	var count int
	if err := l.conn.QueryRow(l.d.externalRef, nodeID).Scan(&count); err != nil {
		l.log.WithError(err).WithField("node", nodeID).Error("failed to count external references")
		return false, fmt.Errorf("failed to count external references: %w", err)
	}

	return count >= 1, nil
}
