package ledger

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/YtxCash/YtxModel/internal/model"
)

// The hierarchy is persisted as a closure table: one (ancestor,
// descendant, distance) row per transitive pair, a distance-0 self-edge
// per node, distance 1 for direct parent-child.

// writeRelationship links a freshly inserted node under its parent:
// one edge per ancestor of the parent, one level further out, plus the
// node's own self-edge.
func (l *Ledger) writeRelationship(tx *sql.Tx, nodeID, parentID int) error {
	stmt := fmt.Sprintf(`
    INSERT INTO %[1]s (ancestor, descendant, distance)
    SELECT ancestor, ?1, distance + 1 FROM %[1]s WHERE descendant = ?2
    UNION ALL
    SELECT ?1, ?1, 0
`, l.info.Path)

	if _, err := tx.Exec(stmt, nodeID, parentID); err != nil {
		return fmt.Errorf("failed to write relationship: %w", err)
	}
	return nil
}

// removeNodeRecords soft-deletes the node row and repairs the path
// table, all in one transaction. For a branch the edges bridging over
// the removed node shrink by one level, re-linking its children to its
// parent; for a leaf the node's transactions are soft-deleted instead.
func (l *Ledger) removeNodeRecords(nodeID int, branch bool) error {
	first := fmt.Sprintf("UPDATE %s SET removed = 1 WHERE id = ?1", l.info.Node)

	second := l.d.removeNodeTrans
	if branch {
		second = fmt.Sprintf(`
    WITH related_nodes AS (
        SELECT DISTINCT fp1.ancestor, fp2.descendant
        FROM %[1]s AS fp1
        INNER JOIN %[1]s AS fp2 ON fp1.descendant = fp2.ancestor
        WHERE fp2.ancestor = ?1 AND fp2.descendant != ?1 AND fp1.ancestor != ?1
    )
    UPDATE %[1]s
    SET distance = distance - 1
    WHERE (ancestor, descendant) IN (
        SELECT ancestor, descendant FROM related_nodes)
`, l.info.Path)
	}

	// The self-edge goes with the node record: nothing may keep
	// resolving the removed id through the path table.
	third := fmt.Sprintf(
		"DELETE FROM %s WHERE descendant = ?1 OR ancestor = ?1",
		l.info.Path)

	err := l.conn.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(first, nodeID); err != nil {
			return fmt.Errorf("failed to remove node record: %w", err)
		}
		if _, err := tx.Exec(second, nodeID); err != nil {
			return fmt.Errorf("failed to repair after node removal: %w", err)
		}
		if _, err := tx.Exec(third, nodeID); err != nil {
			return fmt.Errorf("failed to remove node paths: %w", err)
		}
		return nil
	})
	if err != nil {
		l.log.WithError(err).WithField("section", l.info.Section).
			Error("remove node rolled back")
		return err
	}

	return nil
}

// DragNode reparents nodeID's whole subtree under destinationID. Step
// one cuts the subtree loose from its old ancestors; step two joins
// every ancestor of the destination (itself included) to every member
// of the subtree. Both steps commit together or not at all.
func (l *Ledger) DragNode(destinationID, nodeID int) error {
	if nodeID <= 0 || destinationID == nodeID {
		return ErrInvalidID
	}

	first := fmt.Sprintf(`
    WITH related_nodes AS (
        SELECT DISTINCT fp1.ancestor, fp2.descendant
        FROM %[1]s AS fp1
        INNER JOIN %[1]s AS fp2 ON fp1.descendant = fp2.ancestor
        WHERE fp2.ancestor = ?1 AND fp1.ancestor != ?1
    )
    DELETE FROM %[1]s
    WHERE (ancestor, descendant) IN (
        SELECT ancestor, descendant FROM related_nodes)
`, l.info.Path)

	second := fmt.Sprintf(`
    INSERT INTO %[1]s (ancestor, descendant, distance)
    SELECT fp1.ancestor, fp2.descendant, fp1.distance + fp2.distance + 1
    FROM %[1]s AS fp1
    INNER JOIN %[1]s AS fp2
    WHERE fp1.descendant = ?1 AND fp2.ancestor = ?2
`, l.info.Path)

	err := l.conn.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(first, nodeID); err != nil {
			return fmt.Errorf("failed to detach subtree: %w", err)
		}
		if _, err := tx.Exec(second, destinationID, nodeID); err != nil {
			return fmt.Errorf("failed to attach subtree: %w", err)
		}
		return nil
	})
	if err != nil {
		l.log.WithError(err).WithField("section", l.info.Section).
			Error("drag node rolled back")
		return err
	}

	return nil
}

// readRelationship wires parent and child pointers from the distance-1
// edges. Edges referring to ids missing from the map are logged and
// skipped, leaving a usable partial tree.
func (l *Ledger) readRelationship(nodes map[int]*model.Node) error {
	stmt := fmt.Sprintf(
		"SELECT ancestor, descendant FROM %s WHERE distance = 1", l.info.Path)

	rows, err := l.conn.Query(stmt)
	if err != nil {
		return fmt.Errorf("failed to read relationships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ancestorID, descendantID int
		if err := rows.Scan(&ancestorID, &descendantID); err != nil {
			return fmt.Errorf("failed to scan relationship: %w", err)
		}

		ancestor := nodes[ancestorID]
		descendant := nodes[descendantID]
		if ancestor == nil || descendant == nil {
			l.log.WithFields(map[string]any{
				"ancestor":   ancestorID,
				"descendant": descendantID,
			}).Warn("dangling relationship edge")
			continue
		}

		ancestor.Children = append(ancestor.Children, descendant)
		descendant.Parent = ancestor
	}

	return rows.Err()
}

// Distance returns the stored closure distance between two nodes, or -1
// when no edge exists.
func (l *Ledger) Distance(ancestorID, descendantID int) int {
	stmt := fmt.Sprintf(
		"SELECT distance FROM %s WHERE ancestor = ? AND descendant = ?", l.info.Path)

	var distance int
	if err := l.conn.QueryRow(stmt, ancestorID, descendantID).Scan(&distance); err != nil {
		return -1
	}
	return distance
}

// CheckIntegrity audits the closure table against the live node rows:
// every node has exactly one self-edge, and every ancestor-descendant
// pair has exactly one edge whose distance equals the parent-hop count.
// It returns a description of each violation found.
func (l *Ledger) CheckIntegrity() ([]string, error) {
	nodes, err := l.BuildTree()
	if err != nil {
		return nil, err
	}

	var issues []string

	ids := make([]int, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if d := l.Distance(id, id); d != 0 {
			issues = append(issues, fmt.Sprintf("node %d: self-edge distance %d", id, d))
		}

		// Walk up through the parents and compare each hop count with
		// the stored edge.
		hops := 0
		for n := nodes[id]; n.Parent != nil; n = n.Parent {
			hops++
			stored := l.Distance(n.Parent.ID, id)
			if stored != hops {
				issues = append(issues, fmt.Sprintf(
					"node %d: ancestor %d at %d hops, stored distance %d",
					id, n.Parent.ID, hops, stored))
			}
		}
	}

	return issues, nil
}
