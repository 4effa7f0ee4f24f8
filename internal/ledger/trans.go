package ledger

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/YtxCash/YtxModel/internal/model"
)

// AllocateTransShadow hands out a fresh transaction plus a left-side
// shadow over it, for a view composing a record that is not persisted
// yet. The backing Trans joins the cache once InsertTransShadow assigns
// its id.
func (l *Ledger) AllocateTransShadow() *model.TransShadow {
	trans := l.transPool.Get()

	shadow := l.shadowPool.Get()
	shadow.Bind(trans, true)
	return shadow
}

// InsertTransShadow persists the shadow's underlying record, captures
// the generated id and registers the record in the live cache. A record
// whose counter-party is still unassigned is rejected: incomplete
// transactions exist only in memory.
func (l *Ledger) InsertTransShadow(shadow *model.TransShadow) error {
	if shadow == nil || shadow.Trans() == nil {
		return ErrInvalidNode
	}
	if shadow.Incomplete() {
		return ErrIncompleteTrans
	}

	trans := shadow.Trans()
	res, err := l.conn.Exec(l.d.writeTrans, l.d.bindTrans(trans)...)
	if err != nil {
		l.log.WithError(err).WithField("section", l.info.Section).
			Error("failed to insert transaction")
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated transaction id: %w", err)
	}

	trans.ID = int(id)
	l.cache[trans.ID] = trans
	return nil
}

// UpdateTrans writes the cached record's side columns back to storage.
func (l *Ledger) UpdateTrans(transID int) error {
	trans, ok := l.cache[transID]
	if !ok {
		return ErrNotCached
	}

	if _, err := l.conn.Exec(l.d.updateTrans, l.d.bindUpdateTrans(trans)...); err != nil {
		l.log.WithError(err).WithField("trans", transID).Error("failed to update transaction")
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return nil
}

// UpdateField writes a single column of one row.
func (l *Ledger) UpdateField(table string, value any, field string, id int) error {
	stmt := fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", table, field)

	if _, err := l.conn.Exec(stmt, value, id); err != nil {
		l.log.WithError(err).WithFields(map[string]any{
			"table": table, "field": field, "id": id,
		}).Error("failed to update field")
		return fmt.Errorf("failed to update %s.%s: %w", table, field, err)
	}

	return nil
}

// CheckMode selects how UpdateCheckState applies a boolean column
// across the whole transaction table.
type CheckMode int

const (
	// CheckSet writes the supplied value.
	CheckSet CheckMode = iota
	// CheckReverse flips every row's current value.
	CheckReverse
)

// UpdateCheckState sets or flips a reconciliation column table-wide.
func (l *Ledger) UpdateCheckState(column string, value bool, mode CheckMode) error {
	var stmt string
	var args []any

	switch mode {
	case CheckReverse:
		stmt = fmt.Sprintf("UPDATE %s SET %s = NOT %s", l.info.Trans, column, column)
	default:
		stmt = fmt.Sprintf("UPDATE %s SET %s = ?", l.info.Trans, column)
		args = append(args, value)
	}

	if _, err := l.conn.Exec(stmt, args...); err != nil {
		l.log.WithError(err).WithField("column", column).Error("failed to update check state")
		return fmt.Errorf("failed to update check state: %w", err)
	}

	return nil
}

// RemoveTrans soft-deletes one transaction row and reclaims its cached
// record.
func (l *Ledger) RemoveTrans(transID int) error {
	stmt := fmt.Sprintf("UPDATE %s SET removed = 1 WHERE id = ?", l.info.Trans)

	if _, err := l.conn.Exec(stmt, transID); err != nil {
		l.log.WithError(err).WithField("trans", transID).Error("failed to remove transaction")
		return fmt.Errorf("failed to remove transaction: %w", err)
	}

	l.recycle(transID)
	return nil
}

// ReadNodeTrans loads every live transaction touching nodeID, shadowed
// from nodeID's perspective. Records already cached are reused as-is so
// in-flight unsaved edits survive a reload.
func (l *Ledger) ReadNodeTrans(nodeID int) ([]*model.TransShadow, error) {
	if nodeID <= 0 {
		return nil, nil
	}

	rows, err := l.conn.Query(l.d.readNodeTrans, nodeID)
	if err != nil {
		l.log.WithError(err).WithField("node", nodeID).Error("failed to read node transactions")
		return nil, fmt.Errorf("failed to read node transactions: %w", err)
	}
	defer rows.Close()

	return l.collectShadows(rows, nodeID)
}

// ReadNodeTransBatch loads a specific id batch in chunks of
// readBatchSize. A failing chunk is logged and skipped: the result may
// be incomplete, never wrong.
func (l *Ledger) ReadNodeTransBatch(nodeID int, transIDs []int) ([]*model.TransShadow, error) {
	if nodeID <= 0 || len(transIDs) == 0 {
		return nil, nil
	}

	var shadows []*model.TransShadow

	for start := 0; start < len(transIDs); start += readBatchSize {
		end := start + readBatchSize
		if end > len(transIDs) {
			end = len(transIDs)
		}
		chunk := transIDs[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		stmt := fmt.Sprintf(l.d.readTransIn, placeholders)

		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		rows, err := l.conn.Query(stmt, args...)
		if err != nil {
			l.log.WithError(err).WithFields(map[string]any{
				"section": l.info.Section, "chunk": start / readBatchSize,
			}).Warn("skipping failed transaction batch")
			continue
		}

		batch, err := l.collectShadows(rows, nodeID)
		rows.Close()
		if err != nil {
			l.log.WithError(err).Warn("skipping unreadable transaction batch")
			continue
		}

		shadows = append(shadows, batch...)
	}

	return shadows, nil
}

// collectShadows drains rows into shadows sided for nodeID, merging
// into the shared cache: known ids keep their cached record, new ids
// are scanned and cached.
func (l *Ledger) collectShadows(rows *sql.Rows, nodeID int) ([]*model.TransShadow, error) {
	var shadows []*model.TransShadow

	for rows.Next() {
		scanned := l.transPool.Get()
		if err := l.d.scanTrans(rows, scanned); err != nil {
			l.transPool.Put(scanned)
			return shadows, fmt.Errorf("failed to scan transaction: %w", err)
		}

		trans, ok := l.cache[scanned.ID]
		if ok {
			// Keep the cached object: it may carry unsaved edits.
			l.transPool.Put(scanned)
		} else {
			trans = scanned
			l.cache[trans.ID] = trans
		}

		left := l.info.OrderStyle || trans.LhsNode == nodeID

		shadow := l.shadowPool.Get()
		shadow.Bind(trans, left)
		shadows = append(shadows, shadow)
	}

	return shadows, rows.Err()
}
