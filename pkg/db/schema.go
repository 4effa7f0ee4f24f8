package db

import (
	"fmt"

	"github.com/YtxCash/YtxModel/internal/section"
)

// Monetary columns are stored as TEXT so decimal amounts round-trip
// exactly; SQLite coerces them to numeric inside aggregate queries.

const nodeSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    code TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    rule BOOLEAN NOT NULL DEFAULT 0,
    branch BOOLEAN NOT NULL DEFAULT 0,
    unit INTEGER NOT NULL DEFAULT 0,
    removed BOOLEAN NOT NULL DEFAULT 0
);
`

const orderNodeSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    code TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    rule BOOLEAN NOT NULL DEFAULT 0,
    branch BOOLEAN NOT NULL DEFAULT 0,
    unit INTEGER NOT NULL DEFAULT 0,
    party INTEGER NOT NULL DEFAULT 0,
    employee INTEGER NOT NULL DEFAULT 0,
    date_time TEXT NOT NULL DEFAULT '',
    first INTEGER NOT NULL DEFAULT 0,
    second TEXT NOT NULL DEFAULT '0',
    discount TEXT NOT NULL DEFAULT '0',
    locked BOOLEAN NOT NULL DEFAULT 0,
    initial_total TEXT NOT NULL DEFAULT '0',
    final_total TEXT NOT NULL DEFAULT '0',
    removed BOOLEAN NOT NULL DEFAULT 0
);
`

const pathSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    ancestor INTEGER NOT NULL,
    descendant INTEGER NOT NULL,
    distance INTEGER NOT NULL,
    UNIQUE(ancestor, descendant)
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_descendant ON %[1]s(descendant);
`

const doubleEntrySchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    state BOOLEAN NOT NULL DEFAULT 0,
    date_time TEXT NOT NULL DEFAULT '',
    code TEXT NOT NULL DEFAULT '',
    document TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    lhs_node INTEGER NOT NULL DEFAULT 0,
    lhs_ratio TEXT NOT NULL DEFAULT '1',
    lhs_debit TEXT NOT NULL DEFAULT '0',
    lhs_credit TEXT NOT NULL DEFAULT '0',
    rhs_node INTEGER NOT NULL DEFAULT 0,
    rhs_ratio TEXT NOT NULL DEFAULT '1',
    rhs_debit TEXT NOT NULL DEFAULT '0',
    rhs_credit TEXT NOT NULL DEFAULT '0',
    removed BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_lhs_node ON %[1]s(lhs_node);
CREATE INDEX IF NOT EXISTS idx_%[1]s_rhs_node ON %[1]s(rhs_node);
`

const stakeholderTransSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    state BOOLEAN NOT NULL DEFAULT 0,
    date_time TEXT NOT NULL DEFAULT '',
    code TEXT NOT NULL DEFAULT '',
    document TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    unit_price TEXT NOT NULL DEFAULT '0',
    lhs_node INTEGER NOT NULL DEFAULT 0,
    lhs_ratio TEXT NOT NULL DEFAULT '1',
    lhs_debit TEXT NOT NULL DEFAULT '0',
    lhs_credit TEXT NOT NULL DEFAULT '0',
    rhs_node INTEGER NOT NULL DEFAULT 0,
    rhs_ratio TEXT NOT NULL DEFAULT '1',
    rhs_debit TEXT NOT NULL DEFAULT '0',
    rhs_credit TEXT NOT NULL DEFAULT '0',
    removed BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_lhs_node ON %[1]s(lhs_node);
CREATE INDEX IF NOT EXISTS idx_%[1]s_rhs_node ON %[1]s(rhs_node);
`

const orderTransSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    code TEXT NOT NULL DEFAULT '',
    node_id INTEGER NOT NULL DEFAULT 0,
    inside_product INTEGER NOT NULL DEFAULT 0,
    outside_product INTEGER NOT NULL DEFAULT 0,
    unit_price TEXT NOT NULL DEFAULT '0',
    first INTEGER NOT NULL DEFAULT 0,
    second TEXT NOT NULL DEFAULT '0',
    initial_subtotal TEXT NOT NULL DEFAULT '0',
    discount TEXT NOT NULL DEFAULT '0',
    discount_price TEXT NOT NULL DEFAULT '0',
    settled TEXT NOT NULL DEFAULT '0',
    description TEXT NOT NULL DEFAULT '',
    removed BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_node_id ON %[1]s(node_id);
CREATE INDEX IF NOT EXISTS idx_%[1]s_inside_product ON %[1]s(inside_product);
`

// InitializeSchema creates one section's tables and seeds the virtual
// root's self-edge in the path table.
func InitializeSchema(conn *Connection, info section.Info) error {
	node := nodeSchema
	if info.OrderStyle {
		node = orderNodeSchema
	}

	trans := doubleEntrySchema
	switch {
	case info.OrderStyle:
		trans = orderTransSchema
	case info.Section == section.Stakeholder:
		trans = stakeholderTransSchema
	}

	stmts := fmt.Sprintf(node, info.Node) +
		fmt.Sprintf(pathSchema, info.Path) +
		fmt.Sprintf(trans, info.Trans)

	if _, err := conn.Exec(stmts); err != nil {
		return fmt.Errorf("failed to initialize %s schema: %w", info.Section, err)
	}

	root := fmt.Sprintf(
		"INSERT OR IGNORE INTO %s (ancestor, descendant, distance) VALUES (?, ?, 0)", info.Path)
	if _, err := conn.Exec(root, -1, -1); err != nil {
		return fmt.Errorf("failed to seed %s root edge: %w", info.Section, err)
	}

	return nil
}

// InitializeAll creates the tables for every section.
func InitializeAll(conn *Connection) error {
	for _, s := range section.All() {
		if err := InitializeSchema(conn, section.InfoFor(s)); err != nil {
			return err
		}
	}
	return nil
}
