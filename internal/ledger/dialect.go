package ledger

import (
	"database/sql"
	"fmt"

	"github.com/YtxCash/YtxModel/internal/model"
	"github.com/YtxCash/YtxModel/internal/section"
)

// dialect carries one section's SQL and row mapping. The double-entry
// sections (finance, product, task) share the base dialect; stakeholder
// adds a unit price and cross-section reference queries; purchase and
// sales swap the symmetric sides for order-line columns.
//
// An empty statement means the section does not support the operation.
type dialect struct {
	readNode        string
	writeNode       string
	leafTotal       string
	internalRef     string
	externalRef     string
	removeNodeTrans string
	readNodeTrans   string
	readTransIn     string // fmt with the placeholder list
	writeTrans      string
	updateTrans     string
	replaceNode     string
	productRef      []string
	stakeholderRef  []string

	scanNode        func(rows *sql.Rows, n *model.Node) error
	bindNode        func(n *model.Node) []any
	scanTrans       func(rows *sql.Rows, t *model.Trans) error
	bindTrans       func(t *model.Trans) []any
	bindUpdateTrans func(t *model.Trans) []any
}

func dialectFor(info section.Info) dialect {
	switch {
	case info.OrderStyle:
		return orderDialect(info)
	case info.Section == section.Stakeholder:
		return stakeholderDialect(info)
	default:
		return baseDialect(info)
	}
}

func baseDialect(info section.Info) dialect {
	d := dialect{
		readNode: fmt.Sprintf(
			"SELECT id, name, code, description, note, rule, branch, unit FROM %s WHERE removed = 0",
			info.Node),
		writeNode: fmt.Sprintf(
			"INSERT INTO %s (name, code, description, note, rule, branch, unit) VALUES (?, ?, ?, ?, ?, ?, ?)",
			info.Node),
		leafTotal: fmt.Sprintf(`
    SELECT
        SUM(CASE WHEN lhs_node = ?1 THEN (lhs_credit - lhs_debit) * lhs_ratio
                 ELSE (rhs_credit - rhs_debit) * rhs_ratio END) AS initial_balance,
        SUM(CASE WHEN lhs_node = ?1 THEN lhs_credit - lhs_debit
                 ELSE rhs_credit - rhs_debit END) AS final_balance
    FROM %s
    WHERE (lhs_node = ?1 OR rhs_node = ?1) AND removed = 0
`, info.Trans),
		internalRef: fmt.Sprintf(
			"SELECT COUNT(*) FROM %s WHERE (lhs_node = ?1 OR rhs_node = ?1) AND removed = 0",
			info.Trans),
		removeNodeTrans: fmt.Sprintf(
			"UPDATE %s SET removed = 1 WHERE lhs_node = ?1 OR rhs_node = ?1",
			info.Trans),
		readNodeTrans: fmt.Sprintf(
			doubleEntrySelect+" FROM %s WHERE (lhs_node = ?1 OR rhs_node = ?1) AND removed = 0",
			info.Trans),
		readTransIn: fmt.Sprintf(
			doubleEntrySelect+" FROM %s WHERE id IN (%%s) AND removed = 0",
			info.Trans),
		writeTrans: fmt.Sprintf(`
    INSERT INTO %s (state, date_time, code, document, description,
        lhs_node, lhs_ratio, lhs_debit, lhs_credit,
        rhs_node, rhs_ratio, rhs_debit, rhs_credit)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, info.Trans),
		updateTrans: fmt.Sprintf(`
    UPDATE %s SET
        lhs_node = ?, lhs_ratio = ?, lhs_debit = ?, lhs_credit = ?,
        rhs_node = ?, rhs_ratio = ?, rhs_debit = ?, rhs_credit = ?
    WHERE id = ?
`, info.Trans),
		replaceNode: fmt.Sprintf(`
    UPDATE %s SET
        lhs_node = CASE WHEN lhs_node = ?1 THEN ?2 ELSE lhs_node END,
        rhs_node = CASE WHEN rhs_node = ?1 THEN ?2 ELSE rhs_node END
    WHERE (lhs_node = ?1 OR rhs_node = ?1) AND NOT (lhs_node = ?1 AND rhs_node = ?1)
`, info.Trans),
		scanNode:        scanBaseNode,
		bindNode:        bindBaseNode,
		scanTrans:       scanDoubleEntry,
		bindTrans:       bindDoubleEntry,
		bindUpdateTrans: bindDoubleEntryUpdate,
	}

	if info.Section == section.Product {
		// A product may be referenced from the stakeholder price list and
		// from order lines in both order books.
		d.externalRef = `
    SELECT
        (SELECT COUNT(*) FROM stakeholder_transaction WHERE rhs_node = ?1 AND removed = 0) +
        (SELECT COUNT(*) FROM purchase_transaction WHERE inside_product = ?1 AND removed = 0) +
        (SELECT COUNT(*) FROM sales_transaction WHERE inside_product = ?1 AND removed = 0)
`
	}

	return d
}

func stakeholderDialect(info section.Info) dialect {
	d := baseDialect(info)

	d.leafTotal = ""
	d.readNodeTrans = fmt.Sprintf(
		stakeholderSelect+" FROM %s WHERE (lhs_node = ?1 OR rhs_node = ?1) AND removed = 0",
		info.Trans)
	d.readTransIn = fmt.Sprintf(
		stakeholderSelect+" FROM %s WHERE id IN (%%s) AND removed = 0",
		info.Trans)
	d.writeTrans = fmt.Sprintf(`
    INSERT INTO %s (state, date_time, code, document, description, unit_price,
        lhs_node, lhs_ratio, lhs_debit, lhs_credit,
        rhs_node, rhs_ratio, rhs_debit, rhs_credit)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, info.Trans)
	d.updateTrans = fmt.Sprintf(`
    UPDATE %s SET
        unit_price = ?,
        lhs_node = ?, lhs_ratio = ?, lhs_debit = ?, lhs_credit = ?,
        rhs_node = ?, rhs_ratio = ?, rhs_debit = ?, rhs_credit = ?
    WHERE id = ?
`, info.Trans)
	d.externalRef = `
    SELECT
        (SELECT COUNT(*) FROM purchase WHERE (party = ?1 OR employee = ?1) AND removed = 0) +
        (SELECT COUNT(*) FROM sales WHERE (party = ?1 OR employee = ?1) AND removed = 0)
`
	// The rhs side of a stakeholder record is the priced product.
	d.productRef = []string{fmt.Sprintf(
		"UPDATE %s SET rhs_node = ?2 WHERE rhs_node = ?1", info.Trans)}

	d.scanTrans = scanStakeholderTrans
	d.bindTrans = bindStakeholderTrans
	d.bindUpdateTrans = bindStakeholderTransUpdate

	return d
}

func orderDialect(info section.Info) dialect {
	return dialect{
		readNode: fmt.Sprintf(`
    SELECT id, name, code, description, note, rule, branch, unit,
        party, employee, date_time, first, second, discount, locked,
        initial_total, final_total
    FROM %s WHERE removed = 0
`, info.Node),
		writeNode: fmt.Sprintf(`
    INSERT INTO %s (name, code, description, note, rule, branch, unit,
        party, employee, date_time, first, second, discount, locked,
        initial_total, final_total)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, info.Node),
		internalRef: fmt.Sprintf(
			"SELECT COUNT(*) FROM %s WHERE node_id = ?1 AND removed = 0",
			info.Trans),
		removeNodeTrans: fmt.Sprintf(
			"UPDATE %s SET removed = 1 WHERE node_id = ?1",
			info.Trans),
		readNodeTrans: fmt.Sprintf(
			orderSelect+" FROM %s WHERE node_id = ?1 AND removed = 0",
			info.Trans),
		readTransIn: fmt.Sprintf(
			orderSelect+" FROM %s WHERE id IN (%%s) AND removed = 0",
			info.Trans),
		writeTrans: fmt.Sprintf(`
    INSERT INTO %s (code, node_id, inside_product, outside_product, unit_price,
        first, second, initial_subtotal, discount, discount_price, settled, description)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, info.Trans),
		updateTrans: fmt.Sprintf(`
    UPDATE %s SET
        code = ?, inside_product = ?, outside_product = ?, unit_price = ?,
        first = ?, second = ?, initial_subtotal = ?, discount = ?,
        discount_price = ?, settled = ?, description = ?
    WHERE id = ?
`, info.Trans),
		productRef: []string{fmt.Sprintf(
			"UPDATE %s SET inside_product = ?2 WHERE inside_product = ?1", info.Trans)},
		stakeholderRef: []string{
			fmt.Sprintf(
				"UPDATE %s SET outside_product = ?2 WHERE outside_product = ?1", info.Trans),
			fmt.Sprintf(`
    UPDATE %s SET
        party = CASE WHEN party = ?1 THEN ?2 ELSE party END,
        employee = CASE WHEN employee = ?1 THEN ?2 ELSE employee END
    WHERE party = ?1 OR employee = ?1
`, info.Node),
		},
		scanNode:        scanOrderNode,
		bindNode:        bindOrderNode,
		scanTrans:       scanOrderTrans,
		bindTrans:       bindOrderTrans,
		bindUpdateTrans: bindOrderTransUpdate,
	}
}

const doubleEntrySelect = "SELECT id, state, date_time, code, document, description," +
	" lhs_node, lhs_ratio, lhs_debit, lhs_credit," +
	" rhs_node, rhs_ratio, rhs_debit, rhs_credit"

const stakeholderSelect = "SELECT id, state, date_time, code, document, description, unit_price," +
	" lhs_node, lhs_ratio, lhs_debit, lhs_credit," +
	" rhs_node, rhs_ratio, rhs_debit, rhs_credit"

const orderSelect = "SELECT id, code, node_id, inside_product, outside_product, unit_price," +
	" first, second, initial_subtotal, discount, discount_price, settled, description"

func scanBaseNode(rows *sql.Rows, n *model.Node) error {
	return rows.Scan(&n.ID, &n.Name, &n.Code, &n.Description, &n.Note,
		&n.Rule, &n.Branch, &n.Unit)
}

func bindBaseNode(n *model.Node) []any {
	return []any{n.Name, n.Code, n.Description, n.Note, n.Rule, n.Branch, n.Unit}
}

func scanOrderNode(rows *sql.Rows, n *model.Node) error {
	return rows.Scan(&n.ID, &n.Name, &n.Code, &n.Description, &n.Note,
		&n.Rule, &n.Branch, &n.Unit,
		&n.Party, &n.Employee, &n.DateTime, &n.First, &n.Second, &n.Discount, &n.Locked,
		&n.InitialTotal, &n.FinalTotal)
}

func bindOrderNode(n *model.Node) []any {
	return []any{n.Name, n.Code, n.Description, n.Note, n.Rule, n.Branch, n.Unit,
		n.Party, n.Employee, n.DateTime, n.First, n.Second, n.Discount, n.Locked,
		n.InitialTotal, n.FinalTotal}
}

func scanDoubleEntry(rows *sql.Rows, t *model.Trans) error {
	var document string
	if err := rows.Scan(&t.ID, &t.State, &t.DateTime, &t.Code, &document, &t.Description,
		&t.LhsNode, &t.LhsRatio, &t.LhsDebit, &t.LhsCredit,
		&t.RhsNode, &t.RhsRatio, &t.RhsDebit, &t.RhsCredit); err != nil {
		return err
	}
	t.Document = model.SplitDocuments(document)
	return nil
}

func bindDoubleEntry(t *model.Trans) []any {
	return []any{t.State, t.DateTime, t.Code, model.JoinDocuments(t.Document), t.Description,
		t.LhsNode, t.LhsRatio, t.LhsDebit, t.LhsCredit,
		t.RhsNode, t.RhsRatio, t.RhsDebit, t.RhsCredit}
}

func bindDoubleEntryUpdate(t *model.Trans) []any {
	return []any{t.LhsNode, t.LhsRatio, t.LhsDebit, t.LhsCredit,
		t.RhsNode, t.RhsRatio, t.RhsDebit, t.RhsCredit, t.ID}
}

func scanStakeholderTrans(rows *sql.Rows, t *model.Trans) error {
	var document string
	if err := rows.Scan(&t.ID, &t.State, &t.DateTime, &t.Code, &document, &t.Description,
		&t.UnitPrice,
		&t.LhsNode, &t.LhsRatio, &t.LhsDebit, &t.LhsCredit,
		&t.RhsNode, &t.RhsRatio, &t.RhsDebit, &t.RhsCredit); err != nil {
		return err
	}
	t.Document = model.SplitDocuments(document)
	return nil
}

func bindStakeholderTrans(t *model.Trans) []any {
	return []any{t.State, t.DateTime, t.Code, model.JoinDocuments(t.Document), t.Description,
		t.UnitPrice,
		t.LhsNode, t.LhsRatio, t.LhsDebit, t.LhsCredit,
		t.RhsNode, t.RhsRatio, t.RhsDebit, t.RhsCredit}
}

func bindStakeholderTransUpdate(t *model.Trans) []any {
	return []any{t.UnitPrice,
		t.LhsNode, t.LhsRatio, t.LhsDebit, t.LhsCredit,
		t.RhsNode, t.RhsRatio, t.RhsDebit, t.RhsCredit, t.ID}
}

// Order lines reuse the symmetric slots: inside_product/first/second sit
// on the lhs side, outside_product/discount/initial_subtotal on the rhs.
func scanOrderTrans(rows *sql.Rows, t *model.Trans) error {
	return rows.Scan(&t.ID, &t.Code, &t.NodeID, &t.LhsNode, &t.RhsNode, &t.UnitPrice,
		&t.LhsDebit, &t.LhsCredit, &t.RhsCredit, &t.RhsDebit,
		&t.DiscountPrice, &t.Settled, &t.Description)
}

func bindOrderTrans(t *model.Trans) []any {
	return []any{t.Code, t.NodeID, t.LhsNode, t.RhsNode, t.UnitPrice,
		t.LhsDebit, t.LhsCredit, t.RhsCredit, t.RhsDebit,
		t.DiscountPrice, t.Settled, t.Description}
}

func bindOrderTransUpdate(t *model.Trans) []any {
	return []any{t.Code, t.LhsNode, t.RhsNode, t.UnitPrice,
		t.LhsDebit, t.LhsCredit, t.RhsCredit, t.RhsDebit,
		t.DiscountPrice, t.Settled, t.Description, t.ID}
}
