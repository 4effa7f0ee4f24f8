package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YtxCash/YtxModel/internal/model"
	"github.com/YtxCash/YtxModel/internal/section"
)

func insertOrder(t *testing.T, l *Ledger, name string, party, employee int) *model.Node {
	t.Helper()

	node := &model.Node{
		Name:     name,
		Party:    party,
		Employee: employee,
		DateTime: "2024-05-01 10:00",
	}
	require.NoError(t, l.InsertNode(model.RootID, node))
	return node
}

func insertOrderLine(t *testing.T, l *Ledger, orderID, inside, outside int, qty, price int64) *model.TransShadow {
	t.Helper()

	line := l.AllocateTransShadow()
	line.SetOwnerNode(orderID)
	line.SetNode(inside)
	line.SetRelatedNode(outside)
	line.SetDebit(decimal.NewFromInt(qty))
	line.SetUnitPrice(decimal.NewFromInt(price))
	line.SetRelatedCredit(decimal.NewFromInt(qty * price))
	require.NoError(t, l.InsertTransShadow(line))
	return line
}

func TestOrderRoundTrip(t *testing.T) {
	l, _ := newTestLedger(t, section.Purchase)

	order := insertOrder(t, l, "po-1", 11, 12)
	insertOrderLine(t, l, order.ID, 21, 31, 5, 10)
	insertOrderLine(t, l, order.ID, 22, 32, 2, 7)

	nodes, err := l.BuildTree()
	require.NoError(t, err)
	require.Contains(t, nodes, order.ID)
	assert.Equal(t, 11, nodes[order.ID].Party)
	assert.Equal(t, 12, nodes[order.ID].Employee)
	assert.Equal(t, "2024-05-01 10:00", nodes[order.ID].DateTime)

	lines, err := l.ReadNodeTrans(order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	for _, line := range lines {
		assert.Equal(t, order.ID, line.OwnerNode())
	}

	products := []int{lines[0].Node(), lines[1].Node()}
	assert.ElementsMatch(t, []int{21, 22}, products)
}

func TestOrderRemoveNodeDropsLines(t *testing.T) {
	l, station := newTestLedger(t, section.Purchase)

	order := insertOrder(t, l, "po-1", 11, 0)
	line := insertOrderLine(t, l, order.ID, 21, 31, 5, 10)

	rec := &recorder{}
	station.Register(section.Purchase, order.ID, rec)

	require.NoError(t, l.RemoveNode(order.ID, false))

	// Order sections carry no leaf balances, so only the view teardown
	// notifications go out.
	assert.Equal(t, []string{
		fmt.Sprintf("free %d", order.ID),
		fmt.Sprintf("removed %d", order.ID),
	}, rec.calls)

	assert.Nil(t, l.CachedTrans(line.ID()))

	lines, err := l.ReadNodeTrans(order.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestOrderUpdateProductReference(t *testing.T) {
	l, _ := newTestLedger(t, section.Purchase)

	order := insertOrder(t, l, "po-1", 11, 0)
	line := insertOrderLine(t, l, order.ID, 21, 31, 5, 10)

	require.NoError(t, l.UpdateProductReference(21, 99))

	// Cache patched in place.
	assert.Equal(t, 99, line.Node())

	l.recycle(line.ID())
	lines, err := l.ReadNodeTrans(order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 99, lines[0].Node())
}

func TestOrderUpdateStakeholderReference(t *testing.T) {
	l, _ := newTestLedger(t, section.Purchase)

	order := insertOrder(t, l, "po-1", 11, 11)
	other := insertOrder(t, l, "po-2", 12, 11)
	line := insertOrderLine(t, l, order.ID, 21, 31, 5, 10)

	require.NoError(t, l.UpdateStakeholderReference(11, 40))

	nodes, err := l.BuildTree()
	require.NoError(t, err)
	assert.Equal(t, 40, nodes[order.ID].Party)
	assert.Equal(t, 40, nodes[order.ID].Employee)
	assert.Equal(t, 12, nodes[other.ID].Party)
	assert.Equal(t, 40, nodes[other.ID].Employee)

	// Outside-product aliases move too.
	require.NoError(t, l.UpdateStakeholderReference(31, 41))
	assert.Equal(t, 41, line.RelatedNode())

	l.recycle(line.ID())
	lines, err := l.ReadNodeTrans(order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 41, lines[0].RelatedNode())
}

func TestStakeholderPriceRecords(t *testing.T) {
	l, _ := newTestLedger(t, section.Stakeholder)

	parties := insertNode(t, l, model.RootID, "customers", true, false)
	customer := insertNode(t, l, parties.ID, "acme", false, false)

	record := l.AllocateTransShadow()
	record.SetNode(customer.ID)
	record.SetRelatedNode(21) // priced product
	record.SetUnitPrice(decimal.NewFromInt(13))
	record.SetDateTime("2024-05-01")
	require.NoError(t, l.InsertTransShadow(record))

	records, err := l.ReadNodeTrans(customer.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].UnitPrice().Equal(decimal.NewFromInt(13)))
	assert.Equal(t, 21, records[0].RelatedNode())

	// Stakeholder nodes carry no balance.
	require.NoError(t, l.LeafTotal(customer))
	assert.True(t, customer.InitialTotal.IsZero())

	// A product merge rewrites the priced side.
	require.NoError(t, l.UpdateProductReference(21, 99))
	assert.Equal(t, 99, records[0].RelatedNode())

	l.recycle(records[0].ID())
	records, err = l.ReadNodeTrans(customer.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 99, records[0].RelatedNode())
}

func TestUpdateReferenceUnsupportedSections(t *testing.T) {
	finance, _ := newTestLedger(t, section.Finance)

	assert.Error(t, finance.UpdateProductReference(1, 2))
	assert.Error(t, finance.UpdateStakeholderReference(1, 2))
}
