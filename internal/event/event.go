// Package event carries change notifications from the ledger engine to
// the view layer. The engine fires and forgets; for a given (section,
// node) key at most one registered listener acts per emission.
package event

import (
	"sort"

	"github.com/YtxCash/YtxModel/internal/section"
)

// NodeTrans maps counter-party node ids to the transaction ids they
// share with a target node.
type NodeTrans map[int][]int

// Add records one (counter-party, transaction) pair.
func (nt NodeTrans) Add(nodeID, transID int) {
	nt[nodeID] = append(nt[nodeID], transID)
}

// Contains reports whether nodeID appears as a counter-party.
func (nt NodeTrans) Contains(nodeID int) bool {
	_, ok := nt[nodeID]
	return ok
}

// Nodes returns the counter-party ids in ascending order.
func (nt NodeTrans) Nodes() []int {
	nodes := make([]int, 0, len(nt))
	for id := range nt {
		nodes = append(nodes, id)
	}
	sort.Ints(nodes)
	return nodes
}

// TransIDs returns every recorded transaction id in ascending order.
// A transaction shared with several counter-parties appears once per
// pairing, matching the per-view bookkeeping downstream.
func (nt NodeTrans) TransIDs() []int {
	var ids []int
	for _, list := range nt {
		ids = append(ids, list...)
	}
	sort.Ints(ids)
	return ids
}

// Listener receives engine notifications for one (section, node) key.
// Implementations embed NopListener and override what they consume.
type Listener interface {
	// FreeView asks the view for nodeID to release its resources.
	FreeView(nodeID int)

	// NodeRemoved reports that nodeID's record is gone. It always
	// follows FreeView and always precedes cache reclamation of the
	// node's transactions.
	NodeRemoved(nodeID int)

	// TransRemoved reports that the listed transactions of nodeID were
	// removed together with their counter-party node.
	TransRemoved(nodeID int, transIDs []int)

	// TransMoved reports that the listed transactions now reference
	// newNodeID where they referenced oldNodeID.
	TransMoved(oldNodeID, newNodeID int, transIDs []int)

	// LeafTotalChanged asks for nodeID's leaf balance to be recomputed.
	LeafTotalChanged(nodeID int)

	// ProductReferenceChanged reports a product merge visible to
	// sections holding denormalized product columns.
	ProductReferenceChanged(oldNodeID, newNodeID int)

	// StakeholderReferenceChanged reports a party/employee merge.
	StakeholderReferenceChanged(oldNodeID, newNodeID int)
}

// NopListener discards every notification.
type NopListener struct{}

func (NopListener) FreeView(int)                         {}
func (NopListener) NodeRemoved(int)                      {}
func (NopListener) TransRemoved(int, []int)              {}
func (NopListener) TransMoved(int, int, []int)           {}
func (NopListener) LeafTotalChanged(int)                 {}
func (NopListener) ProductReferenceChanged(int, int)     {}
func (NopListener) StakeholderReferenceChanged(int, int) {}

// Station is the subscriber registry. The engine owns one station per
// open ledger file; the view layer registers a listener per open node
// view. Callers serialize access, matching the engine's single-thread
// model.
type Station struct {
	listeners map[section.Section]map[int]Listener
}

// NewStation creates an empty registry.
func NewStation() *Station {
	return &Station{listeners: make(map[section.Section]map[int]Listener)}
}

// Register subscribes l to notifications keyed by (sec, nodeID),
// displacing any previous listener for the key.
func (st *Station) Register(sec section.Section, nodeID int, l Listener) {
	if st.listeners[sec] == nil {
		st.listeners[sec] = make(map[int]Listener)
	}
	st.listeners[sec][nodeID] = l
}

// Deregister removes the listener for (sec, nodeID).
func (st *Station) Deregister(sec section.Section, nodeID int) {
	delete(st.listeners[sec], nodeID)
}

func (st *Station) listener(sec section.Section, nodeID int) Listener {
	return st.listeners[sec][nodeID]
}

// FreeView notifies nodeID's own view.
func (st *Station) FreeView(sec section.Section, nodeID int) {
	if l := st.listener(sec, nodeID); l != nil {
		l.FreeView(nodeID)
	}
}

// NodeRemoved notifies nodeID's own view.
func (st *Station) NodeRemoved(sec section.Section, nodeID int) {
	if l := st.listener(sec, nodeID); l != nil {
		l.NodeRemoved(nodeID)
	}
}

// TransRemoved delivers each counter-party its removed transaction ids.
func (st *Station) TransRemoved(sec section.Section, affected NodeTrans) {
	for _, nodeID := range affected.Nodes() {
		if l := st.listener(sec, nodeID); l != nil {
			l.TransRemoved(nodeID, affected[nodeID])
		}
	}
}

// TransMoved notifies both ends of a node merge.
func (st *Station) TransMoved(sec section.Section, oldNodeID, newNodeID int, transIDs []int) {
	for _, nodeID := range []int{oldNodeID, newNodeID} {
		if l := st.listener(sec, nodeID); l != nil {
			l.TransMoved(oldNodeID, newNodeID, transIDs)
		}
	}
}

// LeafTotalChanged asks each listed node to recompute its balance.
func (st *Station) LeafTotalChanged(sec section.Section, nodeIDs []int) {
	for _, nodeID := range nodeIDs {
		if l := st.listener(sec, nodeID); l != nil {
			l.LeafTotalChanged(nodeID)
		}
	}
}

// ProductReferenceChanged broadcasts to every listener of sec.
func (st *Station) ProductReferenceChanged(sec section.Section, oldNodeID, newNodeID int) {
	for _, l := range st.listeners[sec] {
		l.ProductReferenceChanged(oldNodeID, newNodeID)
	}
}

// StakeholderReferenceChanged broadcasts to every listener of sec.
func (st *Station) StakeholderReferenceChanged(sec section.Section, oldNodeID, newNodeID int) {
	for _, l := range st.listeners[sec] {
		l.StakeholderReferenceChanged(oldNodeID, newNodeID)
	}
}
