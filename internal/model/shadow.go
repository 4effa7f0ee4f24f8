package model

import "github.com/shopspring/decimal"

// TransShadow is a lightweight view over one shared Trans, interpreted
// from one participant's perspective. A "left" shadow exposes the lhs
// side as its own and the rhs side as the related side; a "right" shadow
// swaps them. Any number of shadows may reference the same Trans, and a
// mutation through one is visible through all of them.
type TransShadow struct {
	trans *Trans
	left  bool

	// Subtotal is the running balance of the owning view. It belongs to
	// the shadow, not the shared record, and is never persisted.
	Subtotal decimal.Decimal
}

// NewTransShadow wraps trans from the left or right perspective.
func NewTransShadow(trans *Trans, left bool) *TransShadow {
	return &TransShadow{trans: trans, left: left}
}

// Bind re-points a recycled shadow at trans from the given side.
func (s *TransShadow) Bind(trans *Trans, left bool) {
	s.trans = trans
	s.left = left
	s.Subtotal = decimal.Decimal{}
}

// Trans returns the shared underlying record.
func (s *TransShadow) Trans() *Trans { return s.trans }

// Left reports which side of the pair this shadow exposes as its own.
func (s *TransShadow) Left() bool { return s.left }

func (s *TransShadow) ID() int             { return s.trans.ID }
func (s *TransShadow) State() bool         { return s.trans.State }
func (s *TransShadow) DateTime() string    { return s.trans.DateTime }
func (s *TransShadow) Code() string        { return s.trans.Code }
func (s *TransShadow) Description() string { return s.trans.Description }
func (s *TransShadow) Document() []string  { return s.trans.Document }
func (s *TransShadow) OwnerNode() int      { return s.trans.NodeID }

func (s *TransShadow) SetState(state bool)       { s.trans.State = state }
func (s *TransShadow) SetDateTime(v string)      { s.trans.DateTime = v }
func (s *TransShadow) SetCode(v string)          { s.trans.Code = v }
func (s *TransShadow) SetDescription(v string)   { s.trans.Description = v }
func (s *TransShadow) SetDocument(docs []string) { s.trans.Document = docs }
func (s *TransShadow) SetOwnerNode(id int)       { s.trans.NodeID = id }

// Node returns this side's node id.
func (s *TransShadow) Node() int {
	if s.left {
		return s.trans.LhsNode
	}
	return s.trans.RhsNode
}

func (s *TransShadow) SetNode(id int) {
	if s.left {
		s.trans.LhsNode = id
	} else {
		s.trans.RhsNode = id
	}
}

// RelatedNode returns the opposite side's node id.
func (s *TransShadow) RelatedNode() int {
	if s.left {
		return s.trans.RhsNode
	}
	return s.trans.LhsNode
}

func (s *TransShadow) SetRelatedNode(id int) {
	if s.left {
		s.trans.RhsNode = id
	} else {
		s.trans.LhsNode = id
	}
}

func (s *TransShadow) Ratio() decimal.Decimal {
	if s.left {
		return s.trans.LhsRatio
	}
	return s.trans.RhsRatio
}

func (s *TransShadow) SetRatio(v decimal.Decimal) {
	if s.left {
		s.trans.LhsRatio = v
	} else {
		s.trans.RhsRatio = v
	}
}

func (s *TransShadow) Debit() decimal.Decimal {
	if s.left {
		return s.trans.LhsDebit
	}
	return s.trans.RhsDebit
}

func (s *TransShadow) SetDebit(v decimal.Decimal) {
	if s.left {
		s.trans.LhsDebit = v
	} else {
		s.trans.RhsDebit = v
	}
}

func (s *TransShadow) Credit() decimal.Decimal {
	if s.left {
		return s.trans.LhsCredit
	}
	return s.trans.RhsCredit
}

func (s *TransShadow) SetCredit(v decimal.Decimal) {
	if s.left {
		s.trans.LhsCredit = v
	} else {
		s.trans.RhsCredit = v
	}
}

func (s *TransShadow) RelatedRatio() decimal.Decimal {
	if s.left {
		return s.trans.RhsRatio
	}
	return s.trans.LhsRatio
}

func (s *TransShadow) SetRelatedRatio(v decimal.Decimal) {
	if s.left {
		s.trans.RhsRatio = v
	} else {
		s.trans.LhsRatio = v
	}
}

func (s *TransShadow) RelatedDebit() decimal.Decimal {
	if s.left {
		return s.trans.RhsDebit
	}
	return s.trans.LhsDebit
}

func (s *TransShadow) SetRelatedDebit(v decimal.Decimal) {
	if s.left {
		s.trans.RhsDebit = v
	} else {
		s.trans.LhsDebit = v
	}
}

func (s *TransShadow) RelatedCredit() decimal.Decimal {
	if s.left {
		return s.trans.RhsCredit
	}
	return s.trans.LhsCredit
}

func (s *TransShadow) SetRelatedCredit(v decimal.Decimal) {
	if s.left {
		s.trans.RhsCredit = v
	} else {
		s.trans.LhsCredit = v
	}
}

// Order-section accessors. These fields have no side, so the selector
// does not apply.

func (s *TransShadow) UnitPrice() decimal.Decimal     { return s.trans.UnitPrice }
func (s *TransShadow) SetUnitPrice(v decimal.Decimal) { s.trans.UnitPrice = v }

func (s *TransShadow) DiscountPrice() decimal.Decimal     { return s.trans.DiscountPrice }
func (s *TransShadow) SetDiscountPrice(v decimal.Decimal) { s.trans.DiscountPrice = v }

func (s *TransShadow) Settled() decimal.Decimal     { return s.trans.Settled }
func (s *TransShadow) SetSettled(v decimal.Decimal) { s.trans.Settled = v }

// Incomplete reports whether the record still points at the unassigned
// placeholder and therefore must not be persisted yet.
func (s *TransShadow) Incomplete() bool {
	return s.RelatedNode() == UnassignedID
}

// Reset detaches the shadow for reuse from the pool.
func (s *TransShadow) Reset() {
	s.trans = nil
	s.left = false
	s.Subtotal = decimal.Decimal{}
}
