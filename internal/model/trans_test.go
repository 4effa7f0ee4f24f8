package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinDocuments(t *testing.T) {
	assert.Equal(t, "", JoinDocuments(nil))
	assert.Equal(t, "a.pdf", JoinDocuments([]string{"a.pdf"}))
	assert.Equal(t, "a.pdf;b.png", JoinDocuments([]string{"a.pdf", "b.png"}))
}

func TestSplitDocuments(t *testing.T) {
	assert.Nil(t, SplitDocuments(""))
	assert.Nil(t, SplitDocuments(";;"))
	assert.Equal(t, []string{"a.pdf"}, SplitDocuments("a.pdf"))
	assert.Equal(t, []string{"a.pdf", "b.png"}, SplitDocuments("a.pdf;b.png"))

	// Empty segments are dropped, order preserved.
	assert.Equal(t, []string{"a.pdf", "b.png"}, SplitDocuments(";a.pdf;;b.png;"))
}

func TestTransReset(t *testing.T) {
	trans := &Trans{ID: 7, LhsNode: 1, Description: "x", Document: []string{"a"}}
	trans.Reset()
	assert.Equal(t, Trans{}, *trans)
}

func TestNodeIsLeaf(t *testing.T) {
	assert.True(t, (&Node{ID: 1}).IsLeaf())
	assert.False(t, (&Node{ID: 1, Branch: true}).IsLeaf())
	assert.False(t, (&Node{ID: RootID, Branch: true}).IsLeaf())
	assert.False(t, (&Node{ID: UnassignedID}).IsLeaf())
}
