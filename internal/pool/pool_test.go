package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	id int
}

func TestPoolResetsOnPut(t *testing.T) {
	p := New(func(r *record) { r.id = 0 })

	r := p.Get()
	r.id = 7
	p.Put(r)

	assert.Equal(t, 0, p.Get().id)
}

func TestPoolNilSafe(t *testing.T) {
	p := New[record](nil)
	p.Put(nil)

	assert.NotNil(t, p.Get())
}
