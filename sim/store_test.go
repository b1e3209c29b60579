package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type parcel struct {
	id int
}

func TestStore_FIFO(t *testing.T) {
	// GIVEN a store with three items
	st := NewStore[parcel]("handoff")
	for i := 1; i <= 3; i++ {
		st.Put(parcel{id: i})
	}
	assert.Equal(t, 3, st.Len())

	// WHEN drained
	var ids []int
	for {
		p, ok := st.Get()
		if !ok {
			break
		}
		ids = append(ids, p.id)
	}

	// THEN items come out in insertion order
	assert.Equal(t, []int{1, 2, 3}, ids)
	puts, gets := st.Totals()
	assert.Equal(t, 3, puts)
	assert.Equal(t, 3, gets)
}

func TestStore_Empty_GetReturnsFalse(t *testing.T) {
	st := NewStore[parcel]("handoff")

	p, ok := st.Get()
	assert.False(t, ok)
	assert.Equal(t, parcel{}, p)
	assert.Equal(t, 0, st.Len())
}

func TestStore_Totals_CountLifetimeTraffic(t *testing.T) {
	st := NewStore[string]("names")
	st.Put("first")
	st.Put("second")
	_, _ = st.Get()

	puts, gets := st.Totals()
	assert.Equal(t, 2, puts)
	assert.Equal(t, 1, gets)
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, "names", st.Name())
}
