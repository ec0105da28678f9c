package basenji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuickTag(t *testing.T) {
	assert.Equal(t, "0", quickTag(Variant{GType: 0}))
	assert.Equal(t, "2^", quickTag(Variant{GType: 2, B0: true}))
	assert.Equal(t, "e", quickTag(Variant{GType: 14}))
	assert.Equal(t, "E", quickTag(Variant{GType: 14, B0: true}))
}

func TestStatRegistry_Counts(t *testing.T) {
	var s StatRegistry
	s.Add(Variant{GType: 2})
	s.Add(Variant{GType: 0})
	s.Add(Variant{GType: 0})
	s.AddRejected()

	var counts = s.Counts()
	assert.Equal(t, []GroupCount{
		{Variant: Variant{GType: 0}, Count: 2},
		{Variant: Variant{GType: 2}, Count: 1},
	}, counts)
	assert.Equal(t, uint32(1), s.Rejected())
	assert.Equal(t, uint32(3), s.Total())
}

func TestStatRegistry_QuickGroups(t *testing.T) {
	var s StatRegistry
	assert.Equal(t, "", s.QuickGroups())

	// 96x 0A, 4x 14B: both above the 3% cut.
	for i := 0; i < 96; i++ {
		s.Add(Variant{GType: 0})
	}
	for i := 0; i < 4; i++ {
		s.Add(Variant{GType: 14, B0: true})
	}
	assert.Equal(t, "0E", s.QuickGroups())

	// A single noise group out of a hundred stays hidden.
	s.Add(Variant{GType: 7})
	assert.Equal(t, "0E", s.QuickGroups())
}

func TestStatRegistry_Reset(t *testing.T) {
	var s StatRegistry
	s.Add(Variant{GType: 0})
	s.AddRejected()
	s.Reset()
	assert.Equal(t, uint32(0), s.Total())
	assert.Equal(t, uint32(0), s.Rejected())
}
