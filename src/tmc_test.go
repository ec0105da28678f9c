package basenji

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tmc8A builds an 8A group with the given variant bits.
func tmc8A(vary int, c, d uint16) Group {
	return ParseBlocks([4]uint16{0x232D, uint16(0x8000 | vary), c, d})
}

func newTestAssembler() (*TmcAssembler, *TmcCache) {
	var cache = newTmcCache()
	cache.now = func() time.Time { return time.Unix(1700000000, 0) }
	return newTmcAssembler(cache), cache
}

func TestTmc_SingleGroup(t *testing.T) {
	var asm, cache = newTestAssembler()

	// F=1, duration 7; C carries D=1, dir=1, extent=1, event 0x0E7.
	var g = tmc8A(0x0F, 0xC8E7, 0xC2E7)
	var m = asm.HandleUserMessage(g)

	require.NotNil(t, m)
	assert.True(t, m.Single)
	assert.Equal(t, 0x0E7, m.Event)
	assert.Equal(t, uint16(0xC2E7), m.Location)
	assert.Equal(t, 1, m.Direction)
	assert.Equal(t, 1, m.Extent)
	assert.Equal(t, 1, m.Diversion)
	assert.Equal(t, 7, m.Duration)
	assert.Empty(t, m.Aux)

	var recs = cache.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, TmcKey{Event: 0x0E7, Location: 0xC2E7, Direction: 1}, recs[0].Key)
	assert.Equal(t, 1, recs[0].Count)
	assert.False(t, recs[0].Partial)
}

func TestTmc_SingleGroupRepeatCounts(t *testing.T) {
	var asm, cache = newTestAssembler()
	var g = tmc8A(0x0F, 0xC8E7, 0xC2E7)
	asm.HandleUserMessage(g)
	asm.HandleUserMessage(g)

	var recs = cache.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Count)
}

func TestTmc_MultiGroup(t *testing.T) {
	var asm, cache = newTestAssembler()

	// First: F=0, CI=4; C has D=1, extent=2, event 0x123.
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x9123, 0xABCD)))
	// Second: is_second=1, SEQ=1.
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x5200, 0x0000)))
	// Third: is_second=1, SEQ=0: publishes.
	var m = asm.HandleUserMessage(tmc8A(0x04, 0x4000, 0x0000))

	require.NotNil(t, m)
	assert.False(t, m.Single)
	assert.Equal(t, 4, m.CI)
	assert.Equal(t, 0x123, m.Event)
	assert.Equal(t, uint16(0xABCD), m.Location)
	assert.Equal(t, 2, m.Extent)
	assert.Equal(t, []TmcAux{{Label: 2, Value: 0}}, m.Aux)

	// Assembler is idle again.
	assert.False(t, asm.collecting)

	// The partial insert from the first group was upgraded in place.
	var recs = cache.Records()
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Partial)
	assert.Equal(t, 2, recs[0].Count) // partial insert + publication
}

func TestTmc_ContinuityMismatchDrops(t *testing.T) {
	var asm, _ = newTestAssembler()
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x9123, 0xABCD)))
	// Continuation with CI=5 instead of 4.
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x05, 0x5200, 0x0000)))
	assert.False(t, asm.collecting)

	// Nothing publishes afterwards, even with the right CI.
	assert.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x4000, 0x0000)))
}

func TestTmc_OutOfOrderSequenceDrops(t *testing.T) {
	var asm, _ = newTestAssembler()
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x9123, 0xABCD)))
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x6200, 0x0000))) // SEQ=2
	// SEQ must now be 1; a repeat of 2 aborts the message.
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x6200, 0x0001)))
	assert.False(t, asm.collecting)
}

func TestTmc_ContinuationWithoutFirstIgnored(t *testing.T) {
	var asm, cache = newTestAssembler()
	assert.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x4000, 0x0000)))
	assert.Equal(t, 0, cache.Len())
}

func TestTmc_SingleDoesNotDisturbCollection(t *testing.T) {
	var asm, _ = newTestAssembler()
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x9123, 0xABCD)))

	// A single-group message in between publishes by itself...
	require.NotNil(t, asm.HandleUserMessage(tmc8A(0x0F, 0xC8E7, 0xC2E7)))

	// ...and the multi-group sequence still completes.
	require.Nil(t, asm.HandleUserMessage(tmc8A(0x04, 0x5200, 0x0000)))
	assert.NotNil(t, asm.HandleUserMessage(tmc8A(0x04, 0x4000, 0x0000)))
}

func TestTmcCache_PartialNeverOverwritesComplete(t *testing.T) {
	var cache = newTmcCache()
	var key = TmcKey{Event: 1, Location: 2, Direction: 0}

	cache.add(key, []uint16{1, 2, 3, 4, 5, 6}, false)
	cache.add(key, []uint16{1, 2, 3, 4}, true)

	var recs = cache.Records()
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Partial)
	assert.Len(t, recs[0].Raw, 6)
	assert.Equal(t, 1, recs[0].Count)
}

func TestTmcParseAux(t *testing.T) {
	// Label 5 (8 bits) with value 0xAB packed into one 12-bit half,
	// then a terminating label 0.
	var aux = tmcParseAux([]uint16{0, 0, 0, 0, 0x5AB, 0x0000})
	assert.Equal(t, []TmcAux{{Label: 5, Value: 0xAB}}, aux)
}

func TestTmcParseAux_Truncated(t *testing.T) {
	// Label 10 wants 16 bits but only 8 remain.
	var aux = tmcParseAux([]uint16{0, 0, 0, 0, 0xA12})
	assert.Equal(t, []TmcAux{{Label: 10, Value: 0x12}}, aux)
}

func TestTmcParseAux_ReservedLabelSkipped(t *testing.T) {
	var aux = tmcParseAux([]uint16{0, 0, 0, 0, 0xF00, 0x0000})
	assert.Empty(t, aux)
}
