package basenji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRtPlus(t *testing.T) {
	// toggle=1, running=1, tag1 = type 4 (artist) @0 len 10,
	// tag2 = type 1 (title) @11 len 20.
	var raw = uint64(1)<<36 | uint64(1)<<35 |
		uint64(4)<<29 | uint64(0)<<23 | uint64(10)<<17 |
		uint64(1)<<11 | uint64(11)<<5 | uint64(20)

	var info = decodeRtPlus(raw)
	assert.True(t, info.ItemToggle)
	assert.True(t, info.ItemRunning)
	assert.Equal(t, RtPlusTag{ContentType: 4, Start: 0, Length: 10}, info.Tags[0])
	assert.Equal(t, RtPlusTag{ContentType: 1, Start: 11, Length: 20}, info.Tags[1])
	assert.Equal(t, "item_artist", info.Tags[0].Name())
	assert.Equal(t, "item_title", info.Tags[1].Name())
}

func TestRtPlusTag_UndefinedTypeRendersNumeric(t *testing.T) {
	assert.Equal(t, "type57", RtPlusTag{ContentType: 57}.Name())
}

func TestDecodeRtPlus_SecondLengthIsFiveBits(t *testing.T) {
	var raw = uint64(31) // all ones in tag2 length
	var info = decodeRtPlus(raw)
	assert.Equal(t, 31, info.Tags[1].Length)
	assert.Equal(t, 0, info.Tags[1].Start)
}
