package basenji

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorSource(t *testing.T) {
	var src = &VectorSource{
		Chan100: 1050,
		Reads: []RdsRead{
			{Blocks: [4]uint16{1, 2, 3, 4}},
			{Blocks: [4]uint16{5, 6, 7, 8}, Channel100: 946},
		},
	}

	var ready, _ = src.HasReady()
	assert.True(t, ready)

	var read, err = src.Poll()
	require.NoError(t, err)
	require.NotNil(t, read)
	assert.Equal(t, [4]uint16{1, 2, 3, 4}, read.Blocks)
	assert.Equal(t, 1050, read.Channel100) // filled from the source default

	read, _ = src.Poll()
	assert.Equal(t, 946, read.Channel100) // explicit value kept

	read, _ = src.Poll()
	assert.Nil(t, read)
	ready, _ = src.HasReady()
	assert.False(t, ready)
}

func TestVectorSource_DrivesSession(t *testing.T) {
	var src = &VectorSource{
		Chan100: 1050,
		Reads: []RdsRead{
			{Blocks: [4]uint16{0x232D, 0x0000, 0x0000, 0x5241}},
			{Blocks: [4]uint16{0x232D, 0x0001, 0x0000, 0x4449}},
			{Blocks: [4]uint16{0x232D, 0x0002, 0x0000, 0x4F20}},
			{Blocks: [4]uint16{0x232D, 0x0003, 0x0000, 0x2020}},
		},
	}

	var session = NewRdsSession(StandardRDS)
	for {
		var read, err = src.Poll()
		require.NoError(t, err)
		if read == nil {
			break
		}
		session.Feed(read.Blocks, read.Corrections)
	}
	assert.Equal(t, "RADIO   ", session.PS())
}
