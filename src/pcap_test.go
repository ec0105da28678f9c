package basenji

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPcapWriter_FileHeader(t *testing.T) {
	var buf bytes.Buffer
	var w = NewPcapWriter(&buf)
	require.NoError(t, w.WriteFileHeader())

	var hdr = buf.Bytes()
	require.Len(t, hdr, 24)
	assert.Equal(t, uint32(0xA1B2C3D4), binary.LittleEndian.Uint32(hdr[0:4]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(hdr[4:6]))
	assert.Equal(t, uint16(4), binary.LittleEndian.Uint16(hdr[6:8]))
	assert.Equal(t, uint32(65535), binary.LittleEndian.Uint32(hdr[16:20]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(hdr[20:24]))
}

func TestPcapWriter_Packet(t *testing.T) {
	var buf bytes.Buffer
	var w = NewPcapWriter(&buf)
	w.now = func() time.Time { return time.Unix(1700000000, 250000000) }

	require.NoError(t, w.WriteGroup([4]uint16{0x232D, 0x40E1, 0xD6DB, 0x2C02}, 1050))

	var out = buf.Bytes()
	// Record header + eth(14) + ip(20) + udp(8) + rftap(20) + 8 bytes RDS.
	require.Len(t, out, 16+70)

	assert.Equal(t, uint32(1700000000), binary.LittleEndian.Uint32(out[0:4]))
	assert.Equal(t, uint32(250000), binary.LittleEndian.Uint32(out[4:8]))
	assert.Equal(t, uint32(70), binary.LittleEndian.Uint32(out[8:12]))

	var packet = out[16:]
	assert.Equal(t, []byte{0x08, 0x00}, packet[12:14]) // IPv4 ethertype
	assert.Equal(t, byte(17), packet[14+9])            // UDP

	var udp = packet[14+20:]
	assert.Equal(t, uint16(0xCB21), binary.BigEndian.Uint16(udp[2:4]))

	var rftap = udp[8:]
	assert.Equal(t, "RFta", string(rftap[0:4]))
	assert.Equal(t, uint16(5), binary.LittleEndian.Uint16(rftap[4:6]))
	assert.Equal(t, uint16(0x0005), binary.LittleEndian.Uint16(rftap[6:8]))
	assert.Equal(t, uint32(265), binary.LittleEndian.Uint32(rftap[8:12]))
	var freq = math.Float64frombits(binary.LittleEndian.Uint64(rftap[12:20]))
	assert.Equal(t, float64(105000000), freq)

	assert.Equal(t, []byte{0x23, 0x2D, 0x40, 0xE1, 0xD6, 0xDB, 0x2C, 0x02}, rftap[20:])
}

func TestPcapWriter_Dedup(t *testing.T) {
	var buf bytes.Buffer
	var w = NewPcapWriter(&buf)
	w.now = func() time.Time { return time.Unix(0, 0) }

	w.WriteGroup([4]uint16{1, 2, 3, 4}, 1050)
	var len1 = buf.Len()
	w.WriteGroup([4]uint16{1, 2, 3, 4}, 1050)
	assert.Equal(t, len1, buf.Len())
}
