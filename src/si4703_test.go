package basenji

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBus is a test double for the I2C transfer: every read returns
// the current register frame; writes are recorded and, as on the
// chip, stored into the registers from 0x02 upward.
type fakeBus struct {
	regs   [16]uint16
	writes [][]byte
	closed bool
}

// frame serializes the registers in chip read order: 0x0A..0x0F,
// then 0x00..0x09.
func (b *fakeBus) frame() []byte {
	var out = make([]byte, 32)
	var regIndex = regStatusRSSI
	for i := 0; i < 16; i++ {
		out[i*2] = byte(b.regs[regIndex] >> 8)
		out[i*2+1] = byte(b.regs[regIndex])
		regIndex++
		if regIndex == 0x10 {
			regIndex = 0
		}
	}
	return out
}

func (b *fakeBus) Read(buf []byte) error {
	copy(buf, b.frame())
	return nil
}

func (b *fakeBus) Write(data []byte) error {
	var rec = make([]byte, len(data))
	copy(rec, data)
	b.writes = append(b.writes, rec)
	for i := 0; i+1 < len(data); i += 2 {
		b.regs[regPowerCfg+i/2] = uint16(data[i])<<8 | uint16(data[i+1])
	}
	return nil
}

func (b *fakeBus) Close() error {
	b.closed = true
	return nil
}

// fakeLine records the reset pulse without GPIO hardware.
type fakeLine struct {
	values []int
	closed bool
}

func (l *fakeLine) SetValue(v int) error {
	l.values = append(l.values, v)
	return nil
}

func (l *fakeLine) Close() error {
	l.closed = true
	return nil
}

func newFakeRadio(bus *fakeBus) *Si4703 {
	var r = newSi4703(bus, nil, 8)
	r.sleep = func(time.Duration) {}
	return r
}

func TestShuffleRegisters(t *testing.T) {
	var bus = &fakeBus{}
	for i := range bus.regs {
		bus.regs[i] = uint16(0x1100 * i)
	}
	var regs [16]uint16
	shuffleRegisters(bus.frame(), &regs)
	assert.Equal(t, bus.regs, regs)
}

func TestSi4703_Poll(t *testing.T) {
	var bus = &fakeBus{}
	bus.regs[regStatusRSSI] = 1<<statRDSR | 1<<9 | 0x0C // RDSR, corrA=1, RSSI 12
	bus.regs[regReadChan] = 2<<12 | 175                 // corrC=2, channel 105.0
	bus.regs[regRDSA] = 0x232D
	bus.regs[regRDSB] = 0x0016
	bus.regs[regRDSC] = 0xAFCE
	bus.regs[regRDSD] = 0x4F20

	var r = newFakeRadio(bus)
	var read, err = r.Poll()
	require.NoError(t, err)
	require.NotNil(t, read)

	assert.Equal(t, [4]uint16{0x232D, 0x0016, 0xAFCE, 0x4F20}, read.Blocks)
	assert.Equal(t, [4]int{1, 0, 2, 0}, read.Corrections)
	assert.Equal(t, 12, read.Rssi)
	assert.Equal(t, 1050, read.Channel100)
}

func TestSi4703_PollNotReady(t *testing.T) {
	var bus = &fakeBus{}
	var r = newFakeRadio(bus)
	var read, err = r.Poll()
	require.NoError(t, err)
	assert.Nil(t, read)

	var ready, _ = r.HasReady()
	assert.False(t, ready)
}

func TestSi4703_Channel(t *testing.T) {
	var bus = &fakeBus{}
	bus.regs[regReadChan] = 175
	var r = newFakeRadio(bus)
	var chn, err = r.Channel()
	require.NoError(t, err)
	assert.Equal(t, 1050, chn)
}

func TestSi4703_InitPulsesReset(t *testing.T) {
	var bus = &fakeBus{}
	var line = &fakeLine{}
	var r = newSi4703(bus, line, 8)
	r.sleep = func(time.Duration) {}

	require.NoError(t, r.Init())

	assert.Equal(t, []int{0, 1}, line.values)
	require.NotEmpty(t, bus.writes)
	for _, w := range bus.writes {
		assert.Len(t, w, 12) // registers 0x02..0x07
	}
}

func TestSi4703_InitConfiguresRds(t *testing.T) {
	var bus = &fakeBus{}
	var r = newFakeRadio(bus)
	require.NoError(t, r.Init())

	// The last write carries POWERCFG..TEST1.  RDS and the Europe
	// settings must be on, and the volume set.
	var last = bus.writes[len(bus.writes)-1]
	var powerCfg = uint16(last[0])<<8 | uint16(last[1])
	var sysConfig1 = uint16(last[4])<<8 | uint16(last[5])
	var sysConfig2 = uint16(last[6])<<8 | uint16(last[7])

	assert.NotZero(t, powerCfg&(1<<pwrRDSM))
	assert.NotZero(t, sysConfig1&(1<<cfgRDS))
	assert.NotZero(t, sysConfig1&(1<<cfgDE))
	assert.NotZero(t, sysConfig2&(1<<cfgSpace0))
	assert.Equal(t, uint16(8), sysConfig2&0x000F)
}

func TestSi4703_SetVolumeClamps(t *testing.T) {
	var bus = &fakeBus{}
	var r = newFakeRadio(bus)
	require.NoError(t, r.SetVolume(99))

	var last = bus.writes[len(bus.writes)-1]
	var sysConfig2 = uint16(last[6])<<8 | uint16(last[7])
	assert.Equal(t, uint16(15), sysConfig2&0x000F)
}

func TestSi4703_Close(t *testing.T) {
	var bus = &fakeBus{}
	var line = &fakeLine{}
	var r = newSi4703(bus, line, 8)
	require.NoError(t, r.Close())
	assert.True(t, bus.closed)
	assert.True(t, line.closed)
}
