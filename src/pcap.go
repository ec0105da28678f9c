package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	pcap capture output with RFtap encapsulation.
 *
 * Description:	Wireshark has no link type for bare RDS groups, so
 *		each group rides inside a synthetic Ethernet + IPv4 +
 *		UDP packet topped with an RFtap header naming the
 *		data-link type and the tuned frequency.  The MAC and
 *		IP addresses are fixed make-believe values; the IP
 *		header checksum is the constant matching that fixed
 *		header.  The UDP checksum is also a fixed constant and
 *		is not computed over the payload.
 *
 * References:	https://rftap.github.io/
 *
 *---------------------------------------------------------------*/

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"
)

const (
	pcapMagic    = 0xA1B2C3D4
	rftapDLT     = 265 // RDS
	rftapUDPPort = 0xCB21
)

// PcapWriter writes one capture stream.  Repeated hardware reads are
// suppressed like everywhere else.
type PcapWriter struct {
	W io.Writer

	now        func() time.Time
	lastBlocks [4]uint16
	haveLast   bool
}

// NewPcapWriter wraps w.  WriteFileHeader must come first.
func NewPcapWriter(w io.Writer) *PcapWriter {
	return &PcapWriter{W: w, now: time.Now}
}

// WriteFileHeader emits the classic pcap global header: version 2.4,
// snaplen 65535, linktype 1 (Ethernet).
func (p *PcapWriter) WriteFileHeader() error {
	var hdr = struct {
		Magic          uint32
		Major, Minor   uint16
		ThisZone       int32
		SigFigs        uint32
		SnapLen        uint32
		Network        uint32
	}{pcapMagic, 2, 4, 0, 0, 65535, 1}
	return binary.Write(p.W, binary.LittleEndian, hdr)
}

// WriteGroup emits one group as a packet.  channel100 sets the
// RFtap nominal frequency.
func (p *PcapWriter) WriteGroup(blocks [4]uint16, channel100 int) error {
	if p.haveLast && blocks == p.lastBlocks {
		return nil
	}
	p.lastBlocks = blocks
	p.haveLast = true

	var packet = rftapPacket(blocks, channel100)

	var now = p.now()
	var phdr = struct {
		Sec, Usec uint32
		InclLen   uint32
		OrigLen   uint32
	}{
		Sec:     uint32(now.Unix()),
		Usec:    uint32(now.Nanosecond() / 1000),
		InclLen: uint32(len(packet)),
		OrigLen: uint32(len(packet)),
	}
	if err := binary.Write(p.W, binary.LittleEndian, phdr); err != nil {
		return err
	}
	var _, err = p.W.Write(packet)
	return err
}

// rftapPacket lays out Ethernet + IPv4 + UDP + RFtap + the four
// big-endian RDS blocks.
func rftapPacket(blocks [4]uint16, channel100 int) []byte {
	const (
		lenEth   = 14
		lenIP    = 20
		lenUDP   = 8
		lenRftap = 20 // 5 32-bit words
	)
	var payloadLen = len(blocks) * 2
	var udpPayloadLen = payloadLen + lenRftap

	var buf bytes.Buffer

	// Ethernet
	buf.Write([]byte{10, 2, 2, 2, 2, 2}) // destination MAC
	buf.Write([]byte{10, 1, 1, 1, 1, 1}) // source MAC
	buf.Write([]byte{0x08, 0x00})        // IPv4

	// IPv4, checksum precomputed for these constant headers
	var ipLen = udpPayloadLen + lenUDP + lenIP
	buf.Write([]byte{0x45, 0x00})
	binary.Write(&buf, binary.BigEndian, uint16(ipLen))
	buf.Write([]byte{0x12, 0x34, 0, 0, 255, 17})
	binary.Write(&buf, binary.BigEndian, uint16(0x927B))
	buf.Write([]byte{10, 1, 1, 1})
	buf.Write([]byte{10, 2, 2, 2})

	// UDP
	binary.Write(&buf, binary.BigEndian, uint16(1))
	binary.Write(&buf, binary.BigEndian, uint16(rftapUDPPort))
	binary.Write(&buf, binary.BigEndian, uint16(udpPayloadLen+lenUDP))
	binary.Write(&buf, binary.BigEndian, uint16(0x3319))

	// RFtap: magic, length in words, flags (DLT + frequency
	// present), data-link type, nominal frequency in Hz
	buf.WriteString("RFta")
	binary.Write(&buf, binary.LittleEndian, uint16(5))
	binary.Write(&buf, binary.LittleEndian, uint16(0x0005))
	binary.Write(&buf, binary.LittleEndian, uint32(rftapDLT))
	binary.Write(&buf, binary.LittleEndian, float64(channel100)/10*1000000)

	for _, b := range blocks {
		binary.Write(&buf, binary.BigEndian, b)
	}
	return buf.Bytes()
}
