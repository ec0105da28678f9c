package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	RDS group fixed fields and block quality.
 *
 * Description:	Every group carries the same header regardless of
 *		type: the PI code in block A and the type / version /
 *		TP / PTY / variant fields in block B.  The receiver
 *		also reports, per block, how many bit errors were
 *		corrected (0..2) or that correction failed (3).
 *
 *---------------------------------------------------------------*/

import "fmt"

// Variant identifies one of the 32 group variants, 0A..15B.
type Variant struct {
	GType byte // 0..15
	B0    bool // false = A version, true = B version
}

// Index maps the variant onto 0..31 for array-backed registries.
func (v Variant) Index() int {
	var i = int(v.GType) << 1
	if v.B0 {
		i |= 1
	}
	return i
}

func variantFromIndex(i int) Variant {
	return Variant{GType: byte(i >> 1), B0: i&1 != 0}
}

// String renders the usual notation: "0A", "8A", "14B".
func (v Variant) String() string {
	if v.B0 {
		return fmt.Sprintf("%dB", v.GType)
	}
	return fmt.Sprintf("%dA", v.GType)
}

// Group is one received RDS group, split into its fixed fields.
type Group struct {
	Blocks [4]uint16

	PIC     uint16  // program identification, block A
	Variant Variant // group type + version bit
	TP      bool    // traffic program flag
	PTY     int     // program type, 0..31
	Vary    int     // low 5 bits of block B, group-specific
}

// ParseBlocks splits the fixed fields out of the four blocks.
func ParseBlocks(blocks [4]uint16) Group {
	var b = uint64(blocks[1])
	return Group{
		Blocks:  blocks,
		PIC:     blocks[0],
		Variant: Variant{GType: byte(getbits(b, 12, 4)), B0: getbit(b, 11) == 1},
		TP:      getbit(b, 10) == 1,
		PTY:     getbits(b, 5, 5),
		Vary:    getbits(b, 0, 5),
	}
}

// B returns block B, C returns block C, D returns block D.
func (g Group) B() uint16 { return g.Blocks[1] }
func (g Group) C() uint16 { return g.Blocks[2] }
func (g Group) D() uint16 { return g.Blocks[3] }

// raw37 is the free-format payload of the group.
func (g Group) raw37() uint64 {
	return rawPayload37(g.Blocks[1], g.Blocks[2], g.Blocks[3])
}

// HexPayload renders the 37-bit payload as XX:XXXX:XXXX for logs.
func (g Group) HexPayload() string {
	return fmt.Sprintf("%02x:%04x:%04x", g.Blocks[1]&0x1F, g.Blocks[2], g.Blocks[3])
}

// corrSum is the total number of corrected bits reported for the group.
func corrSum(corr [4]int) int {
	return corr[0] + corr[1] + corr[2] + corr[3]
}

// blocksBad reports whether any block's correction count reached the
// threshold.  Threshold 2 is the statistics / dispatch gate; 3 catches
// only uncorrectable blocks.
func blocksBad(corr [4]int, threshold int) bool {
	for _, c := range corr {
		if c >= threshold {
			return true
		}
	}
	return false
}
