package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	RadioText+ tag extraction.
 *
 * Description:	RT+ marks up the plain 2A RadioText with two
 *		(content type, start, length) tags per group, so a
 *		receiver can pull out the artist, title, hotline
 *		number and so on without guessing at the free text.
 *		The carrying group variant is whatever 3A bound to
 *		AID 0x4BD7, typically 11A or 12A.
 *
 *---------------------------------------------------------------*/

import "fmt"

// RtPlusTag is one tagged span of the RadioText string.
type RtPlusTag struct {
	ContentType int // index into the RT+ content type table
	Start       int // offset into the 64-char RadioText
	Length      int
}

// Name returns the content type's name, or the numeric form for
// types the table does not define.
func (t RtPlusTag) Name() string {
	if t.ContentType >= 0 && t.ContentType < len(RtPlusContentTypes) {
		if n := RtPlusContentTypes[t.ContentType]; n != "" {
			return n
		}
	}
	return fmt.Sprintf("type%d", t.ContentType)
}

// RtPlusInfo is the decoded content of one RT+ group.
type RtPlusInfo struct {
	ItemToggle  bool // flips when the item (song, programme) changes
	ItemRunning bool
	Tags        [2]RtPlusTag
}

// decodeRtPlus unpacks the 37-bit payload of an RT+ group.  The
// second tag's length field is only 5 bits wide.
func decodeRtPlus(raw uint64) RtPlusInfo {
	return RtPlusInfo{
		ItemToggle:  getbit(raw, 36) == 1,
		ItemRunning: getbit(raw, 35) == 1,
		Tags: [2]RtPlusTag{
			{
				ContentType: getbits(raw, 29, 6),
				Start:       getbits(raw, 23, 6),
				Length:      getbits(raw, 17, 6),
			},
			{
				ContentType: getbits(raw, 11, 6),
				Start:       getbits(raw, 5, 6),
				Length:      getbits(raw, 0, 5),
			},
		},
	}
}
