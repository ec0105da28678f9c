package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Traffic Message Channel (ALERT-C) reassembly and cache.
 *
 * Description:	A TMC user message is either a single 8A group or a
 *		multi-group sequence: one "first" group carrying the
 *		event, location and direction, then up to four
 *		continuation groups identified by a 3-bit continuity
 *		index and a countdown sequence number ending at 0.
 *		Each continuation contributes 28 bits (the low 12 of
 *		block C and all of block D) of extra labelled fields.
 *
 *		The assembler is strict: continuations are only
 *		accepted while a first group is being collected, and
 *		any continuity mismatch or out-of-order sequence
 *		abandons the message.  There is no wall-clock timeout;
 *		the next message's first group implicitly starts over.
 *
 *		Completed messages land in a cache keyed by
 *		(event, location, direction) so repeats count up
 *		instead of piling up.
 *
 *---------------------------------------------------------------*/

import (
	"sort"
	"time"
)

// tmcLabelLen gives the payload width for each 4-bit label in the
// multi-group extra data, per ISO 14819-1.  Label 0 ends the stream.
var tmcLabelLen = [16]int{3, 3, 5, 5, 5, 8, 8, 8, 8, 11, 16, 16, 16, 16, 0, 0}

// TmcAux is one labelled field from a multi-group message.
type TmcAux struct {
	Label int
	Value int
}

// TmcMessage is a decoded ALERT-C user message.
type TmcMessage struct {
	Single    bool
	Event     int    // 11 bits
	Location  uint16 // 16 bits
	Direction int    // 0 or 1
	Extent    int    // 3 bits
	Diversion int    // D bit of the first group
	Duration  int    // single-group only: the persistence field
	CI        int    // multi-group only: continuity index
	Aux       []TmcAux
	Raw       []uint16 // blocks A..D then 12/16-bit continuation halves
}

// EventName looks the event code up in the ALERT-C catalogue, if one
// was loaded.
func (m TmcMessage) EventName() string {
	return tmcEventName(m.Event)
}

// tmcDecodeMessage pulls the message identity out of the first (or
// single) group's blocks C and D, plus any continuation fields.
func tmcDecodeMessage(raw []uint16) TmcMessage {
	var b = uint64(raw[1])
	var c = uint64(raw[2])
	var vary = getbits(b, 0, 5)
	var single = getbit(uint64(vary), 3) == 1

	var m = TmcMessage{
		Single:    single,
		Event:     getbits(c, 0, 11),
		Location:  raw[3],
		Direction: getbit(c, 14),
		Extent:    getbits(c, 11, 3),
		Diversion: getbit(c, 15),
		Raw:       raw,
	}
	if single {
		m.Duration = getbits(uint64(vary), 0, 3)
	} else {
		m.CI = getbits(uint64(vary), 0, 3)
	}
	m.Aux = tmcParseAux(raw)
	return m
}

// tmcParseAux consumes the labelled fields from the continuation
// halves.  Label 15 is reserved padding and is skipped; a truncated
// final field keeps whatever bits were present.
func tmcParseAux(raw []uint16) []TmcAux {
	if len(raw) <= 4 {
		return nil
	}
	var cur = newTmcBitCursor(raw[4:])
	var out []TmcAux
	for {
		var label, ok = cur.take(4)
		if !ok || label == 0 {
			break
		}
		var data, _ = cur.take(tmcLabelLen[label])
		if label == 15 {
			continue
		}
		out = append(out, TmcAux{Label: label, Value: data})
	}
	return out
}

// tmcBitCursor streams bits MSB-first over the packed 28-bit halves
// of a multi-group message (pairs of a 12-bit and a 16-bit word).
type tmcBitCursor struct {
	halves []uint16
	pos    int // bit offset into the stream
	total  int
}

func newTmcBitCursor(halves []uint16) *tmcBitCursor {
	var c = &tmcBitCursor{halves: halves}
	for i := range halves {
		if i%2 == 0 {
			c.total += 12
		} else {
			c.total += 16
		}
	}
	return c
}

// take reads up to n bits.  When fewer remain it returns what is
// left; ok is false only when the stream is already exhausted.
func (c *tmcBitCursor) take(n int) (int, bool) {
	if c.pos >= c.total {
		return 0, false
	}
	var v = 0
	for ; n > 0 && c.pos < c.total; n-- {
		v = v<<1 | c.bit(c.pos)
		c.pos++
	}
	return v, true
}

func (c *tmcBitCursor) bit(pos int) int {
	for i, h := range c.halves {
		var width = 12
		if i%2 == 1 {
			width = 16
		}
		if pos < width {
			return int(h>>(width-1-pos)) & 1
		}
		pos -= width
	}
	return 0
}

// TmcKey identifies one traffic situation.
type TmcKey struct {
	Event     int
	Location  uint16
	Direction int
}

// TmcRecord is one cached situation.
type TmcRecord struct {
	Key       TmcKey
	Raw       []uint16
	Partial   bool // only a bare first group seen so far
	Count     int
	FirstSeen time.Time
	LastSeen  time.Time
}

// TmcCache holds the situations seen on the current channel.
type TmcCache struct {
	records map[TmcKey]*TmcRecord
	now     func() time.Time
}

func newTmcCache() *TmcCache {
	return &TmcCache{records: map[TmcKey]*TmcRecord{}, now: time.Now}
}

// Reset drops every record.
func (tc *TmcCache) Reset() {
	tc.records = map[TmcKey]*TmcRecord{}
}

// add inserts or refreshes a record.  A partial insert never
// overwrites an existing record of any kind.
func (tc *TmcCache) add(key TmcKey, raw []uint16, partial bool) {
	var rec = tc.records[key]
	if rec == nil {
		var t = tc.now()
		tc.records[key] = &TmcRecord{
			Key: key, Raw: raw, Partial: partial,
			Count: 1, FirstSeen: t, LastSeen: t,
		}
		return
	}
	if partial {
		return
	}
	rec.Raw = raw
	rec.Partial = false
	rec.Count++
	rec.LastSeen = tc.now()
}

// Len returns the number of cached situations.
func (tc *TmcCache) Len() int {
	return len(tc.records)
}

// Records lists the cache sorted by event, location, direction.
func (tc *TmcCache) Records() []TmcRecord {
	var out []TmcRecord
	for _, rec := range tc.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		var a, b = out[i].Key, out[j].Key
		if a.Event != b.Event {
			return a.Event < b.Event
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Direction < b.Direction
	})
	return out
}

// TmcAssembler rebuilds multi-group messages.  Single groups pass
// straight through without touching its state.
type TmcAssembler struct {
	cache *TmcCache

	collecting bool
	ci         int
	seq        int // last sequence number appended, -1 before any
	raw        []uint16
}

func newTmcAssembler(cache *TmcCache) *TmcAssembler {
	return &TmcAssembler{cache: cache, seq: -1}
}

// Reset abandons any in-progress message.
func (a *TmcAssembler) Reset() {
	a.collecting = false
	a.ci = 0
	a.seq = -1
	a.raw = nil
}

func tmcKeyOf(raw []uint16) TmcKey {
	var c = uint64(raw[2])
	return TmcKey{
		Event:     getbits(c, 0, 11),
		Location:  raw[3],
		Direction: getbit(c, 14),
	}
}

// HandleUserMessage consumes one non-tuning TMC group and returns the
// decoded message when one completes (single group, or a multi-group
// sequence reaching sequence number 0).
func (a *TmcAssembler) HandleUserMessage(g Group) *TmcMessage {
	var vary = uint64(g.Vary)
	var f = getbit(vary, 3) // 1 = single group
	var c = uint64(g.C())
	var d = getbit(c, 15) // first-group marker

	if f == 1 {
		// Single group: complete by itself, multi-group state is
		// not involved.
		var raw = []uint16{g.Blocks[0], g.Blocks[1], g.Blocks[2], g.Blocks[3]}
		var m = tmcDecodeMessage(raw)
		a.cache.add(tmcKeyOf(raw), raw, false)
		return &m
	}

	if d == 1 {
		// First group of a multi-group message.  Cache the identity
		// as partial in case the continuations never arrive, and
		// abandon whatever was being collected.
		a.raw = []uint16{g.Blocks[0], g.Blocks[1], g.Blocks[2], g.Blocks[3]}
		a.ci = getbits(vary, 0, 3)
		a.seq = -1
		a.collecting = true
		a.cache.add(tmcKeyOf(a.raw), a.raw, true)
		return nil
	}

	// Continuation.  Only valid against a message being collected.
	if !a.collecting {
		return nil
	}
	if a.ci != getbits(vary, 0, 3) {
		a.Reset()
		return nil
	}

	// The second-group indicator marks the first continuation; later
	// groups are held to a strictly decreasing sequence countdown.
	var second = getbit(c, 14) == 1
	var seq = getbits(c, 12, 2)
	if a.seq == -1 {
		if !second {
			a.Reset()
			return nil
		}
	} else if seq != a.seq-1 {
		a.Reset()
		return nil
	}

	a.seq = seq
	a.raw = append(a.raw, g.C()&0x0FFF, g.D())

	if seq != 0 {
		return nil
	}

	var m = tmcDecodeMessage(a.raw)
	a.cache.add(tmcKeyOf(a.raw), a.raw, false)
	a.Reset()
	return &m
}
