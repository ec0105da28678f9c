package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Top-level group dispatch.
 *
 * Description:	One switch over the 32 group variants.  Fixed-function
 *		types (basic tuning, RadioText, ODA announcements,
 *		clock, PTYN, EON) go to their own handlers; everything
 *		else is checked against the learned ODA bindings so
 *		an operator-assigned group (11A carrying RT+, say)
 *		reaches its decoder before falling back to a raw
 *		event.  8A takes the TMC path whether or not a 3A
 *		announcement was caught.
 *
 *		Handlers update the session's accumulators and return
 *		a typed event describing what the group meant, for
 *		display layers that want a running commentary rather
 *		than snapshots.
 *
 *---------------------------------------------------------------*/

// Event is one decoded group, as a variant-specific value.
type Event interface {
	isEvent()
}

// PsEvent: 0A/0B wrote a Program Service fragment.
type PsEvent struct {
	Addr     int     // slot 0..3
	Chars    [2]byte // as transmitted, before sanitizing
	TA       bool
	MS       bool
	DIBit    int
	BVersion bool
	AfCodes  [2]AfCode // A version only
}

// RtEvent: 2A/2B wrote a RadioText fragment.
type RtEvent struct {
	Addr     int
	BVersion bool
}

// OdaBindEvent: 3A announced an application.
type OdaBindEvent struct {
	OdaVariant Variant
	Aid        uint16
	Message    uint16 // application-specific message bits, block C
	Carried    bool   // false for the VARY=0 / VARY=0x1F markers
}

// ClockEvent: 4A delivered the time.
type ClockEvent struct {
	Time ClockTime
}

// TmcEvent: a group reached the TMC path.
type TmcEvent struct {
	TuningInfo    bool
	TuningVariant int         // valid when TuningInfo
	Message       *TmcMessage // non-nil when a message completed
}

// PtyNameEvent: 10A wrote a PTYN fragment.
type PtyNameEvent struct {
	Addr int
}

// EonEvent: 14A/14B cross-referenced another network.
type EonEvent struct {
	BVersion bool
	Slot     int // VARY[3:0], A version only
	TPon     bool
	PIon     uint16
	PTYon    int  // slot 13 only
	TAon     bool // slot 13 only
}

// RtPlusEvent: a group bound to RT+ carried tags.
type RtPlusEvent struct {
	Info RtPlusInfo
}

// RawEvent: counted, nothing decoded.
type RawEvent struct {
	Group Group
}

func (PsEvent) isEvent()      {}
func (RtEvent) isEvent()      {}
func (OdaBindEvent) isEvent() {}
func (ClockEvent) isEvent()   {}
func (TmcEvent) isEvent()     {}
func (PtyNameEvent) isEvent() {}
func (EonEvent) isEvent()     {}
func (RtPlusEvent) isEvent()  {}
func (RawEvent) isEvent()     {}

// EonTable stores what 14A told us about one other network.
type EonTable struct {
	Slots    [16]uint16 // block C payload per variant slot
	SlotSeen uint16     // bitmask of filled slots
	PIon     uint16
	TPon     bool
	PTYon    int
	TAon     bool
}

// Reset clears the table.
func (e *EonTable) Reset() {
	*e = EonTable{}
}

// GroupDispatcher owns the per-protocol handlers and the state they
// update.
type GroupDispatcher struct {
	strings *StringStore
	oda     *OdaBinder
	af      *AfRegistry
	tmc     *TmcAssembler
	eon     *EonTable
	clock   *ClockTime
}

func newGroupDispatcher(strings *StringStore, oda *OdaBinder, af *AfRegistry, tmc *TmcAssembler, eon *EonTable) *GroupDispatcher {
	return &GroupDispatcher{strings: strings, oda: oda, af: af, tmc: tmc, eon: eon}
}

// Clock returns the last decoded 4A time, if any.
func (d *GroupDispatcher) Clock() (ClockTime, bool) {
	if d.clock == nil {
		return ClockTime{}, false
	}
	return *d.clock, true
}

// Dispatch routes one quality-gated group.  corr is needed because
// 3A rebinding applies a stricter quality test than the gate.
func (d *GroupDispatcher) Dispatch(g Group, corr [4]int) Event {
	var v = g.Variant
	switch {
	case v.GType == 0:
		return d.basicTuning(g)
	case v.GType == 2:
		return d.radioText(g)
	case v == (Variant{GType: 3}):
		return d.odaAnnounce(g, corr)
	case v == (Variant{GType: 4}):
		var ct = decodeClock(g.raw37())
		d.clock = &ct
		return ClockEvent{Time: ct}
	}

	// 8A is TMC with or without a binding; any other variant needs
	// an accepted binding to leave the generic path.
	if aid, ok := d.oda.Aid(v, OdaAcceptFraction); v == (Variant{GType: 8}) || (ok && (aid == AidTMC || aid == AidTMCTest)) {
		return d.tmcGroup(g)
	}

	switch v {
	case Variant{GType: 10}:
		var addr = g.Vary & 0x01
		d.strings.SetQuad(BufPTYN, g.C(), g.D(), addr)
		return PtyNameEvent{Addr: addr}
	case Variant{GType: 14}:
		return d.eonGroup(g)
	case Variant{GType: 14, B0: true}:
		d.eon.PIon = g.D()
		return EonEvent{BVersion: true, PIon: g.D()}
	}

	if aid, ok := d.oda.Aid(v, OdaAcceptFraction); ok && aid == AidRTPlus {
		return RtPlusEvent{Info: decodeRtPlus(g.raw37())}
	}

	return RawEvent{Group: g}
}

// basicTuning handles 0A/0B: PS name fragment, decoder bits, and for
// the A version the alternate frequency pair in block C.
func (d *GroupDispatcher) basicTuning(g Group) Event {
	var vary = uint64(g.Vary)
	var addr = getbits(vary, 0, 2)

	d.strings.SetPair(BufPS, g.D(), addr)

	var ev = PsEvent{
		Addr:     addr,
		Chars:    [2]byte{byte(g.D() >> 8), byte(g.D())},
		TA:       getbit(vary, 4) == 1,
		MS:       getbit(vary, 3) == 1,
		DIBit:    getbit(vary, 2),
		BVersion: g.Variant.B0,
	}
	if !g.Variant.B0 {
		d.strings.setRaw(BufDI, byte('0'+ev.DIBit), addr)
		var hi, lo = byte(g.C() >> 8), byte(g.C())
		ev.AfCodes = [2]AfCode{DecodeAfCode(hi), DecodeAfCode(lo)}
		d.af.Add("0A", hi)
		d.af.Add("0A", lo)
	}
	return ev
}

// radioText handles 2A/2B.  The A version carries four chars per
// group across the full 64; the B version carries two from block D
// into the lower 32, block C being the PI repeat.
func (d *GroupDispatcher) radioText(g Group) Event {
	var addr = getbits(uint64(g.Vary), 0, 4)
	if g.Variant.B0 {
		d.strings.SetPair(BufRT, g.D(), addr)
	} else {
		d.strings.SetQuad(BufRT, g.C(), g.D(), addr)
	}
	return RtEvent{Addr: addr, BVersion: g.Variant.B0}
}

// odaAnnounce handles 3A.  VARY=0 means the application is not
// carried in a group; VARY=0x1F flags an encoder error.  Both are
// observed for the noise statistics but bind nothing.
func (d *GroupDispatcher) odaAnnounce(g Group, corr [4]int) Event {
	var vary = uint64(g.Vary)
	var odaVariant = Variant{
		GType: byte(getbits(vary, 1, 4)),
		B0:    getbit(vary, 0) == 1,
	}
	var carried = g.Vary != 0 && g.Vary != 0x1F
	d.oda.Observe(odaVariant, g.D(), corrSum(corr), carried)
	return OdaBindEvent{
		OdaVariant: odaVariant,
		Aid:        g.D(),
		Message:    g.C(),
		Carried:    carried,
	}
}

// tmcGroup handles the TMC path: tuning information groups feed the
// service name buffer, user messages go to the assembler.
func (d *GroupDispatcher) tmcGroup(g Group) Event {
	var vary = uint64(g.Vary)
	if getbit(vary, 4) == 1 {
		var variant = g.Vary & 0x0F
		if variant == 4 || variant == 5 {
			d.strings.SetQuad(BufTMCID, g.C(), g.D(), variant-4)
		}
		return TmcEvent{TuningInfo: true, TuningVariant: variant}
	}
	return TmcEvent{Message: d.tmc.HandleUserMessage(g)}
}

// eonGroup handles 14A.  Slot 4 carries the other network's AF pair,
// slot 13 its PTY and TA, slots 0..3 its PS name; everything else is
// kept raw in the slot table.
func (d *GroupDispatcher) eonGroup(g Group) Event {
	var vary = uint64(g.Vary)
	var slot = getbits(vary, 0, 4)
	var ev = EonEvent{
		Slot: slot,
		TPon: getbit(vary, 4) == 1,
		PIon: g.D(),
	}
	d.eon.TPon = ev.TPon
	d.eon.PIon = ev.PIon

	switch {
	case slot < 4:
		d.strings.SetPair(BufEONPS, g.C(), slot)
	case slot == 4:
		d.af.Add("14A", byte(g.C()>>8))
		d.af.Add("14A", byte(g.C()))
	case slot == 13:
		ev.PTYon = getbits(uint64(g.C()), 11, 5)
		ev.TAon = getbit(uint64(g.C()), 0) == 1
		d.eon.PTYon = ev.PTYon
		d.eon.TAon = ev.TAon
	}
	d.eon.Slots[slot] = g.C()
	d.eon.SlotSeen |= 1 << slot
	return ev
}
