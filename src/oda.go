package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Open Data Application bindings learned from 3A.
 *
 * Description:	A 3A group assigns an application (a 16-bit AID) to a
 *		free-format group variant; the dispatcher then routes
 *		that variant to the application's decoder.  A false 3A
 *		from a noisy channel would hijack a whole group type,
 *		so a binding only takes effect once its variant has a
 *		meaningful share of all 3A observations.
 *
 *---------------------------------------------------------------*/

// Application identifiers with built-in decoders.
const (
	AidTMC     uint16 = 0xCD46 // ALERT-C traffic messages
	AidTMCTest uint16 = 0x0D45 // ALERT-C test assignment
	AidRTPlus  uint16 = 0x4BD7 // RadioText+ tagging
)

// Acceptance thresholds: share of all 3A observations a variant needs
// before its binding is believed (routing) or displayed.
const (
	OdaAcceptFraction  = 0.02
	OdaDisplayFraction = 0.05
)

type odaSlot struct {
	count uint32
	aid   uint16
	bound bool
}

// OdaBinder tracks the per-variant AID assignment and observation
// counts.
type OdaBinder struct {
	slots [32]odaSlot
}

// Observe records one 3A announcement for the variant.  carried is
// false for the VARY=0 (application not carried) and VARY=0x1F
// (encoder error) markers: those still count, but never bind.
//
// A variant that is already bound only changes its AID when the
// observing group was nearly clean (at most one corrected bit in
// total); an unbound variant takes the AID as-is.
func (o *OdaBinder) Observe(v Variant, aid uint16, corrTotal int, carried bool) {
	var slot = &o.slots[v.Index()]
	slot.count++
	if !carried {
		return
	}
	if slot.bound {
		if corrTotal < 2 {
			slot.aid = aid
		}
		return
	}
	slot.aid = aid
	slot.bound = true
}

func (o *OdaBinder) total() uint32 {
	var t uint32
	for _, s := range o.slots {
		t += s.count
	}
	return t
}

// Aid returns the bound AID for the variant, if the binding's share
// of all observations reaches minFraction.  Unaccepted bindings look
// absent to callers.
func (o *OdaBinder) Aid(v Variant, minFraction float64) (uint16, bool) {
	var slot = o.slots[v.Index()]
	if !slot.bound {
		return 0, false
	}
	var total = o.total()
	if total == 0 || float64(slot.count)/float64(total) < minFraction {
		return 0, false
	}
	return slot.aid, true
}

// Reset drops all bindings and counts.
func (o *OdaBinder) Reset() {
	*o = OdaBinder{}
}

// OdaBinding is one row of the ODA report.
type OdaBinding struct {
	Variant Variant
	Aid     uint16
	AidName string // "" when the AID is not a known application
	Count   uint32
	Share   float64
}

// Bindings lists every bound variant with its share of the 3A total,
// regardless of threshold; the caller splits accepted from suspect.
func (o *OdaBinder) Bindings() []OdaBinding {
	var total = o.total()
	var out []OdaBinding
	for i, slot := range o.slots {
		if !slot.bound {
			continue
		}
		var share float64
		if total > 0 {
			share = float64(slot.count) / float64(total)
		}
		out = append(out, OdaBinding{
			Variant: variantFromIndex(i),
			Aid:     slot.aid,
			AidName: OdaAidNames[slot.aid],
			Count:   slot.count,
			Share:   share,
		})
	}
	return out
}
