package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Alternate frequency codes and the AF registry.
 *
 * Description:	Alternate frequencies are announced as 8-bit codes in
 *		groups 0A (the station's own list) and 14A variant 4
 *		(the cross-referenced network's list).  Codes 1..205
 *		map onto the FM band; the rest are list-control
 *		sentinels.  Code 250 announces that the following
 *		slot is an LF/MF frequency in raw kHz instead.
 *
 *		The registry keeps a count per observed frequency so
 *		reports can reject noise-induced one-offs with a
 *		fractional threshold, the same defense the group
 *		statistics use.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"sort"
)

// AfKind classifies an 8-bit AF code.
type AfKind int

const (
	AfUnused     AfKind = iota // 0
	AfFM                       // 1..205: 87.5 + n/10 MHz
	AfFiller                   // 206
	AfUnassigned               // 207..223, 251..255
	AfNone                     // 224: no AF list
	AfFollowN                  // 225..249: n frequencies follow
	AfFollowLFMF               // 250: next slot is LF/MF in raw kHz
)

// AfCode is one decoded AF slot.
type AfCode struct {
	Kind    AfKind
	Chan100 int // 875 + code, in 100 kHz units, valid for AfFM
	Count   int // announced list length, valid for AfFollowN
}

// DecodeAfCode maps an 8-bit code to its meaning.
func DecodeAfCode(b byte) AfCode {
	switch {
	case b == 0:
		return AfCode{Kind: AfUnused}
	case b < 206:
		return AfCode{Kind: AfFM, Chan100: 875 + int(b)}
	case b == 206:
		return AfCode{Kind: AfFiller}
	case b == 224:
		return AfCode{Kind: AfNone}
	case b > 224 && b < 250:
		return AfCode{Kind: AfFollowN, Count: int(b) - 224}
	case b == 250:
		return AfCode{Kind: AfFollowLFMF}
	default:
		return AfCode{Kind: AfUnassigned}
	}
}

// Label renders the slot the way the monitor prints it.
func (c AfCode) Label() string {
	switch c.Kind {
	case AfUnused:
		return "[unused]"
	case AfFM:
		return FormatChannel(c.Chan100)
	case AfFiller:
		return "[fill]"
	case AfNone:
		return "[noAF]"
	case AfFollowN:
		return fmt.Sprintf("[follow:%d]", c.Count)
	case AfFollowLFMF:
		return "[follow:1LFMF]"
	default:
		return "[unassigned]"
	}
}

// FormatChannel renders a 100 kHz channel number as MHz, e.g. 1050
// as "105.0".
func FormatChannel(chan100 int) string {
	return fmt.Sprintf("%d.%d", chan100/10, chan100%10)
}

// AfReport is one row of the frequency report.
type AfReport struct {
	Label string
	Count int
}

// AfRegistry accumulates alternate frequencies per originating group
// ("0A", "14A").
type AfRegistry struct {
	seen     map[string]map[string]int
	lfmfNext map[string]bool // 250 latch, consumed by the next slot
	Count    int             // last announced list length
}

func newAfRegistry() *AfRegistry {
	return &AfRegistry{
		seen:     map[string]map[string]int{},
		lfmfNext: map[string]bool{},
	}
}

// Add feeds one AF slot from the given source group into the
// registry.  The LF/MF latch survives between calls: a 250 code in
// the low byte of one group relabels the first slot of the next.
// That can mislabel a frequency after a noisy 250 until a new list
// starts, which matches how broadcast receivers behave here.
func (r *AfRegistry) Add(source string, b byte) {
	var code = DecodeAfCode(b)
	switch code.Kind {
	case AfFM:
		if r.lfmfNext[source] {
			r.lfmfNext[source] = false
			r.bump(source, fmt.Sprintf("%d raw khz", b))
		} else {
			r.bump(source, code.Label())
		}
	case AfFollowN:
		r.Count = code.Count
	case AfFollowLFMF:
		r.lfmfNext[source] = true
	}
}

func (r *AfRegistry) bump(source, label string) {
	var m = r.seen[source]
	if m == nil {
		m = map[string]int{}
		r.seen[source] = m
	}
	m[label]++
}

// Sources lists the group names that contributed frequencies.
func (r *AfRegistry) Sources() []string {
	var out []string
	for s := range r.seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Frequencies reports the source's frequencies whose share of the
// source's total is at least minFraction.  Rare entries stay counted
// but hidden.
func (r *AfRegistry) Frequencies(source string, minFraction float64) []AfReport {
	var m = r.seen[source]
	var total = 0
	for _, n := range m {
		total += n
	}
	if total == 0 {
		return nil
	}
	var out []AfReport
	for label, n := range m {
		if float64(n)/float64(total) >= minFraction {
			out = append(out, AfReport{Label: label, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
