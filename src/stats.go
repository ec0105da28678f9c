package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Group type statistics for one tuned channel.
 *
 * Description:	A weak station produces false groups: bit errors that
 *		survive correction scatter counts across types the
 *		station never transmits.  Reports therefore work with
 *		shares of the observed total rather than raw counts,
 *		and the status line's "quick groups" summary shows
 *		only types above a small fraction.
 *
 *---------------------------------------------------------------*/

import (
	"sort"
	"strings"
)

// quickFraction is the minimum share a group type needs to appear in
// the quick-groups summary.
const quickFraction = 0.03

// StatRegistry counts accepted groups per variant plus the groups
// rejected by the block quality gate.
type StatRegistry struct {
	counts   [32]uint32
	rejected uint32
}

// Add counts one accepted group.
func (s *StatRegistry) Add(v Variant) {
	s.counts[v.Index()]++
}

// AddRejected counts one group dropped for bad blocks (the "--" row).
func (s *StatRegistry) AddRejected() {
	s.rejected++
}

// Count returns the number of accepted groups of one variant.
func (s *StatRegistry) Count(v Variant) uint32 {
	return s.counts[v.Index()]
}

// Rejected returns the bad-block count.
func (s *StatRegistry) Rejected() uint32 {
	return s.rejected
}

// Total returns the number of accepted groups.
func (s *StatRegistry) Total() uint32 {
	var t uint32
	for _, n := range s.counts {
		t += n
	}
	return t
}

// Reset clears all counters.
func (s *StatRegistry) Reset() {
	*s = StatRegistry{}
}

// GroupCount is one row of the statistics report.
type GroupCount struct {
	Variant Variant
	Count   uint32
}

// Counts lists the nonzero variants in natural order (0A, 0B, 1A, ...).
func (s *StatRegistry) Counts() []GroupCount {
	var out []GroupCount
	for i, n := range s.counts {
		if n > 0 {
			out = append(out, GroupCount{Variant: variantFromIndex(i), Count: n})
		}
	}
	return out
}

// quickTag is the status line shorthand for a variant: the type as a
// hex digit, lowercase for A versions; B versions get a trailing '^'
// (types 0..9) or the uppercase digit (types 10..15).
func quickTag(v Variant) string {
	const digits = "0123456789abcdef"
	var d = digits[v.GType]
	if !v.B0 {
		return string(d)
	}
	if v.GType < 10 {
		return string(d) + "^"
	}
	return strings.ToUpper(string(d))
}

// QuickGroups returns the concatenated tags of variants whose share
// of the accepted total exceeds quickFraction, sorted.
func (s *StatRegistry) QuickGroups() string {
	var total = s.Total()
	if total == 0 {
		return ""
	}
	var tags []string
	for i, n := range s.counts {
		if float64(n)/float64(total) > quickFraction {
			tags = append(tags, quickTag(variantFromIndex(i)))
		}
	}
	sort.Strings(tags)
	return strings.Join(tags, "")
}
