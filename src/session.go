package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Per-channel RDS session: feed, gate, reset, report.
 *
 * Description:	One RdsSession holds every accumulator for the
 *		currently tuned channel.  Feed runs the pipeline:
 *		drop hardware repeats (the chip keeps the same group
 *		in its registers until the next one arrives), gate on
 *		block quality, count, dispatch.  Retuning or
 *		reinitializing the chip resets the whole session.
 *
 *		All methods take the session mutex, so one session
 *		can be fed from a poll loop while a UI thread pulls
 *		reports.  Nothing here blocks; the only blocking
 *		calls in the program live behind RdsSource.
 *
 *---------------------------------------------------------------*/

import "sync"

// feedCorrThreshold is the per-block correction count at which a
// group is rejected from decoding and counted as "--".
const feedCorrThreshold = 2

// RdsSession is the decoding state for one tuned channel.
type RdsSession struct {
	mu sync.Mutex

	strings    *StringStore
	stats      StatRegistry
	oda        OdaBinder
	af         *AfRegistry
	tmcCache   *TmcCache
	tmcAsm     *TmcAssembler
	eon        EonTable
	dispatcher *GroupDispatcher

	lastBlocks [4]uint16
	haveLast   bool

	lastPIC int // -1 until a group is accepted
	lastPTY int

	standard BandStandard
}

// NewRdsSession creates an empty session.  The standard selects the
// RDS or RBDS reading of the PTY table.
func NewRdsSession(standard BandStandard) *RdsSession {
	var s = &RdsSession{
		strings:  newStringStore(),
		af:       newAfRegistry(),
		tmcCache: newTmcCache(),
		standard: standard,
		lastPIC:  -1,
		lastPTY:  -1,
	}
	s.tmcAsm = newTmcAssembler(s.tmcCache)
	s.dispatcher = newGroupDispatcher(s.strings, &s.oda, s.af, s.tmcAsm, &s.eon)
	return s
}

// Feed consumes one hardware read.  The returned event is nil when
// the group was a repeat of the previous read or failed the block
// quality gate.
func (s *RdsSession) Feed(blocks [4]uint16, corr [4]int) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.haveLast && blocks == s.lastBlocks {
		return nil
	}
	s.lastBlocks = blocks
	s.haveLast = true

	if blocksBad(corr, feedCorrThreshold) {
		s.stats.AddRejected()
		return nil
	}

	var g = ParseBlocks(blocks)
	s.stats.Add(g.Variant)
	s.lastPIC = int(g.PIC)
	s.lastPTY = g.PTY

	return s.dispatcher.Dispatch(g, corr)
}

// Reset wipes the session back to its just-tuned state.
func (s *RdsSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.strings.Reset()
	s.stats.Reset()
	s.oda.Reset()
	*s.af = *newAfRegistry()
	s.tmcCache.Reset()
	s.tmcAsm.Reset()
	s.eon.Reset()
	s.dispatcher.clock = nil
	s.haveLast = false
	s.lastPIC = -1
	s.lastPTY = -1
}

/*
 * Reporter: read-only snapshots.  Everything below copies under the
 * mutex; callers never see a buffer that a Feed is halfway through.
 */

// PS returns the Program Service name buffer.
func (s *RdsSession) PS() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.String(BufPS)
}

// RT returns the RadioText buffer.
func (s *RdsSession) RT() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.String(BufRT)
}

// PTYN returns the Program Type Name buffer.
func (s *RdsSession) PTYN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.String(BufPTYN)
}

// TMCID returns the TMC service name buffer.
func (s *RdsSession) TMCID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.String(BufTMCID)
}

// EONPS returns the other network's PS name from 14A.
func (s *RdsSession) EONPS() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strings.String(BufEONPS)
}

// Clock returns the last 4A time, formatted; "?" before the first
// clock group.
func (s *RdsSession) Clock() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ct, ok := s.dispatcher.Clock(); ok {
		return ct.String()
	}
	return "?"
}

// LastClock returns the last 4A time with its offset.
func (s *RdsSession) LastClock() (ClockTime, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatcher.Clock()
}

// PTY returns the last accepted group's programme type and its name.
func (s *RdsSession) PTY() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastPTY < 0 {
		return -1, ""
	}
	return s.lastPTY, PtyName(s.lastPTY, s.standard)
}

// PicInfo is the decomposed Program Identification code.
type PicInfo struct {
	PIC      uint16
	Country  int
	Area     int
	AreaDesc string
	Program  int
}

// PIC returns the station identity, decomposed.  ok is false before
// any group was accepted.
func (s *RdsSession) PIC() (PicInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastPIC < 0 {
		return PicInfo{}, false
	}
	var pic = uint16(s.lastPIC)
	var area = getbits(uint64(pic), 8, 4)
	return PicInfo{
		PIC:      pic,
		Country:  getbits(uint64(pic), 12, 4),
		Area:     area,
		AreaDesc: PiAreaDescriptors[area],
		Program:  getbits(uint64(pic), 0, 8),
	}, true
}

// DI returns the decoder identification bits as collected ('0', '1'
// or the sentinel per slot) and the meaning of each set slot.
func (s *RdsSession) DI() (string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var raw = s.strings.Bytes(BufDI)
	var meanings []string
	for i, c := range raw {
		if c == '0' || c == '1' {
			meanings = append(meanings, diMeanings[i][c-'0'])
		}
	}
	return string(raw), meanings
}

// GroupStats lists accepted counts per variant in natural order,
// plus the rejected-group count.
func (s *RdsSession) GroupStats() ([]GroupCount, uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Counts(), s.stats.Rejected()
}

// QuickGroups returns the status line summary of group types.
func (s *RdsSession) QuickGroups() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.QuickGroups()
}

// AltFrequencies reports one source group's frequencies at the given
// fraction; the sticky announced list length rides along.
func (s *RdsSession) AltFrequencies(source string, minFraction float64) ([]AfReport, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.af.Frequencies(source, minFraction), s.af.Count
}

// AfSources lists the groups that contributed frequencies.
func (s *RdsSession) AfSources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.af.Sources()
}

// OdaBindings lists bindings whose share of 3A observations reaches
// minFraction.  Pass 0 to see everything, including suspected noise.
func (s *RdsSession) OdaBindings(minFraction float64) []OdaBinding {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []OdaBinding
	for _, b := range s.oda.Bindings() {
		if b.Share >= minFraction {
			out = append(out, b)
		}
	}
	return out
}

// TmcRecords lists the cached traffic situations.
func (s *RdsSession) TmcRecords() []TmcRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tmcCache.Records()
}

// TmcCount returns the number of cached traffic situations.
func (s *RdsSession) TmcCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tmcCache.Len()
}

// Eon returns a copy of the other-network table.
func (s *RdsSession) Eon() EonTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eon
}
