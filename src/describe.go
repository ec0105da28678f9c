package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	One-line rendering of decoded events for the
 *		scrolling monitor views.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

// DescribeGroup renders the fixed header fields of a group.
func DescribeGroup(g Group) string {
	var desc = g.Variant.String()
	if d, ok := GroupTypeDescriptions[desc]; ok {
		desc += ":" + d
	}
	return fmt.Sprintf("PIC=%04x TP=%d PTY=%-2d VARY=%02x  GTYPE=%-16.16s",
		g.PIC, boolBit(g.TP), g.PTY, g.Vary, desc)
}

// DescribeEvent renders what a group did, using the session's
// buffers for context.
func (s *RdsSession) DescribeEvent(ev Event) string {
	switch e := ev.(type) {
	case PsEvent:
		var out = fmt.Sprintf("TA=%d MS=%d DI=%d C=%d \"%s\"",
			boolBit(e.TA), boolBit(e.MS), e.DIBit, e.Addr, s.PS())
		if !e.BVersion {
			out += fmt.Sprintf(" AF=%s AF=%s", e.AfCodes[0].Label(), e.AfCodes[1].Label())
		}
		return out
	case RtEvent:
		return fmt.Sprintf("%02d \"%s\"", e.Addr, s.RT())
	case OdaBindEvent:
		var grp = e.OdaVariant.String()
		if !e.Carried {
			grp = "[notcarried/encoderError]"
		}
		var name = ""
		if n, ok := OdaAidNames[e.Aid]; ok {
			name = "(" + n + ")"
		}
		return fmt.Sprintf("grp=%s msg=%04x appId=%04x%s", grp, e.Message, e.Aid, name)
	case ClockEvent:
		return fmt.Sprintf("%s offs=%s julday=%d", e.Time, e.Time.OffsetString(), e.Time.MJD)
	case TmcEvent:
		return describeTmc(e)
	case PtyNameEvent:
		return fmt.Sprintf("addr=%d PTYN=\"%s\"", e.Addr, s.PTYN())
	case EonEvent:
		if e.BVersion {
			return fmt.Sprintf("EON-B PIon=%04x", e.PIon)
		}
		var out = fmt.Sprintf("TPon=%d var=%d", boolBit(e.TPon), e.Slot)
		if e.Slot == 13 {
			out += fmt.Sprintf(" PTYon=%d TAon=%d", e.PTYon, boolBit(e.TAon))
		}
		return out + fmt.Sprintf(" PIon=%04x", e.PIon)
	case RtPlusEvent:
		var i = e.Info
		return fmt.Sprintf("ODA:RT+: toggle=%d run=%d tag1=%d(%s)@%d[%d] tag2=%d(%s)@%d[%d]",
			boolBit(i.ItemToggle), boolBit(i.ItemRunning),
			i.Tags[0].ContentType, i.Tags[0].Name(), i.Tags[0].Start, i.Tags[0].Length,
			i.Tags[1].ContentType, i.Tags[1].Name(), i.Tags[1].Start, i.Tags[1].Length)
	case RawEvent:
		return e.Group.HexPayload()
	}
	return ""
}

func describeTmc(e TmcEvent) string {
	if e.TuningInfo {
		return fmt.Sprintf("ODA:TMC: tuningInfo var=%d", e.TuningVariant)
	}
	if e.Message == nil {
		return "ODA:TMC: msg"
	}
	var m = e.Message
	var out = "ODA:TMC:"
	if m.Single {
		out += fmt.Sprintf(" S duration=%d", m.Duration)
	} else {
		out += fmt.Sprintf(" m cont=%d", m.CI)
	}
	out += fmt.Sprintf(" divert=%d dir=%d extent=%d event=%4d loc=%04x [%s]",
		m.Diversion, m.Direction, m.Extent, m.Event, m.Location, m.EventName())
	if len(m.Aux) > 0 {
		var vals []string
		for _, a := range m.Aux {
			vals = append(vals, fmt.Sprintf("%d", a.Value))
		}
		out += " aux=[" + strings.Join(vals, ",") + "]"
	}
	return out
}

// DescribeTmcRecord renders one cache row for the traffic list.
func DescribeTmcRecord(rec TmcRecord) string {
	var out = fmt.Sprintf("%03x:%04x:%d %3dx", rec.Key.Event, rec.Key.Location, rec.Key.Direction, rec.Count)
	if rec.Partial {
		out += " [PARTIAL]"
	}
	out += " " + tmcEventName(rec.Key.Event)
	return out
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
