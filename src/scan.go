package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Scan the band, collecting station names over RDS.
 *
 * Description:	Seek upward around the band once.  On each stop,
 *		decode groups until the PS name has no unset cells or
 *		the station is obviously not sending usable RDS, then
 *		move on.  The scan ends when seek wraps to a channel
 *		already visited.
 *
 *---------------------------------------------------------------*/

import "time"

// Band edges in 100 kHz units (Europe/US band, 100 kHz spacing).
const (
	FreqFrom = 875
	FreqTo   = 1080
)

// scanPollInterval paces the read loop; the chip produces a group
// roughly every 87 ms, so this oversamples enough not to miss any.
const scanPollInterval = 5 * time.Millisecond

// ScanStation is one stop of a band scan.
type ScanStation struct {
	Channel100 int
	Rssi       int
	Name       string
	Groups     []GroupCount
	Rejected   uint32
	Oda        []OdaBinding
}

// collectStationName pumps the source into the session until the PS
// buffer fills, or long enough to conclude it will not.  Returns the
// name as collected, the group count, and the last seen RSSI.
func collectStationName(src RdsSource, session *RdsSession, minReads, minGroups int) (string, int, int, error) {
	const maxReads = 500
	var limit = maxReads
	if minReads > limit {
		limit = minReads
	}

	var groups = 0
	var rssi = 0
	var name = ""
	for t := 0; t < limit; t++ {
		time.Sleep(scanPollInterval)
		var read, err = src.Poll()
		if err != nil {
			return "", groups, rssi, err
		}
		if read != nil {
			session.Feed(read.Blocks, read.Corrections)
			groups++
			rssi = read.Rssi
		}
		name = session.PS()
		if (t > minReads && groups > minGroups) || (groups < 2 && t > 100) {
			if session.strings.Complete(BufPS) {
				break
			}
			if groups < 2 && t > 100 {
				break // nothing coming, do not wait out the clock
			}
		}
	}
	return name, groups, rssi, nil
}

// ScanBand seeks around the band once and reports every station.
func ScanBand(src RdsSource, standard BandStandard) ([]ScanStation, error) {
	var channel, err = src.Channel()
	if err != nil {
		return nil, err
	}

	var seen = map[int]bool{}
	var out []ScanStation

	for {
		var session = NewRdsSession(standard)
		var station = ScanStation{Channel100: channel}

		// The band edges are where a wrapped seek parks when it
		// found nothing; there is no station to interrogate there.
		if channel != FreqFrom && channel != FreqTo {
			var name, _, rssi, err = collectStationName(src, session, 500, 80)
			if err != nil {
				return out, err
			}
			station.Name = name
			station.Rssi = rssi
			station.Groups, station.Rejected = session.GroupStats()
			station.Oda = session.OdaBindings(0)
			out = append(out, station)
		}

		seen[channel] = true
		channel, err = src.Seek(true)
		if err != nil {
			return out, err
		}
		if seen[channel] {
			return out, nil
		}
	}
}
