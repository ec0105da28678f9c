package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Clock-time decode for group 4A.
 *
 * Description:	4A packs the date as a 17-bit Modified Julian Day and
 *		the time as UTC hour/minute plus a signed local offset
 *		in half hours.  The decoded value keeps local time
 *		(offset applied) and the raw offset; nothing is
 *		normalized back to UTC.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"time"
)

// ClockTime is the decoded content of one 4A group.
type ClockTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int // local, offset applied
	Minute int

	MJD             int
	OffsetHalfHours int // signed, -31..31
}

// mjdEpoch is Modified Julian Day 0.
var mjdEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

// decodeClock unpacks the 37-bit payload of a 4A group.
func decodeClock(raw uint64) ClockTime {
	var mjd = getbits(raw, 17, 17)
	var hour = getbits(raw, 12, 5)
	var minute = getbits(raw, 6, 6)
	var offset = getbits(raw, 0, 5)
	if getbit(raw, 5) == 1 {
		offset = -offset
	}

	var utc = mjdEpoch.AddDate(0, 0, mjd).
		Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	var local = utc.Add(time.Duration(offset) * 30 * time.Minute)

	return ClockTime{
		Year:            local.Year(),
		Month:           local.Month(),
		Day:             local.Day(),
		Hour:            local.Hour(),
		Minute:          local.Minute(),
		MJD:             mjd,
		OffsetHalfHours: offset,
	}
}

// String renders "YYYY-MM-DD HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%d-%02d-%02d %02d:%02d", c.Year, int(c.Month), c.Day, c.Hour, c.Minute)
}

// OffsetString renders the local offset as transmitted, in half hours.
func (c ClockTime) OffsetString() string {
	if c.OffsetHalfHours < 0 {
		return fmt.Sprintf("-%d", -c.OffsetHalfHours)
	}
	return fmt.Sprintf("+%d", c.OffsetHalfHours)
}

// Plausible reports whether the date looks like live broadcast time.
// Out-of-century dates happen on noisy channels and are a diagnostic,
// not an error.
func (c ClockTime) Plausible() bool {
	return c.Year >= 2000 && c.Year <= 2099
}
