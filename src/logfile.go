package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	RDS-Spy compatible log lines.
 *
 * Description:	The de-facto interchange format for RDS captures:
 *
 *		FE37 0409 E273 5449 @2018/01/02 19:20:13.65
 *
 *		Four uppercase hex blocks, "----" for a block that
 *		failed correction, optional UTC timestamp after '@'.
 *		The parser ignores the timestamp and skips lines with
 *		any failed or malformed block; the writer substitutes
 *		"----" above its correction threshold and suppresses
 *		all-bad groups entirely.
 *
 * References:	http://rdsspy.com/download/mainapp/rdsspy.pdf
 *		https://github.com/walczakp/rds-spy-logs
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// ParseSpyLine extracts one group from a log line.  ok is false for
// headers, comments, failed blocks and anything else that is not
// four clean hex words.
func ParseSpyLine(line string) (RdsRead, bool) {
	var fields = strings.Fields(strings.TrimSpace(line))
	if len(fields) < 4 {
		return RdsRead{}, false
	}
	var read RdsRead
	for i := 0; i < 4; i++ {
		var f = fields[i]
		if strings.Contains(f, "-") || len(f) != 4 {
			return RdsRead{}, false
		}
		var v, err = strconv.ParseUint(f, 16, 16)
		if err != nil {
			return RdsRead{}, false
		}
		read.Blocks[i] = uint16(v)
	}
	return read, true
}

// SpyLogWriter emits log lines, deduplicating repeated hardware
// reads the same way the session does.
type SpyLogWriter struct {
	W io.Writer

	// CorrThreshold is the per-block correction count above which a
	// block is written as "----".  The default of 2 masks exactly the
	// blocks the chip could not correct.
	CorrThreshold int

	now        func() time.Time
	lastBlocks [4]uint16
	haveLast   bool
}

// NewSpyLogWriter wraps w with the default threshold.
func NewSpyLogWriter(w io.Writer) *SpyLogWriter {
	return &SpyLogWriter{W: w, CorrThreshold: 2, now: time.Now}
}

var spyHeaderDate, _ = strftime.New("%Y-%m-%d")
var spyHeaderTime, _ = strftime.New("%H-%M-%S")
var spyStamp, _ = strftime.New("%Y/%m/%d %H:%M:%S")

// WriteHeader writes the capture preamble RDS-Spy expects.
func (l *SpyLogWriter) WriteHeader(stationName string, channel100 int) error {
	var now = l.now()
	var _, err = fmt.Fprintf(l.W,
		"<recorder=\"basenji\" date=%q time=%q source=\"1\" name=%q location=\"\" notes=\"%s MHz\">\n",
		spyHeaderDate.FormatString(now), spyHeaderTime.FormatString(now),
		stationName, FormatChannel(channel100))
	return err
}

// WriteGroup writes one read as a log line.  Duplicate reads and
// groups with all four blocks over the threshold produce nothing.
func (l *SpyLogWriter) WriteGroup(read RdsRead) error {
	if l.haveLast && read.Blocks == l.lastBlocks {
		return nil
	}
	l.lastBlocks = read.Blocks
	l.haveLast = true

	var words [4]string
	var allBad = true
	for i, b := range read.Blocks {
		if read.Corrections[i] > l.CorrThreshold {
			words[i] = "----"
		} else {
			words[i] = fmt.Sprintf("%04X", b)
			allBad = false
		}
	}
	if allBad {
		return nil
	}

	var utc = l.now().UTC()
	var _, err = fmt.Fprintf(l.W, "%s %s %s %s @%s.%02d\n",
		words[0], words[1], words[2], words[3],
		spyStamp.FormatString(utc), utc.Nanosecond()/10000000)
	return err
}
