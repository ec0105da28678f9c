/*------------------------------------------------------------------
 *
 * Purpose:	Interactive FM tuner monitor: scrolling RDS decode
 *		with single-keypress control of the radio.
 *
 * Description:	The main loop pumps the Si4703 at a few hundred hertz
 *		into an RdsSession, prints decoded groups as they
 *		arrive, and keeps a status line with the channel,
 *		signal, PS name, group summary and RadioText.  Keys
 *		seek, change volume, cycle display filters, dump the
 *		collected buffers and traffic list, reinitialize or
 *		power down the chip.
 *
 *---------------------------------------------------------------*/
package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/term"
	"github.com/spf13/pflag"

	basenji "github.com/doismellburning/basenji/src"
)

// displayFilters are the group filters the 'f' key cycles through.
// A leading '=' means "show only this group".
var displayFilters = [][]string{
	{},
	{"0A", "2A"},
	{"=2A"},
	{"=3A"},
	{"=8A"},
}

type monitor struct {
	radio   *basenji.Si4703
	session *basenji.RdsSession
	tty     *term.Term

	channel     int
	showRDS     bool
	showGrpStat bool
	outFixed    bool
	filterIdx   int
	skipGroups  []string
	onlyGroups  []string
	lastGroup   string
	noGroupRuns int
}

func main() {
	var doInit = pflag.BoolP("init", "i", false, "Force chip reset and full initialization.")
	var bus = pflag.Int("bus", 1, "I2C bus number.")
	var addr = pflag.Int("addr", basenji.DefaultI2CAddr, "I2C address of the chip.")
	var resetLine = pflag.Int("reset-line", 23, "BCM line of the RST pin; negative to skip the reset pulse.")
	var gpioChip = pflag.String("gpiochip", "gpiochip0", "GPIO character device for the reset line.")
	var volume = pflag.Int("volume", 8, "Initial volume, 0..15.")
	var rbds = pflag.Bool("rbds", false, "Use the North American RBDS programme type table.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - interactive Si4703 FM tuner monitor.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPress '?' inside the monitor for the key bindings.\n")
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if err := basenji.TmcEventsInit(); err != nil {
		log.Warn("TMC event catalogue not loaded", "error", err)
	}

	var radio, err = basenji.OpenSi4703(basenji.Si4703Config{
		Bus:        *bus,
		Addr:       *addr,
		GpioChip:   *gpioChip,
		ResetLine:  *resetLine,
		InitVolume: *volume,
	})
	if err != nil {
		log.Fatal("opening tuner", "error", err)
	}
	defer radio.Close()

	if initialized, err := radio.IsInitialized(); err != nil {
		log.Fatal("probing chip", "error", err)
	} else if *doInit || !initialized {
		if err := radio.Init(); err != nil {
			log.Fatal("chip init", "error", err)
		}
	} else if err := radio.InitPwr(); err != nil {
		log.Fatal("chip power-up", "error", err)
	}

	if v, err := radio.Version(); err == nil {
		fmt.Println("VER:", v)
	}

	var standard = basenji.StandardRDS
	if *rbds {
		standard = basenji.StandardRBDS
	}

	var tty, ttyErr = term.Open("/dev/tty", term.CBreakMode)
	if ttyErr != nil {
		log.Fatal("opening terminal", "error", ttyErr)
	}
	defer tty.Restore()
	defer tty.Close()
	tty.SetReadTimeout(time.Millisecond)

	var m = &monitor{
		radio:   radio,
		session: basenji.NewRdsSession(standard),
		tty:     tty,
		showRDS: true,
	}
	m.channel, _ = radio.Channel()

	fmt.Println("ready")
	var keepRadio = m.run()

	fmt.Println()
	m.printBuffers()
	if !keepRadio {
		fmt.Println("Shutting down radio")
		if err := radio.Shutdown(); err != nil {
			log.Error("chip power-down", "error", err)
		}
	} else {
		fmt.Println("Exiting, keeping radio")
	}
}

// run is the poll + keypress loop.  Returns true when the radio
// should be left playing.
func (m *monitor) run() bool {
	var rssi = 0
	for {
		time.Sleep(2 * time.Millisecond)

		var read, err = m.radio.Poll()
		if err != nil {
			log.Error("tuner read", "error", err)
			return true
		}

		var printed = false
		if read != nil {
			rssi = read.Rssi
			printed = m.handleGroup(*read)
			m.noGroupRuns = 0
		} else {
			m.noGroupRuns++
			if m.noGroupRuns > 50 {
				m.lastGroup = ""
			}
		}
		if !printed {
			m.printStatusLine(rssi)
		}

		var key, ok = m.readKey()
		if !ok {
			continue
		}
		fmt.Print("\r\x1b[K")
		switch key {
		case ' ':
			m.showRDS = !m.showRDS
		case '?':
			m.showRDS = false
			printHelp()
		case '[', ']':
			fmt.Print("tuning\r")
			m.channel, _ = m.radio.Seek(key == ']')
			m.session.Reset()
			m.lastGroup = ""
		case '-':
			m.nudgeVolume(-1)
		case '+', '=':
			m.nudgeVolume(1)
		case 'f', 'F':
			m.cycleFilter(key == 'F')
		case 'g':
			m.showGrpStat = !m.showGrpStat
		case 'h':
			m.outFixed = !m.outFixed
		case 's':
			fmt.Println()
			m.printBuffers()
		case 't':
			fmt.Println()
			for _, rec := range m.session.TmcRecords() {
				fmt.Println(basenji.DescribeTmcRecord(rec))
			}
		case 'r':
			if dump, err := m.radio.RegisterDump(); err == nil {
				fmt.Println("REG:", dump)
			}
		case 'i':
			if err := m.radio.Init(); err != nil {
				log.Error("chip init", "error", err)
			}
			m.session.Reset()
			m.lastGroup = ""
			m.channel, _ = m.radio.Channel()
		case 'I':
			if err := m.radio.Shutdown(); err != nil {
				log.Error("chip power-down", "error", err)
			}
		case 'S':
			m.scanStations()
		case 'q':
			return false
		case 'Q':
			return true
		}
	}
}

// handleGroup feeds one read and prints the scrolling line for it.
// Returns true when a line was printed (the status line then waits a
// turn).
func (m *monitor) handleGroup(read basenji.RdsRead) bool {
	var ev = m.session.Feed(read.Blocks, read.Corrections)
	if ev == nil {
		return false
	}
	var g = basenji.ParseBlocks(read.Blocks)
	m.lastGroup = g.Variant.String()

	if !m.showRDS || !m.groupShown(m.lastGroup) {
		return false
	}

	var line = fmt.Sprintf("\r\x1b[K%5s %3d %d%d%d%d  %04x:%04x:%04x:%04x ",
		basenji.FormatChannel(read.Channel100), read.Rssi,
		read.Corrections[0], read.Corrections[1], read.Corrections[2], read.Corrections[3],
		read.Blocks[0], read.Blocks[1], read.Blocks[2], read.Blocks[3])
	if m.outFixed {
		line += " " + basenji.DescribeGroup(g)
	} else {
		line += fmt.Sprintf(" %3s ", m.lastGroup)
	}
	fmt.Println(line + " " + m.session.DescribeEvent(ev))
	return true
}

func (m *monitor) groupShown(variant string) bool {
	if len(m.onlyGroups) > 0 {
		return slices.Contains(m.onlyGroups, variant)
	}
	return !slices.Contains(m.skipGroups, variant)
}

func (m *monitor) printStatusLine(rssi int) {
	var state = " "
	switch {
	case !m.showRDS:
		state = "P"
	case len(m.skipGroups) > 0 || len(m.onlyGroups) > 0:
		state = "F"
	}
	var s = fmt.Sprintf("%5s %3d  %s %s%4s %s  ",
		basenji.FormatChannel(m.channel), rssi,
		m.session.PS(), state, m.lastGroup, m.session.QuickGroups())
	if m.showGrpStat {
		var counts, rejected = m.session.GroupStats()
		var parts = []string{fmt.Sprintf("--:%d", rejected)}
		for _, gc := range counts {
			parts = append(parts, fmt.Sprintf("%s:%d", gc.Variant, gc.Count))
		}
		s += "[" + strings.Join(parts, " ") + "]"
	} else {
		s += m.session.RT()
	}
	if !m.showRDS {
		s += " <paused>"
	} else if len(m.skipGroups) > 0 {
		s += " <filtered:" + strings.Join(m.skipGroups, ",") + ">"
	}
	fmt.Print(s + "\r")
}

func (m *monitor) nudgeVolume(delta int) {
	var v, err = m.radio.Volume()
	if err != nil {
		log.Error("volume read", "error", err)
		return
	}
	if err := m.radio.SetVolume(v + delta); err != nil {
		log.Error("volume set", "error", err)
		return
	}
	v, _ = m.radio.Volume()
	fmt.Println("volume:", v)
}

func (m *monitor) cycleFilter(reset bool) {
	if reset {
		m.filterIdx = 0
	} else {
		m.filterIdx = (m.filterIdx + 1) % len(displayFilters)
	}
	var filter = displayFilters[m.filterIdx]
	m.skipGroups = nil
	m.onlyGroups = nil
	for _, f := range filter {
		if strings.HasPrefix(f, "=") {
			m.onlyGroups = append(m.onlyGroups, f[1:])
		} else {
			m.skipGroups = append(m.skipGroups, f)
		}
	}
	if len(filter) == 0 {
		fmt.Println("--- filter off")
	} else {
		fmt.Println("--- filter on:", filter)
	}
}

func (m *monitor) scanStations() {
	fmt.Println("scan start")
	fmt.Println("          freq  rssi      name      badgrp  seen RDS group counts")
	var stations, err = basenji.ScanBand(m.radio, basenji.StandardRDS)
	if err != nil {
		log.Error("scan", "error", err)
	}
	for _, st := range stations {
		fmt.Printf("STATION: %5s %2d    [%s]    --:%-3d",
			basenji.FormatChannel(st.Channel100), st.Rssi, st.Name, st.Rejected)
		for _, gc := range st.Groups {
			fmt.Printf(" %3s:%-3d", gc.Variant, gc.Count)
		}
		fmt.Println()
	}
	fmt.Println("scan end")
	m.channel, _ = m.radio.Channel()
	m.session.Reset()
}

func (m *monitor) printBuffers() {
	fmt.Printf("  PS     %q\n", m.session.PS())
	var di, meanings = m.session.DI()
	fmt.Printf("  DI     %s  %s\n", di, strings.Join(meanings, " "))
	fmt.Printf("  RT     %q\n", m.session.RT())
	fmt.Printf("  PTYN   %q\n", m.session.PTYN())
	fmt.Printf("  TMCID  %q\n", m.session.TMCID())
	fmt.Printf("  clock  %s\n", m.session.Clock())

	if pic, ok := m.session.PIC(); ok {
		fmt.Printf("  PIC:   %04x  country=%d area=%d(%s) program=%d\n",
			pic.PIC, pic.Country, pic.Area, pic.AreaDesc, pic.Program)
	}
	if pty, name := m.session.PTY(); pty >= 0 {
		fmt.Printf("  PTY:   %d = %s\n", pty, name)
	}

	var counts, rejected = m.session.GroupStats()
	var total = rejected
	for _, gc := range counts {
		total += gc.Count
	}
	fmt.Printf("  stat:  [-- %d]", rejected)
	var suspect []basenji.GroupCount
	for _, gc := range counts {
		var frac = float64(gc.Count) / float64(total-rejected)
		if gc.Variant.String() == "4A" || frac >= 0.02 {
			fmt.Printf(" [%s %dx %.1f%%]", gc.Variant, gc.Count, 100*frac)
		} else {
			suspect = append(suspect, gc)
		}
	}
	fmt.Println()
	if len(suspect) > 0 {
		fmt.Print("  stat:  suspected bad:")
		for _, gc := range suspect {
			fmt.Printf(" [%s %dx]", gc.Variant, gc.Count)
		}
		fmt.Println()
	}

	var accepted = m.session.OdaBindings(basenji.OdaDisplayFraction)
	if len(accepted) > 0 {
		fmt.Print("  ODA: ")
		for _, b := range accepted {
			fmt.Printf("  [%s 0x%04X(%s) %dx]", b.Variant, b.Aid, b.AidName, b.Count)
		}
		fmt.Println()
	}
	var all = m.session.OdaBindings(0)
	if len(all) > len(accepted) {
		fmt.Print("  ODA:   suspected bad:")
		for _, b := range all {
			if b.Share < basenji.OdaDisplayFraction {
				fmt.Printf(" [%s 0x%04X(%s) %dx]", b.Variant, b.Aid, b.AidName, b.Count)
			}
		}
		fmt.Println()
	}

	for _, source := range m.session.AfSources() {
		var freqs, count = m.session.AltFrequencies(source, 0.05)
		fmt.Printf("  altfreq %s:", source)
		for _, f := range freqs {
			fmt.Printf(" %s", f.Label)
		}
		if source == "0A" {
			fmt.Printf(" count=%d", count)
		}
		fmt.Println()
	}

	if n := m.session.TmcCount(); n > 0 {
		fmt.Println("TMCseen:", n)
	}
}

func (m *monitor) readKey() (byte, bool) {
	var buf [1]byte
	var n, err = m.tty.Read(buf[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return buf[0], true
}

func printHelp() {
	fmt.Print(`
Keyboard keypress controls:
===========================

<space> pause/resume output
  - +   volume
  [ ]   prev/next station
  ?     help
  f     filter RDS, hide 0A and 2A "spam"
  h     hide/show fixed header

  g     toggle 2A radiotext string vs group stats
  s     show RDS string buffers
  t     show RDS-TMC traffic data log

  S     stations scan

  i     reset/initialize chip
  I     powerdown chip
  r     show chip registers

  q     quit, switch off radio
  Q     quit, keep radio running

status line format:
freq RSSI "station" state current-group seen-groups "radiotext"/stats [<paused/filtered>]
state is P for paused, F for filtering, blank otherwise (no received-group indicator)
`)
}
