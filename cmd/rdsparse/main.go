/* Offline parser for RDS-Spy format log files. */
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	basenji "github.com/doismellburning/basenji/src"
)

func main() {
	var quiet = pflag.BoolP("quiet", "n", false, "Do not print parsed groups (use with --stats / --tmc).")
	var stats = pflag.BoolP("stats", "s", false, "Print RDS statistics after parsing.")
	var tmc = pflag.BoolP("tmc", "t", false, "Print collected RDS-TMC records after parsing.")
	var rbds = pflag.Bool("rbds", false, "Use the North American RBDS programme type table.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - parse RDS-Spy log lines from stdin.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Each input line holds four 4-hex-digit blocks; '----' marks a\n")
		fmt.Fprintf(os.Stderr, "failed block and skips the line.  A trailing @timestamp is ignored.\n")
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if err := basenji.TmcEventsInit(); err != nil {
		log.Warn("TMC event catalogue not loaded", "error", err)
	}

	var standard = basenji.StandardRDS
	if *rbds {
		standard = basenji.StandardRBDS
	}
	var session = basenji.NewRdsSession(standard)

	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var read, ok = basenji.ParseSpyLine(scanner.Text())
		if !ok {
			continue
		}
		var ev = session.Feed(read.Blocks, read.Corrections)
		if ev == nil || *quiet {
			continue
		}
		var g = basenji.ParseBlocks(read.Blocks)
		fmt.Printf("%04x:%04x:%04x:%04x  %s %s\n",
			read.Blocks[0], read.Blocks[1], read.Blocks[2], read.Blocks[3],
			basenji.DescribeGroup(g), session.DescribeEvent(ev))
	}
	if err := scanner.Err(); err != nil {
		log.Fatal("reading stdin", "error", err)
	}

	if *tmc {
		for _, rec := range session.TmcRecords() {
			fmt.Println(basenji.DescribeTmcRecord(rec))
		}
	}
	if *stats {
		printStats(session)
	}
}

func printStats(session *basenji.RdsSession) {
	fmt.Printf("  PS:    %q\n", session.PS())
	fmt.Printf("  RT:    %q\n", session.RT())
	fmt.Printf("  PTYN:  %q\n", session.PTYN())
	fmt.Printf("  clock: %s\n", session.Clock())

	if pic, ok := session.PIC(); ok {
		fmt.Printf("  PIC:   %04x  country=%d area=%d(%s) program=%d\n",
			pic.PIC, pic.Country, pic.Area, pic.AreaDesc, pic.Program)
	}
	if pty, name := session.PTY(); pty >= 0 {
		fmt.Printf("  PTY:   %d = %s\n", pty, name)
	}

	var counts, rejected = session.GroupStats()
	fmt.Printf("  stat:  [-- %d]", rejected)
	for _, gc := range counts {
		fmt.Printf(" [%s %d]", gc.Variant, gc.Count)
	}
	fmt.Println()

	for _, b := range session.OdaBindings(0) {
		fmt.Printf("  ODA:   [%s 0x%04X(%s) %dx %.1f%%]\n", b.Variant, b.Aid, b.AidName, b.Count, 100*b.Share)
	}
	for _, source := range session.AfSources() {
		var freqs, count = session.AltFrequencies(source, 0.05)
		fmt.Printf("  altfreq %s:", source)
		for _, f := range freqs {
			fmt.Printf(" %s", f.Label)
		}
		if source == "0A" {
			fmt.Printf(" count=%d", count)
		}
		fmt.Println()
	}
	if n := session.TmcCount(); n > 0 {
		fmt.Printf("  TMCseen: %d\n", n)
	}
}
