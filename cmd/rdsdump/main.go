/* Dump raw RDS groups from the tuner as RDS-Spy log lines or pcap. */
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	basenji "github.com/doismellburning/basenji/src"
)

func main() {
	var pcap = pflag.Bool("pcap", false, "Write a pcap/RFtap capture instead of log lines.")
	var noName = pflag.BoolP("no-name", "n", false, "Skip collecting the station name before dumping.")
	var doInit = pflag.BoolP("init", "i", false, "Force chip reset and full initialization.")
	var bus = pflag.Int("bus", 1, "I2C bus number.")
	var addr = pflag.Int("addr", basenji.DefaultI2CAddr, "I2C address of the chip.")
	var resetLine = pflag.Int("reset-line", 23, "BCM line of the RST pin; negative to skip the reset pulse.")
	var gpioChip = pflag.String("gpiochip", "gpiochip0", "GPIO character device for the reset line.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - dump RDS groups from a Si4703 to stdout.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	var radio, err = basenji.OpenSi4703(basenji.Si4703Config{
		Bus:       *bus,
		Addr:      *addr,
		GpioChip:  *gpioChip,
		ResetLine: *resetLine,
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

	var channel, _ = radio.Channel()

	var out = bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *pcap {
		var w = basenji.NewPcapWriter(out)
		if err := w.WriteFileHeader(); err != nil {
			log.Fatal("pcap header", "error", err)
		}
		for {
			var read = pollOne(radio)
			if read == nil {
				continue
			}
			if err := w.WriteGroup(read.Blocks, read.Channel100); err != nil {
				log.Fatal("pcap write", "error", err)
			}
			out.Flush()
		}
	}

	var name = ""
	if !*noName {
		name = collectName(radio)
	}

	var w = basenji.NewSpyLogWriter(out)
	if err := w.WriteHeader(name, channel); err != nil {
		log.Fatal("log header", "error", err)
	}
	for {
		var read = pollOne(radio)
		if read == nil {
			continue
		}
		if err := w.WriteGroup(*read); err != nil {
			log.Fatal("log write", "error", err)
		}
		out.Flush()
	}
}

// pollOne sleeps a poll interval and asks the tuner for a group.
func pollOne(radio *basenji.Si4703) *basenji.RdsRead {
	time.Sleep(2 * time.Millisecond)
	var read, err = radio.Poll()
	if err != nil {
		log.Fatal("tuner read", "error", err)
	}
	return read
}

// collectName decodes a few seconds of groups to label the capture
// with the station's PS name.
func collectName(radio *basenji.Si4703) string {
	var session = basenji.NewRdsSession(basenji.StandardRDS)
	var deadline = time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		var read = pollOne(radio)
		if read != nil {
			session.Feed(read.Blocks, read.Corrections)
		}
	}
	var name = session.PS()
	if name == "________" {
		return ""
	}
	return name
}
