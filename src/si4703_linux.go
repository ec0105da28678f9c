//go:build linux

package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Linux transport for the Si4703: /dev/i2c-N plus the
 *		GPIO character device for the reset line.
 *
 * Description:	The chip does plain I2C transfers with no register
 *		addressing byte, so the bus wrapper is just the
 *		I2C_SLAVE ioctl and raw read/write on the device
 *		node.  The reset pin goes through go-gpiocdev; pass a
 *		negative line number on boards where RST is strapped
 *		externally.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

// i2cSlaveIoctl is I2C_SLAVE from linux/i2c-dev.h.
const i2cSlaveIoctl = 0x0703

type linuxI2CBus struct {
	f *os.File
}

func openI2CBus(busNumber, addr int) (*linuxI2CBus, error) {
	var path = fmt.Sprintf("/dev/i2c-%d", busNumber)
	var f, err = os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := unix.IoctlSetInt(int(f.Fd()), i2cSlaveIoctl, addr); err != nil {
		f.Close()
		return nil, fmt.Errorf("I2C_SLAVE 0x%02x on %s: %w", addr, path, err)
	}
	return &linuxI2CBus{f: f}, nil
}

func (b *linuxI2CBus) Write(data []byte) error {
	var n, err = b.f.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("short i2c write: %d of %d", n, len(data))
	}
	return nil
}

func (b *linuxI2CBus) Read(buf []byte) error {
	var n, err = b.f.Read(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("short i2c read: %d of %d", n, len(buf))
	}
	return nil
}

func (b *linuxI2CBus) Close() error {
	return b.f.Close()
}

// Si4703Config is the hardware wiring.
type Si4703Config struct {
	Bus        int    // I2C bus number, /dev/i2c-<Bus>
	Addr       int    // chip address, DefaultI2CAddr unless rewired
	GpioChip   string // e.g. "gpiochip0"
	ResetLine  int    // BCM line number of RST; negative to skip
	InitVolume int
}

// OpenSi4703 opens the bus and the reset line and returns a driver.
// The chip is not touched; call Init or InitPwr next.
func OpenSi4703(cfg Si4703Config) (*Si4703, error) {
	if cfg.Addr == 0 {
		cfg.Addr = DefaultI2CAddr
	}
	var bus, err = openI2CBus(cfg.Bus, cfg.Addr)
	if err != nil {
		return nil, err
	}

	var reset gpioLine
	if cfg.ResetLine >= 0 {
		var chip = cfg.GpioChip
		if chip == "" {
			chip = "gpiochip0"
		}
		line, err := gpiocdev.RequestLine(chip, cfg.ResetLine,
			gpiocdev.AsOutput(1), gpiocdev.WithConsumer("basenji-reset"))
		if err != nil {
			bus.Close()
			return nil, fmt.Errorf("gpio reset line %d on %s: %w", cfg.ResetLine, chip, err)
		}
		reset = line
	}

	return newSi4703(bus, reset, cfg.InitVolume), nil
}
