//go:build linux
// +build linux

package transport

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/behrlich/go-bpu"
)

// SerialPort is a bpu.IO backed by a real TTY device, the way
// internal/uring/minimal.go drives the kernel directly through
// golang.org/x/sys/unix rather than a higher-level wrapper.
type SerialPort struct {
	f  *os.File
	fd int
}

// baudToUnix maps common baud rates to the termios B-constants. Only
// the rates an embedded link realistically runs at are supported; an
// unlisted rate is an error rather than a silent nearest-match.
var baudToUnix = map[int]uint32{
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	921600:  unix.B921600,
}

// OpenSerialPort opens path (e.g. "/dev/ttyUSB0") and configures it as
// an 8N1 raw-mode link at the given baud rate.
func OpenSerialPort(path string, baud int) (*SerialPort, error) {
	unixBaud, ok := baudToUnix[baud]
	if !ok {
		return nil, fmt.Errorf("serialport: unsupported baud rate %d", baud)
	}

	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", path, err)
	}
	fd := int(f.Fd())

	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("serialport: get termios: %w", err)
	}

	unix.CfmakeRaw(t)
	t.Cflag |= unix.CLOCAL | unix.CREAD
	t.Cflag &^= unix.CSTOPB | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		f.Close()
		return nil, fmt.Errorf("serialport: set termios: %w", err)
	}

	if err := unix.IoctlSetInt(fd, unix.TCSBRK, 0); err != nil {
		// Not fatal — some ttys/PTYs reject a no-op break.
		_ = err
	}

	if err := setBaud(fd, t, unixBaud); err != nil {
		f.Close()
		return nil, err
	}

	return &SerialPort{f: f, fd: fd}, nil
}

func setBaud(fd int, t *unix.Termios, b uint32) error {
	t.Cflag &^= unix.CBAUD
	t.Cflag |= b
	t.Ispeed = b
	t.Ospeed = b
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		return fmt.Errorf("serialport: set baud: %w", err)
	}
	return nil
}

// TxFree implements bpu.IO via TIOCOUTQ: the kernel's count of bytes
// still queued in the output buffer, subtracted from a fixed driver
// buffer size estimate.
func (s *SerialPort) TxFree() (int, error) {
	queued, err := unix.IoctlGetInt(s.fd, unix.TIOCOUTQ)
	if err != nil {
		return 0, fmt.Errorf("serialport: tiocoutq: %w", err)
	}
	const assumedTxBuffer = 4096
	free := assumedTxBuffer - queued
	if free < 0 {
		free = 0
	}
	return free, nil
}

// TxWriteSome implements bpu.IO. EAGAIN on a non-blocking fd is not an
// error — it means the kernel's buffer is momentarily full, i.e.
// wrote == 0, backpressure.
func (s *SerialPort) TxWriteSome(p []byte) (int, error) {
	n, err := unix.Write(s.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		return 0, fmt.Errorf("serialport: write: %w", err)
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

// TimeUs implements bpu.IO using CLOCK_MONOTONIC.
func (s *SerialPort) TimeUs() (uint32, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, fmt.Errorf("serialport: clock_gettime: %w", err)
	}
	return uint32(ts.Sec*1_000_000 + ts.Nsec/1_000), nil
}

// Close releases the underlying file descriptor.
func (s *SerialPort) Close() error {
	return s.f.Close()
}

var _ bpu.IO = (*SerialPort)(nil)
