package transport

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaud matches the stock Adalight / Skydimo sketch.
	DefaultBaud = 115200
	// DefaultTimeout bounds reads on the port; writes block until the
	// OS buffer accepts the frame.
	DefaultTimeout = time.Second
)

var errPortNotOpen = errors.New("serial port not open")

// SerialConfig selects the device the frames go to. 8 data bits, no
// parity, one stop bit, no handshake.
type SerialConfig struct {
	Port    string
	Baud    int
	Timeout time.Duration
}

// Serial is a Sink backed by a serial port.
type Serial struct {
	cfg  SerialConfig
	port serial.Port
}

// NewSerial prepares a serial sink. The port is not touched until Open.
func NewSerial(cfg SerialConfig) *Serial {
	if cfg.Baud <= 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Serial{cfg: cfg}
}

func (s *Serial) Open() error {
	if s.port != nil {
		return nil
	}
	port, err := serial.Open(s.cfg.Port, &serial.Mode{
		BaudRate: s.cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", s.cfg.Port, err)
	}
	if err := port.SetReadTimeout(s.cfg.Timeout); err != nil {
		_ = port.Close()
		return fmt.Errorf("set timeout on %s: %w", s.cfg.Port, err)
	}
	s.port = port
	return nil
}

func (s *Serial) Write(p []byte) error {
	if s.port == nil {
		return errPortNotOpen
	}
	n, err := s.port.Write(p)
	if err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("serial write: short frame, %d of %d bytes", n, len(p))
	}
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}
