package transport

import (
	"fmt"
	"io"

	"github.com/aquamind/aquamind/internal/types"
	"github.com/aquamind/aquamind/pkg/payload"
	serial "github.com/tarm/goserial"
	"go.uber.org/zap"
)

// Serial transmits newline-framed payloads over an RFCOMM serial device
// bound to the paired companion phone.
type Serial struct {
	device string
	baud   int
	format payload.Format
	rwc    io.ReadWriteCloser
	logger *zap.SugaredLogger
}

// NewSerial creates a serial transport for the given device path. A zero
// baud rate selects 9600, the usual RFCOMM default.
func NewSerial(device string, baud int, format payload.Format, logger *zap.SugaredLogger) *Serial {
	if baud == 0 {
		baud = 9600
	}
	return &Serial{device: device, baud: baud, format: format, logger: logger}
}

// Connect opens the serial device.
func (s *Serial) Connect() error {
	if s.rwc != nil {
		return nil
	}
	s.logger.Infof("opening companion link on %s at %d baud", s.device, s.baud)
	rwc, err := serial.OpenPort(&serial.Config{Name: s.device, Baud: s.baud})
	if err != nil {
		return fmt.Errorf("failed to open companion link %s: %w", s.device, err)
	}
	s.rwc = rwc
	return nil
}

// Connected reports whether the serial device is open.
func (s *Serial) Connected() bool {
	return s.rwc != nil
}

// Send encodes the record and writes it as one newline-terminated frame.
// A write failure closes the link so the next Send reconnects.
func (s *Serial) Send(record *types.AnalysisRecord) error {
	if s.rwc == nil {
		if err := s.Connect(); err != nil {
			return err
		}
	}

	data, err := payload.Encode(record, s.format)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if _, err := s.rwc.Write(data); err != nil {
		s.rwc.Close()
		s.rwc = nil
		return fmt.Errorf("companion link write failed: %w", err)
	}

	s.logger.Debugf("sent %d bytes (%s) to companion", len(data), s.format)
	return nil
}

// Close closes the serial device.
func (s *Serial) Close() error {
	if s.rwc == nil {
		return nil
	}
	err := s.rwc.Close()
	s.rwc = nil
	return err
}
