// Package transport ships analysis records to the companion display over
// the wireless serial link. Send failures are non-fatal; the analyzer never
// retries a failed transmission.
package transport

import (
	"github.com/aquamind/aquamind/internal/types"
	"github.com/aquamind/aquamind/pkg/payload"
	"go.uber.org/zap"
)

// Transport is the companion-app link.
type Transport interface {
	Connect() error
	Connected() bool
	Send(record *types.AnalysisRecord) error
	Close() error
}

// Simulated logs encoded payloads instead of transmitting them, for running
// without a paired device.
type Simulated struct {
	format    payload.Format
	logger    *zap.SugaredLogger
	connected bool
	lastSent  []byte
}

// NewSimulated creates a simulated transport.
func NewSimulated(format payload.Format, logger *zap.SugaredLogger) *Simulated {
	return &Simulated{format: format, logger: logger}
}

// Connect marks the simulated link as connected.
func (s *Simulated) Connect() error {
	s.connected = true
	s.logger.Info("simulated companion link connected")
	return nil
}

// Connected reports the simulated link state.
func (s *Simulated) Connected() bool {
	return s.connected
}

// Send encodes the record and logs its size and verdict.
func (s *Simulated) Send(record *types.AnalysisRecord) error {
	data, err := payload.Encode(record, s.format)
	if err != nil {
		return err
	}
	s.lastSent = data
	s.logger.Infof("simulated send: %d bytes (%s), verdict %s", len(data), s.format, record.Verdict)
	s.logger.Debugf("payload: %s", data)
	return nil
}

// LastSent returns the most recently encoded payload.
func (s *Simulated) LastSent() []byte {
	return s.lastSent
}

// Close disconnects the simulated link.
func (s *Simulated) Close() error {
	s.connected = false
	return nil
}
