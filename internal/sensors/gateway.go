package sensors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/aquamind/aquamind/internal/types"
	serial "github.com/tarm/goserial"
	"go.uber.org/zap"
)

// GatewayConfig describes the connection to the sensor gateway board, which
// streams newline-delimited JSON packets with the raw ADC counts. Either a
// serial device or hostname+port must be set.
type GatewayConfig struct {
	SerialDevice string
	Baud         int
	Hostname     string
	Port         string
}

// packet is the structured data emitted by the gateway board.
type packet struct {
	TDSRaw       float64 `json:"tds_raw"`
	TurbidityRaw float64 `json:"turb_raw"`
	TemperatureC float64 `json:"temp_c"`
	Button       bool    `json:"button,omitempty"`
}

// Gateway reads sensor packets from the ADC board over serial or TCP and
// serves the most recent values through the Device interface.
type Gateway struct {
	cfg     GatewayConfig
	logger  *zap.SugaredLogger
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	netConn net.Conn
	rwc     io.ReadWriteCloser

	mu         sync.RWMutex
	latest     packet
	havePacket bool
	button     bool
}

// NewGateway connects to the gateway board and starts the packet reader.
func NewGateway(cfg GatewayConfig, logger *zap.SugaredLogger) (*Gateway, error) {
	if cfg.SerialDevice == "" && (cfg.Hostname == "" || cfg.Port == "") {
		return nil, fmt.Errorf("gateway requires either a serial device or hostname+port")
	}
	if cfg.Baud == 0 {
		cfg.Baud = 115200
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Gateway{cfg: cfg, logger: logger, ctx: ctx, cancel: cancel}

	if err := g.connect(); err != nil {
		cancel()
		return nil, err
	}

	g.wg.Add(1)
	go g.readPackets()

	return g, nil
}

func (g *Gateway) connect() error {
	if g.cfg.SerialDevice != "" {
		g.logger.Infof("connecting to sensor gateway on %s at %d baud", g.cfg.SerialDevice, g.cfg.Baud)
		rwc, err := serial.OpenPort(&serial.Config{Name: g.cfg.SerialDevice, Baud: g.cfg.Baud})
		if err != nil {
			return fmt.Errorf("failed to open serial port %s: %w", g.cfg.SerialDevice, err)
		}
		g.rwc = rwc
		return nil
	}

	addr := net.JoinHostPort(g.cfg.Hostname, g.cfg.Port)
	g.logger.Infof("connecting to sensor gateway at %s", addr)
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", addr, err)
	}
	g.netConn = conn
	g.rwc = conn
	return nil
}

// readPackets decodes JSON packets from the gateway, keeping the most recent
// one, and reconnects after decode failures.
func (g *Gateway) readPackets() {
	defer g.wg.Done()

	for {
		select {
		case <-g.ctx.Done():
			return
		default:
		}

		dec := json.NewDecoder(g.rwc)
		for {
			if g.netConn != nil {
				g.netConn.SetReadDeadline(time.Now().Add(30 * time.Second))
			}

			var p packet
			if err := dec.Decode(&p); err != nil {
				select {
				case <-g.ctx.Done():
					return
				default:
				}
				g.logger.Errorf("error decoding gateway packet: %v", err)
				break
			}

			g.mu.Lock()
			g.latest = p
			g.havePacket = true
			if p.Button {
				g.button = true
			}
			g.mu.Unlock()
		}

		g.rwc.Close()
		g.logger.Info("reconnecting to sensor gateway in 5 seconds...")
		select {
		case <-g.ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
		if err := g.connect(); err != nil {
			g.logger.Errorf("gateway reconnect failed: %v", err)
		}
	}
}

// ReadRaw returns the channel's value from the most recent gateway packet.
func (g *Gateway) ReadRaw(channel types.Channel) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.havePacket {
		return 0, fmt.Errorf("no packet received from sensor gateway yet")
	}

	switch channel {
	case types.ChannelTDS:
		return g.latest.TDSRaw, nil
	case types.ChannelTurbidity:
		return g.latest.TurbidityRaw, nil
	case types.ChannelTemperature:
		return g.latest.TemperatureC, nil
	}
	return 0, fmt.Errorf("unknown channel %v", channel)
}

// ButtonPressed reports and clears the latched calibration-button state.
func (g *Gateway) ButtonPressed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	pressed := g.button
	g.button = false
	return pressed
}

// Close stops the reader and closes the connection.
func (g *Gateway) Close() error {
	g.cancel()
	var err error
	if g.rwc != nil {
		err = g.rwc.Close()
	}
	g.wg.Wait()
	return err
}
