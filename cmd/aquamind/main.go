package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"

	"github.com/aquamind/aquamind/internal/analysis"
	"github.com/aquamind/aquamind/internal/app"
	"github.com/aquamind/aquamind/internal/log"
	"github.com/aquamind/aquamind/internal/sensors"
	"github.com/aquamind/aquamind/internal/transport"
	"github.com/aquamind/aquamind/internal/trust"
	"github.com/aquamind/aquamind/pkg/config"
	"github.com/aquamind/aquamind/pkg/payload"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "profiles.yaml", "Path to the region-profile source:\n\t\t\t  YAML: profiles.yaml\n\t\t\t  SQLite: profiles.db")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
	profile := flag.String("profile", "", "Region profile to activate at startup (e.g. JABALPUR)")
	scenario := flag.String("scenario", "", "Simulation scenario (clean_water, tap_water, dirty_water, contaminated, sensor_error)")
	gatewaySerial := flag.String("gateway-serial", "", "Serial device of the sensor gateway board (hardware mode)")
	gatewayBaud := flag.Int("gateway-baud", 115200, "Baud rate for the sensor gateway serial device")
	gatewayAddr := flag.String("gateway-addr", "", "host:port of a networked sensor gateway (hardware mode)")
	linkSerial := flag.String("link-serial", "", "RFCOMM serial device of the companion link; simulated when empty")
	linkBaud := flag.Int("link-baud", 9600, "Baud rate for the companion link")
	linkFormat := flag.String("format", "json", "Companion payload format: 'json' or 'msgpack'")
	calibFile := flag.String("calibration", "calibration.json", "Path to the sensor calibration file")
	single := flag.Bool("single", false, "Run a single analysis and exit")
	continuous := flag.Bool("continuous", false, "Run in continuous monitoring mode")
	interval := flag.Duration("interval", 0, "Interval between analyses in continuous mode (default 1m)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("aquamind %s\n", version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger := log.GetSugaredLogger()

	// A missing or corrupt profile source degrades to built-in defaults; it
	// is never fatal.
	cfgData, err := loadProfiles(*cfgFile, *cfgBackend)
	if err != nil {
		log.Warnf("could not load region profiles (%v), using built-in defaults", err)
		cfgData = &config.ConfigData{}
	}
	store := trust.NewStore(cfgData)

	format, err := payload.ParseFormat(*linkFormat)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	// Select the sensor driver once at startup: the gateway board when one
	// is configured, the simulator otherwise.
	var device sensors.Device
	simulated := *gatewaySerial == "" && *gatewayAddr == ""
	if simulated {
		device = sensors.NewSimulated(*scenario, logger)
	} else {
		gwCfg := sensors.GatewayConfig{SerialDevice: *gatewaySerial, Baud: *gatewayBaud}
		if *gatewayAddr != "" {
			host, port, err := net.SplitHostPort(*gatewayAddr)
			if err != nil {
				log.Errorf("invalid -gateway-addr: %v", err)
				os.Exit(1)
			}
			gwCfg.Hostname, gwCfg.Port = host, port
		}
		device, err = sensors.NewGateway(gwCfg, logger)
		if err != nil {
			log.Errorf("could not start sensor gateway: %v", err)
			os.Exit(1)
		}
	}

	mgr := sensors.NewManager(device, simulated, *calibFile, logger)
	defer mgr.Close()

	engine := analysis.New(mgr, store, logger)
	if *profile != "" {
		engine.SetProfile(*profile)
	}

	var link transport.Transport
	if *linkSerial != "" {
		link = transport.NewSerial(*linkSerial, *linkBaud, format, logger)
	} else {
		link = transport.NewSimulated(format, logger)
	}

	mode := app.ModeInteractive
	switch {
	case *single:
		mode = app.ModeSingle
	case *continuous:
		mode = app.ModeContinuous
	}

	application := app.New(engine, link, logger)
	defer application.Close()

	if err := application.Run(context.Background(), mode, *interval); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func loadProfiles(cfgFile, cfgBackend string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.Provider
	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		p, err := config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
		provider = p
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	return provider.LoadConfig()
}
