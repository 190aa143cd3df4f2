// Package app wires the analyzer together and drives its run modes:
// single-shot, continuous monitoring, and the interactive console shell.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquamind/aquamind/internal/analysis"
	"github.com/aquamind/aquamind/internal/log"
	"github.com/aquamind/aquamind/internal/rules"
	"github.com/aquamind/aquamind/internal/sensors"
	"github.com/aquamind/aquamind/internal/transport"
	"github.com/aquamind/aquamind/internal/types"
	"go.uber.org/zap"
)

// Mode selects the run mode.
type Mode int

const (
	ModeInteractive Mode = iota
	ModeSingle
	ModeContinuous
)

// App is the assembled analyzer.
type App struct {
	engine    *analysis.Engine
	transport transport.Transport
	logger    *zap.SugaredLogger
}

// New creates an application instance.
func New(engine *analysis.Engine, link transport.Transport, logger *zap.SugaredLogger) *App {
	return &App{engine: engine, transport: link, logger: logger}
}

// Run executes the selected mode and blocks until it completes or a
// shutdown signal arrives.
func (a *App) Run(ctx context.Context, mode Mode, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			log.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	switch mode {
	case ModeSingle:
		record := a.engine.AnalyzeOnce()
		a.printSummary(record)
		a.send(record)
		return nil
	case ModeContinuous:
		return a.runContinuous(ctx, interval)
	default:
		return a.runInteractive(ctx)
	}
}

func (a *App) runContinuous(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	log.Infof("continuous monitoring every %s", interval)

	for {
		record := a.engine.AnalyzeOnce()
		a.printSummary(record)
		a.send(record)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func (a *App) runInteractive(ctx context.Context) error {
	fmt.Println("Commands:")
	fmt.Println("  [1] Analyze water")
	fmt.Println("  [2] Send to app")
	fmt.Println("  [3] Change profile")
	fmt.Println("  [4] Change scenario (simulation only)")
	fmt.Println("  [5] Show last result")
	fmt.Println("  [q] Quit")

	lines := readLines(ctx)
	for {
		fmt.Print("> ")
		var cmd string
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			cmd = line
		}

		switch cmd {
		case "1":
			record := a.engine.AnalyzeOnce()
			a.printSummary(record)
		case "2":
			if record := a.engine.LastRecord(); record != nil {
				a.send(record)
			} else {
				fmt.Println("No analysis yet. Run analysis first.")
			}
		case "3":
			fmt.Printf("Available profiles: %v\n", a.engine.Profiles())
			fmt.Print("Enter profile name: ")
			name, ok := <-lines
			if !ok {
				return nil
			}
			if !a.engine.SetProfile(name) {
				fmt.Printf("Profile %q not found.\n", name)
			}
		case "4":
			fmt.Printf("Available scenarios: %v\n", sensors.Scenarios())
			fmt.Print("Enter scenario: ")
			name, ok := <-lines
			if !ok {
				return nil
			}
			if err := a.setScenario(name); err != nil {
				fmt.Println(err)
			}
		case "5":
			a.showLast()
		case "q", "quit", "exit":
			return nil
		default:
			fmt.Println("Unknown command. Try 1, 2, 3, 4, 5, or q.")
		}
	}
}

func (a *App) setScenario(name string) error {
	return a.engine.SetScenario(name)
}

func (a *App) send(record *types.AnalysisRecord) {
	if !a.transport.Connected() {
		if err := a.transport.Connect(); err != nil {
			a.logger.Errorf("companion link connect failed: %v", err)
			return
		}
	}
	if err := a.transport.Send(record); err != nil {
		// Non-fatal: the record stays available and no retry is attempted.
		a.logger.Errorf("companion link send failed: %v", err)
	}
}

func (a *App) printSummary(record *types.AnalysisRecord) {
	advice := rules.AdviceFor(record.Verdict)

	fmt.Println()
	fmt.Printf("RESULT: %s (%s)\n", record.Verdict, advice.Short)
	fmt.Printf("  TDS:         %.1f ppm\n", record.Readings.TDSPPM)
	fmt.Printf("  Turbidity:   %.2f NTU\n", record.Readings.TurbidityNTU)
	fmt.Printf("  Temperature: %.1f C\n", record.Readings.TemperatureC)
	fmt.Printf("  Stability:   %.1f%%\n", record.Stability.Overall)
	fmt.Printf("  Jal-Score:   %.1f\n", record.JalScore)
	fmt.Printf("  %s\n", record.VerdictMessage)

	if len(record.Rules.Actions) > 0 {
		fmt.Println("  Actions:")
		for i, action := range record.Rules.Actions {
			if i >= 3 {
				break
			}
			fmt.Printf("    %d. %s\n", i+1, action)
		}
	}

	if record.SeasonalAlert != "" {
		fmt.Printf("  Seasonal alert: %s\n", record.SeasonalAlert)
	}
	fmt.Println()
}

func (a *App) showLast() {
	record := a.engine.LastRecord()
	if record == nil {
		fmt.Println("No analysis yet. Run analysis first.")
		return
	}
	data, err := jsonIndent(record)
	if err != nil {
		a.logger.Errorf("could not render record: %v", err)
		return
	}
	fmt.Println(string(data))
}

// Close releases the companion link.
func (a *App) Close() {
	if err := a.transport.Close(); err != nil {
		a.logger.Errorf("companion link close failed: %v", err)
	}
}
