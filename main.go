package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/gomidi/midi/v2"
)

// -------------------- Logger --------------------

// logger is the package-wide structured logger. Safe to use before initLogger
// is called; defaults to slog.Default().
var logger = slog.Default()

// initLogger configures the shared slog logger and calls slog.SetDefault so
// the stdlib log package also routes through the same handler.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug, // include file:line in debug mode
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

// -------------------- Main --------------------

func main() {
	var (
		configPath = flag.String("config", "", "config file path (default ~/.config/midi-cc-to-hui/config.json)")
		list       = flag.Bool("list", false, "list available MIDI ports and exit")
		debug      = flag.Bool("debug", false, "enable debug logging (adds source location)")

		inPort    = flag.String("in", "", "fader input MIDI port (overrides config)")
		outPort   = flag.String("out", "", "HUI output MIDI port (overrides config)")
		navPort   = flag.String("nav", "", `navigation input MIDI port (overrides config; "none" disables)`)
		serialDev = flag.String("serial", "", "read fader input from this serial device instead of a MIDI port")
		baud      = flag.Int("baud", 0, "serial baud rate (overrides config)")

		releaseMs    = flag.Int("release-ms", 0, "fader release timeout in ms (overrides config)")
		pollMs       = flag.Int("poll-ms", 0, "poll interval in ms (overrides config)")
		channelKeyed = flag.Bool("channel-keyed", false, "map MIDI channels 1-8 to zones instead of controller numbers")
		restrict     = flag.Bool("restrict-channels", false, "ignore fader events outside MIDI channels 1-8")
	)
	flag.Parse()

	initLogger(*debug)
	defer midi.CloseDriver()

	if *list {
		listPorts()
		return
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	if *inPort != "" {
		cfg.InputPort = *inPort
	}
	if *outPort != "" {
		cfg.OutputPort = *outPort
	}
	if *navPort != "" {
		cfg.NavPort = *navPort
	}
	if cfg.NavPort == "none" {
		cfg.NavPort = ""
	}
	if *serialDev != "" {
		cfg.SerialDevice = *serialDev
	}
	if *baud > 0 {
		cfg.SerialBaud = *baud
	}
	if *releaseMs > 0 {
		cfg.ReleaseAfterMs = *releaseMs
	}
	if *pollMs > 0 {
		cfg.PollIntervalMs = *pollMs
	}
	if *channelKeyed {
		cfg.ChannelKeyed = true
	}
	if *restrict {
		cfg.RestrictChannels = true
	}

	mapper, err := cfg.Mapper()
	if err != nil {
		logger.Error("invalid zone mapping", "err", err)
		os.Exit(1)
	}
	nav, err := cfg.Nav()
	if err != nil {
		logger.Error("invalid navigation mapping", "err", err)
		os.Exit(1)
	}

	logger.Info("cc-to-hui starting",
		"input", cfg.InputPort,
		"serial", cfg.SerialDevice,
		"nav_input", cfg.NavPort,
		"output", cfg.OutputPort,
		"release_ms", cfg.ReleaseAfterMs,
		"poll_ms", cfg.PollIntervalMs,
		"channel_keyed", cfg.ChannelKeyed,
		"restrict_channels", cfg.RestrictChannels,
		"nav_on_nonzero", cfg.NavOnNonzero,
	)

	send, closeOut, err := openHUIOutput(cfg.OutputPort)
	if err != nil {
		logger.Error("output open failed", "err", err)
		os.Exit(1)
	}
	defer closeOut()

	var faderEvents <-chan CCEvent
	if cfg.SerialDevice != "" {
		src, err := OpenSerialSource(cfg.SerialDevice, cfg.SerialBaud)
		if err != nil {
			logger.Error("serial input open failed", "err", err)
			os.Exit(1)
		}
		defer src.Close()
		faderEvents = src.Events()
	} else {
		events, stop, err := openCCInput(cfg.InputPort)
		if err != nil {
			logger.Error("fader input open failed", "err", err)
			os.Exit(1)
		}
		defer stop()
		faderEvents = events
	}

	var navEvents <-chan CCEvent
	if cfg.NavPort != "" {
		events, stop, err := openCCInput(cfg.NavPort)
		if err != nil {
			logger.Error("nav input open failed", "err", err)
			os.Exit(1)
		}
		defer stop()
		navEvents = events
	}

	engine := NewEngine(mapper, nav, cfg.NavOnNonzero, cfg.ReleaseAfter(), cfg.PollInterval(), send)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running — translating CC to HUI (ctrl-c to stop)")
	engine.Run(ctx, faderEvents, navEvents)
	logger.Info("stopped")
}
