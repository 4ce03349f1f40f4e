package main

import (
	"context"
	"encoding/hex"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/weatherlamp/internal/app"
	"github.com/coreman2200/weatherlamp/internal/button"
	"github.com/coreman2200/weatherlamp/internal/config"
	diag "github.com/coreman2200/weatherlamp/internal/diagnostics"
	"github.com/coreman2200/weatherlamp/internal/lamp"
	"github.com/coreman2200/weatherlamp/internal/led"
	"github.com/coreman2200/weatherlamp/internal/weather"
	"github.com/coreman2200/weatherlamp/internal/ws"
)

// Overridden at build time with -ldflags "-X main.buildDate=...".
var buildDate = "unknown"

func main() {
	var (
		settingsPath = flag.String("settings", "lamp.json", "path to provisioning-owned lamp settings (JSON)")
		hardwarePath = flag.String("config", "config.yaml", "path to hardware config")
		driver       = flag.String("driver", "", "driver override: spi | sim")
		addr         = flag.String("addr", "", "listen address override")
		slots        = flag.Int("slots", 0, "slot count override (1-255)")
		simOnly      = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		debug        = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if !*debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Config fallbacks happen before the websocket surface exists;
	// queue them and push once it is up so /diag subscribers see them.
	var startupDiags []diag.Diagnostic

	// ---- Lamp settings (JSON, provisioning-owned) ----
	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *settingsPath).Msg("settings load failed; using defaults")
		startupDiags = append(startupDiags, diag.ConfigFallback("settings", *settingsPath, err))
		settings = config.DefaultSettings()
	}
	if *slots > 0 && *slots <= 255 {
		settings.Slots = *slots
	}

	// ---- Hardware config (YAML) ----
	hw, err := config.LoadHardware(*hardwarePath)
	if err != nil {
		log.Warn().Err(err).Str("path", *hardwarePath).Msg("hardware config load failed; using defaults")
		startupDiags = append(startupDiags, diag.ConfigFallback("hardware", *hardwarePath, err))
		hw = config.DefaultHardware()
	}
	if *driver != "" {
		hw.Driver = *driver
	}
	if *simOnly {
		hw.Driver = "sim"
	}
	if *addr != "" {
		hw.Addr = *addr
	}

	format, err := weather.ParseFormat(hw.Format)
	if err != nil {
		log.Warn().Err(err).Msg("bad payload format in config; using palette stops")
	}

	// ---- Hardware init ----
	needHW := hw.Driver == "spi" || hw.ButtonPin != ""
	if needHW {
		if _, err := host.Init(); err != nil {
			log.Warn().Err(err).Msg("periph host init failed; falling back to sim")
			hw.Driver = "sim"
			hw.ButtonPin = ""
		}
	}

	var drv led.Driver
	switch hw.Driver {
	case "spi":
		d, err := led.NewNRZ(hw.SPIPort, settings.Slots)
		if err != nil {
			log.Warn().Err(err).Str("port", hw.SPIPort).Msg("SPI init failed; falling back to sim")
			drv = led.NewSim()
		} else {
			drv = d
		}
	case "sim":
		drv = led.NewSim()
	default:
		log.Warn().Str("driver", hw.Driver).Msg("unknown driver; using sim")
		drv = led.NewSim()
	}

	var deb *button.Debouncer
	if hw.ButtonPin != "" {
		pin, err := button.OpenPin(hw.ButtonPin)
		if err != nil {
			log.Warn().Err(err).Str("pin", hw.ButtonPin).Msg("button pin unavailable; continuing without")
		} else {
			deb = button.NewDebouncer(pin)
			log.Info().Str("pin", hw.ButtonPin).Msg("button enabled")
		}
	}

	// ---- Controller + fetch pipeline ----
	ctrl := lamp.NewController(lamp.Options{
		Slots:      settings.Slots,
		Brightness: hw.Brightness,
		Motion:     hw.Motion,
		Cooling:    hw.Cooling,
		Sparking:   hw.Sparking,
		Reverse:    hw.Reverse,
		Seed:       time.Now().UnixNano(),
	}, log.Logger)

	client := weather.NewClient(settings.HTTPURL, time.Duration(hw.FetchTimeoutMS)*time.Millisecond)
	client.Latitude = settings.Latitude
	client.Longitude = settings.Longitude
	client.ColorMap = settings.ColorMap
	client.Extra = settings.Extra
	client.Interval = settings.Interval
	client.Slots = settings.Slots
	client.ClientID = clientID()
	client.BuildDate = buildDate
	client.ButtonCount = ctrl.Presses

	sched := weather.NewScheduler(time.Duration(settings.Interval) * time.Minute)

	core := app.New(ctrl, sched, client, drv, settings.Slots, hw.FPS, log.Logger)
	core.Format = format
	core.Deb = deb

	// ---- Websocket surface ----
	sock := ws.NewState(settings.Slots)
	sock.Presses = ctrl.Presses
	core.Sock = sock
	for _, d := range startupDiags {
		sock.PushDiag(d)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", sock.HandleFramesWS)
	mux.HandleFunc("/control", sock.HandleControlWS)
	mux.HandleFunc("/diag", sock.HandleDiagWS)
	mux.HandleFunc("/health", sock.HandleHealth)

	srv := &http.Server{
		Addr:         hw.Addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go core.Run(ctx)
	go sock.RunHeartbeat(ctx, 30*time.Second)
	go func() {
		log.Info().Str("addr", hw.Addr).Str("driver", hw.Driver).Msg("control server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("control server crashed")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	_ = srv.Close()
	_ = drv.Close()
}

// clientID returns the primary interface MAC as uppercase hex, the same
// identity the firmware sent. Falls back to zeros on headless boxes.
func clientID() string {
	ifaces, err := net.Interfaces()
	if err == nil {
		for _, ifc := range ifaces {
			if ifc.Flags&net.FlagLoopback != 0 || len(ifc.HardwareAddr) != 6 {
				continue
			}
			return strings.ToUpper(hex.EncodeToString(ifc.HardwareAddr))
		}
	}
	return "000000000000"
}
