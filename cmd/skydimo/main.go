package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/boombuster2000/SkydimoAmbientLights/internal/config"
	"github.com/boombuster2000/SkydimoAmbientLights/internal/controller"
	"github.com/boombuster2000/SkydimoAmbientLights/internal/effect"
	"github.com/boombuster2000/SkydimoAmbientLights/internal/preview"
	"github.com/boombuster2000/SkydimoAmbientLights/internal/transport"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		port       = flag.String("port", "", "serial device (e.g. /dev/ttyUSB0, COM3)")
		baud       = flag.Int("baud", 0, "serial baud rate")
		leds       = flag.Int("leds", 0, "number of LEDs on the strip")
		fps        = flag.Int("fps", 0, "frames per second")
		effectName = flag.String("effect", "", "effect: solid | gradient | rainbow")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		sim        = flag.Bool("sim", false, "simulate output (no serial device)")
		addr       = flag.String("addr", "", "preview listen address (enables preview)")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if !*debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// ---- Config: file over defaults, flags over file ----
	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = c
	}
	if *port != "" {
		cfg.Serial.Port = *port
	}
	if *baud > 0 {
		cfg.Serial.Baud = *baud
	}
	if *leds > 0 {
		cfg.LedCount = *leds
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *effectName != "" {
		cfg.Effect.Name = *effectName
	}
	if *addr != "" {
		cfg.Preview.Enabled = true
		cfg.Preview.Addr = *addr
	}

	// ---- Sink selection ----
	var sink transport.Sink
	if *sim {
		sink = transport.NewSim()
	} else {
		sink = transport.NewSerial(transport.SerialConfig{
			Port: cfg.Serial.Port,
			Baud: cfg.Serial.Baud,
		})
	}

	ctrl, err := controller.New(sink, cfg.LedCount, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Int("leds", cfg.LedCount).Msg("controller init failed")
	}
	if err := ctrl.Open(); err != nil {
		log.Warn().Err(err).
			Str("port", cfg.Serial.Port).
			Msg("serial open failed; falling back to simulation")
		sink = transport.NewSim()
		ctrl, err = controller.New(sink, cfg.LedCount, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("sim controller init failed")
		}
		if err := ctrl.Open(); err != nil {
			log.Fatal().Err(err).Msg("sim sink open failed")
		}
	}
	defer func() {
		_ = ctrl.Clear()
		_ = ctrl.Close()
	}()

	// ---- Effect ----
	reg := effect.DefaultRegistry()
	eff, err := reg.Build(cfg.Effect)
	if err != nil {
		log.Fatal().Err(err).Strs("known", reg.List()).Msg("effect init failed")
	}
	runner := effect.NewRunner(ctrl, eff, cfg.FPS, log.Logger)

	// ---- Preview server ----
	var srv *http.Server
	if cfg.Preview.Enabled {
		pv := preview.NewServer(cfg.LedCount, log.Logger)
		ctrl.SetFrameObserver(pv.ObserveFrame)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", pv.HandleFrames)
		mux.HandleFunc("/health", pv.HandleHealth)
		srv = &http.Server{
			Addr:         cfg.Preview.Addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.Preview.Addr).Msg("preview server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("preview server crashed")
			}
		}()
	}

	// ---- Config hot reload: effect and fps only; led count or serial
	// changes need a restart since the frame is sized at construction ----
	stopWatch, err := config.Watch(*configPath, func() {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Warn().Err(err).Msg("config reload failed")
			return
		}
		if c.LedCount != cfg.LedCount || c.Serial != cfg.Serial {
			log.Warn().Msg("led_count/serial changed; restart to apply")
		}
		eff, err := reg.Build(c.Effect)
		if err != nil {
			log.Warn().Err(err).Msg("config reload: bad effect")
			return
		}
		runner.SetEffect(eff)
	})
	if err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	} else {
		defer func() { _ = stopWatch() }()
	}

	// ---- Run until signalled ----
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	<-done
	if srv != nil {
		_ = srv.Close()
	}
}
