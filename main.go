package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"

	"SlideInk/internal/config"
	"SlideInk/internal/ink"
	remote "SlideInk/internal/net"
	"SlideInk/internal/settings"
	"SlideInk/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Debug {
		ink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var penStore ui.PenStore
	pen := ink.DefaultPen()
	store, err := settings.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Printf("[SETTINGS] Pen settings will not be saved: %v", err)
	} else {
		defer store.Close()
		penStore = store
		if pen, err = store.LoadPen(ctx, pen); err != nil {
			log.Printf("[SETTINGS] %v", err)
		}
	}

	build := func() (*ui.Presenter, error) {
		slides, err := ui.LoadSlides(cfg.SlidesDir)
		if err != nil {
			return nil, err
		}
		p, err := ui.NewPresenter(slides, ink.Options{
			Space:       cfg.Space,
			Fit:         cfg.Fit,
			MinDistance: cfg.Decimation,
			EraseRadius: cfg.EraseRad,
			Pen:         pen,
			Accept:      cfg.DeviceFilter(),
		}, penStore, cfg.ExportDir)
		if err != nil {
			return nil, err
		}
		p.SetMode(cfg.Mode)
		return p, nil
	}

	ready := func(p *ui.Presenter) {
		if cfg.RemotePort == 0 {
			return
		}
		startRemote(ctx, cfg, p)
	}

	if err := ui.RunApp(build, ready); err != nil {
		log.Fatalf("Could not start presenter: %v", err)
	}
	stop()
}

// startRemote serves remote pen devices until ctx is done. Their events are
// applied on the UI goroutine.
func startRemote(ctx context.Context, cfg *config.Config, p *ui.Presenter) {
	srv := remote.NewServer(cfg.RemotePort, func(ev remote.Event) {
		fyne.Do(func() { p.Overlay.HandleRemote(ev) })
	})
	go func() {
		if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[REMOTE] %v", err)
		}
	}()
	log.Printf("[REMOTE] Pen devices can connect to %s", remote.PenURL(cfg.RemotePort))

	if !cfg.MDNS {
		return
	}
	adv, err := remote.Advertise(cfg.RemotePort)
	if err != nil {
		log.Printf("[REMOTE] mDNS advertisement failed: %v", err)
		return
	}
	go func() {
		<-ctx.Done()
		adv.Shutdown()
	}()
}
