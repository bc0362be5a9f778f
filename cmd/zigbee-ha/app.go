package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zigbee-ha-profile/internal/devicedb"
	"zigbee-ha-profile/internal/dispatch"
	"zigbee-ha-profile/internal/events"
	"zigbee-ha-profile/internal/profile"
	"zigbee-ha-profile/internal/script"
	"zigbee-ha-profile/internal/store"
	"zigbee-ha-profile/internal/zcl"
	"zigbee-ha-profile/internal/zcl/clusters"
)

// transitionTick is one CVC time unit (a tenth of a second).
const transitionTick = 100 * time.Millisecond

// app holds the wired components of a running daemon.
type app struct {
	registry *zcl.Registry
	library  *devicedb.Library
	store    store.Store
	bus      *events.Bus
	router   *dispatch.Router
	devices  []*profile.DeviceContext
	logger   *slog.Logger

	surfaces []surface
}

// surface is a running outer interface of the daemon.
type surface struct {
	name string
	stop interface{ Stop() }
}

func (a *app) addSurface(name string, s interface{ Stop() }) {
	a.surfaces = append(a.surfaces, surface{name: name, stop: s})
	a.logger.Info("surface started", "surface", name, "devices", len(a.devices))
}

// stopSurfaces stops the surfaces in reverse start order.
func (a *app) stopSurfaces() {
	for i := len(a.surfaces) - 1; i >= 0; i-- {
		s := a.surfaces[i]
		s.stop.Stop()
		a.logger.Info("surface stopped", "surface", s.name)
	}
	a.surfaces = nil
}

func openStore(cfg *Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "bolt":
		return store.NewBoltStore(cfg.Store.Path)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// setup loads the cluster catalogue and template files, builds every
// configured device and registers it with the router.
func setup(ctx context.Context, cfg *Config, logger *slog.Logger) (*app, error) {
	registry := zcl.NewRegistry(logger)
	clusters.RegisterStandard(registry)

	library := devicedb.NewLibrary(logger)
	fromFiles, err := library.LoadDir(cfg.TemplatesDir, registry)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	fromScripts, err := script.NewLoader(logger).LoadDir(ctx, cfg.TemplatesDir, library, registry)
	if err != nil {
		return nil, fmt.Errorf("load template scripts: %w", err)
	}
	logger.Info("ZCL registry initialized", "clusters", registry.Len(), "templates", library.Len(),
		"from_files", fromFiles, "from_scripts", fromScripts)

	s, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	bus := events.NewBus(logger)
	a := &app{
		registry: registry,
		library:  library,
		store:    s,
		bus:      bus,
		router:   dispatch.NewRouter(logger, bus, registry),
		logger:   logger,
	}
	for _, spec := range cfg.Devices {
		d, err := library.BuildDevice(spec, registry, s)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("device %q: %w", spec.Name, err)
		}
		if err := profile.Register(a.router, d); err != nil {
			s.Close()
			return nil, fmt.Errorf("register device %q: %w", spec.Name, err)
		}
		if err := a.saveSnapshot(d); err != nil {
			s.Close()
			return nil, err
		}
		a.devices = append(a.devices, d)
	}
	return a, nil
}

// saveSnapshot persists the descriptor snapshot of d and reports whether
// the device image changed since the last run.
func (a *app) saveSnapshot(d *profile.DeviceContext) error {
	data, err := profile.EncodeSnapshot(d)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", d.Name, err)
	}
	fp := profile.Fingerprint(data)

	prev, err := a.store.GetSnapshot(d.Name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		a.logger.Info("new device image", "device", d.Name, "fingerprint", fp)
	case err != nil:
		return fmt.Errorf("load snapshot %q: %w", d.Name, err)
	case prev.Fingerprint == fp:
		a.logger.Debug("device image unchanged", "device", d.Name, "fingerprint", fp)
		return nil
	default:
		a.logger.Warn("device image changed", "device", d.Name, "previous", prev.Fingerprint, "fingerprint", fp)
	}

	return a.store.SaveSnapshot(&store.SnapshotRecord{
		Name:        d.Name,
		Handle:      d.Handle.String(),
		Fingerprint: fp,
		Data:        data,
		UpdatedAt:   time.Now(),
	})
}

// runTransitions advances CVC transitions by one unit per tick until ctx is
// done.
func (a *app) runTransitions(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.router.Tick(1)
		}
	}
}
