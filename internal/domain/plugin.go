package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
)

// DefaultListenAddress is where the server listens unless configured.
const DefaultListenAddress = "127.0.0.1:4567"

// ErrNotStarted is returned by Addr before the simulation has started.
var ErrNotStarted = errors.New("debug server not started")

// Config configures Startup.
type Config struct {
	// Address is the TCP address the server binds at start of simulation.
	Address string
	// SpillDir holds the recorder's sample file. Empty selects the system
	// temporary directory.
	SpillDir string
	Server   ServerConfig
}

// Plugin is the debug server attached to one simulator. It binds its
// listener when the simulation starts and serves clients until closed.
type Plugin struct {
	cfg        Config
	bridge     *adapter.Bridge
	events     *EventHub
	controller *Controller
	recorder   *Recorder
	server     *Server

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	addr    net.Addr
	err     error
	ready   chan struct{}
	done    chan struct{}
}

// Startup wires the debug server into sim. Nothing listens until the
// simulator reports the start of simulation.
func Startup(ctx context.Context, sim adapter.Simulator, cfg Config) (*Plugin, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultListenAddress
	}

	bridge := adapter.NewBridge(sim)
	bridge.Printf("vhpidbg plugin loaded")

	store, err := adapter.NewFileSampleStore(cfg.SpillDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create sample store: %w", err)
	}

	events := NewEventHub()
	controller := NewController(bridge, events)
	recorder := NewRecorder(bridge, store)

	ctx, cancel := context.WithCancel(ctx)

	p := &Plugin{
		cfg:        cfg,
		bridge:     bridge,
		events:     events,
		controller: controller,
		recorder:   recorder,
		server: NewServer(cfg.Server, Services{
			Design:     bridge,
			Controller: controller,
			Recorder:   recorder,
			Events:     events,
		}),
		ctx:    ctx,
		cancel: cancel,
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
	}

	registrations := []func() error{
		func() error { return controller.Attach(bridge) },
		func() error { return recorder.Attach(bridge) },
		func() error { return bridge.RegisterCallback(adapter.CbStartOfSimulation, p.handleStart) },
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			cancel()

			return nil, errors.Join(fmt.Errorf("failed to register callbacks: %w", err), recorder.Close())
		}
	}

	slog.Debug("Debug server registered", "address", cfg.Address, "mode", cfg.Server.Mode)

	return p, nil
}

func (p *Plugin) handleStart(data adapter.CallbackData) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}

	p.started = true

	ln, err := (&net.ListenConfig{}).Listen(p.ctx, "tcp", p.cfg.Address)
	if err != nil {
		p.err = fmt.Errorf("failed to listen on %s: %w", p.cfg.Address, err)
		p.bridge.Printf("vhpidbg: %v", p.err)
		slog.Error("Failed to start debug server", "address", p.cfg.Address, "error", err)

		close(p.ready)
		close(p.done)

		return
	}

	p.addr = ln.Addr()
	p.bridge.Printf("waiting for debugger on %s", p.addr)
	slog.Info("Debug server listening", "address", p.addr.String(), "time", data.Time)

	close(p.ready)

	go func() {
		defer close(p.done)

		if err := p.server.Serve(p.ctx, ln); err != nil {
			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
		}
	}()
}

// Ready is closed once the listener is bound or binding failed.
func (p *Plugin) Ready() <-chan struct{} {
	return p.ready
}

// Addr returns the bound listener address.
func (p *Plugin) Addr() (net.Addr, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.addr == nil {
		if p.err != nil {
			return nil, p.err
		}

		return nil, ErrNotStarted
	}

	return p.addr, nil
}

// Controller returns the simulation controller.
func (p *Plugin) Controller() *Controller {
	return p.controller
}

// Wait blocks until the server stops or ctx is done and returns the
// server's error.
func (p *Plugin) Wait(ctx context.Context) error {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()

	if !started {
		return ErrNotStarted
	}

	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

// Close stops the server, waits for its sessions and removes the sample
// store.
func (p *Plugin) Close() error {
	p.cancel()

	p.mu.Lock()
	started := p.started
	p.mu.Unlock()

	if started {
		<-p.done
	}

	return p.recorder.Close()
}
