package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

// SimulationControl is the part of the simulator the controller drives.
type SimulationControl interface {
	Now() m.TimeStamp
	Control(cmd adapter.ControlCommand, until *m.TimeStamp) error
}

// CallbackRegistrar registers simulator callbacks.
type CallbackRegistrar interface {
	RegisterCallback(reason adapter.CallbackReason, fn adapter.CallbackFunc) error
}

// Controller owns the run state of the simulation. Every real state
// transition publishes exactly one event; repeated requests in the same state
// succeed without publishing anything.
type Controller struct {
	mu     sync.Mutex
	sim    SimulationControl
	events Publisher
	state  m.RunState
	// until is the bound of the latest run; a stop short of it belongs to an
	// earlier run.
	until *m.TimeStamp
}

// NewController creates a controller in the paused state.
func NewController(sim SimulationControl, events Publisher) *Controller {
	return &Controller{sim: sim, events: events, state: m.StatePaused}
}

// Attach registers the callbacks that report simulator-side transitions.
func (c *Controller) Attach(reg CallbackRegistrar) error {
	if err := reg.RegisterCallback(adapter.CbStopped, c.HandleStopped); err != nil {
		return err
	}

	return reg.RegisterCallback(adapter.CbEndOfSimulation, c.HandleEnd)
}

// Status reads the state and the simulator's current time.
func (c *Controller) Status() m.SimulationStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	return m.SimulationStatus{Status: c.state, LatestTime: c.sim.Now()}
}

// Run resumes the simulation and returns without waiting for it. Completion
// is reported by a simulation_paused or simulation_finished event. Running
// an already running simulation only updates its time bound.
func (c *Controller) Run(until *m.TimeStamp) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case m.StateFinished:
		slog.Debug("Run requested after simulation finished")

		return nil
	case m.StateRunning:
		if err := c.sim.Control(adapter.ControlRun, until); err != nil {
			return fmt.Errorf("update run bound: %w", err)
		}

		c.until = copyTime(until)

		return nil
	}

	c.state = m.StateRunning
	c.until = copyTime(until)

	if err := c.sim.Control(adapter.ControlRun, until); err != nil {
		c.state = m.StatePaused
		c.until = nil

		if errors.Is(err, adapter.ErrFinished) {
			c.finishLocked(c.sim.Now())

			return nil
		}

		return fmt.Errorf("run simulation: %w", err)
	}

	slog.Debug("Simulation running", "until", until)

	return nil
}

// Pause stops a running simulation and returns the time it stopped at.
// Pausing a simulation that is not running returns the current time.
func (c *Controller) Pause() (m.TimeStamp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != m.StateRunning {
		return c.sim.Now(), nil
	}

	if err := c.sim.Control(adapter.ControlStop, nil); err != nil {
		return c.sim.Now(), fmt.Errorf("pause simulation: %w", err)
	}

	c.state = m.StatePaused
	c.until = nil
	at := c.sim.Now()

	slog.Debug("Simulation paused on request", "time", at)
	c.events.Publish(protocol.SimulationPaused{Time: at, Cause: protocol.CausePauseRequest})

	return at, nil
}

// HandleStopped handles a run reaching its time bound.
func (c *Controller) HandleStopped(data adapter.CallbackData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != m.StateRunning {
		return
	}

	if c.until == nil || data.Time.Before(*c.until) {
		slog.Debug("Ignoring stop from a superseded run", "time", data.Time, "until", c.until)

		return
	}

	c.state = m.StatePaused
	c.until = nil

	slog.Debug("Simulation reached its time bound", "time", data.Time)
	c.events.Publish(protocol.SimulationPaused{Time: data.Time, Cause: protocol.CauseUntilTime})
}

// HandleEnd handles the end of the simulation.
func (c *Controller) HandleEnd(data adapter.CallbackData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.finishLocked(data.Time)
}

func (c *Controller) finishLocked(at m.TimeStamp) {
	if c.state == m.StateFinished {
		return
	}

	c.state = m.StateFinished

	slog.Info("Simulation finished", "time", at)
	c.events.Publish(protocol.SimulationFinished{Time: at})
}

func copyTime(t *m.TimeStamp) *m.TimeStamp {
	if t == nil {
		return nil
	}

	v := *t

	return &v
}
