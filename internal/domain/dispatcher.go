package domain

import (
	"errors"
	"log/slog"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

// SessionState is the protocol state of one connection.
type SessionState int

const (
	// StateAwaitingGreeting accepts only a greeting.
	StateAwaitingGreeting SessionState = iota
	// StateActive accepts commands.
	StateActive
	// StateClosed processes nothing.
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingGreeting:
		return "awaiting_greeting"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DesignQuery answers design hierarchy queries.
type DesignQuery interface {
	ListScopes(scope *m.Path) (m.Scopes, error)
	ListItems(scope *m.Path) (m.Items, error)
}

// Dispatcher turns each decoded frame of one session into exactly one reply.
// Commands are only accepted after a greeting; protocol errors are answered
// with an error message and leave the session open.
type Dispatcher struct {
	session    string
	state      SessionState
	design     DesignQuery
	controller *Controller
	recorder   *Recorder
	encoding   protocol.ValueEncoding
	log        *slog.Logger
}

// NewDispatcher creates a dispatcher for session.
func NewDispatcher(session string, design DesignQuery, controller *Controller, recorder *Recorder) *Dispatcher {
	return &Dispatcher{
		session:    session,
		state:      StateAwaitingGreeting,
		design:     design,
		controller: controller,
		recorder:   recorder,
		log:        slog.With("session", session),
	}
}

// State returns the current protocol state.
func (d *Dispatcher) State() SessionState {
	return d.state
}

// Encoding returns the item value encoding negotiated by the greeting.
func (d *Dispatcher) Encoding() protocol.ValueEncoding {
	return d.encoding
}

// Close moves the session to StateClosed and releases its references.
func (d *Dispatcher) Close() {
	if d.state == StateClosed {
		return
	}

	d.state = StateClosed
	d.recorder.ReleaseSession(d.session)
}

// FramingError answers a frame that could not be extracted.
func (d *Dispatcher) FramingError(err error) protocol.ServerMessage {
	d.log.Warn("Discarding malformed frame", "error", err)

	return protocol.Error{Kind: protocol.KindFramingError, Message: err.Error()}
}

// Dispatch handles one frame payload. It returns nil only once closed.
func (d *Dispatcher) Dispatch(payload []byte) protocol.ServerMessage {
	if d.state == StateClosed {
		return nil
	}

	if d.state == StateAwaitingGreeting && protocol.PeekType(payload) == protocol.TypeCommand {
		return d.reject(protocol.Errorf(protocol.KindSequencingError, "a greeting is required before commands"))
	}

	msg, err := protocol.DecodeClientMessage(payload)
	if err != nil {
		return d.reject(protocol.AsError(err, protocol.KindInvalidMessage))
	}

	switch req := msg.(type) {
	case protocol.GreetingRequest:
		return d.greet(req)
	case protocol.Command:
		if d.state != StateActive {
			return d.reject(protocol.Errorf(protocol.KindSequencingError, "a greeting is required before commands"))
		}

		d.log.Debug("Dispatching command", "command", req.CommandName())

		reply := d.command(req)
		if perr, ok := reply.(protocol.Error); ok {
			d.log.Warn("Command failed", "command", req.CommandName(), "error", perr)
		}

		return reply
	default:
		return d.reject(protocol.Errorf(protocol.KindInvalidMessage, "unexpected %s message", msg.MessageType()))
	}
}

func (d *Dispatcher) reject(err *protocol.Error) protocol.ServerMessage {
	d.log.Warn("Rejecting message", "kind", err.Kind, "error", err.Message)

	return *err
}

func (d *Dispatcher) greet(req protocol.GreetingRequest) protocol.ServerMessage {
	if req.Version != protocol.Version {
		return d.reject(protocol.Errorf(protocol.KindInvalidArgument,
			"protocol version %d is not supported, expected %d", req.Version, protocol.Version))
	}

	greeting := protocol.ServerGreeting()

	if d.state == StateAwaitingGreeting {
		d.encoding = greeting.Features.ItemValuesEncoding[0]
		d.state = StateActive
		d.log.Info("Session greeted", "version", req.Version, "encoding", d.encoding)
	}

	return greeting
}

func (d *Dispatcher) command(cmd protocol.Command) protocol.ServerMessage {
	switch c := cmd.(type) {
	case protocol.ListScopes:
		return d.listScopes(c)
	case protocol.ListItems:
		return d.listItems(c)
	case protocol.GetSimulationStatus:
		return protocol.GetSimulationStatusResponse{SimulationStatus: d.controller.Status()}
	case protocol.RunSimulation:
		return d.runSimulation(c)
	case protocol.PauseSimulation:
		return d.pauseSimulation()
	case protocol.ReferenceItems:
		return d.referenceItems(c)
	case protocol.QueryInterval:
		return d.queryInterval(c)
	default:
		return *protocol.Errorf(protocol.KindUnsupportedCommand, "command %q is not supported", cmd.CommandName())
	}
}

func (d *Dispatcher) listScopes(c protocol.ListScopes) protocol.ServerMessage {
	scopes, err := d.design.ListScopes(c.Scope)
	if err == nil {
		return protocol.ListScopesResponse{Scopes: scopes}
	}

	if errors.Is(err, adapter.ErrUnknownScope) {
		return *protocol.Errorf(protocol.KindInvalidScope, "%v", err)
	}

	if len(scopes) > 1 {
		d.log.Warn("Answering list_scopes with a partial result", "error", err)

		return protocol.ListScopesResponse{Scopes: scopes}
	}

	return *protocol.Errorf(protocol.KindSimulatorError, "list scopes: %v", err)
}

func (d *Dispatcher) listItems(c protocol.ListItems) protocol.ServerMessage {
	items, err := d.design.ListItems(c.Scope)
	if err == nil {
		return protocol.ListItemsResponse{Items: items}
	}

	if len(items) > 0 {
		d.log.Warn("Answering list_items with a partial result", "error", err)

		return protocol.ListItemsResponse{Items: items}
	}

	return *protocol.Errorf(protocol.KindSimulatorError, "list items: %v", err)
}

func (d *Dispatcher) runSimulation(c protocol.RunSimulation) protocol.ServerMessage {
	if len(c.UntilDiagnostics) > 0 {
		return *protocol.Errorf(protocol.KindInvalidArgument, "running until diagnostics is not supported")
	}

	d.recorder.SetSampling(d.session, c.SampleItemValues)

	if err := d.controller.Run(c.UntilTime); err != nil {
		return *protocol.Errorf(protocol.KindSimulatorError, "%v", err)
	}

	return protocol.RunSimulationResponse{}
}

func (d *Dispatcher) pauseSimulation() protocol.ServerMessage {
	at, err := d.controller.Pause()
	if err != nil {
		return *protocol.Errorf(protocol.KindSimulatorError, "%v", err)
	}

	return protocol.PauseSimulationResponse{Time: at}
}

func (d *Dispatcher) referenceItems(c protocol.ReferenceItems) protocol.ServerMessage {
	if c.Reference == "" {
		return *protocol.Errorf(protocol.KindInvalidArgument, "reference name must not be empty")
	}

	err := d.recorder.Reference(d.session, c.Reference, c.Items)

	switch {
	case err == nil:
		return protocol.ReferenceItemsResponse{}
	case errors.Is(err, adapter.ErrUnknownItem), errors.Is(err, adapter.ErrInvalidRow):
		return *protocol.Errorf(protocol.KindInvalidItem, "%v", err)
	default:
		return *protocol.Errorf(protocol.KindSimulatorError, "%v", err)
	}
}

func (d *Dispatcher) queryInterval(c protocol.QueryInterval) protocol.ServerMessage {
	begin, end := c.Interval[0], c.Interval[1]
	if end.Before(begin) {
		return *protocol.Errorf(protocol.KindInvalidArgument, "interval ends at %s before it begins at %s", end, begin)
	}

	if c.Diagnostics {
		return *protocol.Errorf(protocol.KindInvalidArgument, "diagnostics are not supported")
	}

	enc := d.encoding
	if c.ItemValuesEncoding != nil {
		enc = *c.ItemValuesEncoding
	}

	if !enc.IsSupported() {
		return *protocol.Errorf(protocol.KindUnsupportedEncoding, "item values encoding %q is not supported", enc)
	}

	samples, err := d.recorder.Query(d.session, c.Items, begin, end, c.Collapse, enc)
	if err != nil {
		if errors.Is(err, ErrUnknownReference) {
			return *protocol.Errorf(protocol.KindInvalidReference, "%v", err)
		}

		return *protocol.AsError(err, protocol.KindSimulatorError)
	}

	return protocol.QueryIntervalResponse{Samples: samples}
}
