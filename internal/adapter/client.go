package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
	"vhpidbg.dev/pkg/vhpidbg/internal/wire"
)

// DefaultDialTimeout bounds the retries of Dial.
const DefaultDialTimeout = 5 * time.Second

const readChunkSize = 4096

// ErrUnexpectedMessage is returned when the server answers with the wrong shape.
var ErrUnexpectedMessage = errors.New("unexpected message")

// FrameObserver sees every payload the client sends or receives.
type FrameObserver func(outbound bool, payload []byte)

// DialOptions configures Dial.
type DialOptions struct {
	// Timeout bounds the total time spent retrying. Zero selects DefaultDialTimeout.
	Timeout time.Duration
	// MaxFrameSize is passed to the frame buffer.
	MaxFrameSize int
	// Observer, when set, is called for every frame.
	Observer FrameObserver
}

// Client speaks the debug protocol to a server. Calls are serialized.
type Client struct {
	mu       sync.Mutex
	conn     net.Conn
	frames   *wire.FrameBuffer
	pending  []wire.Frame
	events   []protocol.Event
	observer FrameObserver
}

// Dial connects to address, retrying with exponential backoff until the
// timeout elapses or ctx is done.
func Dial(ctx context.Context, address string, opts DialOptions) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = timeout

	var dialer net.Dialer

	conn, err := backoff.RetryNotifyWithData(
		func() (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp", address)
		},
		backoff.WithContext(policy, ctx),
		func(err error, wait time.Duration) {
			slog.Debug("Dial failed, retrying", "address", address, "wait", wait, "error", err)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	return NewClient(conn, opts), nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, opts DialOptions) *Client {
	return &Client{
		conn:     conn,
		frames:   wire.NewFrameBuffer(opts.MaxFrameSize),
		observer: opts.Observer,
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Greet performs the greeting exchange.
func (c *Client) Greet(ctx context.Context) (protocol.GreetingResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(protocol.GreetingRequest{Version: protocol.Version}); err != nil {
		return protocol.GreetingResponse{}, err
	}

	msg, err := c.reply(ctx)
	if err != nil {
		return protocol.GreetingResponse{}, err
	}

	greeting, ok := msg.(protocol.GreetingResponse)
	if !ok {
		return protocol.GreetingResponse{}, fmt.Errorf("%w: %s instead of greeting", ErrUnexpectedMessage, msg.MessageType())
	}

	return greeting, nil
}

// Call sends a command and waits for its response. An error message from
// the server is returned as a *protocol.Error. Events received meanwhile are
// queued for Events.
func (c *Client) Call(ctx context.Context, cmd protocol.Command) (protocol.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.send(cmd); err != nil {
		return nil, err
	}

	msg, err := c.reply(ctx)
	if err != nil {
		return nil, err
	}

	resp, ok := msg.(protocol.Response)
	if !ok {
		return nil, fmt.Errorf("%w: %s instead of response", ErrUnexpectedMessage, msg.MessageType())
	}

	if resp.CommandName() != cmd.CommandName() {
		return nil, fmt.Errorf("%w: response to %s while waiting for %s",
			ErrUnexpectedMessage, resp.CommandName(), cmd.CommandName())
	}

	return resp, nil
}

// Events drains the events queued so far.
func (c *Client) Events() []protocol.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := c.events
	c.events = nil

	return events
}

// WaitEvent returns the next event, reading from the connection if none is
// queued.
func (c *Client) WaitEvent(ctx context.Context) (protocol.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.events) == 0 {
		msg, err := c.read(ctx)
		if err != nil {
			return nil, err
		}

		event, ok := msg.(protocol.Event)
		if !ok {
			return nil, fmt.Errorf("%w: %s while waiting for an event", ErrUnexpectedMessage, msg.MessageType())
		}

		c.events = append(c.events, event)
	}

	event := c.events[0]
	c.events = c.events[1:]

	return event, nil
}

// ListScopes lists the children of scope.
func (c *Client) ListScopes(ctx context.Context, scope *m.Path) (m.Scopes, error) {
	resp, err := call[protocol.ListScopesResponse](ctx, c, protocol.ListScopes{Scope: scope})
	if err != nil {
		return nil, err
	}

	return resp.Scopes, nil
}

// ListItems lists the items of scope, or every item when scope is nil.
func (c *Client) ListItems(ctx context.Context, scope *m.Path) (m.Items, error) {
	resp, err := call[protocol.ListItemsResponse](ctx, c, protocol.ListItems{Scope: scope})
	if err != nil {
		return nil, err
	}

	return resp.Items, nil
}

// Status returns the simulation status.
func (c *Client) Status(ctx context.Context) (m.SimulationStatus, error) {
	resp, err := call[protocol.GetSimulationStatusResponse](ctx, c, protocol.GetSimulationStatus{})
	if err != nil {
		return m.SimulationStatus{}, err
	}

	return resp.SimulationStatus, nil
}

// Run resumes the simulation, until the given time when it is not nil.
// Item values are sampled while it runs.
func (c *Client) Run(ctx context.Context, until *m.TimeStamp) error {
	_, err := call[protocol.RunSimulationResponse](ctx, c, protocol.RunSimulation{
		UntilTime:        until,
		UntilDiagnostics: []string{},
		SampleItemValues: true,
	})

	return err
}

// Pause stops the simulation and returns the time it stopped at.
func (c *Client) Pause(ctx context.Context) (m.TimeStamp, error) {
	resp, err := call[protocol.PauseSimulationResponse](ctx, c, protocol.PauseSimulation{})
	if err != nil {
		return m.TimeStamp{}, err
	}

	return resp.Time, nil
}

// Reference binds name to the designated items. Nil items release it.
func (c *Client) Reference(ctx context.Context, name string, items []m.Designation) error {
	_, err := call[protocol.ReferenceItemsResponse](ctx, c, protocol.ReferenceItems{Reference: name, Items: items})

	return err
}

// Query returns the samples recorded in [begin, end]. A nil reference asks
// for sample times only.
func (c *Client) Query(
	ctx context.Context,
	reference *string,
	begin, end m.TimeStamp,
	collapse bool,
) ([]protocol.SampleRecord, error) {
	resp, err := call[protocol.QueryIntervalResponse](ctx, c, protocol.QueryInterval{
		Interval: [2]m.TimeStamp{begin, end},
		Collapse: collapse,
		Items:    reference,
	})
	if err != nil {
		return nil, err
	}

	return resp.Samples, nil
}

func call[R protocol.Response](ctx context.Context, c *Client, cmd protocol.Command) (R, error) {
	var zero R

	resp, err := c.Call(ctx, cmd)
	if err != nil {
		return zero, err
	}

	typed, ok := resp.(R)
	if !ok {
		return zero, fmt.Errorf("%w: %T for %s", ErrUnexpectedMessage, resp, cmd.CommandName())
	}

	return typed, nil
}

func (c *Client) send(msg protocol.ClientMessage) error {
	payload, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	if c.observer != nil {
		c.observer(true, payload)
	}

	if _, err := c.conn.Write(wire.AppendDelimiter(payload)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// reply reads until a non-event message arrives, queueing events.
func (c *Client) reply(ctx context.Context) (protocol.ServerMessage, error) {
	for {
		msg, err := c.read(ctx)
		if err != nil {
			return nil, err
		}

		switch v := msg.(type) {
		case protocol.Event:
			c.events = append(c.events, v)
		case protocol.Error:
			return nil, &v
		default:
			return msg, nil
		}
	}
}

func (c *Client) read(ctx context.Context) (protocol.ServerMessage, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}

		defer func() { _ = c.conn.SetReadDeadline(time.Time{}) }()
	}

	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, readChunkSize)

	for len(c.pending) == 0 {
		n, err := c.conn.Read(buf)
		if n > 0 {
			c.pending = append(c.pending, c.frames.Feed(buf[:n])...)
		}

		if err != nil && len(c.pending) == 0 {
			if _, ok := ctx.Deadline(); ok && errors.Is(err, os.ErrDeadlineExceeded) {
				<-ctx.Done()
			}

			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}

			return nil, fmt.Errorf("failed to read message: %w", err)
		}
	}

	frame := c.pending[0]
	c.pending = c.pending[1:]

	if frame.Err != nil {
		return nil, frame.Err
	}

	if c.observer != nil {
		c.observer(false, frame.Payload)
	}

	return protocol.DecodeServerMessage(frame.Payload)
}
