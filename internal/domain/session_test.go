package domain

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
	"vhpidbg.dev/pkg/vhpidbg/internal/wire"
)

// peer is the client end of a session under test.
type peer struct {
	conn    net.Conn
	frames  *wire.FrameBuffer
	pending []wire.Frame
}

func newPeer(conn net.Conn) *peer {
	return &peer{conn: conn, frames: wire.NewFrameBuffer(0)}
}

func (p *peer) send(t *testing.T, raw string) {
	t.Helper()

	require.NoError(t, p.conn.SetWriteDeadline(time.Now().Add(5*time.Second)))
	_, err := p.conn.Write([]byte(raw))
	require.NoError(t, err)
}

func (p *peer) receive(t *testing.T) protocol.ServerMessage {
	t.Helper()

	require.NoError(t, p.conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	buf := make([]byte, 1024)
	for len(p.pending) == 0 {
		n, err := p.conn.Read(buf)
		require.NoError(t, err)

		p.pending = append(p.pending, p.frames.Feed(buf[:n])...)
	}

	frame := p.pending[0]
	p.pending = p.pending[1:]
	require.NoError(t, frame.Err)

	msg, err := protocol.DecodeServerMessage(frame.Payload)
	require.NoError(t, err)

	return msg
}

func startSession(t *testing.T, ctx context.Context, services Services) (*peer, <-chan error) {
	t.Helper()

	serverConn, clientConn := net.Pipe()
	session := NewSession(serverConn, services, 0)
	require.NotEmpty(t, session.ID())

	done := make(chan error, 1)

	go func() {
		done <- session.Serve(ctx)
	}()

	t.Cleanup(func() { _ = clientConn.Close() })

	return newPeer(clientConn), done
}

func waitServe(t *testing.T, done <-chan error) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("session did not terminate")
	}

	return nil
}

func TestSession_SplitFrameIsDispatchedOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	services, _ := newTestServices(t, "")
	client, done := startSession(t, context.Background(), services)

	// Act
	client.send(t, `{"type":"greet`)
	client.send(t, `ing","version":0}`+"\x00")

	// Assert
	assert.IsType(t, protocol.GreetingResponse{}, client.receive(t))

	client.send(t, `{"type":"command","command":"get_simulation_status"}`+"\x00")
	assert.Equal(t, protocol.GetSimulationStatusResponse{
		SimulationStatus: m.SimulationStatus{Status: m.StatePaused, LatestTime: m.TimeStamp{}},
	}, client.receive(t))

	require.NoError(t, client.conn.Close())
	assert.NoError(t, waitServe(t, done))
}

func TestSession_SeveralFramesInOneChunk(t *testing.T) {
	services, _ := newTestServices(t, "")
	client, done := startSession(t, context.Background(), services)

	client.send(t, `{"type":"command","command":"list_scopes","scope":null}`+"\x00"+
		`{"type":"greeting","version":0}`+"\x00"+
		`{"type":"command","command":"list_scopes","scope":null}`+"\x00")

	first := client.receive(t)
	perr, ok := first.(protocol.Error)
	require.True(t, ok)
	assert.Equal(t, protocol.KindSequencingError, perr.Kind)

	assert.IsType(t, protocol.GreetingResponse{}, client.receive(t))
	assert.Equal(t, protocol.ListScopesResponse{Scopes: m.Scopes{m.RootPath: m.RootScope()}}, client.receive(t))

	require.NoError(t, client.conn.Close())
	assert.NoError(t, waitServe(t, done))
}

func TestSession_FramingErrorKeepsSessionOpen(t *testing.T) {
	services, _ := newTestServices(t, "")
	client, done := startSession(t, context.Background(), services)

	client.send(t, "\xff\xfe\x00")

	perr, ok := client.receive(t).(protocol.Error)
	require.True(t, ok)
	assert.Equal(t, protocol.KindFramingError, perr.Kind)

	client.send(t, `{"type":"greeting","version":0}`+"\x00")
	assert.IsType(t, protocol.GreetingResponse{}, client.receive(t))

	require.NoError(t, client.conn.Close())
	assert.NoError(t, waitServe(t, done))
}

func TestSession_DeliversEventsAfterGreeting(t *testing.T) {
	services, _ := newTestServices(t, "")
	client, done := startSession(t, context.Background(), services)

	client.send(t, `{"type":"greeting","version":0}`+"\x00")
	require.IsType(t, protocol.GreetingResponse{}, client.receive(t))
	require.Eventually(t, func() bool { return services.Events.Subscribers() == 1 }, 5*time.Second, 10*time.Millisecond)

	event := protocol.SimulationPaused{Time: m.NewTimeStamp(0, 42), Cause: protocol.CausePauseRequest}
	services.Events.Publish(event)

	assert.Equal(t, event, client.receive(t))

	require.NoError(t, client.conn.Close())
	assert.NoError(t, waitServe(t, done))
	assert.Zero(t, services.Events.Subscribers())
}

func TestSession_CancelStopsServe(t *testing.T) {
	defer goleak.VerifyNone(t)

	services, _ := newTestServices(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	_, done := startSession(t, ctx, services)

	cancel()

	assert.NoError(t, waitServe(t, done))
}

// brokenWriteConn keeps delivering greetings but fails every write.
type brokenWriteConn struct {
	net.Conn

	mu     sync.Mutex
	closed bool
}

func (c *brokenWriteConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	return copy(p, `{"type":"greeting","version":0}`+"\x00"), nil
}

func (c *brokenWriteConn) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func (c *brokenWriteConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	return c.Conn.Close()
}

func TestSession_WriteErrorEndsServe(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	services, _ := newTestServices(t, "")
	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	session := NewSession(&brokenWriteConn{Conn: serverConn}, services, 0)
	done := make(chan error, 1)

	// Act
	go func() {
		done <- session.Serve(context.Background())
	}()

	// Assert
	err := waitServe(t, done)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.Zero(t, services.Events.Subscribers())
}
