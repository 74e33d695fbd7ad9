package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"

	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
	"vhpidbg.dev/pkg/vhpidbg/internal/wire"
)

const sessionReadChunkSize = 4096

// Services are the shared components every session talks to.
type Services struct {
	Design     DesignQuery
	Controller *Controller
	Recorder   *Recorder
	Events     *EventHub
}

// Session serves one client connection. Replies and events are written only
// from the goroutine running Serve, so they never interleave on the wire.
type Session struct {
	id         string
	conn       net.Conn
	frames     *wire.FrameBuffer
	dispatcher *Dispatcher
	events     *EventHub
	log        *slog.Logger
}

// NewSession wraps conn. maxFrameSize bounds a single inbound frame.
func NewSession(conn net.Conn, services Services, maxFrameSize int) *Session {
	id := uuid.NewString()

	return &Session{
		id:         id,
		conn:       conn,
		frames:     wire.NewFrameBuffer(maxFrameSize),
		dispatcher: NewDispatcher(id, services.Design, services.Controller, services.Recorder),
		events:     services.Events,
		log:        slog.With("session", id, "remote", conn.RemoteAddr().String()),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Serve processes the connection until the client disconnects or ctx is
// done. A clean disconnect returns nil.
func (s *Session) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.log.Info("Session opened")

	events := s.events.Subscribe(ctx, s.id)
	defer s.events.Unsubscribe(s.id)
	defer s.dispatcher.Close()

	chunks := make(chan []byte)
	readErr := make(chan error, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		readErr <- s.readLoop(ctx, chunks)
	}()

	// The reader may be blocked handing over a chunk; release it before waiting.
	defer func() {
		cancel()
		_ = s.conn.Close()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Session cancelled")

			return nil
		case chunk := <-chunks:
			if err := s.handleChunk(chunk); err != nil {
				return err
			}
		case err := <-readErr:
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				s.log.Info("Session closed by client")

				return nil
			}

			return fmt.Errorf("session %s: %w", s.id, err)
		case event, ok := <-events:
			if !ok {
				events = nil

				continue
			}

			if s.dispatcher.State() != StateActive {
				s.log.Debug("Dropping event before greeting", "event", event.EventName())

				continue
			}

			if err := s.write(event); err != nil {
				return err
			}
		}
	}
}

func (s *Session) readLoop(ctx context.Context, chunks chan<- []byte) error {
	buf := make([]byte, sessionReadChunkSize)

	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			select {
			case chunks <- chunk:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err != nil {
			return err
		}
	}
}

func (s *Session) handleChunk(chunk []byte) error {
	for _, frame := range s.frames.Feed(chunk) {
		var reply protocol.ServerMessage
		if frame.Err != nil {
			reply = s.dispatcher.FramingError(frame.Err)
		} else {
			reply = s.dispatcher.Dispatch(frame.Payload)
		}

		if reply == nil {
			continue
		}

		if err := s.write(reply); err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) write(msg protocol.ServerMessage) error {
	payload, err := protocol.Encode(msg)
	if err != nil {
		s.log.Error("Failed to encode message", "type", msg.MessageType(), "error", err)

		return fmt.Errorf("session %s: %w", s.id, err)
	}

	if _, err := s.conn.Write(wire.AppendDelimiter(payload)); err != nil {
		return fmt.Errorf("session %s: write %s: %w", s.id, msg.MessageType(), err)
	}

	return nil
}
