package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ServerMode selects how many sessions are served at once.
type ServerMode string

const (
	// ModeSequential serves one session at a time; later clients wait in the
	// accept backlog.
	ModeSequential ServerMode = "sequential"
	// ModeConcurrent serves up to MaxSessions sessions at once.
	ModeConcurrent ServerMode = "concurrent"
)

// DefaultMaxSessions limits concurrent sessions when none is configured.
const DefaultMaxSessions = 4

// ErrInvalidMode is returned for an unknown server mode.
var ErrInvalidMode = errors.New("invalid server mode")

// ServerConfig configures Server.
type ServerConfig struct {
	Mode         ServerMode
	MaxSessions  int
	AcceptOnce   bool
	MaxFrameSize int
}

// ParseServerMode validates a configured mode name.
func ParseServerMode(name string) (ServerMode, error) {
	switch mode := ServerMode(name); mode {
	case ModeSequential, ModeConcurrent:
		return mode, nil
	case "":
		return ModeSequential, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, name)
	}
}

func (c ServerConfig) limit() int {
	if c.Mode != ModeConcurrent {
		return 1
	}

	if c.MaxSessions <= 0 {
		return DefaultMaxSessions
	}

	return c.MaxSessions
}

// Server accepts debugger connections and runs a Session for each.
type Server struct {
	cfg      ServerConfig
	services Services

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewServer creates a server over the shared services.
func NewServer(cfg ServerConfig, services Services) *Server {
	return &Server{
		cfg:      cfg,
		services: services,
		sessions: make(map[string]*Session),
	}
}

// Sessions returns the number of sessions being served.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Serve accepts connections on ln until ctx is done, the listener fails, or
// the first connection was accepted in AcceptOnce mode. It closes ln and
// waits for every session before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()

	var group errgroup.Group
	group.SetLimit(s.cfg.limit())

	slog.Info("Serving debugger connections", "address", ln.Addr().String(), "mode", s.cfg.Mode, "limit", s.cfg.limit())

	var acceptErr error

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				acceptErr = fmt.Errorf("accept: %w", err)
			}

			break
		}

		session := NewSession(conn, s.services, s.cfg.MaxFrameSize)

		// Blocks while the session limit is reached.
		group.Go(func() error {
			s.track(session, true)
			defer s.track(session, false)

			if err := session.Serve(ctx); err != nil {
				slog.Warn("Session ended with error", "session", session.ID(), "error", err)
			}

			return nil
		})

		if s.cfg.AcceptOnce {
			slog.Debug("Accepted the only connection, no longer listening")

			_ = ln.Close()

			break
		}
	}

	return errors.Join(acceptErr, group.Wait())
}

func (s *Server) track(session *Session, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if add {
		s.sessions[session.ID()] = session
	} else {
		delete(s.sessions, session.ID())
	}
}
