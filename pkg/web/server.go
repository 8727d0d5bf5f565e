// Package web serves a read-only HTML view of a note snapshot.
//
// The snapshot is taken once by the caller. It is only refreshed when the
// caller opts in through Follow; otherwise notes written after startup stay
// invisible until the server is restarted.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aretw0/notes/pkg/core"
)

const (
	DefaultPort           = 5000
	DefaultHost           = "127.0.0.1"
	DefaultRateLimitRPS   = 20
	DefaultRateLimitBurst = 40

	shutdownTimeout = 5 * time.Second
)

// Loader fetches a fresh copy of the collection, e.g. (*core.Service).ListAll.
type Loader func(ctx context.Context) ([]core.Note, error)

// Server is the local web view.
type Server struct {
	app      *fiber.App
	logger   *slog.Logger
	page     *template.Template
	snapshot atomic.Pointer[[]core.Note]
	rps      int
	burst    int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and lifecycle logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit bounds the request rate. Zero values select the defaults.
func WithRateLimit(rps, burst int) Option {
	return func(s *Server) {
		s.rps = rps
		s.burst = burst
	}
}

// WithTemplate replaces the embedded page template.
func WithTemplate(t *template.Template) Option {
	return func(s *Server) {
		s.page = t
	}
}

// New builds a server around the given snapshot.
func New(notes []core.Note, opts ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
		page:   defaultPage,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Update(notes)

	s.app = fiber.New(fiber.Config{
		AppName:               "notes",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           30 * time.Second,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(
		recover.New(),
		requestLogger(s.logger),
		rateLimit(s.logger, s.rps, s.burst),
	)

	s.app.Get("/", s.handleIndex)
	s.app.Get("/api/notes", s.handleNotes)
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return s
}

// App exposes the underlying fiber application (used by tests via App().Test).
func (s *Server) App() *fiber.App {
	return s.app
}

// Notes returns the snapshot currently served.
func (s *Server) Notes() []core.Note {
	return *s.snapshot.Load()
}

// Update swaps the served snapshot. Safe to call while serving.
func (s *Server) Update(notes []core.Note) {
	cp := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		cp = append(cp, core.Normalize(n))
	}
	s.snapshot.Store(&cp)
}

// Listen binds addr and serves until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("web view listening", "addr", "http://"+ln.Addr().String(), "notes", len(s.Notes()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("web view shutting down")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Follow reloads the snapshot every time events fires, until ctx is done or
// events is closed. A failed reload keeps the previous snapshot.
func (s *Server) Follow(ctx context.Context, events <-chan core.Event, load Loader) {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				notes, err := load(ctx)
				if err != nil {
					s.logger.Warn("reload failed, keeping previous snapshot", "event", e.String(), "error", err)
					continue
				}
				s.Update(notes)
				s.logger.Info("snapshot reloaded", "event", e.String(), "notes", len(notes))
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("snapshot follower panic", "error", err)
	}))
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	body, err := renderPage(s.page, s.Notes())
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	c.Type("html", "utf-8")
	return c.Send(body)
}

func (s *Server) handleNotes(c *fiber.Ctx) error {
	return c.JSON(s.Notes())
}

// handleError converts handler errors into responses; the server keeps running.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		fe = fiber.ErrInternalServerError
	}
	return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
}
