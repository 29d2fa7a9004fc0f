// Package server serves the folio desktop over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/sysinfo"
)

// Default listen address.
const (
	DefaultHost = "localhost"
	DefaultPort = "2222"
)

// Config holds configuration for the SSH server.
type Config struct {
	Host    string
	Port    string
	KeyPath string // empty uses the XDG data path

	UserConfig *config.UserConfig
	Store      content.Store
	Logger     *log.Logger
	SysInfo    sysinfo.Sampler
}

// Server runs one desktop per SSH session.
type Server struct {
	cfg    Config
	logger *log.Logger
	active atomic.Int64
}

// New creates an SSH server. Sessions share the content store and the
// metrics sampler but nothing else.
func New(cfg Config) *Server {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.UserConfig == nil {
		cfg.UserConfig = config.DefaultConfig()
	}
	if cfg.SysInfo == nil {
		cfg.SysInfo = sysinfo.Host{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, logger: logger.WithPrefix("ssh")}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	keyPath := s.cfg.KeyPath
	if keyPath == "" {
		p, err := config.GetHostKeyPath()
		if err != nil {
			return fmt.Errorf("failed to resolve host key path: %w", err)
		}
		keyPath = p
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(s.cfg.Host, s.cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr, "host_key", keyPath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("SSH server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "active", s.active.Load())
	return srv.Shutdown(context.WithoutCancel(ctx))
}

// teaHandler creates a desktop for each SSH session.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sess.Pty()
	if !active {
		_, _ = fmt.Fprintln(sess, "folio needs an interactive terminal: connect with ssh -t")
		return nil, nil
	}

	desktop, logger := s.NewDesktop(sess.Context(), sess.User(), pty.Window.Width, pty.Window.Height)
	n := s.active.Add(1)
	logger.Info("session started", "remote", sess.RemoteAddr().String(), "term", pty.Term, "active", n)

	go func() {
		<-sess.Context().Done()
		logger.Info("session ended", "active", s.active.Add(-1))
	}()

	return desktop, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}

// NewDesktop builds the desktop for one session, along with a logger
// tagged with a fresh session id.
func (s *Server) NewDesktop(ctx context.Context, user string, width, height int) (*app.Desktop, *log.Logger) {
	logger := s.logger.With("session", uuid.NewString(), "user", user)

	desktop := app.New(app.Options{
		Config:  s.cfg.UserConfig,
		Store:   s.cfg.Store,
		Logger:  logger,
		Context: ctx,
		User:    SessionUser(user, s.cfg.UserConfig.Terminal.User),
		Width:   width,
		Height:  height,
		SysInfo: s.cfg.SysInfo,
		// Themes are process-wide; one visitor must not repaint everyone.
		ThemeSwitching: false,
	})
	return desktop, logger
}

// SessionUser returns the prompt name for an SSH user: letters, digits,
// '.', '_' and '-' only, at most 32 runes, or fallback when nothing is left.
func SessionUser(name, fallback string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-' {
			return r
		}
		return -1
	}, name)
	if r := []rune(clean); len(r) > 32 {
		clean = string(r[:32])
	}
	if clean == "" {
		return fallback
	}
	return clean
}
