// Package web serves the folio desktop in the browser through sip, which
// bridges an xterm.js page to one Bubble Tea program per visitor.
package web

import (
	"context"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/charmbracelet/colorprofile"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/sysinfo"
)

// Default listen address.
const (
	DefaultHost = "localhost"
	DefaultPort = "7681"
)

// Config holds the web server configuration.
type Config struct {
	Host           string
	Port           string
	ReadOnly       bool // disallow input from clients
	MaxConnections int  // 0 = unlimited
	Debug          bool

	UserConfig *config.UserConfig
	Store      content.Store
	Logger     *log.Logger
	SysInfo    sysinfo.Sampler
}

// Server runs one desktop per browser session.
type Server struct {
	cfg    Config
	logger *log.Logger
	served atomic.Int64
}

// New creates a web server.
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
	return &Server{cfg: cfg, logger: logger.WithPrefix("web")}
}

// Serve blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	// stdout is not the visitor's terminal, so detection would strip every
	// colour; xterm.js always renders true colour.
	lipgloss.Writer.Profile = colorprofile.TrueColor

	sipConfig := sip.DefaultConfig()
	sipConfig.Host = s.cfg.Host
	sipConfig.Port = s.cfg.Port
	sipConfig.ReadOnly = s.cfg.ReadOnly
	sipConfig.MaxConnections = s.cfg.MaxConnections
	sipConfig.Debug = s.cfg.Debug

	s.logger.Info("serving", "url", "http://"+s.cfg.Host+":"+s.cfg.Port, "read_only", s.cfg.ReadOnly)
	return sip.NewServer(sipConfig).Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		return s.NewDesktop(ctx, pty.Width, pty.Height), []tea.ProgramOption{
			tea.WithFPS(config.NormalFPS),
			tea.WithColorProfile(colorprofile.TrueColor),
		}
	})
}

// NewDesktop builds the desktop for one visitor.
func (s *Server) NewDesktop(ctx context.Context, width, height int) *app.Desktop {
	id := uuid.NewString()
	logger := s.logger.With("session", id)
	logger.Info("session started", "cols", width, "rows", height, "served", s.served.Add(1))

	return app.New(app.Options{
		Config:  s.cfg.UserConfig,
		Store:   s.cfg.Store,
		Logger:  logger,
		Context: ctx,
		Width:   width,
		Height:  height,
		SysInfo: s.cfg.SysInfo,
	})
}
