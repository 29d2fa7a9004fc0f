package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/logging"
	"github.com/Gaurav-Gosain/folio/internal/server"
	"github.com/Gaurav-Gosain/folio/internal/tape"
	"github.com/Gaurav-Gosain/folio/internal/theme"
	"github.com/Gaurav-Gosain/folio/internal/web"
)

const (
	defaultPlayWidth  = 100
	defaultPlayHeight = 30
)

// environment is everything a front door needs to build desktops.
type environment struct {
	cfg    *config.UserConfig
	store  *content.FSStore
	logger *log.Logger
	closer io.Closer
}

func (e *environment) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// setup loads the config, applies command line overrides, and opens the
// logger, theme and content store. Servers also log to stderr.
func setup(toStderr bool) (*environment, error) {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		userConfig = config.DefaultConfig()
	}
	if themeName != "" {
		userConfig.Appearance.Theme = themeName
	}
	if contentDir != "" {
		userConfig.Content.Dir = contentDir
	}

	opts := logging.FromConfig(userConfig.Logging)
	if debugMode {
		opts.Level = "debug"
	}
	opts.Stderr = toStderr
	logger, closer, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	env := &environment{cfg: userConfig, logger: logger, closer: closer}

	for _, issue := range config.Validate(userConfig) {
		logger.Warn("config", "issue", issue.String())
	}

	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		logger.Warn("theme disabled", "err", err)
	}

	store, err := content.Open(userConfig.Content.Dir)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("open content: %w", err)
	}
	for path, perr := range store.Errors() {
		logger.Warn("skipped content file", "path", path, "err", perr)
	}
	env.store = store

	if configPath, err := config.GetConfigPath(); err == nil {
		logger.Debug("configuration", "path", configPath, "content", userConfig.Content.Dir)
	}
	return env, nil
}

func runLocal(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("folio needs an interactive terminal; try 'folio play --headless' or 'folio ssh'")
	}

	env, err := setup(false)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reloads <-chan content.ReloadEvent
	if env.cfg.Content.Watch && env.cfg.Content.Dir != "" {
		reloads, err = content.Watch(ctx, env.store, env.cfg.Content.Dir, env.logger)
		if err != nil {
			env.logger.Warn("content watch disabled", "err", err)
		}
	}

	desktop := app.New(app.Options{
		Config:         env.cfg,
		Store:          env.store,
		Logger:         env.logger,
		Context:        ctx,
		ThemeSwitching: true,
		Reloads:        reloads,
	})
	return runProgram(desktop, nil)
}

// runProgram runs desktop full screen. If player is set it is replayed
// into the program once it starts.
func runProgram(desktop *app.Desktop, player *tape.Player) error {
	p := tea.NewProgram(
		desktop,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if player != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := player.Play(ctx, p.Send); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("tape playback stopped", "err", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(ctx context.Context, sshHost, sshPort, sshKeyPath string) error {
	env, err := setup(true)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Host:       sshHost,
		Port:       sshPort,
		KeyPath:    sshKeyPath,
		UserConfig: env.cfg,
		Store:      env.store,
		Logger:     env.logger,
	})
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(ctx context.Context, cfg web.Config) error {
	env, err := setup(true)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.UserConfig = env.cfg
	cfg.Store = env.store
	cfg.Logger = env.logger
	if err := web.New(cfg).Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}

func runPlay(ctx context.Context, path string, headless bool, width, height int) error {
	commands, err := tape.Load(path)
	if err != nil {
		if len(commands) == 0 {
			return err
		}
		// Parse errors are reported but the good lines still play.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	env, err := setup(false)
	if err != nil {
		return err
	}
	defer env.Close()

	if !headless {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("stdout is not a terminal; use --headless")
		}
		desktop := app.New(app.Options{
			Config:  env.cfg,
			Store:   env.store,
			Logger:  env.logger,
			Context: ctx,
		})
		return runProgram(desktop, tape.NewPlayer(commands))
	}

	w, h := playSize(width, height)
	desktop := app.New(app.Options{
		Config:   env.cfg,
		Store:    env.store,
		Logger:   env.logger,
		Context:  ctx,
		Width:    w,
		Height:   h,
		Headless: true,
	})
	env.logger.Info("headless playback", "tape", path, "commands", len(commands), "cols", w, "rows", h)
	return tape.NewHeadlessRunner(commands, env.logger).RunAndRender(ctx, desktop, os.Stdout)
}

// playSize picks the headless screen size: flags, then the terminal, then
// fixed defaults.
func playSize(width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	tw, th, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || tw <= 0 || th <= 0 {
		tw, th = defaultPlayWidth, defaultPlayHeight
	}
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}
	return width, height
}
