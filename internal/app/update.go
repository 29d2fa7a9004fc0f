package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/sysinfo"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

// windowReapMsg removes a closed window once its close animation is over.
type windowReapMsg struct {
	ID wm.ID
}

// MetricsMsg carries one system metrics sample for the status bar.
type MetricsMsg struct {
	CPU float64
	Mem float64
}

// ContentReloadedMsg reports that the content directory was re-indexed.
type ContentReloadedMsg struct {
	Err error
}

// notificationExpiredMsg prunes notifications whose time is up.
type notificationExpiredMsg struct{}

// SampleMetricsCmd samples CPU and memory usage after delay.
func SampleMetricsCmd(ctx context.Context, s sysinfo.Sampler, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		cpu, _ := s.CPUPercent(ctx)
		mem, _ := s.MemPercent(ctx)
		return MetricsMsg{CPU: cpu, Mem: mem}
	})
}

// WaitForReload waits for the next content reload.
func WaitForReload(ch <-chan content.ReloadEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ContentReloadedMsg{Err: ev.Err}
	}
}

// Init starts metrics sampling and the content reload listener.
func (d *Desktop) Init() tea.Cmd {
	if d.headless {
		return nil
	}

	var cmds []tea.Cmd
	if d.cfg.Appearance.ShowMetrics && d.sampler != nil {
		cmds = append(cmds, SampleMetricsCmd(d.ctx, d.sampler, 0))
	}
	if d.reloads != nil {
		cmds = append(cmds, WaitForReload(d.reloads))
	}
	return tea.Batch(cmds...)
}

// Update handles one message.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)

	case tea.PasteMsg:
		if d.shellFocused || d.windows.TopWindow() == nil {
			d.shellFocused = true
			d.shell.InsertText(msg.Content)
		}

	case tea.KeyMsg:
		out := d.router.HandleKey(d, msg)
		if out.Handled() {
			d.logger.Debug("key", "key", msg.String(), "rule", out.Rule)
		}
		return d, out.Cmd

	case tea.MouseMsg:
		out := d.router.HandleMouse(d, msg)
		return d, out.Cmd

	case windowReapMsg:
		if d.windows.Reap(msg.ID) {
			d.markdown.Forget(msg.ID)
		}

	case MetricsMsg:
		d.recordMetrics(msg)
		if d.headless || d.sampler == nil {
			return d, nil
		}
		return d, SampleMetricsCmd(d.ctx, d.sampler, config.MetricsInterval)

	case ContentReloadedMsg:
		var cmd tea.Cmd
		if msg.Err != nil {
			d.logger.Warn("content reload failed", "err", msg.Err)
			cmd = d.ShowNotification("Content reload failed: "+msg.Err.Error(), NotificationError)
		} else {
			d.markdown.Reset()
			cmd = d.ShowNotification("Content updated", NotificationInfo)
		}
		if d.reloads != nil {
			cmd = tea.Batch(cmd, WaitForReload(d.reloads))
		}
		return d, cmd

	case notificationExpiredMsg:
		d.CleanupNotifications()
	}
	return d, nil
}

// Feed runs msgs through Update and then, synchronously, every message the
// resulting commands produce. It is meant for headless desktops, where no
// command blocks.
func (d *Desktop) Feed(msgs ...tea.Msg) {
	queue := append([]tea.Msg(nil), msgs...)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		switch msg := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			for _, cmd := range msg {
				if cmd != nil {
					queue = append(queue, cmd())
				}
			}
			continue
		case tea.QuitMsg:
			d.quitting = true
			continue
		}

		if _, cmd := d.Update(msg); cmd != nil {
			queue = append(queue, cmd())
		}
	}
}
