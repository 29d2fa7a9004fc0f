package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/folio/internal/config"
)

// Notification kinds.
const (
	NotificationInfo  = "info"
	NotificationError = "error"
)

// Notification is a transient message drawn in the top right corner.
type Notification struct {
	ID        string
	Message   string
	Type      string
	StartTime time.Time
	Duration  time.Duration
}

// ShowNotification displays a message for config.NotificationDuration and
// returns the command that expires it.
func (d *Desktop) ShowNotification(message, notifType string) tea.Cmd {
	d.Notifications = append(d.Notifications, Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  config.NotificationDuration,
	})

	if notifType == NotificationError {
		d.logger.Error(message)
	} else {
		d.logger.Info(message)
	}
	return d.after(config.NotificationDuration, notificationExpiredMsg{})
}

// CleanupNotifications removes expired notifications. Headless desktops
// expire everything, since their clock never advances.
func (d *Desktop) CleanupNotifications() {
	now := time.Now()
	var active []Notification
	for _, n := range d.Notifications {
		if !d.headless && now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	d.Notifications = active
}
