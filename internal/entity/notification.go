package entity

import "time"

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a transient message for the user.
type Notification struct {
	ID      string
	Level   NotificationLevel
	Message string
	At      time.Time
}

// Topic names the entity type a mutation changed.
type Topic string

const (
	TopicProducts Topic = "products"
	TopicSales    Topic = "sales"
	// TopicImport is published after a bulk import; it touches every view.
	TopicImport Topic = "import"
)
