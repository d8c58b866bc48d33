package domain

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationInfo    NotificationLevel = "info"
	NotificationError   NotificationLevel = "error"
)

// Notification is a transient, auto-dismissing message for the controller.
type Notification struct {
	Level   NotificationLevel
	Message string
}

func SuccessNotification(msg string) Notification {
	return Notification{Level: NotificationSuccess, Message: msg}
}

func InfoNotification(msg string) Notification {
	return Notification{Level: NotificationInfo, Message: msg}
}

func ErrorNotification(msg string) Notification {
	return Notification{Level: NotificationError, Message: msg}
}
