package model

import "github.com/railflow/railflow-portal/internal/domain"

type Error struct {
	Code    int    `json:"Code"`
	Message string `json:"Message"`
	Details string `json:"Details,omitempty"`
}

type Notification struct {
	Level   string `json:"Level"` // success, info or error
	Message string `json:"Message"`
}

// NewNotification returns nil for an empty notification, so it is omitted in responses.
func NewNotification(src domain.Notification) *Notification {
	if src.Message == "" {
		return nil
	}
	return &Notification{
		Level:   string(src.Level),
		Message: src.Message,
	}
}
