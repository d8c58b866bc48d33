package model

import "github.com/railflow/railflow-portal/internal/domain"

type Settings struct {
	RefreshInterval int    `json:"RefreshInterval"` // seconds
	AlertThreshold  int    `json:"AlertThreshold"`  // minutes
	MaxDelayAlert   int    `json:"MaxDelayAlert"`   // minutes
	PriorityMode    string `json:"PriorityMode"`
	AutoReroute     bool   `json:"AutoReroute"`
	SoundAlerts     bool   `json:"SoundAlerts"`
}

func NewSettings(src domain.Settings) Settings {
	return Settings{
		RefreshInterval: src.RefreshInterval,
		AlertThreshold:  src.AlertThreshold,
		MaxDelayAlert:   src.MaxDelayAlert,
		PriorityMode:    string(src.PriorityMode),
		AutoReroute:     src.AutoReroute,
		SoundAlerts:     src.SoundAlerts,
	}
}

func NewDomainSettings(src Settings) domain.Settings {
	return domain.Settings{
		RefreshInterval: src.RefreshInterval,
		AlertThreshold:  src.AlertThreshold,
		MaxDelayAlert:   src.MaxDelayAlert,
		PriorityMode:    domain.PriorityMode(src.PriorityMode),
		AutoReroute:     src.AutoReroute,
		SoundAlerts:     src.SoundAlerts,
	}
}

type SettingsResponse struct {
	Settings     Settings      `json:"Settings"`
	Notification *Notification `json:"Notification,omitempty"`
}
