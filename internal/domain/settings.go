package domain

type PriorityMode string

const (
	PriorityModeAutomatic PriorityMode = "automatic"
	PriorityModeManual    PriorityMode = "manual"
	PriorityModeHybrid    PriorityMode = "hybrid"
)

var PriorityModes = []PriorityMode{PriorityModeAutomatic, PriorityModeManual, PriorityModeHybrid}

// Settings are the control room preferences of a controller. They only live as long as the session.
type Settings struct {
	RefreshInterval int          `validate:"gte=5,lte=300"`  // seconds
	AlertThreshold  int          `validate:"gte=1,lte=60"`   // minutes
	MaxDelayAlert   int          `validate:"gte=1,lte=180"`  // minutes
	PriorityMode    PriorityMode `validate:"oneof=automatic manual hybrid"`
	AutoReroute     bool
	SoundAlerts     bool
}

func DefaultSettings() Settings {
	return Settings{
		RefreshInterval: 30,
		AlertThreshold:  10,
		MaxDelayAlert:   15,
		PriorityMode:    PriorityModeAutomatic,
		AutoReroute:     true,
		SoundAlerts:     false,
	}
}

// SystemInfo describes the running portal instance.
type SystemInfo struct {
	Version    string
	Uptime     string
	LastUpdate string
	Status     string
}
