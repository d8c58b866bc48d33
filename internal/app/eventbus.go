package app

import "github.com/railflow/railflow-portal/internal/domain"

const TopicGateLogin = "gate:login"
const TopicGateLogout = "gate:logout"
const TopicGateDirection = "gate:direction"
const TopicGateConfigured = "gate:configured"
const TopicGateBack = "gate:back"
const TopicGateReset = "gate:reset"
const TopicGateRejected = "gate:rejected"
const TopicTrainAction = "train:action"
const TopicSettingsChanged = "settings:changed"

// GateTopics are all topics that carry a GateEvent.
var GateTopics = []string{
	TopicGateLogin, TopicGateLogout, TopicGateDirection, TopicGateConfigured, TopicGateBack, TopicGateReset,
	TopicGateRejected,
}

// GateEvent is published for every accepted or rejected gate operation.
type GateEvent struct {
	SessionId    string
	ControllerId string
	Operation    string
	From         domain.GateState
	To           domain.GateState
	Direction    domain.Direction
	Error        string // only set for rejections
}

// TrainActionEvent is published when a controller applies an action to a train.
type TrainActionEvent struct {
	SessionId    string
	ControllerId string
	TrainId      string
	TrainName    string
	Action       domain.TrainAction
}

// SettingsEvent is published when a controller saves or resets the control room settings.
type SettingsEvent struct {
	SessionId    string
	ControllerId string
	Reset        bool
	Settings     domain.Settings
}
