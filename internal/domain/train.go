package domain

import "strings"

type TrainType string

const (
	TrainTypeExpress   TrainType = "express"
	TrainTypePassenger TrainType = "passenger"
	TrainTypeFreight   TrainType = "freight"
	TrainTypeSuperfast TrainType = "superfast"
	TrainTypeLocal     TrainType = "local"
)

// TrainTypes lists the selectable train types in display order.
var TrainTypes = []TrainType{
	TrainTypeExpress, TrainTypePassenger, TrainTypeFreight, TrainTypeSuperfast, TrainTypeLocal,
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

// ConfigurationPriorities lists the priorities that can be chosen during train configuration.
var ConfigurationPriorities = []Priority{PriorityHigh, PriorityNormal, PriorityLow}

// TrainConfiguration is the train metadata a controller enters before the control room opens.
type TrainConfiguration struct {
	TrainNumber        string
	TrainType          TrainType
	Priority           Priority
	StationCode        string
	InitialDestination string
	FinalDestination   string
}

// Normalized trims all fields and applies the default priority.
func (c TrainConfiguration) Normalized() TrainConfiguration {
	c.TrainNumber = strings.TrimSpace(c.TrainNumber)
	c.TrainType = TrainType(strings.TrimSpace(string(c.TrainType)))
	c.Priority = Priority(strings.TrimSpace(string(c.Priority)))
	c.StationCode = strings.ToUpper(strings.TrimSpace(c.StationCode))
	c.InitialDestination = strings.TrimSpace(c.InitialDestination)
	c.FinalDestination = strings.TrimSpace(c.FinalDestination)
	if c.Priority == "" {
		c.Priority = PriorityNormal
	}
	return c
}

// MissingFields returns the names of all required fields that are blank.
func (c TrainConfiguration) MissingFields() []string {
	return blankFields(
		"trainNumber", c.TrainNumber,
		"trainType", string(c.TrainType),
		"stationCode", c.StationCode,
		"initialDestination", c.InitialDestination,
		"finalDestination", c.FinalDestination,
	)
}

type TrainStatus string

const (
	TrainStatusOnTime      TrainStatus = "On Time"
	TrainStatusRunning     TrainStatus = "Running"
	TrainStatusDelayed     TrainStatus = "Delayed"
	TrainStatusHalted      TrainStatus = "Halted"
	TrainStatusMaintenance TrainStatus = "Maintenance"
)

// Signal returns the signal aspect used to color a status: green, blue, yellow, red or grey.
func (s TrainStatus) Signal() string {
	switch s {
	case TrainStatusOnTime:
		return "green"
	case TrainStatusRunning:
		return "blue"
	case TrainStatusDelayed:
		return "yellow"
	case TrainStatusHalted:
		return "red"
	default:
		return "grey"
	}
}

// Train is a train shown in the dashboard overview.
type Train struct {
	Id       string
	Name     string
	Status   TrainStatus
	Delay    int // minutes
	Route    string
	Priority Priority
}

type Coordinates struct {
	Lat float64
	Lng float64
}

// TrackedTrain is a train with live tracking details for the control panel.
type TrackedTrain struct {
	Train

	CurrentLocation  string
	NextStation      string
	EstimatedArrival string
	Coordinates      Coordinates
	RouteStations    []string
}

// StationIndex returns the position of the current location on the route, or -1.
func (t TrackedTrain) StationIndex() int {
	for i, station := range t.RouteStations {
		if strings.HasPrefix(station, t.CurrentLocation) || strings.HasPrefix(t.CurrentLocation, station) {
			return i
		}
	}
	return -1
}

type TrainAction string

const (
	ActionEmergencyStop      TrainAction = "Emergency Stop"
	ActionPriorityBoost      TrainAction = "Priority Boost"
	ActionRouteOptimization  TrainAction = "Route Optimization"
	ActionScheduleAdjustment TrainAction = "Schedule Adjustment"

	ActionQuickPriorityBoost TrainAction = "Priority boost"
	ActionQuickReroute       TrainAction = "Reroute"
	ActionQuickEmergencyHalt TrainAction = "Emergency halt"
)

// ControlActions are the operator actions available in the train control panel.
var ControlActions = []TrainAction{
	ActionEmergencyStop, ActionPriorityBoost, ActionRouteOptimization, ActionScheduleAdjustment,
}

// QuickActions are the actions available directly in the dashboard train list.
var QuickActions = []TrainAction{
	ActionQuickPriorityBoost, ActionQuickReroute, ActionQuickEmergencyHalt,
}

// IsEmergency reports whether the action stops a train.
func (a TrainAction) IsEmergency() bool {
	return a == ActionEmergencyStop || a == ActionQuickEmergencyHalt
}
