package model

import (
	"github.com/railflow/railflow-portal/internal/app/gate"
	"github.com/railflow/railflow-portal/internal/domain"
)

type Session struct {
	Authenticated bool                `json:"Authenticated"`
	ControllerId  string              `json:"ControllerId"`
	Direction     string              `json:"Direction"` // up, down or empty
	Configured    bool                `json:"Configured"`
	Configuration *TrainConfiguration `json:"Configuration,omitempty"`

	State string `json:"State"`
	View  string `json:"View"`
}

func NewSession(src domain.Session) *Session {
	s := &Session{
		Authenticated: src.Authenticated,
		ControllerId:  src.ControllerId,
		Direction:     string(src.Direction),
		Configured:    src.Configured,
		State:         string(src.State()),
		View:          string(src.View()),
	}
	if src.Configuration != nil {
		s.Configuration = NewTrainConfiguration(*src.Configuration)
	}
	return s
}

// TransitionResponse is returned by all operations that change the gate state.
type TransitionResponse struct {
	View         string        `json:"View"`
	Session      *Session      `json:"Session"`
	Notification *Notification `json:"Notification,omitempty"`
}

func NewTransitionResponse(res gate.Result) TransitionResponse {
	return TransitionResponse{
		View:         string(res.View),
		Session:      NewSession(res.Session),
		Notification: NewNotification(res.Notification),
	}
}

type LoginRequest struct {
	ControllerId string `json:"ControllerId"`
	Password     string `json:"Password"`
}

type DirectionRequest struct {
	Direction string `json:"Direction"`
}

type TrainConfiguration struct {
	TrainNumber        string `json:"TrainNumber" validate:"max=16"`
	TrainType          string `json:"TrainType" validate:"omitempty,oneof=express passenger freight superfast local"`
	Priority           string `json:"Priority" validate:"omitempty,oneof=High Normal Low"`
	StationCode        string `json:"StationCode" validate:"max=8"`
	InitialDestination string `json:"InitialDestination" validate:"max=64"`
	FinalDestination   string `json:"FinalDestination" validate:"max=64"`
}

func NewTrainConfiguration(src domain.TrainConfiguration) *TrainConfiguration {
	return &TrainConfiguration{
		TrainNumber:        src.TrainNumber,
		TrainType:          string(src.TrainType),
		Priority:           string(src.Priority),
		StationCode:        src.StationCode,
		InitialDestination: src.InitialDestination,
		FinalDestination:   src.FinalDestination,
	}
}

func NewDomainTrainConfiguration(src *TrainConfiguration) domain.TrainConfiguration {
	return domain.TrainConfiguration{
		TrainNumber:        src.TrainNumber,
		TrainType:          domain.TrainType(src.TrainType),
		Priority:           domain.Priority(src.Priority),
		StationCode:        src.StationCode,
		InitialDestination: src.InitialDestination,
		FinalDestination:   src.FinalDestination,
	}
}
