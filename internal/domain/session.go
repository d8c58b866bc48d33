package domain

import (
	"fmt"
	"strings"
)

// Direction is the track traffic direction a controller operates on.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection converts user input into a Direction. Unknown values yield DirectionNone.
func ParseDirection(s string) Direction {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionUp:
		return DirectionUp
	case DirectionDown:
		return DirectionDown
	default:
		return DirectionNone
	}
}

// Opposite returns the other direction. DirectionNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	default:
		return DirectionNone
	}
}

// Label returns the upper-case display name, e.g. "UP".
func (d Direction) Label() string {
	if d == DirectionNone {
		return "NONE"
	}
	return strings.ToUpper(string(d))
}

// GateState names the position of a session in the setup flow.
type GateState string

const (
	StateUnauthenticated       GateState = "unauthenticated"
	StateAwaitingDirection     GateState = "awaiting_direction"
	StateAwaitingConfiguration GateState = "awaiting_configuration"
	StateReady                 GateState = "ready"
)

// View is the screen that has to be rendered for a session.
type View string

const (
	ViewLogin              View = "login"
	ViewDirectionSelection View = "direction_selection"
	ViewConfiguration      View = "configuration"
	ViewApplication        View = "application"
)

// Gate operation names, used in errors, events and metrics.
const (
	OperationLogin                 = "login"
	OperationSelectDirection       = "select_direction"
	OperationCompleteConfiguration = "complete_configuration"
	OperationBack                  = "back"
	OperationResetSetup            = "reset_setup"
	OperationLogout                = "logout"
)

// Session is the per-controller state that decides which screen is visible.
// All transitions return a new value, the receiver is never modified.
type Session struct {
	Authenticated bool
	ControllerId  string
	Direction     Direction
	Configured    bool

	// Configuration is the accepted train configuration, only set if Configured is true.
	Configuration *TrainConfiguration
}

// SelectView maps the session state to exactly one view. The checks are evaluated in priority order.
func SelectView(s Session) View {
	switch {
	case !s.Authenticated:
		return ViewLogin
	case s.Direction == DirectionNone:
		return ViewDirectionSelection
	case !s.Configured:
		return ViewConfiguration
	default:
		return ViewApplication
	}
}

// View is a shorthand for SelectView(s).
func (s Session) View() View {
	return SelectView(s)
}

// State returns the gate state derived from the session fields.
func (s Session) State() GateState {
	switch SelectView(s) {
	case ViewLogin:
		return StateUnauthenticated
	case ViewDirectionSelection:
		return StateAwaitingDirection
	case ViewConfiguration:
		return StateAwaitingConfiguration
	default:
		return StateReady
	}
}

// Login authenticates the controller. Both values must be non-blank.
func (s Session) Login(controllerId, password string) (Session, error) {
	if err := s.expect(OperationLogin, StateUnauthenticated); err != nil {
		return s, err
	}

	controllerId = strings.TrimSpace(controllerId)
	missing := blankFields("controllerId", controllerId)
	if password == "" { // passwords are taken as typed, whitespace included
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return s, NewMissingFieldsError(missing...)
	}

	return Session{
		Authenticated: true,
		ControllerId:  controllerId,
	}, nil
}

// SelectDirection stores the track direction for the current controller.
func (s Session) SelectDirection(direction Direction) (Session, error) {
	if err := s.expect(OperationSelectDirection, StateAwaitingDirection); err != nil {
		return s, err
	}
	if direction != DirectionUp && direction != DirectionDown {
		return s, NewMissingFieldsError("direction")
	}

	next := s
	next.Direction = direction
	return next, nil
}

// CompleteConfiguration accepts the train configuration and unlocks the application.
func (s Session) CompleteConfiguration(cfg TrainConfiguration) (Session, error) {
	if err := s.expect(OperationCompleteConfiguration, StateAwaitingConfiguration); err != nil {
		return s, err
	}

	cfg = cfg.Normalized()
	if missing := cfg.MissingFields(); len(missing) > 0 {
		return s, NewMissingFieldsError(missing...)
	}

	next := s
	next.Configured = true
	next.Configuration = &cfg
	return next, nil
}

// Back returns from the configuration screen to the direction selection.
func (s Session) Back() (Session, error) {
	if err := s.expect(OperationBack, StateAwaitingConfiguration); err != nil {
		return s, err
	}

	next := s
	next.Direction = DirectionNone
	return next, nil
}

// ResetSetup clears direction and configuration but keeps the controller logged in.
func (s Session) ResetSetup() (Session, error) {
	if !s.Authenticated {
		return s, NewInvalidTransitionError(OperationResetSetup, s.State())
	}

	return Session{
		Authenticated: true,
		ControllerId:  s.ControllerId,
	}, nil
}

// Logout is valid from every state and always yields the initial session.
func (s Session) Logout() Session {
	return Session{}
}

func (s Session) expect(operation string, state GateState) error {
	if current := s.State(); current != state {
		return NewInvalidTransitionError(operation, current)
	}
	return nil
}

// blankFields expects name/value pairs and returns the names of all blank values.
func blankFields(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}

func (s Session) String() string {
	return fmt.Sprintf("%s|%s|%s|%t", s.State(), s.ControllerId, s.Direction, s.Configured)
}
