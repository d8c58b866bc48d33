package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("record not found")
var ErrMissingRequiredField = errors.New("missing required field")
var ErrInvalidTransition = errors.New("invalid transition")
var ErrInvalidData = errors.New("invalid data")

// MissingFieldsError lists the required inputs that were left blank.
type MissingFieldsError struct {
	Fields []string
}

func NewMissingFieldsError(fields ...string) *MissingFieldsError {
	return &MissingFieldsError{Fields: fields}
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingRequiredField
}

// TransitionError is returned if an operation is not allowed in the current gate state.
type TransitionError struct {
	Operation string
	State     GateState
	Reason    string
}

func NewInvalidTransitionError(operation string, state GateState) *TransitionError {
	return &TransitionError{Operation: operation, State: state}
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidTransition, e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s: %s not allowed in state %s", ErrInvalidTransition, e.Operation, e.State)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
