package backend

import (
	"errors"
	"fmt"
	"strings"
)

// NoProjectsDirectoryGuidance replaces the backend's message when no projects
// directory has been configured.
const NoProjectsDirectoryGuidance = "Please configure your projects directory in settings first."

const noProjectsMarker = "No projects directory set"

// ErrNoProjectsDirectory matches errors raised before a projects directory is
// configured.
var ErrNoProjectsDirectory = errors.New("backend: no projects directory set")

// Error is a failure reported by the backend for one command.
type Error struct {
	Command string
	Message string
	// Status is the transport status code when one exists.
	Status int

	noProjects bool
}

func (e *Error) Error() string {
	if e.Command == "" {
		return "backend: " + e.Message
	}
	return fmt.Sprintf("backend: %s: %s", e.Command, e.Message)
}

// Unwrap exposes ErrNoProjectsDirectory for the missing directory case.
func (e *Error) Unwrap() error {
	if e.noProjects {
		return ErrNoProjectsDirectory
	}
	return nil
}

// NewError builds an Error, rewriting the missing directory message into the
// settings guidance.
func NewError(command, message string, status int) *Error {
	e := &Error{Command: command, Message: message, Status: status}
	if strings.Contains(message, noProjectsMarker) {
		e.Message = NoProjectsDirectoryGuidance
		e.noProjects = true
	}
	return e
}

// Message returns the text to show a user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoProjectsDirectory) {
		return NoProjectsDirectoryGuidance
	}
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	return err.Error()
}
