package services

import (
	"github.com/google/uuid"

	"github.com/facilops/facilops/pkg/importer"
)

// ImportProgressEvent is published after each row of an insurance run.
type ImportProgressEvent struct {
	Entity  string
	Percent int
}

// ImportCompletedEvent is published once at the end of every import run,
// successful or not.
type ImportCompletedEvent struct {
	Entity     string
	Result     *importer.Result
	ActingUser uuid.UUID
}
