// Package storage provides the SQLite execution history of vexec.
package storage

import (
	"context"
)

// Store defines the interface for all storage operations.
type Store interface {
	RecordExecution(ctx context.Context, e *Execution) error
	UpdateExitCode(ctx context.Context, execID string, exitCode int, endTime int64) error
	QueryExecutions(ctx context.Context, q ExecutionQuery) ([]Execution, error)

	// Lifecycle
	Close() error
}

// Execution is one verb launch.
type Execution struct {
	ID            int64
	ExecID        string // uuid, generated when empty
	TsStartUnixMs int64
	TsEndUnixMs   *int64
	CWD           string

	// Verb is the name of the verb run.
	Verb string
	// Invocation is what was typed, e.g. "mv ../b.txt".
	Invocation string
	// Command is the expanded launch (argv joined with spaces, or the
	// shell line).
	Command string
	// CommandHash identifies the command's shape: the same verb run the
	// same way on other files has the same hash.
	CommandHash string
	// Mode is the external mode: "stay", "leave" or "from_shell".
	Mode string

	// ExitCode is nil while the command runs, and stays nil for commands
	// handed to the parent shell.
	ExitCode *int

	// Runs is the number of matching executions sharing CommandHash in
	// unique queries, 1 otherwise.
	Runs int
}

// ExecutionQuery filters QueryExecutions.
type ExecutionQuery struct {
	Verb        string
	CWD         string
	FailureOnly bool
	// Unique keeps only the latest execution of each command hash.
	Unique bool
	Limit  int // 0 means the default limit
}
