package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/runger/vexec/internal/cmdutil"
)

// ErrExecutionNotFound is returned when an execution is not found.
var ErrExecutionNotFound = errors.New("execution not found")

// defaultQueryLimit bounds QueryExecutions when no limit is given.
const defaultQueryLimit = 1000

// RecordExecution inserts e. The exec ID, start time and command hash are
// filled in when empty.
func (s *SQLiteStore) RecordExecution(ctx context.Context, e *Execution) error {
	if e == nil {
		return errors.New("execution cannot be nil")
	}
	if e.Verb == "" {
		return errors.New("verb is required")
	}
	if e.Command == "" {
		return errors.New("command is required")
	}

	if e.ExecID == "" {
		e.ExecID = uuid.NewString()
	}
	if e.TsStartUnixMs == 0 {
		e.TsStartUnixMs = time.Now().UnixMilli()
	}
	if e.CommandHash == "" {
		e.CommandHash = cmdutil.HashCommand(cmdutil.CommandShape(e.Verb, e.Command))
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO executions (
			exec_id, ts_start_unix_ms, ts_end_unix_ms, cwd, verb,
			invocation, command, command_hash, mode, exit_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ExecID,
		e.TsStartUnixMs,
		e.TsEndUnixMs,
		e.CWD,
		e.Verb,
		e.Invocation,
		e.Command,
		e.CommandHash,
		e.Mode,
		e.ExitCode,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("execution with id %s already exists", e.ExecID)
		}
		return fmt.Errorf("failed to record execution: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

// UpdateExitCode records the end of an execution.
func (s *SQLiteStore) UpdateExitCode(ctx context.Context, execID string, exitCode int, endTime int64) error {
	if execID == "" {
		return errors.New("exec_id is required")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE executions
		SET ts_end_unix_ms = ?, exit_code = ?
		WHERE exec_id = ?
	`, endTime, exitCode, execID)
	if err != nil {
		return fmt.Errorf("failed to update execution: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrExecutionNotFound
	}
	return nil
}

// QueryExecutions returns the executions matching q, most recent first.
// With q.Unique, only the latest execution of each command hash is
// returned and Runs counts the matching executions sharing it.
func (s *SQLiteStore) QueryExecutions(ctx context.Context, q ExecutionQuery) ([]Execution, error) {
	where := "1=1"
	args := make([]any, 0, 3)

	if q.Verb != "" {
		where += " AND verb = ?"
		args = append(args, q.Verb)
	}
	if q.CWD != "" {
		where += " AND cwd = ?"
		args = append(args, q.CWD)
	}
	if q.FailureOnly {
		where += " AND exit_code IS NOT NULL AND exit_code != 0"
	}

	var query string
	if q.Unique {
		query = `
		SELECT e.id, e.exec_id, e.ts_start_unix_ms, e.ts_end_unix_ms, e.cwd, e.verb,
		       e.invocation, e.command, e.command_hash, e.mode, e.exit_code, g.runs
		FROM executions e
		JOIN (
			SELECT MAX(id) AS id, COUNT(*) AS runs
			FROM executions
			WHERE ` + where + `
			GROUP BY command_hash
		) g ON g.id = e.id
		ORDER BY e.ts_start_unix_ms DESC, e.id DESC LIMIT ?`
	} else {
		query = `
		SELECT id, exec_id, ts_start_unix_ms, ts_end_unix_ms, cwd, verb,
		       invocation, command, command_hash, mode, exit_code, 1
		FROM executions
		WHERE ` + where + `
		ORDER BY ts_start_unix_ms DESC, id DESC LIMIT ?`
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer rows.Close()

	var out []Execution
	for rows.Next() {
		var e Execution
		var endTime sql.NullInt64
		var exitCode sql.NullInt32

		if err := rows.Scan(
			&e.ID,
			&e.ExecID,
			&e.TsStartUnixMs,
			&endTime,
			&e.CWD,
			&e.Verb,
			&e.Invocation,
			&e.Command,
			&e.CommandHash,
			&e.Mode,
			&exitCode,
			&e.Runs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}

		if endTime.Valid {
			e.TsEndUnixMs = &endTime.Int64
		}
		if exitCode.Valid {
			ec := int(exitCode.Int32)
			e.ExitCode = &ec
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating executions: %w", err)
	}
	return out, nil
}
