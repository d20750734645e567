package logger

// LogEntry is a single timestamped event. Exactly one of the event fields is
// set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart *SessionStart `json:"session_start,omitempty"`
	SessionEnd   *SessionEnd   `json:"session_end,omitempty"`
	RunCommand   *RunCommand   `json:"run_command,omitempty"`
	CommandExit  *CommandExit  `json:"command_exit,omitempty"`
	Builtin      *Builtin      `json:"builtin,omitempty"`
	CommandError *CommandError `json:"command_error,omitempty"`
	JobDone      *JobDone      `json:"job_done,omitempty"`
}

// LogType is implemented by every event that can be stored in a LogEntry.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry or nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.RunCommand != nil:
		return le.RunCommand
	case le.CommandExit != nil:
		return le.CommandExit
	case le.Builtin != nil:
		return le.Builtin
	case le.CommandError != nil:
		return le.CommandError
	case le.JobDone != nil:
		return le.JobDone
	default:
		return nil
	}
}

// SessionStart is logged once the shell is ready to read commands.
type SessionStart struct {
	Pid        int    `json:"pid"`
	WorkingDir string `json:"working_dir"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// SessionEnd is logged when the read loop stops.
type SessionEnd struct {
	// LastStatus holds the formatted status at the time the shell quit.
	LastStatus string `json:"last_status"`
	// OrphanedJobs holds background pids that were never reaped.
	OrphanedJobs []int `json:"orphaned_jobs,omitempty"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// RunCommand is logged when an external program is started.
type RunCommand struct {
	Command        []string `json:"command"`
	Pid            int      `json:"pid"`
	Background     bool     `json:"background,omitempty"`
	InputRedirect  string   `json:"input_redirect,omitempty"`
	OutputRedirect string   `json:"output_redirect,omitempty"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// CommandExit is logged when a foreground program has been waited for.
type CommandExit struct {
	Command []string `json:"command"`
	Pid     int      `json:"pid"`
	Status  string   `json:"status"`
}

func (e *CommandExit) setOn(le *LogEntry) { le.CommandExit = e }

// Builtin is logged after the shell runs a builtin.
type Builtin struct {
	Command []string `json:"command"`
	Status  string   `json:"status"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }

// Error kinds for CommandError.
const (
	ErrorKindRedirect = "redirect"
	ErrorKindExec     = "exec"
	ErrorKindSpawn    = "spawn"
)

// CommandError is logged when an external program could not be started.
type CommandError struct {
	Command []string `json:"command"`
	Kind    string   `json:"kind"`
	Error   string   `json:"error"`
}

func (e *CommandError) setOn(le *LogEntry) { le.CommandError = e }

// JobDone is logged when the reap sweep collects a finished child.
type JobDone struct {
	Pid int `json:"pid"`
	// Tracked is false for children that were reaped without having been
	// registered as background jobs.
	Tracked bool   `json:"tracked"`
	Status  string `json:"status"`
}

func (e *JobDone) setOn(le *LogEntry) { le.JobDone = e }
