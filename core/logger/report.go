package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Command CommandReport `json:"command_report"`
	Builtin BuiltinReport `json:"builtin_report"`
	Failure FailureReport `json:"failure_report"`
	Job     JobReport     `json:"job_report"`

	sessions map[string]bool
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	if le.SessionID != "" {
		if r.sessions == nil {
			r.sessions = make(map[string]bool)
		}
		if !r.sessions[le.SessionID] {
			r.sessions[le.SessionID] = true
			r.Sessions++
		}
	}

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.Command.update(event)
	case *CommandExit:
		r.Command.Statuses.Increment(event.Status)
	case *Builtin:
		r.Builtin.update(event)
	case *CommandError:
		r.Failure.update(event)
	case *JobDone:
		r.Job.update(event)
	case *SessionEnd:
		r.Job.Orphaned += len(event.OrphanedJobs)
	case *SessionStart:
		// Ignore
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type CommandReport struct {
	// Name of the program and how many times it was started.
	CommandNames StrCounter `json:"command_names"`
	// Foreground outcomes and their counts.
	Statuses   StrCounter `json:"statuses"`
	Background int        `json:"background"`
	Redirected int        `json:"redirected"`
}

func (r *CommandReport) update(rc *RunCommand) {
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	if rc.Background {
		r.Background++
	}
	if rc.InputRedirect != "" || rc.OutputRedirect != "" {
		r.Redirected++
	}
}

type BuiltinReport struct {
	Names StrCounter `json:"names"`
}

func (r *BuiltinReport) update(b *Builtin) {
	if len(b.Command) > 0 {
		r.Names.Increment(b.Command[0])
	}
}

type FailureReport struct {
	Count    int          `json:"count"`
	Failures *PathCounter `json:"failures,omitempty"`
}

func (r *FailureReport) update(ce *CommandError) {
	r.Count++
	if r.Failures == nil {
		r.Failures = NewPathCounter("command", "kind", "error")
	}

	name := ""
	if len(ce.Command) > 0 {
		name = ce.Command[0]
	}
	r.Failures.Increment(name, ce.Kind, ce.Error)
}

type JobReport struct {
	Completed int        `json:"completed"`
	Untracked int        `json:"untracked"`
	Orphaned  int        `json:"orphaned"`
	Statuses  StrCounter `json:"statuses"`
}

func (r *JobReport) update(jd *JobDone) {
	r.Completed++
	if !jd.Tracked {
		r.Untracked++
	}
	r.Statuses.Increment(jd.Status)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the number of times key was seen.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implements custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the number of times the tuple was seen.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
