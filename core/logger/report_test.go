package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleEvents() []LogType {
	return []LogType{
		&SessionStart{Pid: 100, WorkingDir: "/tmp"},
		&RunCommand{Command: []string{"ls"}, Pid: 101, OutputRedirect: "out"},
		&CommandExit{Command: []string{"ls"}, Pid: 101, Status: "exit value 0"},
		&RunCommand{Command: []string{"sleep", "1"}, Pid: 102, Background: true},
		&Builtin{Command: []string{"status"}, Status: "exit value 0"},
		&CommandError{Command: []string{"nope"}, Kind: ErrorKindExec, Error: "No such file or directory"},
		&CommandError{Command: []string{"nope"}, Kind: ErrorKindExec, Error: "No such file or directory"},
		&JobDone{Pid: 102, Tracked: true, Status: "exit value 0"},
		&JobDone{Pid: 103, Tracked: false, Status: "terminated by signal 15"},
		&SessionEnd{LastStatus: "exit value 1", OrphanedJobs: []int{104}},
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	l := NewJsonLinesLogRecorder(&buf)
	session := l.NewSession()
	for _, event := range sampleEvents() {
		assert.NoError(t, session.Record(event))
	}
	// A second, sessionless entry.
	assert.NoError(t, l.Sessionless().Record(&Builtin{Command: []string{"cd"}}))

	var report Report
	assert.NoError(t, ReadJSONLinesLog(&buf, report.Update))

	assert.Equal(t, 11, report.LogEntries)
	assert.Equal(t, 1, report.Sessions)
	assert.Equal(t, 1, report.Command.CommandNames.Get("ls"))
	assert.Equal(t, 1, report.Command.CommandNames.Get("sleep"))
	assert.Equal(t, 1, report.Command.Background)
	assert.Equal(t, 1, report.Command.Redirected)
	assert.Equal(t, 1, report.Command.Statuses.Get("exit value 0"))
	assert.Equal(t, 1, report.Builtin.Names.Get("status"))
	assert.Equal(t, 1, report.Builtin.Names.Get("cd"))
	assert.Equal(t, 2, report.Failure.Count)
	assert.Equal(t, 2, report.Failure.Failures.Get("nope", ErrorKindExec, "No such file or directory"))
	assert.Equal(t, 2, report.Job.Completed)
	assert.Equal(t, 1, report.Job.Untracked)
	assert.Equal(t, 1, report.Job.Orphaned)
	assert.Equal(t, 1, report.Job.Statuses.Get("terminated by signal 15"))

	out, err := json.Marshal(&report)
	assert.NoError(t, err)
	assert.Contains(t, string(out), `"failures":[{"count":2,"event":{"command":"nope","error":"No such file or directory","kind":"exec"}}]`)
}

func TestReadJSONLinesLogInvalid(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader(`{"timestamp_micros": "abc"}`), func(*LogEntry) {})
	assert.Error(t, err)
}

func TestReportUnknownEntry(t *testing.T) {
	var report Report
	report.Update(&LogEntry{})

	assert.Equal(t, 1, report.LogEntries)
	assert.Equal(t, 1, report.InvalidEntries.Get("<nil>"))
}

func TestPathCounter(t *testing.T) {
	ctr := NewPathCounter("a", "b")
	ctr.Increment("x", "y")
	ctr.Increment("x", "y")
	ctr.Increment("z", "y")

	out, err := json.Marshal(ctr)
	assert.NoError(t, err)
	assert.JSONEq(t, `[
		{"count":2,"event":{"a":"x","b":"y"}},
		{"count":1,"event":{"a":"z","b":"y"}}
	]`, string(out))

	assert.Panics(t, func() { ctr.Increment("only-one") })
}
