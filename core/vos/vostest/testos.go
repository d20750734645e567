// Package vostest holds helpers for driving the shell in tests.
package vostest

import (
	"bytes"
	"os"
	"strings"

	"github.com/josephlewis42/smallsh/core/logger"
	"github.com/josephlewis42/smallsh/core/vos"
)

// RecordingEventRecorder keeps every event it receives.
type RecordingEventRecorder struct {
	Events []logger.LogType
}

var _ logger.Recorder = (*RecordingEventRecorder)(nil)

func (r *RecordingEventRecorder) Record(event logger.LogType) error {
	r.Events = append(r.Events, event)
	return nil
}

// Last returns the most recent event or nil.
func (r *RecordingEventRecorder) Last() logger.LogType {
	if len(r.Events) == 0 {
		return nil
	}
	return r.Events[len(r.Events)-1]
}

// NewBufferIO creates streams that read input and write both stdout and
// stderr into the returned buffer, in order.
func NewBufferIO(input string) (vos.VIO, *bytes.Buffer) {
	var out bytes.Buffer
	return vos.NewVIOAdapter(strings.NewReader(input), &out, &out), &out
}

// NewProcessEnv copies the environment of the test process, then applies the
// "key=value" overrides.
func NewProcessEnv(overrides ...string) *vos.MapEnv {
	return vos.NewMapEnvFromEnvList(append(os.Environ(), overrides...))
}
