package vostest

import (
	"fmt"
	"testing"

	"github.com/josephlewis42/smallsh/core/logger"
	"github.com/stretchr/testify/assert"
)

func ExampleNewBufferIO() {
	vio, out := NewBufferIO("")
	fmt.Fprint(vio.Stdout(), "out ")
	fmt.Fprint(vio.Stderr(), "err")

	fmt.Println(out.String())

	// Output: out err
}

func TestNewProcessEnv(t *testing.T) {
	env := NewProcessEnv("HOME=/nowhere", "SMALLSH_TEST=1")

	assert.Equal(t, "/nowhere", env.Getenv("HOME"))
	assert.Equal(t, "1", env.Getenv("SMALLSH_TEST"))
}

func TestRecordingEventRecorder(t *testing.T) {
	var r RecordingEventRecorder
	assert.Nil(t, r.Last())

	assert.NoError(t, r.Record(&logger.SessionStart{}))
	assert.NoError(t, r.Record(&logger.SessionEnd{}))

	assert.Len(t, r.Events, 2)
	assert.IsType(t, &logger.SessionEnd{}, r.Last())
}
