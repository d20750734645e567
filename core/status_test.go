package core

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleWriteStatus() {
	WriteStatus(os.Stdout, Exited(0))
	WriteStatus(os.Stdout, Signaled(2))
	WriteStatus(os.Stdout, Outcome{})

	// Output: exit value 0
	// terminated by signal 2
	// exit value 1
}

func TestWriteStatusFlushes(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	assert.NoError(t, WriteStatus(w, Exited(3)))
	assert.Equal(t, "exit value 3\n", buf.String())
}

func TestOutcomeFromProcessState(t *testing.T) {
	cases := map[string]struct {
		script string
		want   Outcome
	}{
		"success":  {script: "exit 0", want: Exited(0)},
		"failure":  {script: "exit 7", want: Exited(7)},
		"signaled": {script: "kill -TERM $$", want: Signaled(15)},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := exec.Command("/bin/sh", "-c", tc.script)
			cmd.Run()

			got := OutcomeFromProcessState(cmd.ProcessState)
			assert.Equal(t, tc.want, got, fmt.Sprintf("status: %v", cmd.ProcessState))
		})
	}
}

func TestOutcomeFromProcessStateNil(t *testing.T) {
	assert.Equal(t, "exit value 1", OutcomeFromProcessState(nil).String())
}
