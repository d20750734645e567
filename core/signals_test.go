package core

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

// interruptSelf is a child that interrupts itself and exits 3 if it survives.
func interruptSelf(t *testing.T, p *SignalPolicy, d Disposition) Outcome {
	t.Helper()

	cmd := exec.Command("/bin/sh", "-c", "kill -INT $$; exit 3")
	if err := p.Spawn(d, cmd.Start); err != nil {
		t.Fatal(err)
	}
	cmd.Wait()

	return OutcomeFromProcessState(cmd.ProcessState)
}

func TestSignalPolicySpawn(t *testing.T) {
	p := DefaultSignalPolicy()
	stop := p.Install()
	defer stop()

	assert.Equal(t, Signaled(2), interruptSelf(t, p, p.Foreground))
	assert.Equal(t, Exited(3), interruptSelf(t, p, p.Background))
	// Go handlers don't survive exec.
	assert.Equal(t, Signaled(2), interruptSelf(t, p, DispositionCustom))

	// The shell disposition is restored after each start.
	assert.Equal(t, Signaled(2), interruptSelf(t, p, p.Foreground))
}

func TestSignalPolicyIgnoringShell(t *testing.T) {
	p := DefaultSignalPolicy()
	p.Shell = DispositionIgnore
	stop := p.Install()
	defer stop()

	assert.Equal(t, Signaled(2), interruptSelf(t, p, DispositionDefault))
	assert.Equal(t, Exited(3), interruptSelf(t, p, DispositionIgnore))
}

func TestDispositionString(t *testing.T) {
	assert.Equal(t, "default", DispositionDefault.String())
	assert.Equal(t, "ignore", DispositionIgnore.String())
	assert.Equal(t, "custom", DispositionCustom.String())
	assert.Equal(t, "unknown", Disposition(42).String())
}
