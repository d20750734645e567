package core

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// OutcomeKind tells how a process ended.
type OutcomeKind int

const (
	// OutcomeUnknown is reported when the kernel result was neither a normal
	// exit nor a termination by signal.
	OutcomeUnknown OutcomeKind = iota
	OutcomeExited
	OutcomeSignaled
)

// Outcome is the termination result of a command.
type Outcome struct {
	Kind OutcomeKind
	// Code is the exit code for OutcomeExited and the signal number for
	// OutcomeSignaled.
	Code int
}

// Exited creates the outcome of a process that exited with code.
func Exited(code int) Outcome {
	return Outcome{Kind: OutcomeExited, Code: code}
}

// Signaled creates the outcome of a process killed by signal sig.
func Signaled(sig int) Outcome {
	return Outcome{Kind: OutcomeSignaled, Code: sig}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeExited:
		return fmt.Sprintf("exit value %d", o.Code)
	case OutcomeSignaled:
		return fmt.Sprintf("terminated by signal %d", o.Code)
	default:
		return "exit value 1"
	}
}

// WriteStatus writes the status line for o and flushes w if it buffers.
func WriteStatus(w io.Writer, o Outcome) error {
	if _, err := fmt.Fprintln(w, o.String()); err != nil {
		return err
	}
	flush(w)
	return nil
}

// flush pushes buffered output through writers that support it. Errors are
// dropped, terminals and pipes reject Sync.
func flush(w io.Writer) {
	switch f := w.(type) {
	case interface{ Flush() error }:
		_ = f.Flush()
	case interface{ Sync() error }:
		_ = f.Sync()
	}
}

// OutcomeFromWaitStatus converts a raw wait status.
func OutcomeFromWaitStatus(ws unix.WaitStatus) Outcome {
	switch {
	case ws.Exited():
		return Exited(ws.ExitStatus())
	case ws.Signaled():
		return Signaled(int(ws.Signal()))
	default:
		return Outcome{}
	}
}

// OutcomeFromProcessState converts the result of waiting on an os.Process.
func OutcomeFromProcessState(ps *os.ProcessState) Outcome {
	if ps == nil {
		return Outcome{}
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok {
		return OutcomeFromWaitStatus(unix.WaitStatus(ws))
	}
	if ps.Exited() {
		return Exited(ps.ExitCode())
	}
	return Outcome{}
}
