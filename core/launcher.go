package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/josephlewis42/smallsh/core/shell"
	"github.com/josephlewis42/smallsh/core/vos"
	"golang.org/x/sys/unix"
)

// ErrCannotOpen is returned when a redirect target can't be opened.
var ErrCannotOpen = errors.New("cannot open file")

// ExecError is returned when the program could not be executed, for example
// because it doesn't exist or isn't executable.
type ExecError struct {
	Program string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %s", e.Program, e.Reason())
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Reason returns the human readable cause, e.g. "No such file or directory".
func (e *ExecError) Reason() string {
	var errno syscall.Errno
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return "No such file or directory"
	case errors.As(e.Err, &errno):
		return capitalize(errno.Error())
	case errors.Is(e.Err, fs.ErrPermission):
		return "Permission denied"
	default:
		return capitalize(e.Err.Error())
	}
}

// SpawnError is returned when the operating system could not create a new
// process.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("couldn't start %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Launch is a started external command.
type Launch struct {
	Pid        int
	Background bool
	// Outcome is set for foreground commands once they terminate.
	Outcome Outcome
}

// Launcher starts external programs.
type Launcher struct {
	IO      vos.VIO
	Env     vos.VEnv
	Signals *SignalPolicy
	Jobs    *JobTracker

	// RedirectMode holds the permissions of files created by output
	// redirection.
	RedirectMode os.FileMode
	// NullDevice is read by background commands without an input redirect.
	NullDevice string

	// OnStart, if set, is called once the child is running.
	OnStart func(c *shell.Command, pid int)
}

// Launch runs the command. Foreground commands are waited for, background
// commands are announced, handed to the job tracker and left running.
func (l *Launcher) Launch(c *shell.Command) (*Launch, error) {
	args := c.ExecArgs()
	if len(args) == 0 {
		return nil, &ExecError{Program: "", Err: ErrNotFound}
	}

	files, err := l.openStreams(c)
	if err != nil {
		return nil, err
	}
	// The child owns its descriptors after start, the parent's copies are
	// closed regardless of the outcome.
	defer files.Close()

	path, err := LookPath(l.Env, args[0])
	if err != nil {
		return nil, &ExecError{Program: args[0], Err: err}
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   args,
		Env:    l.Env.Environ(),
		Stdin:  files.stdin(),
		Stdout: files.stdout(),
		Stderr: files.stderr(),
	}

	disposition := l.Signals.Foreground
	if c.Background {
		disposition = l.Signals.Background
	}
	if err := l.Signals.Spawn(disposition, cmd.Start); err != nil {
		return nil, classifyStartError(args[0], err)
	}
	files.Close()

	pid := cmd.Process.Pid
	Logger.Printf("started %q pid=%d background=%t", args, pid, c.Background)
	if l.OnStart != nil {
		l.OnStart(c, pid)
	}

	launch := &Launch{Pid: pid, Background: c.Background}
	if c.Background {
		out := l.IO.Stdout()
		fmt.Fprintf(out, "background pid is %d\n", pid)
		flush(out)

		l.Jobs.Track(pid)
		// The reap sweep collects the child.
		if err := cmd.Process.Release(); err != nil {
			Logger.Printf("releasing pid %d: %v", pid, err)
		}
		return launch, nil
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			Logger.Printf("waiting for pid %d: %v", pid, err)
		}
	}
	launch.Outcome = OutcomeFromProcessState(cmd.ProcessState)
	return launch, nil
}

// childStreams holds the streams handed to a child. Files opened for the
// child are tracked so the parent can close its copies.
type childStreams struct {
	in, out, err interface{}
	opened       []*os.File
}

func (cs *childStreams) stdin() io.Reader {
	if r, ok := cs.in.(io.Reader); ok {
		return r
	}
	return nil
}

func (cs *childStreams) stdout() io.Writer {
	if w, ok := cs.out.(io.Writer); ok {
		return w
	}
	return nil
}

func (cs *childStreams) stderr() io.Writer {
	if w, ok := cs.err.(io.Writer); ok {
		return w
	}
	return nil
}

func (cs *childStreams) Close() {
	for _, fd := range cs.opened {
		fd.Close()
	}
	cs.opened = nil
}

// openStreams resolves the child's standard streams. Input is opened before
// output so a bad input file leaves no output file behind.
func (l *Launcher) openStreams(c *shell.Command) (*childStreams, error) {
	cs := &childStreams{}

	switch {
	case c.InputRedirect != "":
		fd, err := os.OpenFile(c.InputRedirect, os.O_RDONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
		cs.opened = append(cs.opened, fd)
		cs.in = fd
	case c.Background:
		fd, err := os.OpenFile(l.NullDevice, os.O_RDONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
		cs.opened = append(cs.opened, fd)
		cs.in = fd
	default:
		// In-memory readers stay with the shell, a child would drain them.
		if fd, ok := vos.File(l.IO.Stdin()); ok {
			cs.in = fd
		}
	}

	if c.OutputRedirect != "" {
		fd, err := os.OpenFile(c.OutputRedirect, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, l.RedirectMode)
		if err != nil {
			cs.Close()
			return nil, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
		cs.opened = append(cs.opened, fd)
		cs.out = fd
	} else {
		cs.out = l.childWriter(l.IO.Stdout(), c.Background)
	}
	cs.err = l.childWriter(l.IO.Stderr(), c.Background)

	return cs, nil
}

// childWriter returns the writer a child may use. Background children
// outlive the copy goroutines exec.Cmd would need for plain writers, so they
// only get real files.
func (l *Launcher) childWriter(w io.Writer, background bool) interface{} {
	if fd, ok := vos.File(w); ok {
		return fd
	}
	if background || w == nil {
		return nil
	}
	return w
}

func classifyStartError(program string, err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.ENOENT, unix.EACCES, unix.EPERM, unix.ENOEXEC, unix.ENOTDIR,
			unix.EISDIR, unix.ELOOP, unix.ENAMETOOLONG, unix.ETXTBSY:
			return &ExecError{Program: program, Err: errno}
		}
	}
	return &SpawnError{Program: program, Err: err}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
