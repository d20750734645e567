package core

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/smallsh/core/config"
	"github.com/josephlewis42/smallsh/core/logger"
	"github.com/josephlewis42/smallsh/core/shell"
	"github.com/josephlewis42/smallsh/core/vos"
)

// Logger receives diagnostic messages. It discards them unless replaced.
var Logger = log.New(io.Discard, "", log.LstdFlags)

// Shell reads commands and runs them until told to quit.
type Shell struct {
	Config *config.Configuration

	// LastStatus is the outcome of the last foreground command or builtin
	// that sets one.
	LastStatus Outcome
	// Quit stops the read loop after the current command.
	Quit bool

	vio      vos.VIO
	env      vos.VEnv
	events   logger.Recorder
	input    LineReader
	readline *readline.Instance
	signals  *SignalPolicy
	jobs     *JobTracker
	launcher *Launcher
	colors   *ColorPrinter
	history  []string
}

// NewShell creates a shell using the configuration, standard streams and
// environment. A nil configuration uses the built-in defaults and a nil
// recorder drops events.
func NewShell(cfg *config.Configuration, vio vos.VIO, env vos.VEnv, events logger.Recorder) (*Shell, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if events == nil {
		events = logger.NopRecorder{}
	}

	s := &Shell{
		Config:     cfg,
		LastStatus: Exited(0),
		vio:        vio,
		env:        env,
		events:     events,
		signals:    DefaultSignalPolicy(),
		jobs:       NewJobTracker(nil),
		colors:     NewColorPrinter(cfg.Color),
	}

	s.launcher = &Launcher{
		IO:           vio,
		Env:          env,
		Signals:      s.signals,
		Jobs:         s.jobs,
		RedirectMode: cfg.RedirectFileMode(),
		NullDevice:   cfg.NullDevice,
		OnStart:      s.recordStart,
	}

	if useLineEditing(cfg, vio) {
		rl, err := newReadline(cfg, vio)
		if err != nil {
			return nil, fmt.Errorf("couldn't set up line editing: %w", err)
		}
		s.readline = rl
		s.input = rl
	} else {
		s.input = NewLineReader(vio.Stdin(), vio.Stdout(), cfg.MaxLineBytes)
	}

	return s, nil
}

// Status returns the outcome reported by the status builtin.
func (s *Shell) Status() Outcome {
	return s.LastStatus
}

// Jobs returns the background job tracker.
func (s *Shell) Jobs() *JobTracker {
	return s.jobs
}

// Signals returns the signal policy applied by Run and to started children.
func (s *Shell) Signals() *SignalPolicy {
	return s.signals
}

// History returns the lines entered so far.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

// IsBuiltin reports whether name is run by the shell itself.
func (s *Shell) IsBuiltin(name string) bool {
	_, ok := AllBuiltins[name]
	return ok
}

// Run reads and executes commands until the exit builtin runs or the input
// ends. Finished background jobs are reported after every command.
func (s *Shell) Run() error {
	stop := s.signals.Install()
	defer stop()

	wd, _ := os.Getwd()
	s.record(&logger.SessionStart{Pid: os.Getpid(), WorkingDir: wd})
	defer func() {
		s.record(&logger.SessionEnd{
			LastStatus:   s.LastStatus.String(),
			OrphanedJobs: s.jobs.Jobs(),
		})
	}()

	for !s.Quit {
		s.input.SetPrompt(s.Config.Prompt)
		line, err := s.input.Readline()

		switch {
		case err == readline.ErrInterrupt:
			continue

		case err == io.EOF:
			Logger.Println("input closed, quitting")
			s.Quit = true

		case err != nil:
			return fmt.Errorf("couldn't read input: %w", err)

		default:
			s.Execute(line)
		}

		s.Sweep()
	}

	return nil
}

// Execute runs a single line of input.
func (s *Shell) Execute(line string) {
	cmd := shell.Parse(line)
	if cmd.IsEmpty() {
		return
	}
	s.history = append(s.history, line)
	if cmd.IsComment() {
		return
	}

	if builtin, ok := AllBuiltins[cmd.Program()]; ok {
		builtin.Main(s, cmd.Tokens)
		s.record(&logger.Builtin{Command: cmd.Tokens, Status: s.LastStatus.String()})
		return
	}

	s.launch(cmd)
}

func (s *Shell) launch(cmd *shell.Command) {
	launch, err := s.launcher.Launch(cmd)

	var execErr *ExecError
	switch {
	case err == nil:
		if !launch.Background {
			s.LastStatus = launch.Outcome
			s.record(&logger.CommandExit{
				Command: cmd.ExecArgs(),
				Pid:     launch.Pid,
				Status:  launch.Outcome.String(),
			})
		}
		return

	case errors.Is(err, ErrCannotOpen):
		out := s.vio.Stdout()
		fmt.Fprintln(out, "smallsh: cannot open file.")
		flush(out)
		s.recordError(cmd, logger.ErrorKindRedirect, err)

	case errors.As(err, &execErr):
		s.colors.Fprintln(s.vio.Stderr(), ColorBoldRed, execErr.Error())
		s.recordError(cmd, logger.ErrorKindExec, err)

	default:
		s.colors.Fprintln(s.vio.Stderr(), ColorBoldRed, "smallsh:", err)
		s.recordError(cmd, logger.ErrorKindSpawn, err)
	}

	Logger.Printf("command %q failed: %v", cmd.Tokens, err)
	if !cmd.Background {
		s.LastStatus = Exited(1)
	}
}

// Sweep reports background jobs that finished since the last sweep.
func (s *Shell) Sweep() {
	out := s.vio.Stdout()
	for _, done := range s.jobs.Sweep() {
		fmt.Fprintf(out, "background pid %d is done: ", done.Pid)
		WriteStatus(out, done.Outcome)

		s.record(&logger.JobDone{
			Pid:     done.Pid,
			Tracked: done.Tracked,
			Status:  done.Outcome.String(),
		})
	}
}

// Close releases the line editor, if any.
func (s *Shell) Close() error {
	if s.readline != nil {
		return s.readline.Close()
	}
	return nil
}

func (s *Shell) recordStart(cmd *shell.Command, pid int) {
	s.record(&logger.RunCommand{
		Command:        cmd.ExecArgs(),
		Pid:            pid,
		Background:     cmd.Background,
		InputRedirect:  cmd.InputRedirect,
		OutputRedirect: cmd.OutputRedirect,
	})
}

func (s *Shell) recordError(cmd *shell.Command, kind string, err error) {
	s.record(&logger.CommandError{
		Command: cmd.ExecArgs(),
		Kind:    kind,
		Error:   err.Error(),
	})
}

func (s *Shell) record(event logger.LogType) {
	if err := s.events.Record(event); err != nil {
		Logger.Printf("couldn't record event: %v", err)
	}
}
