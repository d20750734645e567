package core

import (
	"fmt"
	"os"
	"sort"

	"github.com/josephlewis42/smallsh/core/vos"
	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string)
}

type ShellBuiltinFunc func(s *Shell, args []string)

func (f ShellBuiltinFunc) Main(s *Shell, args []string) {
	f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinNames returns the sorted names of all builtins.
func BuiltinNames() []string {
	var out []string
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Exit quits the shell. Background jobs are left running.
func Exit(s *Shell, args []string) {
	s.LastStatus = Exited(1)
	s.Quit = true
}

// Cd is the cd shell builtin. Without an argument it changes to HOME.
func Cd(s *Shell, args []string) {
	if len(args) < 2 {
		home, ok := s.env.LookupEnv(vos.EnvHome)
		if !ok || home == "" {
			Logger.Printf("cd: %s is not set", vos.EnvHome)
			cdFailed(s)
			return
		}
		if err := os.Chdir(home); err != nil {
			Logger.Printf("cd: %v", err)
			cdFailed(s)
			return
		}
		s.LastStatus = Exited(0)
		return
	}

	if err := os.Chdir(args[1]); err != nil {
		Logger.Printf("cd: %v", err)
		cdFailed(s)
	}
}

func cdFailed(s *Shell) {
	s.colors.Fprintln(s.vio.Stderr(), ColorBoldRed, "No such file or directory.")
	s.LastStatus = Exited(1)
}

// Status prints the outcome of the last foreground command.
func Status(s *Shell, args []string) {
	WriteStatus(s.vio.Stdout(), s.LastStatus)
}

// History lists or clears the lines entered in this session.
func History(s *Shell, args []string) {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.vio.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: history [-c]")
		fmt.Fprintln(w, "Display the history list with line numbers.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		return
	}

	if *clear {
		s.history = nil
		if s.readline != nil {
			s.readline.Operation.ResetHistory()
		}
		return
	}

	w := s.vio.Stdout()
	for i, line := range s.history {
		fmt.Fprintf(w, "%5d  %s\n", i+1, line)
	}
	flush(w)
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["status"] = ShellBuiltinFunc(Status)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
}
