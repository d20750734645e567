package shell

import "strings"

const (
	OpBackground  = "&"
	OpRedirectIn  = "<"
	OpRedirectOut = ">"
	CommentPrefix = "#"
)

// Command is the parsed form of a single input line.
type Command struct {
	// Tokens holds the words of the line as the parent shell sees them. A
	// trailing background marker is dropped, redirection words are kept.
	Tokens []string

	// InputRedirect is the file bound to stdin, empty if unset.
	InputRedirect string

	// OutputRedirect is the file bound to stdout, empty if unset.
	OutputRedirect string

	// Background is set if the shell shouldn't wait for the command.
	Background bool
}

// Classify inspects the words of a line for background and redirection
// markers.
//
// Only three word commands are inspected: "prog arg &" runs in the
// background, "prog < file" and "prog > file" redirect. Longer commands are
// passed through untouched, so "ls -l > out" runs ls with three arguments.
func Classify(tokens []string) *Command {
	cmd := &Command{Tokens: tokens}
	if len(tokens) != 3 {
		return cmd
	}

	switch {
	case tokens[2] == OpBackground:
		cmd.Background = true
		cmd.Tokens = tokens[:2]
	case tokens[1] == OpRedirectIn:
		cmd.InputRedirect = tokens[2]
	case tokens[1] == OpRedirectOut:
		cmd.OutputRedirect = tokens[2]
	}

	return cmd
}

// Parse tokenizes and classifies a line.
func Parse(line string) *Command {
	return Classify(Tokenize(line))
}

// IsEmpty returns true if the line had no words.
func (c *Command) IsEmpty() bool {
	return len(c.Tokens) == 0
}

// IsComment returns true if the first word starts a comment.
func (c *Command) IsComment() bool {
	return !c.IsEmpty() && strings.HasPrefix(c.Tokens[0], CommentPrefix)
}

// Program is the name of the program or builtin to run.
func (c *Command) Program() string {
	if c.IsEmpty() {
		return ""
	}
	return c.Tokens[0]
}

// IsRedirected returns true if either stream is redirected.
func (c *Command) IsRedirected() bool {
	return c.InputRedirect != "" || c.OutputRedirect != ""
}

// ExecArgs returns the argument vector for the program, including the
// program name as the first entry, with redirection words scrubbed.
func (c *Command) ExecArgs() []string {
	args := c.Tokens
	if c.IsRedirected() && len(args) > 1 {
		args = args[:1]
	}

	return append([]string(nil), args...)
}
