package core

import (
	"bufio"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/smallsh/core/config"
	"github.com/josephlewis42/smallsh/core/vos"
)

// LineReader prompts for and reads a single line of input.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

var _ LineReader = (*readline.Instance)(nil)

// boundedReader reads lines of at most max-1 bytes. The remainder of a longer
// line is returned by the following calls.
type boundedReader struct {
	r      *bufio.Reader
	w      io.Writer
	prompt string
	max    int
}

// NewLineReader creates a LineReader that writes the prompt to w and reads
// from r.
func NewLineReader(r io.Reader, w io.Writer, max int) LineReader {
	if max < 2 {
		max = 2
	}
	return &boundedReader{
		r:   bufio.NewReader(r),
		w:   w,
		max: max,
	}
}

func (b *boundedReader) SetPrompt(prompt string) {
	b.prompt = prompt
}

func (b *boundedReader) Readline() (string, error) {
	io.WriteString(b.w, b.prompt)
	flush(b.w)

	var line strings.Builder
	for line.Len() < b.max-1 {
		c, err := b.r.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				break
			}
			return "", err
		}
		if c == '\n' {
			break
		}
		line.WriteByte(c)
	}

	return line.String(), nil
}

// isTerminal reports whether stream is a file attached to a terminal.
func isTerminal(stream interface{}) bool {
	fd, ok := vos.File(stream)
	return ok && readline.IsTerminal(int(fd.Fd()))
}

// newReadline sets up an interactive line editor over the shell's streams.
func newReadline(cfg *config.Configuration, vio vos.VIO) (*readline.Instance, error) {
	rlConfig := &readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.ResolvePath(cfg.LineEditing.HistoryFile),
		Stdin:       readline.NewCancelableStdin(vio.Stdin()),
		Stdout:      vio.Stdout(),
		Stderr:      vio.Stderr(),

		FuncIsTerminal: func() bool {
			return isTerminal(vio.Stdin())
		},
	}

	if err := rlConfig.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(rlConfig)
}

// useLineEditing reports whether the line editor should replace plain reads.
func useLineEditing(cfg *config.Configuration, vio vos.VIO) bool {
	return cfg.LineEditing.Enabled && isTerminal(vio.Stdin()) && isTerminal(vio.Stdout())
}
