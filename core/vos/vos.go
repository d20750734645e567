// Package vos holds the small slice of the operating system the shell talks
// to directly: its standard streams and its environment. Keeping them behind
// interfaces lets tests drive the shell without a terminal.
package vos

import "io"

// VIO holds the standard streams of a process.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}
