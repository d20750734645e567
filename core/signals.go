package core

import (
	"os"
	"os/signal"
)

// Disposition is how a process reacts to the interrupt signal.
type Disposition int

const (
	// DispositionDefault leaves the signal to the operating system, which
	// terminates the process.
	DispositionDefault Disposition = iota
	// DispositionIgnore discards the signal.
	DispositionIgnore
	// DispositionCustom handles the signal in Go. Handlers do not survive
	// exec, so children given this disposition start with the default.
	DispositionCustom
)

func (d Disposition) String() string {
	switch d {
	case DispositionDefault:
		return "default"
	case DispositionIgnore:
		return "ignore"
	case DispositionCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// SignalPolicy holds the dispositions of the shell and the children it starts.
//
// A child inherits ignored signals across exec while handled signals reset to
// their default, so the policy arranges the shell's own disposition around
// each process start.
type SignalPolicy struct {
	Signals    []os.Signal
	Shell      Disposition
	Foreground Disposition
	Background Disposition

	ch chan os.Signal
}

// DefaultSignalPolicy swallows interrupts in the shell, lets them terminate
// foreground children and keeps them away from background children.
func DefaultSignalPolicy() *SignalPolicy {
	return &SignalPolicy{
		Signals:    []os.Signal{os.Interrupt},
		Shell:      DispositionCustom,
		Foreground: DispositionDefault,
		Background: DispositionIgnore,
	}
}

// Install applies the shell disposition. The returned function undoes it.
func (p *SignalPolicy) Install() (stop func()) {
	p.restore()

	return func() {
		if p.ch != nil {
			signal.Stop(p.ch)
			close(p.ch)
			p.ch = nil
		}
		signal.Reset(p.Signals...)
	}
}

// Spawn calls start while the process-wide disposition is the one a new child
// should inherit, then puts back the shell disposition.
func (p *SignalPolicy) Spawn(d Disposition, start func() error) error {
	switch d {
	case DispositionIgnore:
		signal.Ignore(p.Signals...)
		defer p.restore()

	default:
		if p.anyIgnored() {
			p.handle()
			defer p.restore()
		}
	}

	return start()
}

func (p *SignalPolicy) restore() {
	switch p.Shell {
	case DispositionIgnore:
		signal.Ignore(p.Signals...)
	case DispositionCustom:
		p.handle()
	default:
		if p.ch != nil {
			signal.Stop(p.ch)
		}
		signal.Reset(p.Signals...)
	}
}

// handle routes the signals to a channel drained by a logging goroutine.
func (p *SignalPolicy) handle() {
	if p.ch == nil {
		p.ch = make(chan os.Signal, 1)
		go func(ch <-chan os.Signal) {
			for sig := range ch {
				Logger.Printf("shell received %v, ignoring", sig)
			}
		}(p.ch)
	}
	signal.Notify(p.ch, p.Signals...)
}

func (p *SignalPolicy) anyIgnored() bool {
	for _, sig := range p.Signals {
		if signal.Ignored(sig) {
			return true
		}
	}
	return false
}
