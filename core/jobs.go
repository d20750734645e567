package core

import (
	"errors"
	"sort"

	"golang.org/x/sys/unix"
)

// Reaper collects terminated children without blocking.
type Reaper interface {
	// Reap returns the pid and outcome of one terminated child. A pid of 0
	// means children exist but none have terminated.
	Reap() (pid int, outcome Outcome, err error)
}

// unixReaper reaps any child of the process with wait4.
type unixReaper struct{}

var _ Reaper = unixReaper{}

func (unixReaper) Reap() (int, Outcome, error) {
	var ws unix.WaitStatus
	pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
	if err != nil || pid <= 0 {
		return 0, Outcome{}, err
	}
	return pid, OutcomeFromWaitStatus(ws), nil
}

// Completion is a background child collected by a sweep.
type Completion struct {
	Pid     int
	Outcome Outcome
	// Tracked is false if the child was never registered with Track.
	Tracked bool
}

// JobTracker remembers running background jobs until they are reaped.
type JobTracker struct {
	reaper Reaper
	jobs   map[int]bool
}

// NewJobTracker creates a tracker. A nil reaper uses wait4 on any child.
func NewJobTracker(reaper Reaper) *JobTracker {
	if reaper == nil {
		reaper = unixReaper{}
	}
	return &JobTracker{
		reaper: reaper,
		jobs:   make(map[int]bool),
	}
}

// Track registers a running background job.
func (j *JobTracker) Track(pid int) {
	j.jobs[pid] = true
}

// Jobs returns the pids of jobs that haven't been reaped, in ascending order.
func (j *JobTracker) Jobs() []int {
	out := make([]int, 0, len(j.jobs))
	for pid := range j.jobs {
		out = append(out, pid)
	}
	sort.Ints(out)
	return out
}

// Sweep reaps every child that has terminated so far and never blocks.
func (j *JobTracker) Sweep() []Completion {
	var out []Completion
	for {
		pid, outcome, err := j.reaper.Reap()
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.ECHILD):
			return out
		case err != nil:
			Logger.Printf("reaping children: %v", err)
			return out
		case pid == 0:
			return out
		}

		tracked := j.jobs[pid]
		delete(j.jobs, pid)
		out = append(out, Completion{Pid: pid, Outcome: outcome, Tracked: tracked})
	}
}
