package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

type reapResult struct {
	pid     int
	outcome Outcome
	err     error
}

// fakeReaper replays canned results and then reports no terminated children.
type fakeReaper struct {
	results []reapResult
	calls   int
}

func (f *fakeReaper) Reap() (int, Outcome, error) {
	f.calls++
	if len(f.results) == 0 {
		return 0, Outcome{}, nil
	}
	next := f.results[0]
	f.results = f.results[1:]
	return next.pid, next.outcome, next.err
}

func TestJobTrackerSweep(t *testing.T) {
	reaper := &fakeReaper{results: []reapResult{
		{pid: 20, outcome: Exited(0)},
		{err: unix.EINTR},
		{pid: 30, outcome: Signaled(15)},
		{pid: 99, outcome: Exited(2)},
	}}
	jobs := NewJobTracker(reaper)
	jobs.Track(30)
	jobs.Track(20)
	jobs.Track(40)

	assert.Equal(t, []int{20, 30, 40}, jobs.Jobs())

	got := jobs.Sweep()
	assert.Equal(t, []Completion{
		{Pid: 20, Outcome: Exited(0), Tracked: true},
		{Pid: 30, Outcome: Signaled(15), Tracked: true},
		{Pid: 99, Outcome: Exited(2), Tracked: false},
	}, got)
	assert.Equal(t, []int{40}, jobs.Jobs())
	assert.Equal(t, 5, reaper.calls)

	// Nothing left to reap.
	assert.Empty(t, jobs.Sweep())
}

func TestJobTrackerSweepNoChildren(t *testing.T) {
	reaper := &fakeReaper{results: []reapResult{
		{err: unix.ECHILD},
		{pid: 1, outcome: Exited(0)},
	}}
	jobs := NewJobTracker(reaper)

	assert.Empty(t, jobs.Sweep())
	assert.Equal(t, 1, reaper.calls)
}

func TestJobTrackerSweepUnexpectedError(t *testing.T) {
	reaper := &fakeReaper{results: []reapResult{
		{err: unix.EINVAL},
	}}

	assert.Empty(t, NewJobTracker(reaper).Sweep())
}
