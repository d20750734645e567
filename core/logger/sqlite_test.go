package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	db, err := OpenSQLiteLog(path)
	assert.NoError(t, err)

	session := db.Logger().NewSession()
	for _, event := range sampleEvents() {
		assert.NoError(t, session.Record(event))
	}
	assert.NoError(t, db.Close())

	// Reopening keeps existing entries.
	db, err = OpenSQLiteLog(path)
	assert.NoError(t, err)
	defer db.Close()

	var report Report
	assert.NoError(t, db.ReadAll(report.Update))
	assert.Equal(t, len(sampleEvents()), report.LogEntries)
	assert.Equal(t, 1, report.Sessions)
	assert.Equal(t, 2, report.Failure.Count)

	counts, err := db.CountByType()
	assert.NoError(t, err)
	assert.Equal(t, 2, counts["run_command"])
	assert.Equal(t, 2, counts["job_done"])
	assert.Equal(t, 1, counts["session_end"])
}
