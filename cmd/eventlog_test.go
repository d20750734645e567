package cmd

import (
	"io"
	"log"
	"testing"

	"github.com/josephlewis42/smallsh/core/config"
	"github.com/josephlewis42/smallsh/core/logger"
	"github.com/stretchr/testify/assert"
)

func TestEventLogRoundTrip(t *testing.T) {
	cases := map[string]struct {
		driver string
		path   string
	}{
		"jsonl":  {driver: config.EventLogJSONL, path: "events.jsonl"},
		"sqlite": {driver: config.EventLogSQLite, path: "events.db"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg, err := config.Initialize(t.TempDir(), log.New(io.Discard, "", 0))
			if err != nil {
				t.Fatal(err)
			}
			cfg.EventLog.Driver = tc.driver
			cfg.EventLog.Path = tc.path

			events, err := openEventLog(cfg)
			if err != nil {
				t.Fatal(err)
			}
			session := events.Session()
			assert.NoError(t, session.Record(&logger.RunCommand{Command: []string{"ls"}, Pid: 10}))
			assert.NoError(t, session.Record(&logger.CommandExit{Command: []string{"ls"}, Pid: 10, Status: "exit value 0"}))
			assert.NoError(t, events.Close())

			var report logger.Report
			assert.NoError(t, readEventLog(cfg, report.Update))
			assert.Equal(t, 2, report.LogEntries)
			assert.Equal(t, 1, report.Sessions)
			assert.Equal(t, 1, report.Command.CommandNames.Get("ls"))
		})
	}
}

func TestEventLogDisabled(t *testing.T) {
	cfg := config.Default()

	events, err := openEventLog(cfg)
	assert.NoError(t, err)
	assert.IsType(t, logger.NopRecorder{}, events.Session())
	assert.NoError(t, events.Close())

	assert.Error(t, readEventLog(cfg, func(*logger.LogEntry) {}))
}
