package cmd

import (
	"fmt"
	"io"

	"github.com/josephlewis42/smallsh/core/config"
	"github.com/josephlewis42/smallsh/core/logger"
)

// eventLog is an open event log sink.
type eventLog struct {
	logger *logger.Logger
	closer io.Closer
}

// Session returns a recorder tagging entries with a new session ID.
func (e *eventLog) Session() logger.Recorder {
	if e.logger == nil {
		return logger.NopRecorder{}
	}
	return e.logger.NewSession()
}

func (e *eventLog) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// openEventLog opens the sink configured under event_log for writing.
func openEventLog(cfg *config.Configuration) (*eventLog, error) {
	switch cfg.EventLog.Driver {
	case config.EventLogJSONL:
		fd, err := cfg.OpenEventLog()
		if err != nil {
			return nil, fmt.Errorf("couldn't open event log: %w", err)
		}
		return &eventLog{logger: logger.NewJsonLinesLogRecorder(fd), closer: fd}, nil

	case config.EventLogSQLite:
		db, err := logger.OpenSQLiteLog(cfg.ResolvePath(cfg.EventLog.Path))
		if err != nil {
			return nil, err
		}
		return &eventLog{logger: db.Logger(), closer: db}, nil

	default:
		return &eventLog{}, nil
	}
}

// readEventLog calls handler for every entry in the configured event log.
func readEventLog(cfg *config.Configuration, handler func(le *logger.LogEntry)) error {
	switch cfg.EventLog.Driver {
	case config.EventLogJSONL:
		fd, err := cfg.ReadEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		return logger.ReadJSONLinesLog(fd, handler)

	case config.EventLogSQLite:
		db, err := logger.OpenSQLiteLog(cfg.ResolvePath(cfg.EventLog.Path))
		if err != nil {
			return err
		}
		defer db.Close()

		return db.ReadAll(handler)

	default:
		return fmt.Errorf("the event log is disabled, set event_log.driver in %s", config.ConfigurationName)
	}
}
