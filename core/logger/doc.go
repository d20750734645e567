// Package logger is a standardized event logging framework for the shell.
//
// Every session writes structured LogEntry records describing the commands
// it ran and how they ended. Entries go to a newline delimited JSON file or
// to a SQLite database and can be summarized with a Report.
package logger
