// Package logger is a standardized event logging framework for the shell.
//
// Events are written one JSON object per line so logs can be tailed while a
// server is running and folded into a Report afterwards.
package logger
