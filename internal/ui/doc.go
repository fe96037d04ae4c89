// Package ui renders command lifecycle events for human consumption.
//
// ConsoleCommandEventLogger implements execshell.CommandEventObserver and
// forwards formatted start, completion, and failure messages to a zap logger.
package ui
