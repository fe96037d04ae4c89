// Package execshell provides structured helpers for invoking external commands.
//
// It wraps os/exec behind the CommandRunner abstraction, streams child process
// output to the invoking terminal as it is produced, and exposes ShellExecutor
// for logged, observable command execution inside workspace repositories.
package execshell
