// Package sysproc holds the platform-specific process attributes used by the
// subprocess backends.
//
// KillGroupOnCancel makes a command's context cancellation terminate the whole
// process tree it started, not only the interpreter. Detach starts a command
// in its own session (console on Windows) so it outlives the caller.
// ShellCommand hands text to a shell untouched by argument quoting.
package sysproc
