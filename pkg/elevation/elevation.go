// Package elevation reports whether the current process holds administrative
// rights. The CLI uses it to fill the caller's elevated flag.
package elevation
