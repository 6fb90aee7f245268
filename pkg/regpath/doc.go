// Package regpath resolves registry path strings into their structural parts.
//
// A path has the form
//
//	ROOT\Segment\Segment...[:ValueName]
//
// where ROOT is one of the five predefined keys, spelled long
// (HKEY_CURRENT_USER) or short (HKCU), in any case. A PowerShell drive
// spelling (HKCU:\Software) is accepted too. The text after the last ':'
// that follows the root names a value; without it the path names a key.
//
// Resolution is purely structural and never touches the registry, so it is
// safe to call from validation and privilege checks.
//
// The package also parses mutation commands, "path=literal" to set a value
// and "path-" to delete one, into a Command.
package regpath
