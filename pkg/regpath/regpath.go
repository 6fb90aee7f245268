package regpath

import (
	"strings"
)

const (
	// Separator splits key segments.
	Separator = `\`
	// ValueDelimiter splits the value name off the key path.
	ValueDelimiter = ":"
)

// ResolvedPath is the structural form of a registry path.
type ResolvedPath struct {
	Root     Root
	Segments []string
	// ValueName is nil when the path names a key. An empty string names the
	// key's default value.
	ValueName *string
}

// Resolve parses path without touching the registry. An unknown root alias
// always fails with ErrInvalidRoot, whatever follows it.
func Resolve(path string) (ResolvedPath, error) {
	path = strings.TrimSpace(path)

	rootPart, rest, _ := strings.Cut(path, Separator)
	root, err := ParseRoot(rootPart)
	if err != nil {
		return ResolvedPath{}, err
	}

	resolved := ResolvedPath{Root: root}
	if idx := strings.LastIndex(rest, ValueDelimiter); idx >= 0 {
		name := rest[idx+len(ValueDelimiter):]
		resolved.ValueName = &name
		rest = rest[:idx]
	}
	resolved.Segments = splitSegments(rest)
	return resolved, nil
}

func splitSegments(rest string) []string {
	segments := []string{}
	for _, s := range strings.Split(rest, Separator) {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// HasKnownRoot reports whether path begins with a recognised root alias.
func HasKnownRoot(path string) bool {
	rootPart, _, _ := strings.Cut(strings.TrimSpace(path), Separator)
	_, err := ParseRoot(rootPart)
	return err == nil
}

// SubkeyPath joins the segments with backslashes, as the registry API expects.
func (p ResolvedPath) SubkeyPath() string {
	return strings.Join(p.Segments, Separator)
}

// HasValueName reports whether the path explicitly names a value.
func (p ResolvedPath) HasValueName() bool {
	return p.ValueName != nil
}

// Value returns the value name, or "" when none was given.
func (p ResolvedPath) Value() string {
	if p.ValueName == nil {
		return ""
	}
	return *p.ValueName
}

// Leaf returns the last key segment, or "" for a bare root.
func (p ResolvedPath) Leaf() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// Parent returns the key one level up, without a value name. It returns false
// for a bare root.
func (p ResolvedPath) Parent() (ResolvedPath, bool) {
	if len(p.Segments) == 0 {
		return ResolvedPath{}, false
	}
	segments := make([]string, len(p.Segments)-1)
	copy(segments, p.Segments)
	return ResolvedPath{Root: p.Root, Segments: segments}, true
}

// Key returns the same path with the value name dropped.
func (p ResolvedPath) Key() ResolvedPath {
	segments := make([]string, len(p.Segments))
	copy(segments, p.Segments)
	return ResolvedPath{Root: p.Root, Segments: segments}
}

// WithValue returns a copy of p naming value name.
func (p ResolvedPath) WithValue(name string) ResolvedPath {
	out := p.Key()
	out.ValueName = &name
	return out
}

// Equal reports structural equality.
func (p ResolvedPath) Equal(other ResolvedPath) bool {
	if p.Root != other.Root || len(p.Segments) != len(other.Segments) {
		return false
	}
	for i := range p.Segments {
		if p.Segments[i] != other.Segments[i] {
			return false
		}
	}
	if p.HasValueName() != other.HasValueName() {
		return false
	}
	return p.Value() == other.Value()
}

// String renders the canonical short form, e.g. HKCU\Software\Test:Value.
func (p ResolvedPath) String() string {
	var b strings.Builder
	b.WriteString(p.Root.String())
	for _, s := range p.Segments {
		b.WriteString(Separator)
		b.WriteString(s)
	}
	if p.ValueName != nil {
		b.WriteString(ValueDelimiter)
		b.WriteString(*p.ValueName)
	}
	return b.String()
}
