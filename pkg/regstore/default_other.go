//go:build !windows

package regstore

// Default returns a file-backed store at path, or an in-memory store when path
// is empty. Hosts without a registry have nothing else to write to.
func Default(path string) (Store, error) {
	if path == "" {
		return NewMemory(), nil
	}
	return OpenFile(path)
}
