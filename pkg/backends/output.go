package backends

import (
	"bytes"
	"strings"
)

const truncatedMarker = "\n[output truncated]"

// limitWriter keeps the first limit bytes written to it and discards the
// rest while still reporting full writes, so the child never sees EPIPE.
type limitWriter struct {
	buf       bytes.Buffer
	limit     int64
	truncated bool
}

func newLimitWriter(limit int64) *limitWriter {
	return &limitWriter{limit: limit}
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	remaining := lw.limit - int64(lw.buf.Len())
	if remaining <= 0 {
		if len(p) > 0 {
			lw.truncated = true
		}
		return len(p), nil
	}
	toWrite := p
	if int64(len(p)) > remaining {
		toWrite = p[:remaining]
		lw.truncated = true
	}
	lw.buf.Write(toWrite)
	return len(p), nil
}

func (lw *limitWriter) String() string {
	if lw.truncated {
		return lw.buf.String() + truncatedMarker
	}
	return lw.buf.String()
}

// mergeOutput joins stdout and stderr for a failed command.
func mergeOutput(stdout, stderr string) string {
	stdout = strings.TrimRight(stdout, "\r\n")
	stderr = strings.TrimRight(stderr, "\r\n")
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	}
	return stdout + "\n" + stderr
}
