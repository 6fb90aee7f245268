package backends

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/winregi/pkg/config"
	"github.com/arthur-debert/winregi/pkg/regstore"
	"github.com/arthur-debert/winregi/pkg/tempfiles"
	"github.com/arthur-debert/winregi/pkg/types"
)

func TestNewSetCoversEveryBackend(t *testing.T) {
	set := NewSet(config.Default(), regstore.NewMemory(), tempfiles.NewOS(t.TempDir()))

	for _, b := range types.AllBackends() {
		exec, ok := set[b]
		if assert.True(t, ok, b.String()) {
			assert.Equal(t, b, exec.Backend())
		}
	}
}
