package infra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLoadsFileWithoutOverriding(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("LOSTFOUND_INIT_NEW=from-file\nLOSTFOUND_INIT_SET=from-file\n"), 0o600))

	t.Setenv("LOSTFOUND_INIT_SET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("LOSTFOUND_INIT_NEW") })

	Initialize(file, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "from-file", os.Getenv("LOSTFOUND_INIT_NEW"))
	assert.Equal(t, "from-env", os.Getenv("LOSTFOUND_INIT_SET"))
}
