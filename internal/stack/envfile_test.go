package stack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEnvFile(t *testing.T) {
	path := writeEnvFile(t, `
# stack parameters
IMAGE_URI=ghcr.io/hereya/claud-agent:v1
export TIMEOUT=600
NAME_PREFIX="Acme"
STACK_NAME='prod'
EMPTY=
`)

	env, err := LoadEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"IMAGE_URI":   "ghcr.io/hereya/claud-agent:v1",
		"TIMEOUT":     "600",
		"NAME_PREFIX": "Acme",
		"STACK_NAME":  "prod",
		"EMPTY":       "",
	}, env)
}

func TestLoadEnvFile_Malformed(t *testing.T) {
	path := writeEnvFile(t, "IMAGE_URI ghcr.io/hereya/claud-agent\n")

	_, err := LoadEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected KEY=VALUE")
}

func TestLoadEnvFile_Missing(t *testing.T) {
	_, err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
}

func TestMergedEnv_FileOverridesProcess(t *testing.T) {
	t.Setenv("TIMEOUT", "300")
	t.Setenv("MEMORY_SIZE", "512")

	path := writeEnvFile(t, "TIMEOUT=600\n")

	env, err := MergedEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "600", env["TIMEOUT"])
	assert.Equal(t, "512", env["MEMORY_SIZE"])
}

func TestMergedEnv_NoFile(t *testing.T) {
	t.Setenv("TIMEOUT", "450")

	env, err := MergedEnv("")
	require.NoError(t, err)
	assert.Equal(t, "450", env["TIMEOUT"])
}
