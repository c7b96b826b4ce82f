package setup

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientConfig_Missing(t *testing.T) {
	config, err := LoadClientConfig(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Empty(t, config.MCPServers)
}

func TestLoadClientConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := LoadClientConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestRegister_PreservesOtherServers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client", "config.json")
	require.NoError(t, SaveClientConfig(path, &ClientConfig{MCPServers: map[string]ServerEntry{
		"other": {Command: "/bin/other"},
	}}))

	binary := filepath.Join(dir, "mcp-server-lite")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0755))

	written, err := Register(Options{ConfigPath: path, BinaryPath: binary, DataDir: dir})
	require.NoError(t, err)
	assert.Equal(t, path, written)

	config, err := LoadClientConfig(path)
	require.NoError(t, err)
	assert.Len(t, config.MCPServers, 2)
	entry := config.MCPServers[ServerName]
	assert.Equal(t, binary, entry.Command)
	assert.Equal(t, dir, entry.Env[DataDirEnv])

	status, err := GetStatus(path)
	require.NoError(t, err)
	assert.True(t, status.Registered)
	assert.Equal(t, dir, status.DataDir)
	assert.Empty(t, status.Issues)
}

func TestGetStatus_NotRegistered(t *testing.T) {
	status, err := GetStatus(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.False(t, status.Registered)
	assert.Equal(t, []string{"server is not registered"}, status.Issues)
}

func TestGetStatus_MissingBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	_, err := Register(Options{ConfigPath: path, BinaryPath: "/nonexistent/mcp-server-lite", DataDir: t.TempDir()})
	require.NoError(t, err)

	status, err := GetStatus(path)
	require.NoError(t, err)
	require.Len(t, status.Issues, 1)
	assert.Contains(t, status.Issues[0], "server binary not found")
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cmd := NewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"register", "--config", path, "--binary", "/opt/mcp-server-lite"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Registered "+ServerName)

	cmd = NewCommand()
	buf.Reset()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"status", "--config", path})
	require.NoError(t, cmd.Execute())

	var status Status
	require.NoError(t, json.Unmarshal(buf.Bytes(), &status))
	assert.True(t, status.Registered)
	assert.Equal(t, "/opt/mcp-server-lite", status.ServerPath)
}
