// Package setup registers the report MCP server with desktop MCP clients.
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ServerName is the key the server is registered under in the client config
const ServerName = "assessment-report"

// DataDirEnv is the environment variable the lite server reads its data directory from
const DataDirEnv = "REPORT_DATA_DIR"

// ClientConfig represents an MCP client configuration file.
type ClientConfig struct {
	MCPServers map[string]ServerEntry `json:"mcpServers"`
}

// ServerEntry represents a single MCP server configuration.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Options contains options for registering the server.
type Options struct {
	ConfigPath string // defaults to DefaultClientConfigPath
	BinaryPath string // defaults to a search of PATH and common locations
	DataDir    string
}

// Status represents the current registration status.
type Status struct {
	ConfigPath string   `json:"config_path"`
	Registered bool     `json:"registered"`
	ServerPath string   `json:"server_path,omitempty"`
	DataDir    string   `json:"data_dir"`
	Issues     []string `json:"issues,omitempty"`
}

// DefaultClientConfigPath returns the desktop client's config file for this OS.
func DefaultClientConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support", "Claude")
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "Claude")
			break
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", "Claude")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		configDir = filepath.Join(appData, "Claude")
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return filepath.Join(configDir, "claude_desktop_config.json"), nil
}

// LoadClientConfig loads a client configuration. A missing file yields an empty config.
func LoadClientConfig(configPath string) (*ClientConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &ClientConfig{MCPServers: make(map[string]ServerEntry)}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ClientConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.MCPServers == nil {
		config.MCPServers = make(map[string]ServerEntry)
	}
	return &config, nil
}

// SaveClientConfig writes the configuration, creating its directory if needed.
func SaveClientConfig(configPath string, config *ClientConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Register adds or replaces the server entry and returns the config path written.
// Other servers in the file are preserved.
func Register(opts Options) (string, error) {
	configPath, err := resolveConfigPath(opts.ConfigPath)
	if err != nil {
		return "", err
	}

	config, err := LoadClientConfig(configPath)
	if err != nil {
		return "", err
	}

	binaryPath := opts.BinaryPath
	if binaryPath == "" {
		if binaryPath, err = findBinary("mcp-server-lite"); err != nil {
			return "", fmt.Errorf("could not find server binary: %w", err)
		}
	}

	entry := ServerEntry{Command: binaryPath, Env: map[string]string{}}
	if opts.DataDir != "" {
		entry.Env[DataDirEnv] = opts.DataDir
	}
	config.MCPServers[ServerName] = entry

	if err := SaveClientConfig(configPath, config); err != nil {
		return "", err
	}
	return configPath, nil
}

// GetStatus reports whether the server is registered and whether its binary
// and data directory exist.
func GetStatus(configPath string) (*Status, error) {
	configPath, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}

	config, err := LoadClientConfig(configPath)
	if err != nil {
		return nil, err
	}

	status := &Status{ConfigPath: configPath, DataDir: DefaultDataDir()}

	entry, ok := config.MCPServers[ServerName]
	if !ok {
		status.Issues = append(status.Issues, "server is not registered")
		return status, nil
	}

	status.Registered = true
	status.ServerPath = entry.Command
	if dir, ok := entry.Env[DataDirEnv]; ok && dir != "" {
		status.DataDir = dir
	}

	if _, err := os.Stat(entry.Command); os.IsNotExist(err) {
		status.Issues = append(status.Issues, fmt.Sprintf("server binary not found: %s", entry.Command))
	}
	if _, err := os.Stat(status.DataDir); os.IsNotExist(err) {
		status.Issues = append(status.Issues, fmt.Sprintf("data directory will be created on first run: %s", status.DataDir))
	}

	return status, nil
}

// DefaultDataDir returns the default data directory path.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".assessment-report")
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultClientConfigPath()
}

// findBinary looks on PATH and then in common install locations.
func findBinary(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	locations := []string{
		"./" + name,
		"./build/" + name,
		filepath.Join(os.Getenv("HOME"), ".local", "bin", name),
		"/usr/local/bin/" + name,
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			if abs, err := filepath.Abs(loc); err == nil {
				return abs, nil
			}
			return loc, nil
		}
	}

	return "", fmt.Errorf("binary '%s' not found in common locations", name)
}
