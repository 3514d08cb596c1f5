// Package keys stores and resolves the Gemini API key.
package keys

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// EnvVar is the environment variable holding the API credential.
const EnvVar = "GEMINI_API_KEY"

type Store struct {
	configDir string
}

type keyFile struct {
	APIKey string `json:"api_key"`
}

func NewStore() (*Store, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{configDir: configDir}, nil
}

func NewStoreWithDir(dir string) *Store {
	return &Store{configDir: dir}
}

// getConfigDir returns the platform-specific config directory.
func getConfigDir() (string, error) {
	// Allow override for testing
	if testDir := os.Getenv("NANOBANANA_CONFIG_DIR"); testDir != "" {
		return testDir, nil
	}

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "nanobanana"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "nanobanana"), nil
	default: // linux and others
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, "nanobanana"), nil
	}
}

func (s *Store) Path() string {
	return filepath.Join(s.configDir, "keys.json")
}

func (s *Store) load() (*keyFile, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &keyFile{}, nil
		}
		return nil, err
	}

	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("failed to parse keys.json: %w", err)
	}
	return &kf, nil
}

func (s *Store) save(kf *keyFile) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}

	// Owner read/write only
	if err := os.WriteFile(s.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write keys.json: %w", err)
	}
	return nil
}

func (s *Store) Set(key string) error {
	kf, err := s.load()
	if err != nil {
		return err
	}
	kf.APIKey = key
	return s.save(kf)
}

func (s *Store) Get() (string, error) {
	kf, err := s.load()
	if err != nil {
		return "", err
	}
	return kf.APIKey, nil
}

func (s *Store) Delete() error {
	kf, err := s.load()
	if err != nil {
		return err
	}
	if kf.APIKey == "" {
		return fmt.Errorf("no stored API key")
	}
	kf.APIKey = ""
	return s.save(kf)
}

// MaskKey returns a masked version of the key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

// Resolve returns the API key using the priority order: explicit flag,
// stored key, environment variable. getenv is injected so callers can
// test without mutating the process environment.
func Resolve(explicitKey string, getenv func(string) string) (string, string, error) {
	if explicitKey != "" {
		return explicitKey, "command-line flag", nil
	}

	store, err := NewStore()
	if err == nil {
		storedKey, err := store.Get()
		if err == nil && storedKey != "" {
			return storedKey, fmt.Sprintf("stored key (%s)", store.Path()), nil
		}
	}

	if envKey := getenv(EnvVar); envKey != "" {
		return envKey, fmt.Sprintf("environment variable (%s)", EnvVar), nil
	}

	return "", "", fmt.Errorf("API key required: run 'nanobanana keys set' or set %s", EnvVar)
}
