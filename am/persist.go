package am

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/ghpr/errors"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Don't fail the save over a stale backup
		fmt.Fprintf(os.Stderr, "⚠️  Failed to delete old backup %s: %v\n", back3, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// UserConfigPath returns ~/.ghpr/config.toml
func UserConfigPath() (string, error) {
	dir := UserConfigDir()
	if dir == "" {
		return "", errors.New("could not determine home directory")
	}
	return filepath.Join(dir, "config.toml"), nil
}

// SetUserValue stores key = value in the user config file and returns the file written
func SetUserValue(key, value string) (string, error) {
	path, err := UserConfigPath()
	if err != nil {
		return "", err
	}
	if err := SetValueInFile(path, key, value); err != nil {
		return "", err
	}
	Reset()
	return path, nil
}

// SetValueInFile stores key = value (dot notation) in the TOML file at path, creating it when missing.
// Integers and booleans are stored with their TOML types.
func SetValueInFile(path, key, value string) error {
	segments := strings.Split(key, ".")
	for _, s := range segments {
		if s == "" {
			return errors.Newf("invalid configuration key %q", key)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	config := make(map[string]interface{})
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &config); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	// Walk or create the tables leading to the leaf
	table := config
	for _, segment := range segments[:len(segments)-1] {
		next, ok := table[segment].(map[string]interface{})
		if !ok {
			if _, exists := table[segment]; exists {
				return errors.Newf("cannot set %q: %q is not a table", key, segment)
			}
			next = make(map[string]interface{})
			table[segment] = next
		}
		table = next
	}
	table[segments[len(segments)-1]] = parseValue(value)

	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func parseValue(value string) interface{} {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}
