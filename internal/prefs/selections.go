// Package prefs remembers the last selection per component in a JSON file
// under the user config dir, so hosts can restore state across runs
// without a database.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const selectionsFile = "selections.json"

func selectionsPath() (string, error) {
	dir := os.Getenv("GROVE_CONFIG_DIR")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "grove")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, selectionsFile), nil
}

// SaveSelections writes the component→ids map atomically.
func SaveSelections(selections map[string][]string) error {
	path, err := selectionsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(selections, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadSelections reads the stored map. A missing file yields nil, nil.
func LoadSelections() (map[string][]string, error) {
	path, err := selectionsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var selections map[string][]string
	if err := json.Unmarshal(data, &selections); err != nil {
		return nil, err
	}
	return selections, nil
}
