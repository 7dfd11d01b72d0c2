package preset

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EmbeddedFS is set by the main package to provide embedded preset
// files. This avoids go:embed constraints on internal packages.
var EmbeddedFS *embed.FS

// LoadEmbedded loads all embedded YAML preset files.
func LoadEmbedded() ([]Preset, error) {
	if EmbeddedFS == nil {
		return nil, nil
	}

	dir := "presets"
	entries, err := EmbeddedFS.ReadDir(dir)
	if err != nil {
		dir = "."
		entries, err = EmbeddedFS.ReadDir(dir)
		if err != nil {
			return nil, nil
		}
	}

	var presets []Preset
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := entry.Name()
		if dir != "." {
			path = dir + "/" + entry.Name()
		}
		data, err := EmbeddedFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read embedded preset %s: %w", entry.Name(), err)
		}
		p, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded preset %s: %w", entry.Name(), err)
		}
		presets = append(presets, *p)
	}
	return presets, nil
}

// LoadUserPresets loads all YAML files from a directory.
func LoadUserPresets(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read preset dir: %w", err)
	}

	var presets []Preset
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read user preset %s: %w", entry.Name(), err)
		}
		p, err := Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tably: skipping invalid preset %s: %v\n", entry.Name(), err)
			continue
		}
		presets = append(presets, *p)
	}
	return presets, nil
}

// LoadAll loads user presets (priority) and embedded presets, merging by name.
func LoadAll(userDir string) ([]Preset, error) {
	user, err := LoadUserPresets(userDir)
	if err != nil {
		return nil, err
	}

	embedded, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]bool)
	var result []Preset
	for _, p := range user {
		byName[p.Name] = true
		result = append(result, p)
	}
	for _, p := range embedded {
		if !byName[p.Name] {
			result = append(result, p)
		}
	}
	return result, nil
}
