package phonetic

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a substitution map from a JSON file. The file layout is
// {"tr": {"software": "softver", ...}, ...}.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phonetic table: %w", err)
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse phonetic table: %w", err)
	}
	return m, nil
}

// Save writes a substitution map to a JSON file with indentation.
func Save(path string, m Map) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrDefaults loads the map at path when path is non-empty, falling back
// to the built-in defaults otherwise.
func LoadOrDefaults(path string) (Map, error) {
	if path == "" {
		return Defaults(), nil
	}
	return Load(path)
}
