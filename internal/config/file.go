package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	fileValues     map[string]string
	fileValuesLock sync.RWMutex
)

// LoadFile reads a flat YAML document of VARIABLE: value pairs. Sequence
// values are joined with commas so list variables can be written as YAML lists.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("[config LoadFile] failed to read %s: %w", path, err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("[config LoadFile] failed to parse %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[strings.ToUpper(k)] = stringify(v)
	}

	fileValuesLock.Lock()
	fileValues = values
	fileValuesLock.Unlock()
	return nil
}

// ResetFile discards values loaded by LoadFile.
func ResetFile() {
	fileValuesLock.Lock()
	fileValues = nil
	fileValuesLock.Unlock()
}

func fileValue(name string) (string, bool) {
	fileValuesLock.RLock()
	defer fileValuesLock.RUnlock()
	v, ok := fileValues[name]
	return v, ok
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(value)
	}
}
