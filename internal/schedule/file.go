package schedule

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a calendar in JSON or YAML form
func Decode(r io.Reader) (Calendar, error) {
	var cal Calendar
	if err := yaml.NewDecoder(r).Decode(&cal); err != nil {
		if err == io.EOF {
			return Calendar{}, nil
		}
		return nil, fmt.Errorf("failed to decode calendar: %w", err)
	}
	return cal, nil
}

// LoadFile reads a calendar file
func LoadFile(path string) (Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer f.Close()

	cal, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cal, nil
}
